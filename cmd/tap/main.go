// cmd/tap/main.go
package main

import (
	"tapscore/internal/app"
	"tapscore/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
