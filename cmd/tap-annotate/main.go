// cmd/tap-annotate/main.go
package main

import (
	"tapscore/internal/annotateapp"
	"tapscore/internal/appshell"
)

func main() { appshell.Main(annotateapp.RunContext) }
