// Package appshell is the process wrapper shared by the binaries: signal
// handling and exit-code normalisation.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"tapscore/internal/appcore"
)

// Main runs run with os.Args and exits with its code. SIGINT and SIGTERM
// cancel the context; a run that was cancelled but reported success exits 130.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == appcore.ExitOK {
		code = appcore.ExitCancelled
	}

	stop()
	os.Exit(code)
}
