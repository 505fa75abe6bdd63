package appcore

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"

	"tapscore/internal/version"
	"tapscore/internal/writers"
)

// flush writes buffered output and maps the result to an exit code. A reader
// that went away early is not an error.
func flush(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return ExitIO
	}
	return code
}

// ParseFailure prints usage for a flag parse error and returns the exit
// code: 0 for -h, 2 otherwise.
func ParseFailure(fs *flag.FlagSet, err error, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	code := ExitOK
	if !errors.Is(err, flag.ErrHelp) {
		_, _ = fmt.Fprintln(stderr, err)
		code = ExitUsage
	}
	fs.SetOutput(outw)
	fs.Usage()
	return flush(outw, stderr, code)
}

// PrintVersion prints "<name> version <v>".
func PrintVersion(name string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	_, _ = fmt.Fprintf(outw, "%s version %s\n", name, version.Version)
	return flush(outw, stderr, ExitOK)
}
