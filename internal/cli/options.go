// internal/cli/options.go
package cli

import (
	"flag"
	"fmt"
	"io"

	"tapscore/internal/clibase"
	"tapscore/internal/writers"
)

// Options holds all tap flags and arguments.
type Options struct {
	clibase.Common

	ListMetrics bool
}

// NewFlagSet returns a FlagSet with tap's help text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "structural developability scoring for antibody models", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] model.pdb [model.pdb ...]\n", name)
		_, _ = fmt.Fprintf(out, "  %s --list-metrics\n", name)
		_, _ = fmt.Fprintln(out, "\nMetrics:")
		_, _ = fmt.Fprintf(out, "      --list-metrics          Print each metric with its green/amber ranges [%s]\n", def("list-metrics"))
		_, _ = fmt.Fprintln(out, "\nFormats: text | csv | json | jsonl")
	})
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool

	noHeader := clibase.Register(fs, &o.Common, "text")
	fs.BoolVar(&o.ListMetrics, "list-metrics", false, "print metric ranges and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help [false]")

	flagArgs, posArgs := clibase.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if help {
		return o, flag.ErrHelp
	}
	if o.Version {
		return o, nil
	}
	if err := clibase.AfterParse(&o.Common, noHeader, posArgs, writers.Reports.Formats(), !o.ListMetrics); err != nil {
		return o, err
	}
	return o, nil
}
