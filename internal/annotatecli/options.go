package annotatecli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"tapscore/internal/clibase"
	"tapscore/internal/writers"
)

type Options struct {
	clibase.Common

	// Chains restricts the dump to these chain IDs; empty keeps all.
	Chains []string
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "per-residue structural annotation dump", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] model.pdb [model.pdb ...]\n", name)
		_, _ = fmt.Fprintln(out, "\nSelection:")
		_, _ = fmt.Fprintln(out, "      --chains list           Comma-separated chain IDs to dump (default: all)")
		_, _ = fmt.Fprintln(out, "\nFormats: text | json | jsonl")
	})
	return fs
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var chains string

	noHeader := clibase.Register(fs, &o.Common, "text")
	fs.StringVar(&chains, "chains", "", "comma-separated chain IDs to dump")
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
	for _, c := range strings.Split(chains, ",") {
		if c = strings.TrimSpace(c); c != "" {
			if len(c) != 1 {
				return o, fmt.Errorf("--chains: %q is not a single-character chain ID", c)
			}
			o.Chains = append(o.Chains, c)
		}
	}
	if err := clibase.AfterParse(&o.Common, noHeader, posArgs, writers.Residues.Formats(), true); err != nil {
		return o, err
	}
	return o, nil
}
