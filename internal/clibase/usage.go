// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"tapscore/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage line, tool flags).
func UsageCommon(fs *flag.FlagSet, name, tagline string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – %s\n\n", name, tagline)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "      --model file            IMGT-numbered PDB model (repeatable) or positionals")
		fmt.Fprintln(out, "  -c, --config file           YAML configuration (cutoffs, metric ranges, psa path)")
		fmt.Fprintln(out, "      --psa path              psa executable [$TAP_PSA_PATH, then psa on $PATH]")

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Models scored in parallel (0=all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output format [%s]\n", def("output"))
		fmt.Fprintln(out, "      --out file              Write output to file (parents created)")
		fmt.Fprintf(out, "      --sort                  Sort outputs by model [%s]\n", def("sort"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintln(out, "      --metrics-textfile file Write Prometheus metrics on exit")

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Errors only on stderr [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --verbose               Log every annotation stage [%s]\n", def("verbose"))
		fmt.Fprintf(out, "      --color                 Colour log output [%s]\n", def("color"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
