// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// Common holds CLI fields shared by tap and tap-annotate.
type Common struct {
	// Input
	Models []string
	Config string
	PSA    string

	// Performance
	Threads int

	// Output
	Output          string
	Out             string // file instead of stdout
	Sort            bool
	Header          bool
	MetricsTextfile string

	// Misc
	Quiet   bool
	Verbose bool
	Color   bool
	Version bool
}

// sliceValue appends each value to a *[]string (for --model)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// Register wires shared flags onto fs and returns a pointer to the “no-header” bool
// that the caller can use to set Common.Header = !noHeader after parsing.
func Register(fs *flag.FlagSet, c *Common, defaultOutput string) *bool {
	// Inputs
	mv := &sliceValue{dst: &c.Models}
	fs.Var(mv, "model", "IMGT-numbered PDB file (repeatable; positionals also accepted)")
	fs.StringVar(&c.Config, "config", "", "YAML configuration file")
	fs.StringVar(&c.Config, "c", "", "alias of --config")
	fs.StringVar(&c.PSA, "psa", "", "psa executable (default: $TAP_PSA_PATH, then psa on $PATH)")

	// Performance
	fs.IntVar(&c.Threads, "threads", 0, "models scored in parallel (0=all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")

	// Output
	fs.StringVar(&c.Output, "output", defaultOutput, "output format ["+defaultOutput+"]")
	fs.StringVar(&c.Output, "o", defaultOutput, "alias of --output")
	fs.StringVar(&c.Out, "out", "", "write output to this file instead of stdout")
	fs.BoolVar(&c.Sort, "sort", false, "sort outputs by model [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")
	fs.StringVar(&c.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "errors only on stderr [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Verbose, "verbose", false, "log every annotation stage [false]")
	fs.BoolVar(&c.Color, "color", false, "colour log output [false]")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")

	return &noHeader
}

// AfterParse finalizes header and expands positionals, then runs shared validation.
func AfterParse(c *Common, noHeader *bool, posArgs []string, formats []string, needModels bool) error {
	c.Header = !*noHeader

	if len(posArgs) > 0 {
		exp, err := ExpandPositionals(posArgs)
		if err != nil {
			return err
		}
		c.Models = append(c.Models, exp...)
	}
	return Validate(c, formats, needModels)
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common, formats []string, needModels bool) error {
	if needModels && len(c.Models) == 0 {
		return errors.New("at least one model file is required")
	}
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	ok := false
	for _, f := range formats {
		if c.Output == f {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("invalid --output %q (want %s)", c.Output, strings.Join(formats, " | "))
	}
	return nil
}
