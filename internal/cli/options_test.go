// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFS() *flag.FlagSet { return flag.NewFlagSet("test", flag.ContinueOnError) }

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	o, err := ParseArgs(newFS(), args)
	require.NoError(t, err)
	return o
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "ab1.pdb")
	assert.Equal(t, []string{"ab1.pdb"}, o.Models)
	assert.Equal(t, "text", o.Output)
	assert.True(t, o.Header)
	assert.Zero(t, o.Threads)
	assert.False(t, o.ListMetrics)
}

func TestFlagsAndPositionalsMix(t *testing.T) {
	o := mustParse(t, "--model", "a.pdb", "b.pdb", "-o", "csv", "--no-header", "-t", "3",
		"--psa", "/opt/psa", "--config", "tap.yaml", "--out", "r/out.csv", "--sort", "-q")
	assert.Equal(t, []string{"a.pdb", "b.pdb"}, o.Models)
	assert.Equal(t, "csv", o.Output)
	assert.False(t, o.Header)
	assert.Equal(t, 3, o.Threads)
	assert.Equal(t, "/opt/psa", o.PSA)
	assert.Equal(t, "tap.yaml", o.Config)
	assert.Equal(t, "r/out.csv", o.Out)
	assert.True(t, o.Sort)
	assert.True(t, o.Quiet)
}

func TestListMetricsNeedsNoModel(t *testing.T) {
	o := mustParse(t, "--list-metrics", "-o", "json")
	assert.True(t, o.ListMetrics)
}

func TestErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"-o", "xml", "a.pdb"},
		{"--threads", "-2", "a.pdb"},
		{"--bogus", "a.pdb"},
	}
	for _, args := range cases {
		_, err := ParseArgs(newFS(), args)
		assert.Error(t, err, "%v", args)
	}
}

func TestHelpAndVersion(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"-h"})
	assert.True(t, errors.Is(err, flag.ErrHelp))

	o := mustParse(t, "--version")
	assert.True(t, o.Version)
}
