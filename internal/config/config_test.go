package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapscore-core/metrics"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "tap.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("TAP_PSA_PATH", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7.5, cfg.Annotation.NeighborCutoff)
	assert.Equal(t, 4.0, cfg.Annotation.VicinityCutoff)
	assert.Equal(t, 3.2, cfg.Annotation.SaltBridgeCutoff)
	assert.Empty(t, cfg.PSA.Path)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	p := writeYAML(t, `
psa:
  path: /opt/psa/psa
annotation:
  neighbor_cutoff: 8
  salt_bridge_cutoff: 3.5
metrics:
  total_cdr_length:
    green: [{min: 40, max: 60}]
`)
	t.Setenv("TAP_PSA_PATH", "")
	t.Setenv(EnvSaltBridgeCutoff, "4.0")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/opt/psa/psa", cfg.PSA.Path)
	assert.Equal(t, 8.0, cfg.Annotation.NeighborCutoff)
	assert.Equal(t, 4.0, cfg.Annotation.VicinityCutoff)
	assert.Equal(t, 4.0, cfg.Annotation.SaltBridgeCutoff)

	ac := cfg.AnnotationConfig()
	assert.Equal(t, 8.0, ac.NeighborCutoff)

	calcs := cfg.Calculators()
	require.Len(t, calcs, 5)
	cdr := calcs[4].Bands()
	assert.Equal(t, metrics.Green, cdr.Flag(50))
	// amber omitted, so the default amber ranges still apply and win over green
	assert.Equal(t, metrics.Amber, cdr.Flag(38))
	assert.Equal(t, metrics.Amber, cdr.Flag(58))
}

func TestEnvPSAPathWins(t *testing.T) {
	p := writeYAML(t, "psa:\n  path: /from/yaml\n")
	t.Setenv("TAP_PSA_PATH", "/from/env")
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.PSA.Path)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("TAP_PSA_PATH", "")
	cases := []struct {
		name string
		body string
		env  map[string]string
	}{
		{"unknown field", "annotation:\n  neighbour_cutoff: 7\n", nil},
		{"unknown metric", "metrics:\n  pI:\n    green: [{min: 1}]\n", nil},
		{"inverted range", "metrics:\n  sfvcsp:\n    amber: [{min: 2, max: 1}]\n", nil},
		{"negative cutoff", "annotation:\n  vicinity_cutoff: -1\n", nil},
		{"bad env float", "", map[string]string{EnvNeighborCutoff: "far"}},
		{"malformed yaml", "psa: [\n", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeYAML(t, c.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEmptyFileIsDefaults(t *testing.T) {
	t.Setenv("TAP_PSA_PATH", "")
	cfg, err := Load(writeYAML(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
