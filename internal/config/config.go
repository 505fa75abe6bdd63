// Package config loads tapscore settings from an optional YAML file, a .env
// file in the working directory and TAP_* environment variables, in that
// order of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tapscore-core/annotate"
	"tapscore-core/metrics"
	"tapscore-core/surface"
)

// Environment overrides.
const (
	EnvNeighborCutoff   = "TAP_NEIGHBOR_CUTOFF"
	EnvVicinityCutoff   = "TAP_VICINITY_CUTOFF"
	EnvSaltBridgeCutoff = "TAP_SALT_BRIDGE_CUTOFF"
)

type Config struct {
	PSA struct {
		Path string `yaml:"path"`
	} `yaml:"psa"`
	Annotation struct {
		NeighborCutoff   float64 `yaml:"neighbor_cutoff"`
		VicinityCutoff   float64 `yaml:"vicinity_cutoff"`
		SaltBridgeCutoff float64 `yaml:"salt_bridge_cutoff"`
	} `yaml:"annotation"`
	// Metrics overrides flag ranges by metric key. An omitted green or amber
	// list keeps the default for that metric.
	Metrics map[string]metrics.Bands `yaml:"metrics"`
}

// Default returns the built-in settings.
func Default() *Config {
	var c Config
	d := annotate.DefaultConfig()
	c.Annotation.NeighborCutoff = d.NeighborCutoff
	c.Annotation.VicinityCutoff = d.VicinityCutoff
	c.Annotation.SaltBridgeCutoff = d.SaltBridgeCutoff
	return &c
}

// Load builds the configuration. path may be empty, in which case only the
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	// 1. .env, if any; variables already set win
	_ = godotenv.Load()

	cfg := Default()

	// 2. YAML
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	// 3. environment
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if p := strings.TrimSpace(getenv(surface.EnvPath)); p != "" {
		c.PSA.Path = p
	}
	for _, o := range []struct {
		key string
		dst *float64
	}{
		{EnvNeighborCutoff, &c.Annotation.NeighborCutoff},
		{EnvVicinityCutoff, &c.Annotation.VicinityCutoff},
		{EnvSaltBridgeCutoff, &c.Annotation.SaltBridgeCutoff},
	} {
		v := strings.TrimSpace(getenv(o.key))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: $%s: %w", o.key, err)
		}
		*o.dst = f
	}
	return nil
}

// Validate checks cutoffs and metric overrides.
func (c *Config) Validate() error {
	a := c.Annotation
	if a.NeighborCutoff <= 0 || a.VicinityCutoff <= 0 || a.SaltBridgeCutoff <= 0 {
		return errors.New("config: annotation cutoffs must be > 0")
	}
	known := map[string]bool{}
	for _, k := range metrics.Keys() {
		known[k] = true
	}
	for k, b := range c.Metrics {
		if !known[k] {
			return fmt.Errorf("config: unknown metric %q (want one of %s)", k, strings.Join(metrics.Keys(), ", "))
		}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("config: metrics.%s: %w", k, err)
		}
	}
	return nil
}

// AnnotationConfig returns the cutoffs in the form the annotator takes.
func (c *Config) AnnotationConfig() annotate.Config {
	return annotate.Config{
		NeighborCutoff:   c.Annotation.NeighborCutoff,
		VicinityCutoff:   c.Annotation.VicinityCutoff,
		SaltBridgeCutoff: c.Annotation.SaltBridgeCutoff,
	}
}

// Calculators builds the metric calculators with the configured ranges.
func (c *Config) Calculators() []metrics.Calculator {
	defaults := metrics.DefaultBands()
	over := make(map[string]metrics.Bands, len(c.Metrics))
	for k, b := range c.Metrics {
		d := defaults[k]
		if b.Green == nil {
			b.Green = d.Green
		}
		if b.Amber == nil {
			b.Amber = d.Amber
		}
		over[k] = b
	}
	return metrics.New(over)
}
