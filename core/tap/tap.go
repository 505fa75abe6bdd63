// Package tap is the one-shot entry into the core: read an IMGT-numbered
// model, annotate it, and score the five developability metrics.
package tap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tapscore-core/annotate"
	"tapscore-core/metrics"
	"tapscore-core/structure"
	"tapscore-core/surface"
)

// Options configures Score. Zero values select the defaults.
type Options struct {
	Annotation  annotate.Config      // unset cutoffs: annotate.DefaultConfig()
	PSAPath     string               // ignored when Runner is set
	Runner      surface.Runner       // accessibility tool; default execs psa
	Calculators []metrics.Calculator // default: metrics.Default()
	Observer    annotate.Observer
	Log         logrus.FieldLogger
}

// Report is the outcome for one model.
type Report struct {
	Path      string
	Structure *structure.Structure
	Results   []metrics.Result
}

// Annotator builds the annotator Options describes.
func (o Options) Annotator() (*annotate.Annotator, error) {
	run := o.Runner
	if run == nil {
		er, err := surface.NewExecRunner(o.PSAPath)
		if err != nil {
			return nil, err
		}
		run = er
	}
	if err := o.Annotation.Validate(); err != nil {
		return nil, err
	}
	return &annotate.Annotator{Config: o.Annotation.WithDefaults(), Surface: run, Observer: o.Observer, Log: o.Log}, nil
}

// Score annotates the model at path and evaluates the calculators over it.
func Score(ctx context.Context, path string, o Options) (*Report, error) {
	a, err := o.Annotator()
	if err != nil {
		return nil, err
	}
	s, err := a.LoadAndAnnotate(ctx, path)
	if err != nil {
		return nil, err
	}
	calcs := o.Calculators
	if calcs == nil {
		calcs = metrics.Default()
	}
	res, err := metrics.Evaluate(ctx, s, calcs)
	if err != nil {
		return nil, fmt.Errorf("score %s: %w", path, err)
	}
	return &Report{Path: path, Structure: s, Results: res}, nil
}

// CatalogEntry describes one metric and its flag ranges.
type CatalogEntry struct {
	Key   string
	Name  string
	Green []metrics.Range
	Amber []metrics.Range
}

// Catalog lists calcs in order with their configured ranges.
func Catalog(calcs []metrics.Calculator) []CatalogEntry {
	out := make([]CatalogEntry, 0, len(calcs))
	for _, c := range calcs {
		b := c.Bands()
		out = append(out, CatalogEntry{Key: c.Key(), Name: c.Name(), Green: b.Green, Amber: b.Amber})
	}
	return out
}
