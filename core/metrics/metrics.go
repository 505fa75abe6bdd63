// Package metrics scores a fully annotated structure. Every calculator is a
// pure function of the structure, so calculators may run concurrently.
package metrics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tapscore-core/structure"
)

// Metric keys.
const (
	KeyHydrophobicPatch = "hydrophobic_patch"
	KeyNegativePatch    = "negative_patch"
	KeyPositivePatch    = "positive_patch"
	KeySFvCSP           = "sfvcsp"
	KeyTotalCDRLength   = "total_cdr_length"
)

// Keys lists metric keys in report order.
func Keys() []string {
	return []string{KeyHydrophobicPatch, KeyNegativePatch, KeyPositivePatch, KeySFvCSP, KeyTotalCDRLength}
}

// Calculator computes one metric.
type Calculator interface {
	Key() string
	Name() string
	Bands() Bands
	Score(s *structure.Structure) (float64, error)
}

// Result is one scored metric.
type Result struct {
	Key   string
	Name  string
	Value float64
	Flag  Flag
}

// Calculate scores s with c and flags the score.
func Calculate(c Calculator, s *structure.Structure) (Result, error) {
	v, err := c.Score(s)
	if err != nil {
		return Result{}, err
	}
	return Result{Key: c.Key(), Name: c.Name(), Value: v, Flag: c.Bands().Flag(v)}, nil
}

// Evaluate runs the calculators concurrently over one annotated structure and
// returns results in calculator order. The first error wins.
func Evaluate(ctx context.Context, s *structure.Structure, calcs []Calculator) ([]Result, error) {
	out := make([]Result, len(calcs))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range calcs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := Calculate(c, s)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultBands returns the published flag ranges by metric key.
func DefaultBands() map[string]Bands {
	return map[string]Bands{
		KeyHydrophobicPatch: {
			Green: []Range{Between(137.61, 200.71)},
			Amber: []Range{Between(106.44, 137.61), Between(200.71, 225.85)},
		},
		KeyNegativePatch: {
			Green: []Range{Between(0, 1.67)},
			Amber: []Range{Between(1.67, 3.50)},
		},
		KeyPositivePatch: {
			Green: []Range{Between(0, 1.18)},
			Amber: []Range{Between(1.18, 3.50)},
		},
		KeySFvCSP: {
			Green: []Range{AtLeast(-4.20)},
			Amber: []Range{Between(-20.50, -4.20)},
		},
		KeyTotalCDRLength: {
			Green: []Range{Between(43, 55)},
			Amber: []Range{Between(37, 43), Between(55, 63)},
		},
	}
}

// New builds the five calculators in report order. Keys present in
// overrides replace the default bands of that metric.
func New(overrides map[string]Bands) []Calculator {
	bands := DefaultBands()
	for k, b := range overrides {
		if _, ok := bands[k]; ok {
			bands[k] = b
		}
	}
	return []Calculator{
		HydrophobicPatch{bands: bands[KeyHydrophobicPatch]},
		NegativePatch{bands: bands[KeyNegativePatch]},
		PositivePatch{bands: bands[KeyPositivePatch]},
		SFvCSP{bands: bands[KeySFvCSP]},
		TotalCDRLength{bands: bands[KeyTotalCDRLength]},
	}
}

// Default is New(nil).
func Default() []Calculator { return New(nil) }
