package metrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Flag is the three-level risk classification of a score.
type Flag string

const (
	Green Flag = "GREEN"
	Amber Flag = "AMBER"
	Red   Flag = "RED"
)

// Range is a closed interval; a nil bound is unbounded on that side.
type Range struct {
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Between is the closed interval [lo, hi].
func Between(lo, hi float64) Range { return Range{Min: &lo, Max: &hi} }

// AtLeast is the interval [lo, +inf).
func AtLeast(lo float64) Range { return Range{Min: &lo} }

// AtMost is the interval (-inf, hi].
func AtMost(hi float64) Range { return Range{Max: &hi} }

// Contains reports whether v lies in the closed interval.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Valid reports whether Min <= Max when both are set.
func (r Range) Valid() bool {
	return r.Min == nil || r.Max == nil || *r.Min <= *r.Max
}

func (r Range) String() string {
	lo, hi := math.Inf(-1), math.Inf(1)
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return fmt.Sprintf("%s to %s", fmtBound(lo), fmtBound(hi))
}

func fmtBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Bands holds the amber and green ranges of one metric.
type Bands struct {
	Amber []Range `yaml:"amber" json:"amber"`
	Green []Range `yaml:"green" json:"green"`
}

// Flag classifies v. Amber ranges are checked before green ranges, so a
// value on a shared boundary is amber.
func (b Bands) Flag(v float64) Flag {
	for _, r := range b.Amber {
		if r.Contains(v) {
			return Amber
		}
	}
	for _, r := range b.Green {
		if r.Contains(v) {
			return Green
		}
	}
	return Red
}

// Validate rejects inverted ranges.
func (b Bands) Validate() error {
	for _, set := range [][]Range{b.Amber, b.Green} {
		for _, r := range set {
			if !r.Valid() {
				return fmt.Errorf("range %s has min > max", r)
			}
		}
	}
	return nil
}

// Describe renders ranges as "a to b; c to d".
func Describe(rs []Range) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, "; ")
}
