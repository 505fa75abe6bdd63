package metrics

import (
	"math"

	"tapscore-core/structure"
	"tapscore-core/taperr"
)

// patchScore sums w(i)*w(j)/d² over ordered pairs of distinct residues that
// are both in the CDR vicinity, both accepted by keep, and neighbours of each
// other. Pairs with no neighbour entry contribute nothing.
func patchScore(s *structure.Structure, keep func(*structure.Residue) bool, w func(*structure.Residue) float64) float64 {
	var sel []*structure.Residue
	for _, r := range s.Residues() {
		if r.Ann.InCDRVicinity && keep(r) {
			sel = append(sel, r)
		}
	}
	score := 0.0
	for _, a := range sel {
		for _, b := range sel {
			if a == b {
				continue
			}
			d, ok := a.Ann.Neighbors[b.ID]
			if !ok || d == 0 {
				continue
			}
			score += w(a) * w(b) / (d * d)
		}
	}
	return score
}

func all(*structure.Residue) bool { return true }

// HydrophobicPatch scores patches of surface hydrophobicity near the CDRs.
type HydrophobicPatch struct{ bands Bands }

func (HydrophobicPatch) Key() string    { return KeyHydrophobicPatch }
func (HydrophobicPatch) Name() string   { return "Hydrophobic Patch Score" }
func (c HydrophobicPatch) Bands() Bands { return c.bands }

func (HydrophobicPatch) Score(s *structure.Structure) (float64, error) {
	return patchScore(s, all, func(r *structure.Residue) float64 { return r.Ann.Hydrophobicity }), nil
}

// NegativePatch scores patches of negative charge near the CDRs.
type NegativePatch struct{ bands Bands }

func (NegativePatch) Key() string    { return KeyNegativePatch }
func (NegativePatch) Name() string   { return "Negative Patch Score" }
func (c NegativePatch) Bands() Bands { return c.bands }

func (NegativePatch) Score(s *structure.Structure) (float64, error) {
	return patchScore(s,
		func(r *structure.Residue) bool { return r.Ann.Charge < 0 },
		func(r *structure.Residue) float64 { return math.Abs(r.Ann.Charge) },
	), nil
}

// PositivePatch mirrors NegativePatch over positively charged residues.
type PositivePatch struct{ bands Bands }

func (PositivePatch) Key() string    { return KeyPositivePatch }
func (PositivePatch) Name() string   { return "Positive Patch Score" }
func (c PositivePatch) Bands() Bands { return c.bands }

func (PositivePatch) Score(s *structure.Structure) (float64, error) {
	return patchScore(s,
		func(r *structure.Residue) bool { return r.Ann.Charge > 0 },
		func(r *structure.Residue) float64 { return r.Ann.Charge },
	), nil
}

// SFvCSP is the structural Fv charge symmetry parameter: the product of the
// summed surface charge of the heavy and light chains.
type SFvCSP struct{ bands Bands }

func (SFvCSP) Key() string    { return KeySFvCSP }
func (SFvCSP) Name() string   { return "SFvCSP" }
func (c SFvCSP) Bands() Bands { return c.bands }

func (SFvCSP) Score(s *structure.Structure) (float64, error) {
	h, l := s.Chain("H"), s.Chain("L")
	if h == nil || l == nil {
		return 0, taperr.Newf(taperr.InputFormatError, "metrics.sfvcsp",
			"structure %s needs chains H and L", s.Name)
	}
	return surfaceCharge(h) * surfaceCharge(l), nil
}

func surfaceCharge(c *structure.Chain) float64 {
	q := 0.0
	for _, r := range c.Residues {
		if r.IsSurface() {
			q += r.Ann.Charge
		}
	}
	return q
}

// TotalCDRLength counts IMGT CDR residues over the whole structure.
type TotalCDRLength struct{ bands Bands }

func (TotalCDRLength) Key() string    { return KeyTotalCDRLength }
func (TotalCDRLength) Name() string   { return "Total IMGT CDR Length" }
func (c TotalCDRLength) Bands() Bands { return c.bands }

func (TotalCDRLength) Score(s *structure.Structure) (float64, error) {
	n := 0
	for _, r := range s.Residues() {
		if r.IsCDR() {
			n++
		}
	}
	return float64(n), nil
}
