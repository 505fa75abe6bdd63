package annotate

import (
	"sort"

	"tapscore-core/neighbor"
	"tapscore-core/regions"
	"tapscore-core/structure"
)

// ClassifyCDRs sets Ann.CDRNumber from the IMGT table.
func ClassifyCDRs(s *structure.Structure) {
	for _, r := range s.Residues() {
		r.Ann.CDRNumber = regions.CDRNumber(r.ID.Chain, r.ID.Num)
	}
}

// MarkVicinity flags surface CDR and anchor residues, then every surface
// neighbour closer than cutoff to one of them. Propagation is one hop.
func MarkVicinity(s *structure.Structure, cutoff float64) {
	var seeds []*structure.Residue
	for _, r := range s.Residues() {
		r.Ann.InCDRVicinity = r.IsSurface() && (r.IsCDR() || r.IsAnchor())
		if r.Ann.InCDRVicinity {
			seeds = append(seeds, r)
		}
	}
	for _, r := range seeds {
		for id, d := range r.Ann.Neighbors {
			if d >= cutoff {
				continue
			}
			if nb, ok := s.Residue(id); ok && nb.IsSurface() {
				nb.Ann.InCDRVicinity = true
			}
		}
	}
}

// BridgeCandidate is a residue pair with donor/acceptor atoms in contact.
type BridgeCandidate struct {
	A, B     *structure.Residue // A.Index < B.Index
	Distance float64            // closest donor/acceptor atom pair
}

// BridgeCandidates lists residue pairs whose salt bridge atoms lie within
// cutoff, in the order they are offered for pairing: shortest atom distance
// first, then lower residue index, then higher residue index.
func BridgeCandidates(s *structure.Structure, cutoff float64) []BridgeCandidate {
	var atoms []*structure.Atom
	for _, r := range s.Residues() {
		for _, a := range r.Atoms {
			if regions.IsSaltBridgeAtom(r.Type, a.Name) {
				atoms = append(atoms, a)
			}
		}
	}
	best := make(map[[2]int]BridgeCandidate)
	for _, p := range neighbor.NewGrid(atoms, cutoff).Pairs() {
		a, b := p.A.Residue(), p.B.Residue()
		if a.Index > b.Index {
			a, b = b, a
		}
		k := [2]int{a.Index, b.Index}
		if c, ok := best[k]; !ok || p.Distance < c.Distance {
			best[k] = BridgeCandidate{A: a, B: b, Distance: p.Distance}
		}
	}
	out := make([]BridgeCandidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].A.Index != out[j].A.Index {
			return out[i].A.Index < out[j].A.Index
		}
		return out[i].B.Index < out[j].B.Index
	})
	return out
}

// PairSaltBridges links candidates greedily in BridgeCandidates order. A pair
// is linked only if both residues are unpartnered, both are on the surface and
// one is a donor type while the other is an acceptor type.
func PairSaltBridges(s *structure.Structure, cutoff float64) int {
	n := 0
	for _, c := range BridgeCandidates(s, cutoff) {
		a, b := c.A, c.B
		if a.Ann.SaltBridgePartner != nil || b.Ann.SaltBridgePartner != nil {
			continue
		}
		if !a.IsSurface() || !b.IsSurface() {
			continue
		}
		if !(a.IsDonor() && b.IsAcceptor()) && !(a.IsAcceptor() && b.IsDonor()) {
			continue
		}
		aID, bID := a.ID, b.ID
		a.Ann.SaltBridgePartner = &bID
		b.Ann.SaltBridgePartner = &aID
		n++
	}
	return n
}

// AssignChemistry sets hydrophobicity and charge from the residue tables.
// Salt-bridged residues are neutralised: glycine hydrophobicity, zero charge.
func AssignChemistry(s *structure.Structure) {
	for _, r := range s.Residues() {
		if r.Ann.SaltBridgePartner != nil {
			r.Ann.Hydrophobicity = regions.GlycineHydrophobicity()
			r.Ann.Charge = 0
			continue
		}
		r.Ann.Hydrophobicity, _ = regions.Hydrophobicity(r.Type)
		r.Ann.Charge, _ = regions.Charge(r.Type)
	}
}
