// Package neighbor finds residue pairs whose heavy atoms come within a cutoff
// and records the minimum heavy-atom distance of each pair on both residues.
package neighbor

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"tapscore-core/structure"
)

// DefaultCutoff is the residue neighbour radius in Å.
const DefaultCutoff = 7.5

type cell struct{ x, y, z int }

// Grid buckets atoms into cubic cells of side Cutoff, so every atom pair
// within the cutoff lies in the same or an adjacent cell.
type Grid struct {
	Cutoff float64
	cells  map[cell][]*structure.Atom
}

// NewGrid indexes atoms.
func NewGrid(atoms []*structure.Atom, cutoff float64) *Grid {
	g := &Grid{Cutoff: cutoff, cells: make(map[cell][]*structure.Atom)}
	for _, a := range atoms {
		c := g.cellOf(a.Coord)
		g.cells[c] = append(g.cells[c], a)
	}
	return g
}

func (g *Grid) cellOf(v r3.Vec) cell {
	return cell{
		int(math.Floor(v.X / g.Cutoff)),
		int(math.Floor(v.Y / g.Cutoff)),
		int(math.Floor(v.Z / g.Cutoff)),
	}
}

// AtomPair is two atoms of different residues and their distance.
type AtomPair struct {
	A, B     *structure.Atom
	Distance float64
}

// Pairs returns every pair of atoms from different residues at distance
// <= Cutoff. Each unordered pair is reported once.
func (g *Grid) Pairs() []AtomPair {
	var out []AtomPair
	for c, atoms := range g.cells {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					nc := cell{c.x + dx, c.y + dy, c.z + dz}
					others, ok := g.cells[nc]
					if !ok || less(nc, c) {
						continue
					}
					same := nc == c
					for i, a := range atoms {
						start := 0
						if same {
							start = i + 1
						}
						for _, b := range others[start:] {
							if a.Residue() == b.Residue() {
								continue
							}
							if d := Distance(a, b); d <= g.Cutoff {
								out = append(out, AtomPair{A: a, B: b, Distance: d})
							}
						}
					}
				}
			}
		}
	}
	return out
}

func less(a, b cell) bool {
	if a.x != b.x {
		return a.x < b.x
	}
	if a.y != b.y {
		return a.y < b.y
	}
	return a.z < b.z
}

// Distance is the Euclidean distance between two atoms.
func Distance(a, b *structure.Atom) float64 {
	return r3.Norm(r3.Sub(a.Coord, b.Coord))
}

// MinDistance compares every heavy atom of r1 with every heavy atom of r2.
func MinDistance(r1, r2 *structure.Residue) float64 {
	best := math.Inf(1)
	for _, a := range r1.HeavyAtoms() {
		for _, b := range r2.HeavyAtoms() {
			if d := Distance(a, b); d < best {
				best = d
			}
		}
	}
	return best
}

// ResiduePair is an ordered pair (A.Index < B.Index).
type ResiduePair struct {
	A, B *structure.Residue
}

// CandidatePairs reduces atom pairs to unique residue pairs sorted by
// residue index.
func CandidatePairs(pairs []AtomPair) []ResiduePair {
	seen := make(map[[2]int]ResiduePair)
	for _, p := range pairs {
		a, b := p.A.Residue(), p.B.Residue()
		if a.Index > b.Index {
			a, b = b, a
		}
		seen[[2]int{a.Index, b.Index}] = ResiduePair{A: a, B: b}
	}
	out := make([]ResiduePair, 0, len(seen))
	for _, rp := range seen {
		out = append(out, rp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A.Index != out[j].A.Index {
			return out[i].A.Index < out[j].A.Index
		}
		return out[i].B.Index < out[j].B.Index
	})
	return out
}

// Index fills Ann.Neighbors for every residue of s. Residues farther apart
// than cutoff get no entry.
func Index(s *structure.Structure, cutoff float64) {
	var heavy []*structure.Atom
	for _, a := range s.Atoms() {
		if a.IsHeavy() {
			heavy = append(heavy, a)
		}
	}
	for _, rp := range CandidatePairs(NewGrid(heavy, cutoff).Pairs()) {
		d := MinDistance(rp.A, rp.B)
		rp.A.Ann.Neighbors[rp.B.ID] = d
		rp.B.Ann.Neighbors[rp.A.ID] = d
	}
}
