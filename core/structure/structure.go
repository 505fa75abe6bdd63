// Package structure is the in-memory model of one antibody structure: chains,
// residues and atoms, plus the annotation block the pipeline fills stage by
// stage. It never imports the pipeline or the calculators.
package structure

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"tapscore-core/regions"
)

// ResidueID identifies a residue within a structure.
type ResidueID struct {
	Chain string
	Num   int
	ICode string // insertion code, "" when absent
}

// Label is the residue number with its insertion code, e.g. "111A".
func (id ResidueID) Label() string {
	return strings.TrimSpace(fmt.Sprintf("%d%s", id.Num, id.ICode))
}

func (id ResidueID) String() string { return id.Chain + id.Label() }

// Atom is one ATOM record.
type Atom struct {
	Name    string
	Element string
	Coord   r3.Vec

	residue *Residue
}

// Residue returns the owning residue.
func (a *Atom) Residue() *Residue { return a.residue }

// IsHeavy reports whether the atom is not a hydrogen.
func (a *Atom) IsHeavy() bool { return a.Element != "H" }

// Annotation is the per-residue block written by the annotation stages.
// Each field is valid only once the Stage named in its comment has run.
type Annotation struct {
	RelativeSurfaceArea float64               // SurfaceAnnotated
	Neighbors           map[ResidueID]float64 // NeighborsIndexed; min heavy-atom distance, Å
	CDRNumber           int                   // CDRClassified; 0 = framework
	InCDRVicinity       bool                  // VicinityAnnotated
	SaltBridgePartner   *ResidueID            // SaltBridgesAnnotated
	Hydrophobicity      float64               // ChemistryAnnotated
	Charge              float64               // ChemistryAnnotated
}

// Residue is a standard amino acid with its atoms and annotations.
type Residue struct {
	ID    ResidueID
	Type  string // three-letter code
	Index int    // position in structure iteration order
	Atoms []*Atom
	Ann   Annotation
}

// IsSurface applies the fixed surface threshold (inclusive).
func (r *Residue) IsSurface() bool {
	return r.Ann.RelativeSurfaceArea >= regions.SurfaceThreshold
}

func (r *Residue) IsCDR() bool      { return r.Ann.CDRNumber > 0 }
func (r *Residue) IsAnchor() bool   { return regions.IsAnchor(r.ID.Num) }
func (r *Residue) IsDonor() bool    { return regions.IsDonorResidue(r.Type) }
func (r *Residue) IsAcceptor() bool { return regions.IsAcceptorResidue(r.Type) }

// HeavyAtoms returns the non-hydrogen atoms in file order.
func (r *Residue) HeavyAtoms() []*Atom {
	out := make([]*Atom, 0, len(r.Atoms))
	for _, a := range r.Atoms {
		if a.IsHeavy() {
			out = append(out, a)
		}
	}
	return out
}

// Chain is an ordered run of residues sharing a chain identifier.
type Chain struct {
	ID       string
	Residues []*Residue
}

// Structure is one model of one antibody.
type Structure struct {
	Name   string
	Chains []*Chain

	residues []*Residue
	byID     map[ResidueID]*Residue
	stage    Stage
}

// Residues returns all residues in iteration order (chains in file order,
// residues in file order within each chain).
func (s *Structure) Residues() []*Residue { return s.residues }

// Residue looks a residue up by identity.
func (s *Structure) Residue(id ResidueID) (*Residue, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Chain returns the chain with the given identifier, or nil.
func (s *Structure) Chain(id string) *Chain {
	for _, c := range s.Chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Atoms returns every atom in iteration order.
func (s *Structure) Atoms() []*Atom {
	var out []*Atom
	for _, r := range s.residues {
		out = append(out, r.Atoms...)
	}
	return out
}

// Stage reports the last annotation stage applied.
func (s *Structure) Stage() Stage { return s.stage }

// Advance records that stage st has completed. Stages only move forward.
func (s *Structure) Advance(st Stage) error {
	if st != s.stage+1 {
		return fmt.Errorf("structure %s: cannot move from %s to %s", s.Name, s.stage, st)
	}
	s.stage = st
	return nil
}
