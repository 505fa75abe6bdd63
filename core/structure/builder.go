package structure

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"tapscore-core/regions"
)

// Builder assembles a Structure atom by atom. Atoms of one residue must be
// added contiguously; a residue identity seen again after another residue
// started is rejected.
type Builder struct {
	name    string
	chains  []*Chain
	byChain map[string]*Chain
	byID    map[ResidueID]*Residue
	last    *Residue
}

// NewBuilder starts an empty structure with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:    name,
		byChain: make(map[string]*Chain),
		byID:    make(map[ResidueID]*Residue),
	}
}

// AddAtom appends an atom, opening a new residue (and chain) as needed.
// A second atom with the same name in the same residue is dropped, which keeps
// the first alternate location.
func (b *Builder) AddAtom(id ResidueID, resType, name, element string, at r3.Vec) error {
	if !regions.IsStandard(resType) {
		return fmt.Errorf("residue %s: non-standard residue type %q", id, resType)
	}
	res := b.last
	if res == nil || res.ID != id {
		if prev, seen := b.byID[id]; seen {
			return fmt.Errorf("residue %s: atoms are not contiguous (type %s)", id, prev.Type)
		}
		ch := b.byChain[id.Chain]
		if ch == nil {
			ch = &Chain{ID: id.Chain}
			b.byChain[id.Chain] = ch
			b.chains = append(b.chains, ch)
		}
		res = &Residue{ID: id, Type: resType}
		ch.Residues = append(ch.Residues, res)
		b.byID[id] = res
		b.last = res
	} else if res.Type != resType {
		return fmt.Errorf("residue %s: mixed residue types %s and %s", id, res.Type, resType)
	}
	for _, a := range res.Atoms {
		if a.Name == name {
			return nil
		}
	}
	res.Atoms = append(res.Atoms, &Atom{Name: name, Element: element, Coord: at, residue: res})
	return nil
}

// Build finalises the structure. It fails when no atoms were added.
func (b *Builder) Build() (*Structure, error) {
	if len(b.byID) == 0 {
		return nil, fmt.Errorf("structure %s: no residues", b.name)
	}
	s := &Structure{Name: b.name, Chains: b.chains, byID: b.byID}
	for _, ch := range b.chains {
		for _, r := range ch.Residues {
			r.Index = len(s.residues)
			r.Ann.Neighbors = make(map[ResidueID]float64)
			s.residues = append(s.residues, r)
		}
	}
	return s, nil
}
