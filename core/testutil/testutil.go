// Package testutil renders PDB and psa fixtures for tests across the core and
// application modules.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"tapscore-core/structure"
)

// At is one fixture atom.
type At struct {
	Name    string
	Element string
	X, Y, Z float64
}

// Res is one fixture residue.
type Res struct {
	Chain string
	Num   int
	ICode string
	Type  string
	Atoms []At
}

// ID returns the residue identity of r.
func (r Res) ID() structure.ResidueID {
	return structure.ResidueID{Chain: r.Chain, Num: r.Num, ICode: r.ICode}
}

// Single returns a residue with one heavy atom, named after the residue type's
// salt bridge atom where one exists so it takes part in pairing tests.
func Single(chain string, num int, resType string, x, y, z float64) Res {
	name, el := "CA", "C"
	switch resType {
	case "LYS":
		name, el = "NZ", "N"
	case "ARG":
		name, el = "NH1", "N"
	case "ASP":
		name, el = "OD1", "O"
	case "GLU":
		name, el = "OE1", "O"
	}
	return Res{Chain: chain, Num: num, Type: resType, Atoms: []At{{Name: name, Element: el, X: x, Y: y, Z: z}}}
}

// AtomLine formats one fixed-column ATOM record.
func AtomLine(serial int, name, resType, chain string, num int, icode string, x, y, z float64, element string) string {
	if icode == "" {
		icode = " "
	}
	return fmt.Sprintf("%-6s%5d %-4s %3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		"ATOM", serial, name, resType, chain, num, icode, x, y, z, 1.0, 0.0, element)
}

// PDB renders residues as a PDB file body.
func PDB(res ...Res) string {
	var b strings.Builder
	serial := 1
	for _, r := range res {
		for _, a := range r.Atoms {
			b.WriteString(AtomLine(serial, a.Name, r.Type, r.Chain, r.Num, r.ICode, a.X, a.Y, a.Z, a.Element))
			b.WriteByte('\n')
			serial++
		}
	}
	b.WriteString("END\n")
	return b.String()
}

// PSALine formats one psa ACCESS record with the label in columns 7-12, the
// residue type in 15-17 and the relative side-chain area in 62-67.
func PSALine(label, resType string, rsa float64) string {
	line := fmt.Sprintf("ACCESS%6s  %-3s", label, resType)
	line += strings.Repeat(" ", 61-len(line))
	return line + fmt.Sprintf("%6.2f", rsa)
}

// PSAOutput renders a psa report for s, asking rsa for each residue's value.
func PSAOutput(s *structure.Structure, rsa func(*structure.Residue) float64) []byte {
	var b strings.Builder
	b.WriteString("psa version 2.1 (fixture)\n")
	for _, r := range s.Residues() {
		b.WriteString(PSALine(r.ID.Label(), r.Type, rsa(r)))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Build assembles residues into a Structure through the public builder.
func Build(t testing.TB, res ...Res) *structure.Structure {
	t.Helper()
	b := structure.NewBuilder("fixture")
	for _, r := range res {
		for _, a := range r.Atoms {
			if err := b.AddAtom(r.ID(), r.Type, a.Name, a.Element, r3.Vec{X: a.X, Y: a.Y, Z: a.Z}); err != nil {
				t.Fatalf("fixture: %v", err)
			}
		}
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return s
}

// WritePDB writes residues as a PDB file under dir and returns its path.
func WritePDB(t testing.TB, dir, name string, res ...Res) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(PDB(res...)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
