// Package surface attaches relative side-chain surface areas reported by the
// external psa program to the residues of a structure.
package surface

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"

	"tapscore-core/structure"
	"tapscore-core/taperr"
)

const (
	opRun      = "surface.run"
	opParse    = "surface.parse"
	opAnnotate = "surface.annotate"

	recordTag = "ACCESS"
)

// Record is one residue line of a psa report.
type Record struct {
	Label string // residue number and insertion code, columns 7-12
	Type  string // three-letter residue type, columns 15-17
	RSA   float64
}

// ParseRecords extracts ACCESS records in report order.
func ParseRecords(out []byte) ([]Record, error) {
	var recs []Record
	sc := bufio.NewScanner(bytes.NewReader(out))
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if !strings.HasPrefix(line, recordTag) {
			continue
		}
		if len(line) < 67 {
			return nil, taperr.Newf(taperr.ToolExecutionFailure, opParse, "line %d: ACCESS record too short (%d columns)", ln, len(line))
		}
		rsa, err := strconv.ParseFloat(strings.TrimSpace(line[61:67]), 64)
		if err != nil {
			return nil, taperr.Wrap(taperr.ToolExecutionFailure, opParse, "line "+strconv.Itoa(ln)+": bad relative surface area", err)
		}
		recs = append(recs, Record{
			Label: strings.TrimSpace(line[6:12]),
			Type:  line[14:17],
			RSA:   rsa,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, taperr.Wrap(taperr.ToolExecutionFailure, opParse, "cannot read psa output", err)
	}
	return recs, nil
}

// Apply checks records against the structure position by position and only
// then writes the surface areas, so a mismatch leaves every residue untouched.
func Apply(s *structure.Structure, recs []Record) error {
	res := s.Residues()
	if len(recs) != len(res) {
		return taperr.Newf(taperr.AnnotationMismatch, opAnnotate,
			"psa output contained %d residues, structure has %d", len(recs), len(res))
	}
	for i, r := range res {
		rec := recs[i]
		if rec.Label != r.ID.Label() {
			return taperr.Newf(taperr.AnnotationMismatch, opAnnotate,
				"residue number mismatch at position %d: %s != %s", i, r.ID.Label(), rec.Label)
		}
		if rec.Type != r.Type {
			return taperr.Newf(taperr.AnnotationMismatch, opAnnotate,
				"expected type %s for residue %s; got %s", r.Type, r.ID, rec.Type)
		}
	}
	for i, r := range res {
		r.Ann.RelativeSurfaceArea = recs[i].RSA
	}
	return nil
}

// Annotate runs the tool on structurePath and attaches its values to s.
func Annotate(ctx context.Context, s *structure.Structure, structurePath string, run Runner) error {
	out, err := run.Run(ctx, structurePath)
	if err != nil {
		return err
	}
	recs, err := ParseRecords(out)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return taperr.New(taperr.ToolExecutionFailure, opParse, "psa output has no ACCESS records")
	}
	return Apply(s, recs)
}
