package structure

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/spatial/r3"

	"tapscore-core/taperr"
)

const opRead = "structure.read"

// ReadPDB loads the first model of a PDB file. Only ATOM records are read;
// HETATM, waters and later models are ignored.
func ReadPDB(path string) (*Structure, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, taperr.Wrap(taperr.InputFormatError, opRead, "cannot open structure", err).WithPath(path)
	}
	defer func() { _ = fh.Close() }()

	s, err := ParsePDB(fh, ModelName(path))
	if err != nil {
		var te *taperr.Error
		if errors.As(err, &te) {
			return nil, te.WithPath(path)
		}
		return nil, err
	}
	return s, nil
}

// ModelName is the file name of path without its extension.
func ModelName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// ParsePDB reads fixed-column ATOM records from r.
func ParsePDB(r io.Reader, name string) (*Structure, error) {
	b := NewBuilder(name)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	ln := 0
	for sc.Scan() {
		ln++
		line := sc.Text()
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if !strings.HasPrefix(line, "ATOM  ") {
			continue
		}
		if len(line) < 54 {
			return nil, taperr.Newf(taperr.InputFormatError, opRead, "line %d: ATOM record too short (%d columns)", ln, len(line))
		}
		num, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
		if err != nil {
			return nil, taperr.Wrap(taperr.InputFormatError, opRead, "line "+strconv.Itoa(ln)+": bad residue number", err)
		}
		var xyz [3]float64
		for i := range xyz {
			f := strings.TrimSpace(line[30+8*i : 38+8*i])
			if xyz[i], err = strconv.ParseFloat(f, 64); err != nil {
				return nil, taperr.Wrap(taperr.InputFormatError, opRead, "line "+strconv.Itoa(ln)+": bad coordinate", err)
			}
		}
		atomName := strings.TrimSpace(line[12:16])
		id := ResidueID{
			Chain: strings.TrimSpace(line[21:22]),
			Num:   num,
			ICode: strings.TrimSpace(line[26:27]),
		}
		resType := strings.TrimSpace(line[17:20])
		el := ""
		if len(line) >= 78 {
			el = strings.TrimSpace(line[76:78])
		}
		if el == "" {
			el = elementFromName(atomName)
		}
		if err := b.AddAtom(id, resType, atomName, strings.ToUpper(el), r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}); err != nil {
			return nil, taperr.Wrap(taperr.InputFormatError, opRead, "line "+strconv.Itoa(ln), err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, taperr.Wrap(taperr.InputFormatError, opRead, "read failed", err)
	}
	s, err := b.Build()
	if err != nil {
		return nil, taperr.Wrap(taperr.InputFormatError, opRead, "no ATOM records", err)
	}
	return s, nil
}

// elementFromName guesses the element from an atom name when columns 77-78
// are blank: the first letter, skipping a leading digit ("1HB" -> H).
func elementFromName(name string) string {
	for _, c := range name {
		if unicode.IsLetter(c) {
			return string(c)
		}
	}
	return ""
}
