// Package regions holds the static IMGT and physicochemical tables used by the
// annotation pipeline. The tables are unexported and only reachable through
// lookup functions, so nothing can mutate them after init.
package regions

// SurfaceThreshold is the relative side-chain area (percent) at or above which
// a residue counts as surface exposed.
const SurfaceThreshold = 7.5

// cdrRange is a closed IMGT residue-number interval.
type cdrRange struct{ lo, hi int }

// IMGT CDR definitions, identical for H and L.
var imgtCDRs = [...]cdrRange{
	1: {27, 38},
	2: {56, 65},
	3: {105, 117},
}

// CDR chains: other chains never carry CDR numbers.
var cdrChains = map[string]bool{"H": true, "L": true}

// Two residues on either side of each IMGT CDR.
var anchors = map[int]bool{
	25: true, 26: true, 39: true, 40: true,
	54: true, 55: true, 66: true, 67: true,
	103: true, 104: true, 118: true, 119: true,
}

// Salt bridge donor/acceptor atom names by residue type.
var (
	donors = map[string][]string{
		"LYS": {"NZ"},
		"ARG": {"NH1", "NH2"},
	}
	acceptors = map[string][]string{
		"ASP": {"OD1", "OD2"},
		"GLU": {"OE1", "OE2"},
	}
)

// Kyte-Doolittle scale rescaled to [1, 2].
var hydrophobicity = map[string]float64{
	"ILE": 2.0,
	"VAL": 1.9666666666666666,
	"LEU": 1.9222222222222223,
	"PHE": 1.8111111111111111,
	"CYS": 1.7777777777777777,
	"MET": 1.7111111111111112,
	"ALA": 1.7,
	"GLY": 1.4555555555555555,
	"THR": 1.4222222222222223,
	"SER": 1.4111111111111112,
	"TRP": 1.4,
	"TYR": 1.3555555555555556,
	"PRO": 1.3222222222222222,
	"HIS": 1.1444444444444444,
	"GLU": 1.1111111111111112,
	"GLN": 1.1111111111111112,
	"ASP": 1.1111111111111112,
	"ASN": 1.1111111111111112,
	"LYS": 1.0666666666666667,
	"ARG": 1.0,
}

// Charges at pH 7.4.
var charge = map[string]float64{
	"ALA": 0.0, "ARG": 1.0, "ASN": 0.0, "ASP": -1.0, "CYS": 0.0,
	"GLN": 0.0, "GLU": -1.0, "GLY": 0.0, "HIS": 0.1, "ILE": 0.0,
	"LEU": 0.0, "LYS": 1.0, "MET": 0.0, "PHE": 0.0, "PRO": 0.0,
	"SER": 0.0, "THR": 0.0, "TRP": 0.0, "TYR": 0.0, "VAL": 0.0,
}

// CDRNumber returns 1, 2 or 3 when (chain, num) falls inside an IMGT CDR,
// and 0 otherwise. Insertion codes are not part of the lookup.
func CDRNumber(chain string, num int) int {
	if !cdrChains[chain] {
		return 0
	}
	for n := 1; n < len(imgtCDRs); n++ {
		if r := imgtCDRs[n]; num >= r.lo && num <= r.hi {
			return n
		}
	}
	return 0
}

// CDRBounds returns the closed IMGT interval of CDR n (1..3).
func CDRBounds(n int) (lo, hi int, ok bool) {
	if n < 1 || n >= len(imgtCDRs) {
		return 0, 0, false
	}
	return imgtCDRs[n].lo, imgtCDRs[n].hi, true
}

// IsAnchor reports whether an IMGT residue number flanks a CDR.
func IsAnchor(num int) bool { return anchors[num] }

// IsDonorResidue reports whether a residue type carries salt bridge donor atoms.
func IsDonorResidue(resType string) bool { _, ok := donors[resType]; return ok }

// IsAcceptorResidue reports whether a residue type carries salt bridge acceptor atoms.
func IsAcceptorResidue(resType string) bool { _, ok := acceptors[resType]; return ok }

// IsSaltBridgeAtom reports whether atomName is a donor or acceptor atom of resType.
func IsSaltBridgeAtom(resType, atomName string) bool {
	for _, n := range donors[resType] {
		if n == atomName {
			return true
		}
	}
	for _, n := range acceptors[resType] {
		if n == atomName {
			return true
		}
	}
	return false
}

// Hydrophobicity returns the normalised hydrophobicity of a residue type.
func Hydrophobicity(resType string) (float64, bool) {
	v, ok := hydrophobicity[resType]
	return v, ok
}

// GlycineHydrophobicity is the value assigned to salt-bridged residues.
func GlycineHydrophobicity() float64 { return hydrophobicity["GLY"] }

// Charge returns the formal charge of a residue type at pH 7.4.
func Charge(resType string) (float64, bool) {
	v, ok := charge[resType]
	return v, ok
}

// IsStandard reports whether resType is one of the 20 standard amino acids.
func IsStandard(resType string) bool {
	_, ok := charge[resType]
	return ok
}
