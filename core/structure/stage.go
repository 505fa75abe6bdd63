package structure

// Stage is a position in the fixed annotation sequence.
type Stage int

const (
	Loaded Stage = iota
	SurfaceAnnotated
	NeighborsIndexed
	CDRClassified
	VicinityAnnotated
	SaltBridgesAnnotated
	ChemistryAnnotated
)

var stageNames = [...]string{
	Loaded:               "loaded",
	SurfaceAnnotated:     "surface",
	NeighborsIndexed:     "neighbors",
	CDRClassified:        "cdr",
	VicinityAnnotated:    "vicinity",
	SaltBridgesAnnotated: "salt_bridges",
	ChemistryAnnotated:   "chemistry",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
