// Package annotate runs the fixed sequence of annotation stages over one
// structure: surface areas, neighbours, CDRs, CDR vicinity, salt bridges and
// chemistry. Each stage reads only what earlier stages wrote.
package annotate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tapscore-core/neighbor"
	"tapscore-core/structure"
	"tapscore-core/surface"
	"tapscore-core/taperr"
)

// Default cutoffs in Å.
const (
	DefaultNeighborCutoff   = neighbor.DefaultCutoff
	DefaultVicinityCutoff   = 4.0
	DefaultSaltBridgeCutoff = 3.2
)

// Config holds the distance cutoffs.
type Config struct {
	NeighborCutoff   float64
	VicinityCutoff   float64
	SaltBridgeCutoff float64
}

// DefaultConfig returns the published cutoffs.
func DefaultConfig() Config {
	return Config{
		NeighborCutoff:   DefaultNeighborCutoff,
		VicinityCutoff:   DefaultVicinityCutoff,
		SaltBridgeCutoff: DefaultSaltBridgeCutoff,
	}
}

// WithDefaults returns c with every unset cutoff replaced by its default.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.NeighborCutoff == 0 {
		c.NeighborCutoff = d.NeighborCutoff
	}
	if c.VicinityCutoff == 0 {
		c.VicinityCutoff = d.VicinityCutoff
	}
	if c.SaltBridgeCutoff == 0 {
		c.SaltBridgeCutoff = d.SaltBridgeCutoff
	}
	return c
}

// Validate rejects negative cutoffs.
func (c Config) Validate() error {
	switch {
	case c.NeighborCutoff < 0:
		return fmt.Errorf("neighbor cutoff must be > 0, got %g", c.NeighborCutoff)
	case c.VicinityCutoff < 0:
		return fmt.Errorf("vicinity cutoff must be > 0, got %g", c.VicinityCutoff)
	case c.SaltBridgeCutoff < 0:
		return fmt.Errorf("salt bridge cutoff must be > 0, got %g", c.SaltBridgeCutoff)
	}
	return nil
}

// Observer receives the wall time of each completed stage.
type Observer interface {
	ObserveStage(stage string, d time.Duration)
}

// Annotator owns the stage sequence. The zero value is not usable: Surface
// must be set.
type Annotator struct {
	Config   Config
	Surface  surface.Runner
	Observer Observer           // optional
	Log      logrus.FieldLogger // optional
}

// New returns an Annotator with default cutoffs.
func New(run surface.Runner) *Annotator {
	return &Annotator{Config: DefaultConfig(), Surface: run}
}

// LoadAndAnnotate reads an IMGT-numbered PDB file and annotates it.
func (a *Annotator) LoadAndAnnotate(ctx context.Context, path string) (*structure.Structure, error) {
	start := time.Now()
	s, err := structure.ReadPDB(path)
	if err != nil {
		return nil, err
	}
	a.done(s, structure.Loaded, start)
	if err := a.Annotate(ctx, s, path); err != nil {
		return nil, err
	}
	return s, nil
}

// Annotate runs every stage on s, whose atoms were read from path. On error
// the structure is left at the last completed stage. Unset cutoffs take their
// defaults.
func (a *Annotator) Annotate(ctx context.Context, s *structure.Structure, path string) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	cfg := a.Config.WithDefaults()
	stages := []struct {
		st  structure.Stage
		run func() error
	}{
		{structure.SurfaceAnnotated, func() error { return surface.Annotate(ctx, s, path, a.Surface) }},
		{structure.NeighborsIndexed, func() error { neighbor.Index(s, cfg.NeighborCutoff); return nil }},
		{structure.CDRClassified, func() error { ClassifyCDRs(s); return nil }},
		{structure.VicinityAnnotated, func() error { MarkVicinity(s, cfg.VicinityCutoff); return nil }},
		{structure.SaltBridgesAnnotated, func() error {
			n := PairSaltBridges(s, cfg.SaltBridgeCutoff)
			if a.Log != nil {
				a.Log.WithField("model", s.Name).Debugf("%d salt bridges", n)
			}
			return nil
		}},
		{structure.ChemistryAnnotated, func() error { AssignChemistry(s); return nil }},
	}
	for _, stg := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		if err := stg.run(); err != nil {
			var te *taperr.Error
			if errors.As(err, &te) && te.Path == "" {
				return te.WithPath(path)
			}
			return err
		}
		if err := s.Advance(stg.st); err != nil {
			return err
		}
		a.done(s, stg.st, start)
	}
	return nil
}

func (a *Annotator) done(s *structure.Structure, st structure.Stage, start time.Time) {
	d := time.Since(start)
	if a.Observer != nil {
		a.Observer.ObserveStage(st.String(), d)
	}
	if a.Log != nil {
		a.Log.WithFields(logrus.Fields{"model": s.Name, "stage": st.String(), "elapsed": d}).Debug("stage complete")
	}
}
