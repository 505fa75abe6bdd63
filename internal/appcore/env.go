package appcore

import (
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tapscore-core/annotate"
	"tapscore-core/surface"

	"tapscore/internal/clibase"
	"tapscore/internal/config"
	"tapscore/internal/logging"
	"tapscore/internal/telemetry"
)

// Env is what every model of one run shares.
type Env struct {
	RunID     string
	Log       *logrus.Logger
	Config    *config.Config
	Runner    surface.Runner
	Telemetry *telemetry.Metrics
}

// Setup builds the logger, loads configuration and resolves psa. Flags win
// over configuration. A non-zero code means the run must stop.
func Setup(c clibase.Common, stderr io.Writer) (*Env, int) {
	log := logging.New(stderr, logging.Options{Quiet: c.Quiet, Verbose: c.Verbose, Color: c.Color})

	cfg, err := config.Load(c.Config)
	if err != nil {
		log.WithError(err).Error("configuration")
		return nil, ExitUsage
	}
	if c.PSA != "" {
		cfg.PSA.Path = c.PSA
	}

	env := &Env{
		RunID:     uuid.NewString(),
		Log:       log,
		Config:    cfg,
		Telemetry: telemetry.New(),
	}
	return env, ExitOK
}

// ResolveRunner finds the psa executable. Without it no model can be scored.
func (e *Env) ResolveRunner() int {
	run, err := surface.NewExecRunner(e.Config.PSA.Path)
	if err != nil {
		e.Log.WithError(err).Error("psa")
		return ExitUsage
	}
	e.Runner = run
	return ExitOK
}

// Annotator returns an annotator wired to the run's psa, cutoffs, logger and
// stage timings.
func (e *Env) Annotator() *annotate.Annotator {
	return &annotate.Annotator{
		Config:   e.Config.AnnotationConfig(),
		Surface:  e.Runner,
		Observer: e.Telemetry,
		Log:      e.Log,
	}
}
