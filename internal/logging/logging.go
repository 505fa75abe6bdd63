// Package logging configures the logrus logger shared by the binaries.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"tapscore-core/metrics"
)

type Options struct {
	Quiet   bool // errors only
	Verbose bool // per-stage debug lines
	Color   bool
}

// New returns a text logger writing to w.
func New(w io.Writer, o Options) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      o.Color,
		DisableColors:    !o.Color,
	})
	switch {
	case o.Quiet:
		l.SetLevel(logrus.ErrorLevel)
	case o.Verbose:
		l.SetLevel(logrus.DebugLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}

// Metric logs one scored metric as "METRIC <name> = <value> (<flag>)".
func Metric(log logrus.FieldLogger, model string, r metrics.Result) {
	log.WithFields(logrus.Fields{
		"model":  model,
		"metric": r.Key,
		"flag":   string(r.Flag),
	}).Infof("METRIC %s = %.2f (%s)", r.Name, r.Value, r.Flag)
}
