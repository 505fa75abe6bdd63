package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapscore-core/metrics"
	"tapscore-core/taperr"
)

func TestCounters(t *testing.T) {
	m := New()
	m.ModelScored([]metrics.Result{
		{Key: metrics.KeySFvCSP, Flag: metrics.Green},
		{Key: metrics.KeyTotalCDRLength, Flag: metrics.Red},
	})
	m.ModelFailed(fmt.Errorf("score: %w", taperr.New(taperr.AnnotationMismatch, "surface.annotate", "count")))
	m.ModelFailed(errors.New("plain"))
	m.ObserveStage("surface", 20*time.Millisecond)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.models.WithLabelValues("ok")))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.models.WithLabelValues("failed")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.failures.WithLabelValues("annotation_mismatch")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.failures.WithLabelValues("other")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.flags.WithLabelValues("total_cdr_length", "RED")))
	assert.Equal(t, 1, promtest.CollectAndCount(m.stages))
}

func TestNilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveStage("surface", time.Second)
		m.ModelScored(nil)
		m.ModelFailed(errors.New("x"))
	})
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ModelScored(nil)
	p := filepath.Join(t.TempDir(), "tap.prom")
	require.NoError(t, m.WriteTextfile(p))
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tap_models_total{status="ok"} 1`)
}
