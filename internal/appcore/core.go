// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"

	"tapscore-core/taperr"

	"tapscore/internal/batch"
	"tapscore/internal/clibase"
	"tapscore/internal/writers"
)

// ProduceFunc turns one model into output rows.
type ProduceFunc[T any] func(ctx context.Context, path string) ([]T, error)

// WriterFactory starts the output writer for rows of type T.
type WriterFactory[T any] func(out io.Writer, bufSize int) (chan<- T, <-chan error)

// Run scores every model of c.Models on a worker pool, streams rows to the
// output and returns the process exit code. A failed model is logged, counted
// and, when failure is set, written as a row; it never stops the others.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	c clibase.Common,
	env *Env,
	produce ProduceFunc[T],
	failure func(path string, err error) []T,
	start WriterFactory[T],
) int {
	dst, closeOut, err := OpenOutput(c.Out, stdout)
	if err != nil {
		env.Log.WithError(err).Error("output")
		return ExitIO
	}
	outw := bufio.NewWriter(dst)

	thr := c.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	inCh, writeErr := start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	send := func(rows []T) error {
		for _, r := range rows {
			select {
			case inCh <- r:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	failed := 0
	perr := batch.Run[[]T](ctx, batch.Config{Threads: thr}, c.Models, produce, func(o batch.Outcome[[]T]) error {
		if o.Err == nil {
			return send(o.Value)
		}
		if errors.Is(o.Err, context.Canceled) {
			return nil
		}
		failed++
		env.Telemetry.ModelFailed(o.Err)
		fields := logrus.Fields{"model": o.Path}
		if k, ok := taperr.KindOf(o.Err); ok {
			fields["kind"] = string(k)
		}
		env.Log.WithFields(fields).Warn(o.Err.Error())
		if failure == nil {
			return nil
		}
		return send(failure(o.Path, o.Err))
	})

	close(inCh)

	code := ExitOK
	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		code = ExitOK
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		code = ExitIO
	}
	if code == ExitOK {
		code = flush(outw, stderr, ExitOK)
	}
	if cerr := closeOut(); cerr != nil && code == ExitOK {
		_, _ = fmt.Fprintln(stderr, cerr)
		code = ExitIO
	}

	if c.MetricsTextfile != "" {
		if err := env.Telemetry.WriteTextfile(c.MetricsTextfile); err != nil {
			env.Log.WithError(err).Error("metrics textfile")
			if code == ExitOK {
				code = ExitIO
			}
		}
	}

	switch {
	case code != ExitOK:
		return code
	case perr != nil && errors.Is(perr, context.Canceled):
		return ExitCancelled
	case perr != nil:
		_, _ = fmt.Fprintln(stderr, perr)
		return ExitIO
	case failed > 0:
		env.Log.WithField("failed", failed).Warnf("%d of %d models failed", failed, len(c.Models))
		return ExitFailed
	}
	return ExitOK
}

// OpenOutput returns stdout, or the file at path with its parent directories
// created.
func OpenOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
