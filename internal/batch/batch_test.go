package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paths(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("m%02d.pdb", i)
	}
	return out
}

func TestEveryPathVisitedOnce(t *testing.T) {
	for _, threads := range []int{0, 1, 3, 64} {
		t.Run(fmt.Sprint(threads), func(t *testing.T) {
			var got []string
			err := Run(context.Background(), Config{Threads: threads}, paths(20),
				func(_ context.Context, p string) (int, error) { return len(p), nil },
				func(o Outcome[int]) error {
					assert.Equal(t, fmt.Sprintf("m%02d.pdb", o.Index), o.Path)
					got = append(got, o.Path)
					return nil
				})
			require.NoError(t, err)
			sort.Strings(got)
			assert.Equal(t, paths(20), got)
		})
	}
}

func TestFailuresDoNotStopBatch(t *testing.T) {
	boom := errors.New("boom")
	var ok, failed int
	err := Run(context.Background(), Config{Threads: 4}, paths(10),
		func(_ context.Context, p string) (string, error) {
			if p == "m03.pdb" || p == "m07.pdb" {
				return "", boom
			}
			return p, nil
		},
		func(o Outcome[string]) error {
			if o.Err != nil {
				assert.ErrorIs(t, o.Err, boom)
				failed++
			} else {
				ok++
			}
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 8, ok)
	assert.Equal(t, 2, failed)
}

func TestVisitErrorWins(t *testing.T) {
	stop := errors.New("stop")
	var calls int32
	err := Run(context.Background(), Config{Threads: 2}, paths(10),
		func(_ context.Context, p string) (string, error) { return p, nil },
		func(Outcome[string]) error {
			atomic.AddInt32(&calls, 1)
			return stop
		})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCancelStopsFeeding(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var started int32
	err := Run(ctx, Config{Threads: 1}, paths(100),
		func(ctx context.Context, p string) (string, error) {
			if atomic.AddInt32(&started, 1) == 2 {
				cancel()
			}
			time.Sleep(time.Millisecond)
			return p, nil
		},
		func(Outcome[string]) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, atomic.LoadInt32(&started), int32(100))
}

func TestEmptyInput(t *testing.T) {
	err := Run(context.Background(), Config{Threads: 4}, nil,
		func(context.Context, string) (int, error) { return 0, nil },
		func(Outcome[int]) error { t.Fatal("unexpected visit"); return nil })
	assert.NoError(t, err)
}
