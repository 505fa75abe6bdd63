package writers

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// StreamFunc writes every value received on in to w. It must drain in.
type StreamFunc[T any] func(w io.Writer, in <-chan T, header bool) error

// Registry maps output formats to writers for one kind of value.
// Formats register themselves in init() blocks.
type Registry[T any] struct {
	kind string
	m    map[string]StreamFunc[T]
}

func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, m: map[string]StreamFunc[T]{}}
}

// Register adds or replaces (last wins) the writer for format.
func (r *Registry[T]) Register(format string, fn StreamFunc[T]) { r.m[format] = fn }

// Has reports whether format is registered.
func (r *Registry[T]) Has(format string) bool { _, ok := r.m[format]; return ok }

// Formats lists registered formats, sorted.
func (r *Registry[T]) Formats() []string {
	out := make([]string, 0, len(r.m))
	for f := range r.m {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Start spins up a writer goroutine for format. With sortFn set, values are
// buffered until the input closes and written in sorted order; otherwise they
// stream. The error channel yields exactly one value once writing is done.
func (r *Registry[T]) Start(out io.Writer, format string, sortFn func([]T), header bool, bufSize int) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, ok := r.m[format]
		if !ok {
			drain(in)
			errCh <- fmt.Errorf("unknown %s format %q (want %s)", r.kind, format, strings.Join(r.Formats(), " | "))
			return
		}
		if sortFn == nil {
			errCh <- fn(out, in, header)
			return
		}
		var buf []T
		for v := range in {
			buf = append(buf, v)
		}
		sortFn(buf)
		replay := make(chan T, len(buf))
		for _, v := range buf {
			replay <- v
		}
		close(replay)
		errCh <- fn(out, replay, header)
	}()

	return in, errCh
}

func drain[T any](in <-chan T) {
	for range in {
	}
}
