// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Stream encodes every value from in as one JSON line. The input is drained
// even after an encode error so producers never block.
//   - encode: fn to encode one value (convert to wire type & enc.Encode)
//   - isBroken: recognizer for broken/closed pipe errors to suppress them
func Stream[T any](out io.Writer, in <-chan T, encode func(*json.Encoder, T) error, isBroken func(error) bool) error {
	bw := bwPool.Get().(*bufio.Writer)
	bw.Reset(out)
	defer func() {
		bw.Reset(io.Discard)
		bwPool.Put(bw)
	}()

	enc := json.NewEncoder(bw)
	var err error
	for v := range in {
		if err != nil {
			continue
		}
		err = encode(enc, v)
	}
	if err != nil {
		return err
	}
	if err := bw.Flush(); err != nil && !isBroken(err) {
		return err
	}
	return nil
}
