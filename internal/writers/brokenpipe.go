package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether err comes from a reader that went away early
// (`tap ... | head`).
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
