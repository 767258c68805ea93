package linestream

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by Fill after Close.
var ErrClosed = errors.New("line stream closed")

// StreamError is an I/O failure in the middle of a session, such as the
// device being unplugged. It ends the read loop.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("serial error: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
