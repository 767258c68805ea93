package linestream

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/papercomputeco/serialscope/pkg/logger"
	"github.com/papercomputeco/serialscope/pkg/serialport"
)

const (
	terminator       = '\n'
	defaultChunkSize = 4096
)

// Reader assembles newline-delimited text lines from a byte source.
type Reader struct {
	src     io.ReadCloser
	chunk   []byte
	decoder *encoding.Decoder
	logger  *slog.Logger

	// buf is the LineBuffer: bytes received since the last terminator.
	buf []byte

	// pending holds completed lines, oldest first.
	pending []string

	closed bool
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = l
	}
}

// WithChunkSize sets the size of the buffer used by each Fill.
func WithChunkSize(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.chunk = make([]byte, n)
		}
	}
}

// NewReader returns a Reader over src. src may be nil when the caller only
// intends to use Feed and Poll.
func NewReader(src io.ReadCloser, opts ...Option) *Reader {
	r := &Reader{
		src:     src,
		decoder: unicode.UTF8.NewDecoder(),
		logger:  logger.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.chunk == nil {
		r.chunk = make([]byte, defaultChunkSize)
	}

	return r
}

// Open opens the serial device described by cfg and returns a Reader over
// it. Invalid settings yield a *serialport.ConfigurationError and open
// failures a *serialport.ConnectionError; neither is retried.
func Open(cfg serialport.Config, opts ...Option) (*Reader, error) {
	port, err := serialport.Open(cfg)
	if err != nil {
		return nil, err
	}

	return NewReader(port, opts...), nil
}

// Feed appends chunk to the line buffer and stages every line it completes.
func (r *Reader) Feed(chunk []byte) {
	for len(chunk) > 0 {
		i := bytes.IndexByte(chunk, terminator)
		if i < 0 {
			r.buf = append(r.buf, chunk...)
			return
		}

		r.buf = append(r.buf, chunk[:i]...)
		r.stage(r.buf)
		r.buf = r.buf[:0]
		chunk = chunk[i+1:]
	}
}

// Poll removes and returns the oldest complete line. It never blocks; the
// second result is false when no complete line is buffered.
func (r *Reader) Poll() (string, bool) {
	if len(r.pending) == 0 {
		return "", false
	}

	line := r.pending[0]
	r.pending[0] = ""
	r.pending = r.pending[1:]

	return line, true
}

// Pending reports how many complete lines are waiting to be polled.
func (r *Reader) Pending() int {
	return len(r.pending)
}

// Fill performs one read from the source and feeds whatever arrived. A read
// that times out without data is not an error. Any other failure, including
// io.EOF, is returned as a *StreamError.
func (r *Reader) Fill() error {
	if r.closed || r.src == nil {
		return ErrClosed
	}

	n, err := r.src.Read(r.chunk)
	if n > 0 {
		r.Feed(r.chunk[:n])
	}

	if err != nil {
		return &StreamError{Err: err}
	}

	return nil
}

// Close releases the source and discards any unterminated partial line.
// Calling Close more than once is a no-op.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if len(r.buf) > 0 {
		r.logger.Debug("discarding unterminated line", "bytes", len(r.buf))
		r.buf = r.buf[:0]
	}

	if r.src == nil {
		return nil
	}

	return r.src.Close()
}

func (r *Reader) stage(raw []byte) {
	line := strings.TrimSpace(r.decode(raw))
	if line == "" {
		return
	}

	r.pending = append(r.pending, line)
}

// decode converts raw to a string, replacing every ill-formed UTF-8
// subsequence with U+FFFD.
func (r *Reader) decode(raw []byte) string {
	decoded, err := r.decoder.Bytes(raw)
	if err != nil {
		r.logger.Debug("lossy decode failed, falling back", "error", err)
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}

	return string(decoded)
}
