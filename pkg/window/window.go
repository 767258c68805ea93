// Package window keeps the bounded, most-recent history of readings
// extracted from a line stream and summarizes it.
//
// A Window is owned by the foreground goroutine of a session and is not
// safe for concurrent use.
package window

import (
	"errors"
	"fmt"
)

// DefaultCapacity is the number of samples kept when none is configured.
const DefaultCapacity = 50

// ErrInvalidCapacity is returned for a non-positive capacity.
var ErrInvalidCapacity = errors.New("window capacity must be positive")

// Sample is one accepted reading. Index counts accepted samples since the
// last reset, starting at 1.
type Sample struct {
	Index int
	Value float64
}

// Window is a fixed-capacity FIFO of samples.
type Window struct {
	extractor *Extractor

	ring []Sample
	head int // oldest sample
	size int
	seq  int
}

type options struct {
	capacity int
	label    string
}

// Option configures a Window.
type Option func(*options)

// WithCapacity sets the number of samples retained.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLabel sets the line prefix readings are extracted after.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// New returns an empty Window. Capacity defaults to DefaultCapacity and the
// label to DefaultLabel.
func New(opts ...Option) (*Window, error) {
	o := &options{
		capacity: DefaultCapacity,
		label:    DefaultLabel,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, o.capacity)
	}

	extractor, err := NewExtractor(o.label)
	if err != nil {
		return nil, err
	}

	return &Window{
		extractor: extractor,
		ring:      make([]Sample, o.capacity),
	}, nil
}

// Accept extracts a reading from line. On a match the sample is appended,
// evicting the oldest one when the window is full, and returned. Lines that
// do not match leave the window untouched.
func (w *Window) Accept(line string) (Sample, bool) {
	value, ok := w.extractor.Extract(line)
	if !ok {
		return Sample{}, false
	}

	w.seq++
	sample := Sample{Index: w.seq, Value: value}

	tail := (w.head + w.size) % len(w.ring)
	w.ring[tail] = sample
	if w.size < len(w.ring) {
		w.size++
	} else {
		w.head = (w.head + 1) % len(w.ring)
	}

	return sample, true
}

// Statistics recomputes the summary over the current contents.
func (w *Window) Statistics() Statistics {
	return Summarize(w.Values())
}

// Samples returns the window contents, oldest first.
func (w *Window) Samples() []Sample {
	out := make([]Sample, w.size)
	for i := range out {
		out[i] = w.ring[(w.head+i)%len(w.ring)]
	}
	return out
}

// Values returns the sample values, oldest first.
func (w *Window) Values() []float64 {
	out := make([]float64, w.size)
	for i := range out {
		out[i] = w.ring[(w.head+i)%len(w.ring)].Value
	}
	return out
}

// Reset empties the window and restarts the sequence index at 0.
func (w *Window) Reset() {
	clear(w.ring)
	w.head = 0
	w.size = 0
	w.seq = 0
}

// Capacity returns the fixed maximum number of samples.
func (w *Window) Capacity() int {
	return len(w.ring)
}

// Len returns the number of samples held.
func (w *Window) Len() int {
	return w.size
}

// Last returns the index of the most recent sample, 0 after a reset.
func (w *Window) Last() int {
	return w.seq
}

// Label returns the extraction label.
func (w *Window) Label() string {
	return w.extractor.Label()
}
