// Package mock generates synthetic sensor readings for exercising the monitor
// without hardware, typically over one end of a socat pty pair.
package mock

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/papercomputeco/serialscope/pkg/logger"
	"github.com/papercomputeco/serialscope/pkg/serialport"
)

const (
	DefaultLabel    = "Distance:"
	DefaultBase     = 20.0
	DefaultJitter   = 5.0
	DefaultInterval = time.Second
	DefaultUnit     = "cm"
)

// Sender writes one "<label> <value> <unit>\n" line per interval.
type Sender struct {
	w        io.Writer
	label    string
	unit     string
	base     float64
	jitter   float64
	interval time.Duration
	rng      *rand.Rand
	logger   *slog.Logger
	sent     int
}

type Option func(*Sender)

func WithLabel(label string) Option {
	return func(s *Sender) { s.label = label }
}

func WithUnit(unit string) Option {
	return func(s *Sender) { s.unit = unit }
}

// WithRange sets the lowest reading and the random spread above it.
func WithRange(base, jitter float64) Option {
	return func(s *Sender) {
		s.base = base
		s.jitter = jitter
	}
}

func WithInterval(d time.Duration) Option {
	return func(s *Sender) { s.interval = d }
}

// WithRand replaces the random source, mainly so tests are deterministic.
func WithRand(r *rand.Rand) Option {
	return func(s *Sender) { s.rng = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) { s.logger = l }
}

func NewSender(w io.Writer, opts ...Option) (*Sender, error) {
	s := &Sender{
		w:        w,
		label:    DefaultLabel,
		unit:     DefaultUnit,
		base:     DefaultBase,
		jitter:   DefaultJitter,
		interval: DefaultInterval,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	switch {
	case s.label == "":
		return nil, &serialport.ConfigurationError{Field: "label", Reason: "cannot be empty"}
	case s.interval <= 0:
		return nil, &serialport.ConfigurationError{Field: "interval", Reason: "must be positive"}
	case s.jitter < 0:
		return nil, &serialport.ConfigurationError{Field: "jitter", Reason: "cannot be negative"}
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	return s, nil
}

// Next draws a reading in [base, base+jitter).
func (s *Sender) Next() float64 {
	return s.base + s.jitter*s.rng.Float64()
}

// Format renders one wire line for v.
func (s *Sender) Format(v float64) string {
	if s.unit == "" {
		return fmt.Sprintf("%s %.2f\n", s.label, v)
	}
	return fmt.Sprintf("%s %.2f %s\n", s.label, v, s.unit)
}

// Send writes a single reading.
func (s *Sender) Send() error {
	line := s.Format(s.Next())
	if _, err := io.WriteString(s.w, line); err != nil {
		return fmt.Errorf("writing reading: %w", err)
	}
	s.sent++
	s.logger.Debug("sent", "line", line[:len(line)-1], "count", s.sent)
	return nil
}

// Sent returns the number of readings written so far.
func (s *Sender) Sent() int {
	return s.sent
}

// Run sends a reading immediately and then once per interval until ctx is
// done. A cancelled context is a clean stop and returns nil.
func (s *Sender) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.Send(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
