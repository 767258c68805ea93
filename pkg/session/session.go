// Package session runs one connect-to-disconnect cycle against a serial
// device.
//
// A Session owns a background goroutine that holds the serial stream and
// the line reader. Decoded lines, connection failures and the final close
// notification travel to the foreground over a single ordered channel. The
// foreground owns everything else (window, statistics, display), so no
// state is shared between the two sides.
//
// The channel is bounded and drops the oldest queued line when full, so the
// reader never waits on a slow consumer.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/serialscope/pkg/linestream"
	"github.com/papercomputeco/serialscope/pkg/logger"
	"github.com/papercomputeco/serialscope/pkg/serialport"
)

const (
	// DefaultQueueSize is the event channel capacity used when none is set.
	DefaultQueueSize = 1024

	minQueueSize = 2

	dropWarnEvery = 100
)

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("session already started")

// OpenFunc opens the line reader for a connection. It runs on the
// session's background goroutine.
type OpenFunc func(cfg serialport.Config) (*linestream.Reader, error)

// Config configures a Session.
type Config struct {
	// Serial describes the device to open.
	Serial serialport.Config

	// QueueSize is the capacity of the event channel (defaults to 1024,
	// minimum 2).
	QueueSize int

	// Open replaces the default serial opener. Mostly useful in tests.
	Open OpenFunc

	// Logger is the provided slog logger.
	Logger *slog.Logger
}

// Session is one connection lifetime.
type Session struct {
	id        uuid.UUID
	config    Config
	startedAt time.Time

	events  chan Event
	done    chan struct{}
	quit    chan struct{}
	started atomic.Bool
	dropped atomic.Uint64
	stop    sync.Once

	logger *slog.Logger
}

// New validates c and returns a Session that has not started reading.
// Invalid settings are reported as *serialport.ConfigurationError and no
// connection is attempted.
func New(c Config) (*Session, error) {
	if err := c.Serial.Validate(); err != nil {
		return nil, err
	}

	if c.QueueSize == 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.QueueSize < minQueueSize {
		return nil, &serialport.ConfigurationError{
			Field:  "queue size",
			Reason: fmt.Sprintf("must be at least %d", minQueueSize),
		}
	}

	if c.Logger == nil {
		c.Logger = logger.Nop()
	}

	id := uuid.New()
	s := &Session{
		id:     id,
		config: c,
		events: make(chan Event, c.QueueSize),
		done:   make(chan struct{}),
		quit:   make(chan struct{}),
		logger: c.Logger.With(
			"session", id.String(),
			"device", c.Serial.Source.Device(),
		),
	}

	if s.config.Open == nil {
		s.config.Open = func(cfg serialport.Config) (*linestream.Reader, error) {
			return linestream.Open(cfg, linestream.WithLogger(s.logger))
		}
	}

	return s, nil
}

// Start launches the background reader. The device is opened on that
// goroutine; an open failure arrives as an EventError. Cancelling ctx has
// the same effect as Stop.
func (s *Session) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	s.startedAt = time.Now()

	go s.run(ctx)

	return nil
}

// Events returns the channel the foreground consumes. It is closed after
// EventClosed.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Stop asks the reader to finish. The request is observed at the next read
// timeout boundary, after which the stream is closed and EventClosed is
// published. Stop does not wait; use Wait for that.
func (s *Session) Stop() {
	s.stop.Do(func() {
		close(s.quit)
	})
}

// Wait blocks until the background reader has exited. It returns
// immediately if the session was never started.
func (s *Session) Wait() {
	if !s.started.Load() {
		return
	}
	<-s.done
}

// ID uniquely identifies the session in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Source returns the port the session connects to.
func (s *Session) Source() serialport.PortSource {
	return s.config.Serial.Source
}

// BaudRate returns the configured baud rate.
func (s *Session) BaudRate() int {
	return s.config.Serial.BaudRate
}

// StartedAt returns when Start was called.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Dropped returns how many lines were discarded because the foreground fell
// behind.
func (s *Session) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	s.logger.Info("opening port", "baud_rate", s.config.Serial.BaudRate)

	reader, err := s.config.Open(s.config.Serial)
	if err != nil {
		s.logger.Error("could not open port", "error", err)
		s.finish(err)
		return
	}

	s.logger.Info("port opened")

	loopErr := s.readLoop(ctx, reader)
	if loopErr != nil {
		s.logger.Error("read loop ended", "error", loopErr)
	}

	if err := reader.Close(); err != nil {
		s.logger.Warn("closing port", "error", err)
	}

	s.logger.Info("session finished",
		"lines_dropped", s.dropped.Load(),
		"duration", time.Since(s.startedAt).Round(time.Millisecond).String(),
	)
	s.finish(loopErr)
}

// readLoop fills the reader until the context is cancelled or the stream
// fails. Lines completed by a failing read are still delivered.
func (s *Session) readLoop(ctx context.Context, reader *linestream.Reader) error {
	for !s.stopping(ctx) {
		err := reader.Fill()

		for line, ok := reader.Poll(); ok; line, ok = reader.Poll() {
			s.publishLine(line)
		}

		if err != nil {
			return err
		}
	}

	s.logger.Debug("stop requested")
	return nil
}

func (s *Session) stopping(ctx context.Context) bool {
	select {
	case <-s.quit:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// publishLine enqueues a line, evicting the oldest queued line while the
// channel is full. Until finish runs the queue holds nothing but lines.
func (s *Session) publishLine(line string) {
	ev := lineEvent(line)
	for {
		select {
		case s.events <- ev:
			return
		default:
			s.evictOldest()
		}
	}
}

// finish publishes EventError (when err is set) and EventClosed. Lines are
// evicted first until both fit, so the sends never block and no terminal
// event is ever displaced.
func (s *Session) finish(err error) {
	terminal := []Event{closedEvent()}
	if err != nil {
		terminal = []Event{errorEvent(err), closedEvent()}
	}

	for cap(s.events)-len(s.events) < len(terminal) {
		s.evictOldest()
	}

	for _, ev := range terminal {
		s.events <- ev
	}
}

func (s *Session) evictOldest() {
	select {
	case <-s.events:
		if n := s.dropped.Add(1); n == 1 || n%dropWarnEvery == 0 {
			s.logger.Warn("event queue full, dropping oldest lines", "lines_dropped", n)
		}
	default:
	}
}
