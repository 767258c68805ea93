// Package testutils holds test doubles shared across serialscope packages.
package testutils

import (
	"sync"
	"time"
)

// DefaultReadTimeout is how long a FakePort read waits before returning
// (0, nil) the way a serial port does when its read timeout elapses.
const DefaultReadTimeout = 5 * time.Millisecond

// FakePort is an in-memory serial port. Chunks pushed with Push are
// returned by Read one per call; a read with nothing queued times out.
type FakePort struct {
	chunks  chan []byte
	fail    chan error
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	writes []byte
}

func NewFakePort() *FakePort {
	return &FakePort{
		chunks:  make(chan []byte, 64),
		fail:    make(chan error, 1),
		timeout: DefaultReadTimeout,
	}
}

// Push queues one chunk for a future Read.
func (p *FakePort) Push(chunk []byte) {
	p.chunks <- chunk
}

// Fail makes the next read without a queued chunk return err.
func (p *FakePort) Fail(err error) {
	p.fail <- err
}

func (p *FakePort) Read(b []byte) (int, error) {
	select {
	case chunk := <-p.chunks:
		return copy(b, chunk), nil
	case err := <-p.fail:
		return 0, err
	case <-time.After(p.timeout):
		return 0, nil
	}
}

func (p *FakePort) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes = append(p.writes, b...)
	return len(b), nil
}

func (p *FakePort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *FakePort) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Written returns a copy of everything written so far.
func (p *FakePort) Written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.writes...)
}
