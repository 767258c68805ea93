package monitorcmder

import (
	"errors"
	"fmt"

	"github.com/papercomputeco/serialscope/pkg/chart"
	"github.com/papercomputeco/serialscope/pkg/serialport"
	"github.com/papercomputeco/serialscope/pkg/session"
	"github.com/papercomputeco/serialscope/pkg/window"
)

type connState int

const (
	stateConnecting connState = iota
	stateConnected
	stateFailed
	stateClosed
)

// monitorState is everything the foreground derives from session events.
// Both the TUI and the plain printer drive it; neither shares it with the
// session goroutine.
type monitorState struct {
	window *window.Window
	axis   chart.Axis

	log    []string
	logCap int

	device string
	baud   int

	conn connState
	err  error
}

func newMonitorState(w *window.Window, axis chart.Axis, logCap int, src serialport.PortSource, baud int) *monitorState {
	if logCap < 1 {
		logCap = 1
	}
	return &monitorState{
		window: w,
		axis:   axis,
		logCap: logCap,
		device: src.Device(),
		baud:   baud,
	}
}

// apply folds one event into the state. It returns the sample a line
// produced, if any.
func (s *monitorState) apply(ev session.Event) (window.Sample, bool) {
	switch ev.Kind {
	case session.EventLine:
		if s.conn == stateConnecting {
			s.conn = stateConnected
		}
		s.appendLog(ev.Line)

		sample, ok := s.window.Accept(ev.Line)
		if ok {
			s.axis.Observe(sample.Value)
		}
		return sample, ok

	case session.EventError:
		s.conn = stateFailed
		s.err = ev.Err

	case session.EventClosed:
		if s.conn != stateFailed {
			s.conn = stateClosed
		}
	}

	return window.Sample{}, false
}

// clear empties the window and raw log and restarts the sample index, which
// also rewinds the visible index range. The value axis keeps the range it
// has grown to, and the connection is left alone.
func (s *monitorState) clear() {
	s.window.Reset()
	s.log = s.log[:0]
}

func (s *monitorState) appendLog(line string) {
	if len(s.log) == s.logCap {
		copy(s.log, s.log[1:])
		s.log = s.log[:len(s.log)-1]
	}
	s.log = append(s.log, line)
}

// tail returns up to n of the newest log lines, oldest first.
func (s *monitorState) tail(n int) []string {
	if n <= 0 {
		return nil
	}
	if n >= len(s.log) {
		return s.log
	}
	return s.log[len(s.log)-n:]
}

func (s *monitorState) status() string {
	switch s.conn {
	case stateConnecting:
		return fmt.Sprintf("Connecting to %s @ %d baud", s.device, s.baud)
	case stateConnected:
		return fmt.Sprintf("Connected to %s @ %d baud", s.device, s.baud)
	case stateFailed:
		return errorText(s.err)
	default:
		return "Disconnected"
	}
}

// finished reports whether the session has published EventError or
// EventClosed.
func (s *monitorState) finished() bool {
	return s.conn == stateFailed || s.conn == stateClosed
}

// connectionFailed reports whether the session never opened the device.
func (s *monitorState) connectionFailed() bool {
	var cerr *serialport.ConnectionError
	return errors.As(s.err, &cerr)
}

func errorText(err error) string {
	if err == nil {
		return "Error"
	}

	var cerr *serialport.ConnectionError
	if errors.As(err, &cerr) {
		switch cerr.Kind {
		case serialport.FailureNotFound:
			return fmt.Sprintf("Port %s not found", cerr.Device)
		case serialport.FailurePermission:
			return fmt.Sprintf("Permission denied for %s (is your user in the dialout group?)", cerr.Device)
		case serialport.FailureBusy:
			return fmt.Sprintf("Port %s is busy", cerr.Device)
		}
	}

	return "Error: " + err.Error()
}
