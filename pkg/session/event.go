package session

import "time"

// EventKind discriminates the events a session publishes.
type EventKind int

const (
	// EventLine carries one decoded text line.
	EventLine EventKind = iota

	// EventError carries a *serialport.ConnectionError or a
	// *linestream.StreamError. It is always followed by EventClosed.
	EventError

	// EventClosed is the last event of a session. The channel is closed
	// right after it.
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventLine:
		return "line"
	case EventError:
		return "error"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is a message from the background reader to the foreground.
type Event struct {
	Kind EventKind
	Line string
	Err  error
	At   time.Time
}

func lineEvent(line string) Event {
	return Event{Kind: EventLine, Line: line, At: time.Now()}
}

func errorEvent(err error) Event {
	return Event{Kind: EventError, Err: err, At: time.Now()}
}

func closedEvent() Event {
	return Event{Kind: EventClosed, At: time.Now()}
}
