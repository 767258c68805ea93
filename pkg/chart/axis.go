// Package chart holds the plotting policy of the monitor: how the value
// axis grows, which index range is visible, and a plain-text rendering of
// the window that the TUI styles.
package chart

// Default value range shown before any sample arrives.
const (
	DefaultMin = 0
	DefaultMax = 50
)

// margin is added beyond a sample that falls outside the value range.
const margin = 1

// Axis is the visible value range. It only grows for the lifetime of a
// session, clears included, so the plot does not jump around as old
// extremes leave the window.
type Axis struct {
	Min float64
	Max float64
}

// NewAxis returns an axis spanning [lo, hi]. The bounds are swapped if
// given in the wrong order.
func NewAxis(lo, hi float64) Axis {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Axis{Min: lo, Max: hi}
}

// Observe widens the axis to include v plus a margin of one unit. It
// reports whether the range changed.
func (a *Axis) Observe(v float64) bool {
	changed := false
	if v > a.Max {
		a.Max = v + margin
		changed = true
	}
	if v < a.Min {
		a.Min = v - margin
		changed = true
	}
	return changed
}


// Span returns Max-Min.
func (a Axis) Span() float64 {
	return a.Max - a.Min
}

// IndexRange returns the visible sample-index range for a window of the
// given capacity whose newest sample has index last. Until the window
// fills, the range is [1, capacity]; afterwards it rolls with the data.
func IndexRange(last, capacity int) (lo, hi int) {
	if capacity <= 0 {
		capacity = 1
	}
	if last <= capacity {
		return 1, capacity
	}
	return last - capacity + 1, last
}
