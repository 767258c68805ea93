package window

import "math"

// Statistics summarizes the values currently in a window. The zero value
// is the "unavailable" snapshot returned for an empty window.
type Statistics struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64

	// Stdev is the sample standard deviation (N-1 divisor), or 0 for a
	// single value.
	Stdev float64
}

// Available reports whether the snapshot was computed from at least one
// value.
func (s Statistics) Available() bool {
	return s.Count > 0
}

// Summarize computes Statistics over values.
func Summarize(values []float64) Statistics {
	if len(values) == 0 {
		return Statistics{}
	}

	stats := Statistics{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}

	var sum float64
	for _, v := range values {
		sum += v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	stats.Mean = sum / float64(len(values))

	if len(values) > 1 {
		var squares float64
		for _, v := range values {
			d := v - stats.Mean
			squares += d * d
		}
		stats.Stdev = math.Sqrt(squares / float64(len(values)-1))
	}

	return stats
}
