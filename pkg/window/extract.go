package window

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

// DefaultLabel is the prefix the reference firmware prints before each
// distance reading.
const DefaultLabel = "Distance:"

// ErrEmptyLabel is returned when an extractor is built without a label.
var ErrEmptyLabel = errors.New("extraction label cannot be empty")

// Extractor pulls a numeric reading out of a text line.
//
// A line matches when it starts with the label (case-sensitive), followed by
// at least one whitespace character and a decimal number that may carry a
// sign and a fractional part. Anything after the number is ignored, so
// "Distance: 12.5 cm" yields 12.5 while "Distance:12.5" does not match.
type Extractor struct {
	label   string
	pattern *regexp.Regexp
}

// NewExtractor compiles the matching rule for label.
func NewExtractor(label string) (*Extractor, error) {
	if label == "" {
		return nil, ErrEmptyLabel
	}

	return &Extractor{
		label:   label,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(label) + `\s+([-+]?\d*\.?\d+)`),
	}, nil
}

// Label returns the literal prefix the extractor matches on.
func (e *Extractor) Label() string {
	return e.label
}

// Extract returns the reading in line. The second result is false when the
// line does not match or the number is not finite.
func (e *Extractor) Extract(line string) (float64, bool) {
	m := e.pattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, false
	}

	return value, true
}
