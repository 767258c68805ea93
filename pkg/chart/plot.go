package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/papercomputeco/serialscope/pkg/window"
)

const (
	pointRune = '•'
	labelFmt  = "%8.2f"
	gutter    = " ┤"
)

// Plot renders samples as a scatter of points inside a width x height
// character grid, with value labels on the left. Samples outside the
// index range are skipped. The result has exactly height lines.
func Plot(samples []window.Sample, axis Axis, lo, hi, width, height int) []string {
	labelWidth := len(fmt.Sprintf(labelFmt, 0.0)) + len([]rune(gutter))
	cols := width - labelWidth
	if cols < 1 || height < 1 {
		return make([]string, max(height, 0))
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}

	for _, s := range samples {
		if s.Index < lo || s.Index > hi {
			continue
		}
		col := scale(float64(s.Index-lo), float64(hi-lo), cols)
		row := height - 1 - scale(s.Value-axis.Min, axis.Span(), height)
		grid[row][col] = pointRune
	}

	lines := make([]string, height)
	for r := range grid {
		label := strings.Repeat(" ", labelWidth)
		if r == 0 || r == height-1 || r == height/2 {
			value := axis.Max - axis.Span()*float64(r)/float64(max(height-1, 1))
			label = fmt.Sprintf(labelFmt, value) + gutter
		}
		lines[r] = label + string(grid[r])
	}

	return lines
}

// scale maps offset within [0, span] onto [0, cells-1].
func scale(offset, span float64, cells int) int {
	if span <= 0 || cells <= 1 {
		return 0
	}
	pos := int(math.Round(offset / span * float64(cells-1)))
	return min(max(pos, 0), cells-1)
}
