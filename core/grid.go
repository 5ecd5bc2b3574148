package core

import (
	"fmt"

	"github.com/huangsam/chronometrist/schema"
)

// Grid is the background of a report: dots at tick boundaries and the labelled tick line.
// Both strings are exactly as wide as the screen.
type Grid struct {
	Line  string
	Ticks string
	line  []rune
}

// Prefix returns the first n columns of the background line.
func (g Grid) Prefix(n int) string {
	n = max(0, min(n, len(g.line)))
	return string(g.line[:n])
}

// Width returns the number of columns in the grid.
func (g Grid) Width() int {
	return len(g.line)
}

// BuildGrid lays out the background dots for the given scale.
// Each gap is derived from the rounded positions of both neighbouring ticks.
func BuildGrid(sc Scale, life float64, width int) Grid {
	width = max(width, 0)
	line := make([]rune, 0, width)

	if sc.Interval > 0 && sc.PerColumn > 0 {
		for i := sc.Interval; i < life; i += sc.Interval {
			gap := int(roundHalfUp(i/sc.PerColumn)-roundHalfUp((i-sc.Interval)/sc.PerColumn)) - 1
			line = appendRepeat(line, ' ', gap)
			line = append(line, schema.GridChar)
		}
	}

	if len(line) > width {
		line = line[:width]
	}
	line = appendRepeat(line, ' ', width-len(line))

	return Grid{
		Line:  string(line),
		Ticks: string(buildTicks(line, sc.Interval)),
		line:  line,
	}
}

// buildTicks replaces every grid marker and up to MinScaleSpace-1 following
// spaces with a tick and its label. The span length is kept, so labels that
// do not fit are cut short.
func buildTicks(line []rune, interval float64) []rune {
	out := make([]rune, 0, len(line))
	n := 0

	for pos := 0; pos < len(line); {
		if line[pos] != schema.GridChar {
			out = append(out, line[pos])
			pos++
			continue
		}

		span := 1
		for span < schema.MinScaleSpace && pos+span < len(line) && line[pos+span] == ' ' {
			span++
		}

		n++
		label := []rune(fmt.Sprintf("%c %s ms ", schema.TickChar, formatMillis(float64(n)*interval)))
		label = appendRepeat(label, ' ', schema.MinScaleSpace-len(label))
		if len(label) > span {
			label = label[:span]
		}

		out = append(out, label...)
		pos += span
	}
	return out
}

// appendRepeat appends n copies of r; non-positive n appends nothing.
func appendRepeat(dst []rune, r rune, n int) []rune {
	for range max(n, 0) {
		dst = append(dst, r)
	}
	return dst
}
