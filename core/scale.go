package core

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/huangsam/chronometrist/schema"
)

// ErrScaleUnrepresentable is returned when no tick interval can lay out the timeline.
var ErrScaleUnrepresentable = errors.New("scale unrepresentable")

// Scale describes the time axis of a report.
type Scale struct {
	PerColumn float64 // milliseconds represented by one column
	Interval  float64 // milliseconds between two ticks
}

// Columns returns how many columns one tick interval spans.
func (s Scale) Columns() float64 {
	if s.PerColumn == 0 {
		return math.Inf(1)
	}
	return s.Interval / s.PerColumn
}

// SelectScale picks the smallest tick interval that leaves room for a label.
// life is the rounded total elapsed time in milliseconds.
func SelectScale(life float64, screenWidth int) (Scale, error) {
	if screenWidth <= schema.MinScaleSpace {
		return Scale{}, fmt.Errorf("%w: screen width %d must exceed %d columns", ErrScaleUnrepresentable, screenWidth, schema.MinScaleSpace)
	}
	if math.IsNaN(life) || math.IsInf(life, 0) || life < 0 {
		return Scale{}, fmt.Errorf("%w: invalid elapsed time %v ms", ErrScaleUnrepresentable, life)
	}

	perColumn := life / float64(screenWidth)
	for interval := range candidateIntervals() {
		sc := Scale{PerColumn: perColumn, Interval: interval}
		if sc.Columns() > schema.MinScaleSpace {
			return sc, nil
		}
	}
	return Scale{}, ErrScaleUnrepresentable // unreachable for finite life
}

// candidateIntervals yields the preferred intervals, then keeps going on a 1-2-5 progression.
func candidateIntervals() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, v := range schema.ScaleIntervals {
			if !yield(v) {
				return
			}
		}
		v := schema.ScaleIntervals[len(schema.ScaleIntervals)-1]
		for !math.IsInf(v, 1) {
			v = nextRoundInterval(v)
			if !yield(v) {
				return
			}
		}
	}
}

// nextRoundInterval steps 1 -> 2 -> 5 -> 10 within the same decade.
func nextRoundInterval(v float64) float64 {
	decade := 1.0
	for decade*10 <= v {
		decade *= 10
	}
	switch mantissa := math.Round(v / decade); {
	case mantissa < 2:
		return 2 * decade
	case mantissa < 5:
		return 5 * decade
	default:
		return 10 * decade
	}
}
