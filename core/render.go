package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/huangsam/chronometrist/schema"
)

// errNotFinished is attached at render time to events that never ended.
var errNotFinished = errors.New(schema.NotFinishedMessage)

// EventLayout is the computed placement of one event on the timeline.
type EventLayout struct {
	StartChar int
	EndChar   int
	Length    float64 // rounded duration in milliseconds
	Finished  bool
	Err       error
	Color     schema.Color
}

// layoutEvent places an event relative to the session start.
// Unfinished events are measured against now; the event itself is not modified.
func layoutEvent(ev schema.TimedEvent, zero, now time.Time, sc Scale, cfg Config) EventLayout {
	l := EventLayout{Finished: ev.Finished(), Err: ev.Err}

	end := ev.End
	if !l.Finished {
		end = now
		if l.Err == nil {
			l.Err = errNotFinished
		}
	}

	l.Length = RoundDuration(end.Sub(ev.Start), cfg.RoundTo)
	l.StartChar = column(RoundDuration(ev.Start.Sub(zero), cfg.RoundTo), sc, math.Floor, cfg.ScreenWidth)
	l.EndChar = max(l.StartChar, column(RoundDuration(end.Sub(zero), cfg.RoundTo), sc, math.Ceil, cfg.ScreenWidth))
	l.Color = gradeColor(l.Length, Millis(cfg.RedThreshold), Millis(cfg.YellowThreshold), l.Err != nil)
	return l
}

// column converts an offset in milliseconds to a screen column within [0, width].
func column(offset float64, sc Scale, snap func(float64) float64, width int) int {
	if sc.PerColumn <= 0 {
		return 0
	}
	return max(0, min(int(snap(offset/sc.PerColumn)), width))
}

// gradeColor grades a duration: red above red or when forced, yellow above yellow, else green.
func gradeColor(ms, red, yellow float64, forceRed bool) schema.Color {
	switch {
	case ms > red || forceRed:
		return schema.ColorRed
	case ms > yellow:
		return schema.ColorYellow
	default:
		return schema.ColorGreen
	}
}

// renderEvent composes the text line of one event.
func (s *Session) renderEvent(ev schema.TimedEvent, l EventLayout, grid Grid) string {
	paint := s.cfg.Colorize
	var b strings.Builder

	b.WriteString(paint(grid.Prefix(l.StartChar), schema.ColorGray))

	plus := ""
	if !l.Finished {
		plus = "+"
	}
	bar := strings.Repeat(string(schema.BarChar), l.EndChar-l.StartChar)
	b.WriteString(paint(fmt.Sprintf("%s %s%s ms ", bar, formatMillis(l.Length), plus), l.Color))

	if l.Err != nil {
		label := "[Error: " + schema.ErrorLabel(l.Err) + "]"
		b.WriteString(paint(paint(label, schema.ColorUnderline), schema.ColorRed) + " ")
	}

	b.WriteString(paint(ev.Title, schema.ColorBold))

	if shown := s.filterAnnotations(ev.Annotations); len(shown) > 0 {
		b.WriteString(paint(paint("?", schema.ColorBlack)+FormatQuery(AnnotationValues(shown), paint), schema.ColorGray))
	}
	return b.String()
}

// filterAnnotations keeps the annotations accepted by FilterQuery.
func (s *Session) filterAnnotations(ann schema.Annotations) schema.Annotations {
	if len(ann) == 0 {
		return nil
	}
	shown := make(schema.Annotations, len(ann))
	for k, v := range ann {
		if s.cfg.FilterQuery(s.req, k, v) {
			shown[k] = v
		}
	}
	return shown
}
