package core

import (
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/chronometrist/schema"
)

// compose builds every line of the report from a snapshot of the events.
func (s *Session) compose(events []schema.TimedEvent, status int, now time.Time) ([]string, error) {
	cfg := s.cfg
	paint := cfg.Colorize

	// 1. Pick the axis and lay out the background once
	life := s.life(now)
	sc, err := SelectScale(life, cfg.ScreenWidth)
	if err != nil {
		return nil, err
	}
	grid := BuildGrid(sc, life, cfg.ScreenWidth)
	ticks := paint(grid.Ticks, schema.ColorGray)
	rule := strings.Repeat(string(schema.HRChar), cfg.ScreenWidth)

	lines := make([]string, 0, len(events)+6)
	lines = append(lines, rule, s.titleLine(status), ticks)

	// 2. One line per event, in insertion order
	for _, ev := range events {
		l := layoutEvent(ev, s.created, now, sc, cfg)
		lines = append(lines, s.renderEvent(ev, l, grid))
	}

	// 3. Outcome
	lines = append(lines, s.footerLine(status, life, grid), ticks, rule)
	return lines, nil
}

// titleLine renders "Request summary for <title>?<query> (<info>)".
func (s *Session) titleLine(status int) string {
	paint := s.cfg.Colorize

	var query url.Values
	if s.req != nil && s.req.URL != nil {
		query = s.req.URL.Query()
	}

	line := "Request summary for " +
		paint(s.cfg.OverallTitle(s.req, status), schema.ColorBold) +
		paint("?", schema.ColorBlack) +
		FormatQuery(query, paint)
	if info := s.cfg.OverallInfo(s.req, status); info != "" {
		line += paint(" ("+info+")", schema.ColorGray)
	}
	return line
}

// footerLine renders the outcome mark and total duration under the last tick.
func (s *Session) footerLine(status int, life float64, grid Grid) string {
	paint := s.cfg.Colorize
	total := OverallColor(life, status, s.cfg)

	return paint(grid.Prefix(grid.Width()-2), schema.ColorGray) +
		paint("["+paint(OutcomeMark(status), total)+"]", schema.ColorBold) +
		paint(" Complete in ", schema.ColorGray) +
		paint(paint(formatMillis(life)+" ms", total), schema.ColorBold)
}

// OverallColor grades the whole unit of work. Any status other than a
// success or redirect code is red.
func OverallColor(life float64, status int, cfg Config) schema.Color {
	_, ok := schema.OKStatusCodes[status]
	_, redirect := schema.RedirectStatusCodes[status]
	return gradeColor(life, Millis(cfg.TotalRedThreshold), Millis(cfg.TotalYellowThreshold), !ok && !redirect)
}

// OutcomeMark returns the footer glyph for a status code.
func OutcomeMark(status int) string {
	if _, ok := schema.OKStatusCodes[status]; ok {
		return schema.SuccessMark
	}
	if _, ok := schema.RedirectStatusCodes[status]; ok {
		return schema.RedirectMark
	}
	return schema.FailureMark
}
