package core

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/chronometrist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a clock that only moves when told to.
type manualClock struct {
	base time.Time
	now  time.Time
}

func newManualClock() *manualClock {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &manualClock{base: base, now: base}
}

func (c *manualClock) Now() time.Time { return c.now }

// at moves the clock to ms milliseconds after its base.
func (c *manualClock) at(ms int) {
	c.now = c.base.Add(time.Duration(ms) * time.Millisecond)
}

// testConfig returns a plain-text config writing into out.
func testConfig(clock *manualClock, out *[]string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.ScreenWidth = 60
	cfg.RoundTo = 50 * time.Millisecond
	cfg.UseColors = false
	cfg.Now = clock.Now
	cfg.Log = func(line string) { *out = append(*out, line) }
	return cfg
}

const rule60 = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// TestSessionFullReport replays a request with finished, stale and failed stages.
func TestSessionFullReport(t *testing.T) {
	clock := newManualClock()
	var out []string
	cfg := testConfig(clock, &out)
	cfg.LogThreshold = 350 * time.Millisecond

	req := httptest.NewRequest(http.MethodGet, "/path/?foo=bar", nil)
	s := NewSession(cfg, req)

	var h1, h2, h3 Handle
	clock.at(50)
	h1 = s.Start("successful", nil)
	clock.at(100)
	h2 = s.Start("successful", schema.Annotations{"a": 1, "b": 2})
	clock.at(150)
	h2.End()
	clock.at(200)
	s.Start("stale", nil)
	clock.at(250)
	h1.End()
	clock.at(300)
	h3 = s.Start("errored", schema.Annotations{"a": 1, "b": 2})
	clock.at(350)
	h3.Error(&schema.EventError{Code: 404})
	clock.at(400)

	state := s.Finish(http.StatusOK)

	assert.Equal(t, schema.RenderedState, state)
	assert.Equal(t, []string{
		rule60,
		"Request summary for /path/?foo=bar",
		"              | 100 ms       | 200 ms       | 300 ms        ",
		"       ▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇ 200 ms successful",
		"              ·▇▇▇▇▇▇▇▇ 50 ms successful?a=1&b=2",
		"              ·              ·▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇ 200+ ms [Error: Operation still not finished] stale",
		"              ·              ·              ·▇▇▇▇▇▇▇▇ 50 ms [Error: 404] errored?a=1&b=2",
		"              ·              ·              ·             [✓] Complete in 400 ms",
		"              | 100 ms       | 200 ms       | 300 ms        ",
		rule60,
	}, out)

	// The stale event is still unfinished in the session itself.
	events := s.Events()
	require.Len(t, events, 4)
	assert.False(t, events[2].Finished())
	assert.NoError(t, events[2].Err)
}

// TestSessionThresholdAndSkip covers the threshold and skip gates.
func TestSessionThresholdAndSkip(t *testing.T) {
	emptyReport := func(mark string) []string {
		return []string{
			rule60,
			"Request summary for /path/?",
			"           | 50 ms     | 100 ms    | 150 ms    | 200 ms     ",
			"           ·           ·           ·           ·          [" + mark + "] Complete in 250 ms",
			"           | 50 ms     | 100 ms    | 150 ms    | 200 ms     ",
			rule60,
		}
	}

	tests := []struct {
		name     string
		status   int
		finishAt int
		state    schema.ReportState
		expected []string
	}{
		{"below threshold", http.StatusOK, 50, schema.SuppressedState, nil},
		{"above threshold", http.StatusOK, 250, schema.RenderedState, emptyReport(schema.SuccessMark)},
		{"skipped status", http.StatusForbidden, 250, schema.SkippedState, nil},
		{"failed status", http.StatusNotFound, 250, schema.RenderedState, emptyReport(schema.FailureMark)},
		{"redirect status", http.StatusFound, 250, schema.RenderedState, emptyReport(schema.RedirectMark)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newManualClock()
			var out []string
			cfg := testConfig(clock, &out)
			cfg.LogThreshold = 200 * time.Millisecond
			cfg.ShouldSkip = func(_ *http.Request, status int) bool { return status == http.StatusForbidden }

			s := NewSession(cfg, httptest.NewRequest(http.MethodGet, "/path/", nil))
			clock.at(tt.finishAt)

			assert.Equal(t, tt.state, s.Finish(tt.status))
			assert.Equal(t, tt.expected, out)
		})
	}
}

// TestSessionOverrides checks custom title, info and annotation filtering.
func TestSessionOverrides(t *testing.T) {
	clock := newManualClock()
	var out []string
	cfg := testConfig(clock, &out)
	cfg.LogThreshold = 50 * time.Millisecond
	common := map[string]any{"common": "everywhere"}
	cfg.OverallTitle = func(r *http.Request, status int) string {
		return "PATH " + r.URL.Path + " RESULTED " + http.StatusText(status) + " "
	}
	cfg.OverallInfo = func(*http.Request, int) string { return "Common: everywhere" }
	cfg.FilterQuery = func(_ *http.Request, key string, value any) bool {
		return common[key] != value
	}

	s := NewSession(cfg, httptest.NewRequest(http.MethodGet, "/path/", nil))
	clock.at(50)
	h1 := s.Start("successful", schema.Annotations{"a": 1, "common": "everywhere"})
	clock.at(100)
	h2 := s.Start("successful", schema.Annotations{"b": 2, "common": "everywhere"})
	clock.at(150)
	h1.End()
	clock.at(200)
	h2.End()

	s.Finish(http.StatusOK)

	assert.Equal(t, []string{
		rule60,
		"Request summary for PATH /path/ RESULTED OK ? (Common: everywhere)",
		"              | 50 ms        | 100 ms       | 150 ms        ",
		"              ·▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇ 100 ms successful?a=1",
		"              ·              ·▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇▇ 100 ms successful?b=2",
		"              ·              ·              ·             [✓] Complete in 200 ms",
		"              | 50 ms        | 100 ms       | 150 ms        ",
		rule60,
	}, out)
}

// TestSessionFinishOnce verifies the report is produced exactly once.
func TestSessionFinishOnce(t *testing.T) {
	clock := newManualClock()
	var out []string
	cfg := testConfig(clock, &out)
	cfg.LogThreshold = 0

	s := NewSession(cfg, httptest.NewRequest(http.MethodGet, "/", nil))
	clock.at(100)

	assert.Equal(t, schema.RenderedState, s.Finish(http.StatusOK))
	printed := len(out)
	assert.Equal(t, schema.RenderedState, s.Finish(http.StatusInternalServerError))
	assert.Len(t, out, printed)
	assert.Equal(t, schema.RenderedState, s.State())
}

// TestDisabledSession verifies that a disabled session records and prints nothing.
func TestDisabledSession(t *testing.T) {
	clock := newManualClock()
	var out []string
	cfg := testConfig(clock, &out)
	cfg.Enabled = false
	cfg.LogThreshold = 0

	s := NewSession(cfg, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, s.Enabled())
	assert.Equal(t, schema.IdleState, s.State())

	h := s.Start("ignored", nil)
	h.End()
	h.Error(&schema.EventError{Code: 500})
	clock.at(5000)

	assert.Equal(t, schema.IdleState, s.Finish(http.StatusOK))
	assert.Empty(t, s.Events())
	assert.Empty(t, out)
}

// TestReportWithColors checks that styling goes through the colorizer.
func TestReportWithColors(t *testing.T) {
	clock := newManualClock()
	var out []string
	cfg := testConfig(clock, &out)
	cfg.LogThreshold = 0
	cfg.Colorize = func(text string, c schema.Color) string {
		return "<" + string(c) + ">" + text + "</" + string(c) + ">"
	}

	s := NewSession(cfg, httptest.NewRequest(http.MethodGet, "/a?x=1&y=2", nil))
	h := s.Start("db", schema.Annotations{"q": "users"})
	clock.at(600)
	h.End()
	clock.at(1200)

	lines, err := s.Report(http.StatusInternalServerError, clock.Now())
	require.NoError(t, err)
	require.Len(t, lines, 7)

	assert.Equal(t, "Request summary for <bold>/a</bold><black>?</black>x=1<black>&</black>y=2", lines[1])
	assert.Contains(t, lines[3], "<red>")
	assert.Contains(t, lines[3], " 600 ms </red>")
	assert.Contains(t, lines[3], "<bold>db</bold>")
	assert.Contains(t, lines[3], "<gray><black>?</black>q=users</gray>")
	assert.Contains(t, lines[4], "<bold>[<red>✗</red>]</bold>")
	assert.Contains(t, lines[4], "<bold><red>1200 ms</red></bold>")

	// Report does not move the lifecycle forward.
	assert.Equal(t, schema.CollectingState, s.State())
}

// TestSessionSubMillisecondRounding keeps labels free of float residue.
func TestSessionSubMillisecondRounding(t *testing.T) {
	clock := newManualClock()
	var out []string
	cfg := testConfig(clock, &out)
	cfg.LogThreshold = 0
	cfg.RoundTo = 100 * time.Microsecond

	s := NewSession(cfg, httptest.NewRequest(http.MethodGet, "/", nil))
	h := s.Start("a", nil)
	clock.now = clock.base.Add(300 * time.Microsecond)
	h.End()
	clock.now = clock.base.Add(700 * time.Microsecond)

	require.Equal(t, schema.RenderedState, s.Finish(http.StatusOK))

	blank := strings.Repeat(" ", 60)
	assert.Equal(t, []string{
		rule60,
		"Request summary for /?",
		blank,
		strings.Repeat("▇", 26) + " 0.3 ms a",
		strings.Repeat(" ", 58) + "[✓] Complete in 0.7 ms",
		blank,
		rule60,
	}, out)
}

// TestSessionCallbacksReadSession lets config callbacks inspect the session
// while it finishes.
func TestSessionCallbacksReadSession(t *testing.T) {
	clock := newManualClock()
	var out []string
	cfg := testConfig(clock, &out)
	cfg.LogThreshold = 0

	var s *Session
	var seen []int
	cfg.ShouldSkip = func(*http.Request, int) bool {
		seen = append(seen, len(s.Events()))
		return false
	}
	cfg.OverallTitle = func(*http.Request, int) string {
		return fmt.Sprintf("%d stages", len(s.Events()))
	}
	cfg.FilterQuery = func(*http.Request, string, any) bool {
		seen = append(seen, len(s.Events()))
		return true
	}

	s = NewSession(cfg, httptest.NewRequest(http.MethodGet, "/", nil))
	h := s.Start("db", schema.Annotations{"q": "users"})
	clock.at(100)
	h.End()

	done := make(chan schema.ReportState, 1)
	go func() { done <- s.Finish(http.StatusOK) }()

	select {
	case state := <-done:
		assert.Equal(t, schema.RenderedState, state)
	case <-time.After(5 * time.Second):
		t.Fatal("Finish blocked on a callback that reads the session")
	}
	assert.Equal(t, []int{1, 1}, seen)
	require.NotEmpty(t, out)
	assert.Equal(t, "Request summary for 1 stages?", out[1])
}
