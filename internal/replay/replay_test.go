package replay

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/chronometrist/core"
	"github.com/huangsam/chronometrist/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rule60 = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

func testConfig(out *[]string) core.Config {
	cfg := core.DefaultConfig()
	cfg.Enabled = true
	cfg.ScreenWidth = 60
	cfg.RoundTo = 50 * time.Millisecond
	cfg.LogThreshold = 350 * time.Millisecond
	cfg.UseColors = false
	cfg.Log = func(line string) { *out = append(*out, line) }
	return cfg
}

var checkoutReport = []string{
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
}

func TestReplayFile(t *testing.T) {
	tr, err := Load(filepath.Join("testdata", "checkout.yaml"))
	require.NoError(t, err)
	require.Len(t, tr.Events, 4)

	var out []string
	state, err := Replay(tr, testConfig(&out))
	require.NoError(t, err)

	assert.Equal(t, schema.RenderedState, state)
	assert.Equal(t, checkoutReport, out)
}

func TestReplayBelowThreshold(t *testing.T) {
	tr, err := Parse([]byte("path: /fast\nfinish_ms: 100\n"))
	require.NoError(t, err)

	var out []string
	state, err := Replay(tr, testConfig(&out))
	require.NoError(t, err)
	assert.Equal(t, schema.SuppressedState, state)
	assert.Empty(t, out)

	lines, err := Render(tr, testConfig(&out))
	require.NoError(t, err)
	assert.Len(t, lines, 6)
	assert.Empty(t, out)
}

func TestParseJSON(t *testing.T) {
	doc := `{"path": "/api", "status": 302, "info": "cached", "events": [
  {"title": "redirect", "start_ms": 0, "end_ms": 500, "annotations": {"to": "/login"}}
  ]}`
	tr, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, tr.Method)
	assert.Equal(t, 500.0, tr.FinishMS)

	var out []string
	lines, err := Render(tr, testConfig(&out))
	require.NoError(t, err)
	assert.Equal(t, "Request summary for /api? (cached)", lines[1])
	assert.Contains(t, lines[3], "500 ms redirect?to=%2Flogin")
	assert.Contains(t, lines[4], "[→] Complete in 500 ms")
}

func TestReplayFailedEventWithoutEnd(t *testing.T) {
	tr, err := Parse([]byte("path: /orders\nfinish_ms: 400\nevents:\n  - title: db\n    start_ms: 100\n    code: 503\n"))
	require.NoError(t, err)

	var out []string
	lines, err := Render(tr, testConfig(&out))
	require.NoError(t, err)
	require.Len(t, lines, 7)
	assert.Equal(t, "              ·"+strings.Repeat("▇", 45)+" 300 ms [Error: 503] db", lines[3])
}

func TestParseTitleOverride(t *testing.T) {
	tr, err := Parse([]byte("path: /x\ntitle: checkout\nfinish_ms: 400\n"))
	require.NoError(t, err)

	var out []string
	lines, err := Render(tr, testConfig(&out))
	require.NoError(t, err)
	assert.Equal(t, "Request summary for checkout?", lines[1])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "events: [unclosed"},
		{"bad status", "status: 42"},
		{"missing title", "events:\n  - start_ms: 1\n"},
		{"negative start", "events:\n  - title: a\n    start_ms: -5\n"},
		{"ends before start", "events:\n  - title: a\n    start_ms: 50\n    end_ms: 10\n"},
		{"past finish", "finish_ms: 100\nevents:\n  - title: a\n    start_ms: 50\n    end_ms: 150\n"},
		{"negative finish", "finish_ms: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read trace")
}

func TestTraceEventFailed(t *testing.T) {
	assert.False(t, TraceEvent{}.Failed())
	assert.True(t, TraceEvent{Code: 500}.Failed())
	assert.True(t, TraceEvent{Error: "boom"}.Failed())
}
