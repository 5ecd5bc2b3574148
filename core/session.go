package core

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/huangsam/chronometrist/schema"
)

// Session records the timed stages of one unit of work and prints them as a
// timeline when the work ends. A session is owned by a single request.
type Session struct {
	mu       sync.Mutex // guards events and state
	finishMu sync.Mutex // serializes Finish
	cfg      Config
	req      *http.Request
	created  time.Time
	events   []schema.TimedEvent
	state    schema.ReportState
}

// NewSession starts a session now. A disabled config yields a session whose
// operations are all no-ops.
func NewSession(cfg Config, r *http.Request) *Session {
	cfg = cfg.resolve()
	s := &Session{
		cfg:     cfg,
		req:     r,
		created: cfg.Now(),
		state:   schema.IdleState,
	}
	if cfg.Enabled {
		s.state = schema.CollectingState
	}
	return s
}

// Enabled reports whether the session records events.
func (s *Session) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// Created returns the zero point of the time axis.
func (s *Session) Created() time.Time {
	return s.created
}

// State returns where the session is in its report lifecycle.
func (s *Session) State() schema.ReportState {
	if s == nil {
		return schema.IdleState
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events returns a copy of the recorded events in insertion order.
func (s *Session) Events() []schema.TimedEvent {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// Start records a new event beginning now. On a disabled session the
// returned Handle does nothing.
func (s *Session) Start(title string, annotations schema.Annotations) Handle {
	if !s.Enabled() {
		return Handle{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, schema.TimedEvent{
		Title:       title,
		Annotations: annotations,
		Start:       s.cfg.Now(),
	})
	return Handle{s: s, idx: len(s.events) - 1}
}

// complete sets the end time (and error) of an event the first time it is called.
func (s *Session) complete(idx int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := &s.events[idx]
	if ev.Finished() {
		return
	}
	ev.End = s.cfg.Now()
	ev.Err = err
}

// Finish is the end-of-work notification. It decides whether to print,
// prints the report through the configured Log, and returns the final state.
// Only the first call has an effect. The config callbacks run on a snapshot
// of the events, outside the session lock, so they may read the session.
func (s *Session) Finish(status int) schema.ReportState {
	if s == nil {
		return schema.IdleState
	}

	s.finishMu.Lock()
	defer s.finishMu.Unlock()
	if state := s.State(); state != schema.CollectingState {
		return state
	}

	now := s.cfg.Now()
	events := s.Events()

	var lines []string
	state := schema.RenderedState
	switch {
	case s.cfg.ShouldSkip(s.req, status):
		state = schema.SkippedState
	case s.life(now) < Millis(s.cfg.LogThreshold):
		state = schema.SuppressedState
	default:
		var err error
		lines, err = s.compose(events, status, now)
		if err != nil {
			contract.LogWarn("Cannot render timeline", err)
			state = schema.SuppressedState
		}
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()

	for _, line := range lines {
		s.cfg.Log(line)
	}
	return state
}

// Report composes the timeline as it would look at the given time, without
// changing the session state. It ignores the log threshold and ShouldSkip.
func (s *Session) Report(status int, now time.Time) ([]string, error) {
	return s.compose(s.Events(), status, now)
}

// life returns the rounded elapsed time of the session in milliseconds.
func (s *Session) life(now time.Time) float64 {
	return RoundDuration(now.Sub(s.created), s.cfg.RoundTo)
}

// Handle identifies one event of a session. The zero Handle is a no-op.
type Handle struct {
	s   *Session
	idx int
}

// End marks the event as finished now. Later calls are ignored.
func (h Handle) End() {
	if h.s == nil {
		return
	}
	h.s.complete(h.idx, nil)
}

// Error marks the event as failed and finished now. It is ignored once the
// event has ended.
func (h Handle) Error(err error) {
	if h.s == nil {
		return
	}
	h.s.complete(h.idx, err)
}
