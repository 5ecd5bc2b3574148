package replay

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/huangsam/chronometrist/core"
	"github.com/huangsam/chronometrist/schema"
)

// clock is a simulated clock positioned in milliseconds after epoch.
type clock struct {
	mu    sync.Mutex
	epoch time.Time
	now   time.Time
}

func newClock(epoch time.Time) *clock {
	return &clock{epoch: epoch, now: epoch}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) set(ms float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.epoch.Add(time.Duration(ms * float64(time.Millisecond)))
}

// Replay plays the trace through a session and lets it decide whether to
// print, exactly as a live request would. Lines go to cfg.Log.
func Replay(tr *Trace, cfg core.Config) (schema.ReportState, error) {
	s, c, err := play(tr, cfg)
	if err != nil {
		return schema.IdleState, err
	}
	c.set(tr.FinishMS)
	return s.Finish(tr.Status), nil
}

// Render composes the report of the trace regardless of the log threshold
// or skip rules.
func Render(tr *Trace, cfg core.Config) ([]string, error) {
	cfg.Enabled = true
	s, c, err := play(tr, cfg)
	if err != nil {
		return nil, err
	}
	c.set(tr.FinishMS)
	return s.Report(tr.Status, c.Now())
}

// play records every event of the trace on a fresh session. Events are
// started in trace order so the report keeps that order. Failed events
// without end_ms end at finish_ms.
func play(tr *Trace, cfg core.Config) (*core.Session, *clock, error) {
	req, err := http.NewRequest(tr.Method, tr.Path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace request: %w", err)
	}

	c := newClock(time.Unix(0, 0).UTC())
	cfg.Now = c.Now
	if tr.Title != "" {
		cfg.OverallTitle = func(*http.Request, int) string { return tr.Title }
	}
	if tr.Info != "" {
		cfg.OverallInfo = func(*http.Request, int) string { return tr.Info }
	}

	s := core.NewSession(cfg, req)
	handles := make([]core.Handle, len(tr.Events))
	for i, ev := range tr.Events {
		c.set(ev.StartMS)
		handles[i] = s.Start(ev.Title, ev.Annotations)
	}
	for i, ev := range tr.Events {
		switch {
		case ev.EndMS != nil:
			c.set(*ev.EndMS)
		case ev.Failed():
			// A recorded error ends the event; without an end time it fails with the request.
			c.set(tr.FinishMS)
		default:
			continue
		}
		if ev.Failed() {
			handles[i].Error(&schema.EventError{Code: ev.Code, Message: ev.Error})
			continue
		}
		handles[i].End()
	}
	return s, c, nil
}
