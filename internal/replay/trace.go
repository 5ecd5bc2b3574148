// Package replay loads recorded request traces and plays them back through a
// timeline session on a simulated clock.
package replay

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/huangsam/chronometrist/schema"
	"gopkg.in/yaml.v3"
)

// Trace is a recorded unit of work. Times are milliseconds after the start
// of the request.
type Trace struct {
	Method   string       `yaml:"method" json:"method"`
	Path     string       `yaml:"path" json:"path"` // may carry a query string
	Status   int          `yaml:"status" json:"status"`
	FinishMS float64      `yaml:"finish_ms" json:"finish_ms"` // 0 means the latest event time
	Title    string       `yaml:"title,omitempty" json:"title,omitempty"`
	Info     string       `yaml:"info,omitempty" json:"info,omitempty"`
	Events   []TraceEvent `yaml:"events" json:"events"`
}

// TraceEvent is one recorded stage.
type TraceEvent struct {
	Title       string             `yaml:"title" json:"title"`
	StartMS     float64            `yaml:"start_ms" json:"start_ms"`
	EndMS       *float64           `yaml:"end_ms,omitempty" json:"end_ms,omitempty"` // nil while still running
	Error       string             `yaml:"error,omitempty" json:"error,omitempty"`
	Code        int                `yaml:"code,omitempty" json:"code,omitempty"`
	Annotations schema.Annotations `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Failed reports whether the event carries an error.
func (e TraceEvent) Failed() bool {
	return e.Error != "" || e.Code != 0
}

// Load reads a trace from a YAML or JSON file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML (or JSON) document, fills defaults and validates it.
func Parse(data []byte) (*Trace, error) {
	var tr Trace
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	tr.applyDefaults()
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return &tr, nil
}

func (tr *Trace) applyDefaults() {
	if tr.Method == "" {
		tr.Method = http.MethodGet
	}
	if tr.Path == "" {
		tr.Path = "/"
	}
	if tr.Status == 0 {
		tr.Status = http.StatusOK
	}
	if tr.FinishMS == 0 {
		tr.FinishMS = tr.latest()
	}
}

// latest returns the last start or end time of any event.
func (tr *Trace) latest() float64 {
	var latest float64
	for _, ev := range tr.Events {
		latest = max(latest, ev.StartMS)
		if ev.EndMS != nil {
			latest = max(latest, *ev.EndMS)
		}
	}
	return latest
}

// Validate checks that every time lies on the request's own timeline.
func (tr *Trace) Validate() error {
	if tr.Status < 100 || tr.Status > 599 {
		return fmt.Errorf("invalid status code %d", tr.Status)
	}
	if tr.FinishMS < 0 {
		return errors.New("finish_ms cannot be negative")
	}
	for i, ev := range tr.Events {
		if ev.Title == "" {
			return fmt.Errorf("event %d is missing a title", i)
		}
		if ev.StartMS < 0 {
			return fmt.Errorf("event %q starts before the request", ev.Title)
		}
		if ev.EndMS != nil && *ev.EndMS < ev.StartMS {
			return fmt.Errorf("event %q ends before it starts", ev.Title)
		}
		if ev.StartMS > tr.FinishMS || (ev.EndMS != nil && *ev.EndMS > tr.FinishMS) {
			return fmt.Errorf("event %q runs past finish_ms %v", ev.Title, tr.FinishMS)
		}
	}
	return nil
}
