package core

import (
	"fmt"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/huangsam/chronometrist/schema"
)

// Clock returns the current time. Tests swap it for a manual clock.
type Clock func() time.Time

// Config controls when and how a session prints its timeline.
// Start from DefaultConfig; zero thresholds are honoured as zero.
type Config struct {
	Enabled              bool
	LogThreshold         time.Duration // minimum total duration to print anything
	ScreenWidth          int           // columns
	RedThreshold         time.Duration // per-event cutoffs
	YellowThreshold      time.Duration
	TotalRedThreshold    time.Duration // whole-request cutoffs
	TotalYellowThreshold time.Duration
	RoundTo              time.Duration // quantization granularity

	ShouldSkip   func(r *http.Request, status int) bool
	OverallTitle func(r *http.Request, status int) string
	OverallInfo  func(r *http.Request, status int) string
	FilterQuery  func(r *http.Request, key string, value any) bool

	UseColors bool
	Colorize  schema.Colorizer // overrides UseColors when set
	Log       func(line string)
	Now       Clock
}

// DefaultConfig returns a disabled config with every documented default.
func DefaultConfig() Config {
	return Config{
		LogThreshold:         contract.DefaultLogThreshold * time.Millisecond,
		ScreenWidth:          contract.DefaultScreenWidth,
		RedThreshold:         contract.DefaultRedThreshold * time.Millisecond,
		YellowThreshold:      contract.DefaultYellowThreshold * time.Millisecond,
		TotalRedThreshold:    contract.DefaultTotalRedThreshold * time.Millisecond,
		TotalYellowThreshold: contract.DefaultTotalYellowThreshold * time.Millisecond,
		RoundTo:              contract.DefaultRoundTo * time.Millisecond,
		UseColors:            true,
	}
}

// NewConfig builds an enabled render config from validated CLI settings.
// The screen width must already be resolved; 0 falls back to the default.
func NewConfig(cfg *contract.Config) Config {
	c := DefaultConfig()
	c.Enabled = cfg.Enabled
	c.LogThreshold = cfg.LogThreshold
	c.ScreenWidth = cfg.Width
	c.RedThreshold = cfg.RedThreshold
	c.YellowThreshold = cfg.YellowThreshold
	c.TotalRedThreshold = cfg.TotalRedThreshold
	c.TotalYellowThreshold = cfg.TotalYellowThreshold
	c.RoundTo = cfg.RoundTo
	c.UseColors = cfg.UseColors

	if len(cfg.SkipStatus) > 0 {
		skip := slices.Clone(cfg.SkipStatus)
		c.ShouldSkip = func(_ *http.Request, status int) bool {
			return slices.Contains(skip, status)
		}
	}
	if len(cfg.HideKeys) > 0 {
		hidden := slices.Clone(cfg.HideKeys)
		c.FilterQuery = func(_ *http.Request, key string, _ any) bool {
			return !slices.Contains(hidden, key)
		}
	}
	return c
}

// resolve fills every unset callback and invalid size with its default.
// Each session keeps its own resolved copy.
func (c Config) resolve() Config {
	if c.ScreenWidth <= 0 {
		c.ScreenWidth = contract.DefaultScreenWidth
	}
	if c.RoundTo <= 0 {
		c.RoundTo = contract.DefaultRoundTo * time.Millisecond
	}
	if c.ShouldSkip == nil {
		c.ShouldSkip = func(*http.Request, int) bool { return false }
	}
	if c.OverallTitle == nil {
		c.OverallTitle = defaultOverallTitle
	}
	if c.OverallInfo == nil {
		c.OverallInfo = func(*http.Request, int) string { return "" }
	}
	if c.FilterQuery == nil {
		c.FilterQuery = func(*http.Request, string, any) bool { return true }
	}
	if c.Colorize == nil {
		c.Colorize = contract.SelectStyler(c.UseColors)
	}
	if c.Log == nil {
		c.Log = func(line string) { _, _ = fmt.Fprintln(os.Stdout, line) }
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// defaultOverallTitle uses the request path.
func defaultOverallTitle(r *http.Request, _ int) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
