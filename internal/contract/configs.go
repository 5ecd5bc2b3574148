package contract

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/chronometrist/schema"
)

// Default values for configuration, in milliseconds unless noted.
const (
	DefaultLogThreshold         = 1000
	DefaultScreenWidth          = 100 // columns
	DefaultRedThreshold         = 500
	DefaultYellowThreshold      = 200
	DefaultTotalRedThreshold    = 1000
	DefaultTotalYellowThreshold = 500
	DefaultRoundTo              = 1
	MaxScreenWidth              = 1000 // columns
	MinScreenWidth              = schema.MinScaleSpace
)

// Config holds the runtime configuration for rendering timelines.
// This struct is the "final, validated" config.
type Config struct {
	Enabled              bool
	LogThreshold         time.Duration
	Width                int // Screen width override (0 = auto-detect)
	RedThreshold         time.Duration
	YellowThreshold      time.Duration
	TotalRedThreshold    time.Duration
	TotalYellowThreshold time.Duration
	RoundTo              time.Duration
	SkipStatus           []int    // Status codes whose reports are skipped
	HideKeys             []string // Annotation keys never shown
	OutputFile           string
	UseColors            bool // Enable colored output
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Enabled              bool   `mapstructure:"enabled"`
	LogThreshold         int    `mapstructure:"log-threshold"`
	Width                int    `mapstructure:"width"`
	RedThreshold         int    `mapstructure:"red-threshold"`
	YellowThreshold      int    `mapstructure:"yellow-threshold"`
	TotalRedThreshold    int    `mapstructure:"total-red-threshold"`
	TotalYellowThreshold int    `mapstructure:"total-yellow-threshold"`
	RoundTo              int    `mapstructure:"round-to"`
	SkipStatus           string `mapstructure:"skip-status"`
	HideKeys             string `mapstructure:"hide-keys"`
	OutputFile           string `mapstructure:"output-file"`
	Color                string `mapstructure:"color"`
}

// DefaultConfigRawInput returns the raw input matching all documented defaults.
func DefaultConfigRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Enabled:              true,
		LogThreshold:         DefaultLogThreshold,
		RedThreshold:         DefaultRedThreshold,
		YellowThreshold:      DefaultYellowThreshold,
		TotalRedThreshold:    DefaultTotalRedThreshold,
		TotalYellowThreshold: DefaultTotalYellowThreshold,
		RoundTo:              DefaultRoundTo,
		Color:                "yes",
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.SkipStatus = slices.Clone(c.SkipStatus)
	clone.HideKeys = slices.Clone(c.HideKeys)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processFilters(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-threshold fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Enabled = input.Enabled
	cfg.OutputFile = input.OutputFile

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Width Validation ---
	if input.Width != 0 && (input.Width <= MinScreenWidth || input.Width > MaxScreenWidth) {
		return fmt.Errorf("width must be 0 (auto-detect) or between %d and %d (received %d)", MinScreenWidth+1, MaxScreenWidth, input.Width)
	}
	cfg.Width = input.Width

	// --- 2. Rounding Validation ---
	if input.RoundTo <= 0 {
		return fmt.Errorf("round-to must be greater than 0 (received %d)", input.RoundTo)
	}
	cfg.RoundTo = time.Duration(input.RoundTo) * time.Millisecond

	return nil
}

// processThresholds validates every duration threshold and their ordering.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := []struct {
		name  string
		value int
		dest  *time.Duration
	}{
		{"log-threshold", input.LogThreshold, &cfg.LogThreshold},
		{"red-threshold", input.RedThreshold, &cfg.RedThreshold},
		{"yellow-threshold", input.YellowThreshold, &cfg.YellowThreshold},
		{"total-red-threshold", input.TotalRedThreshold, &cfg.TotalRedThreshold},
		{"total-yellow-threshold", input.TotalYellowThreshold, &cfg.TotalYellowThreshold},
	}
	for _, th := range thresholds {
		if th.value < 0 {
			return fmt.Errorf("%s cannot be negative (received %d)", th.name, th.value)
		}
		*th.dest = time.Duration(th.value) * time.Millisecond
	}

	if cfg.YellowThreshold > cfg.RedThreshold {
		return fmt.Errorf("yellow-threshold (%d) cannot exceed red-threshold (%d)", input.YellowThreshold, input.RedThreshold)
	}
	if cfg.TotalYellowThreshold > cfg.TotalRedThreshold {
		return fmt.Errorf("total-yellow-threshold (%d) cannot exceed total-red-threshold (%d)", input.TotalYellowThreshold, input.TotalRedThreshold)
	}
	return nil
}

// processFilters parses the skip-status and hide-keys lists.
func processFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.SkipStatus = nil
	for _, part := range SplitList(input.SkipStatus) {
		code, err := strconv.Atoi(part)
		if err != nil || code < 100 || code > 599 {
			return fmt.Errorf("invalid status code '%s' in skip-status", part)
		}
		cfg.SkipStatus = append(cfg.SkipStatus, code)
	}

	cfg.HideKeys = SplitList(input.HideKeys)
	return nil
}

// SplitList splits a comma-separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
}
