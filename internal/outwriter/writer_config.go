package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintConfig writes the resolved configuration as a table.
func PrintConfig(cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteConfigTable(w, cfg)
	}, "Wrote configuration")
}

// WriteConfigTable renders one row per setting with its effective value.
func WriteConfigTable(w io.Writer, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Setting", "Value"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	width := "auto (" + strconv.Itoa(GetScreenWidth(0)) + ")"
	if cfg.Width > 0 {
		width = strconv.Itoa(cfg.Width)
	}

	data := [][]string{
		{"enabled", strconv.FormatBool(cfg.Enabled)},
		{"log-threshold", formatDuration(cfg.LogThreshold)},
		{"width", width},
		{"red-threshold", formatDuration(cfg.RedThreshold)},
		{"yellow-threshold", formatDuration(cfg.YellowThreshold)},
		{"total-red-threshold", formatDuration(cfg.TotalRedThreshold)},
		{"total-yellow-threshold", formatDuration(cfg.TotalYellowThreshold)},
		{"round-to", formatDuration(cfg.RoundTo)},
		{"color", strconv.FormatBool(cfg.UseColors)},
		{"skip-status", formatCodes(cfg.SkipStatus)},
		{"hide-keys", orNone(strings.Join(cfg.HideKeys, ","))},
		{"output-file", orNone(cfg.OutputFile)},
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// formatDuration shows a duration in whole milliseconds.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%d ms", d.Milliseconds())
}

func formatCodes(codes []int) string {
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = strconv.Itoa(code)
	}
	return orNone(strings.Join(parts, ","))
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
