package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/huangsam/chronometrist/internal/outwriter"
	"github.com/huangsam/chronometrist/internal/replay"
	"github.com/huangsam/chronometrist/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// renderCmd replays recorded traces and prints their timelines.
var renderCmd = &cobra.Command{
	Use:   "render <trace>...",
	Short: "Render the timeline of one or more recorded request traces",
	Long: `Replay request traces (YAML or JSON) and print the timeline each would
have produced when the request finished.

Each trace describes the request path, its final status, when it finished and
the stages recorded along the way:

  path: /orders?page=2
  status: 200
  finish_ms: 640
  events:
    - title: auth
      start_ms: 5
      end_ms: 40
    - title: query
      start_ms: 45
      end_ms: 600
      annotations: {table: orders}

The log threshold and skip rules apply as they would for a live request.
Use --force to print every trace regardless.

Examples:
  # Render a single trace
  chronometrist render trace.yaml

  # Render everything, narrow and without colors
  chronometrist render --force --width 60 --color no traces/*.yaml`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runRender(args, viper.GetBool("force")); err != nil {
			contract.LogFatal("Cannot render timeline", err)
		}
	},
}

// runRender replays every trace and writes all rendered lines at once.
func runRender(paths []string, force bool) error {
	var lines []string
	collect := func(line string) { lines = append(lines, line) }

	for _, path := range paths {
		tr, err := replay.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if force {
			out, err := replay.Render(tr, renderConfig(collect))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			lines = append(lines, out...)
			continue
		}

		state, err := replay.Replay(tr, renderConfig(collect))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if state != schema.RenderedState {
			_, _ = fmt.Fprintf(os.Stderr, "⏭️  %s: report %s\n", path, state)
		}
	}

	return outwriter.PrintReport(lines, cfg)
}
