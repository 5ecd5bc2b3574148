// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"sync"

	"github.com/huangsam/chronometrist/internal/contract"
)

// OutWriter writes report lines to an io.Writer, one per line.
// The first write error is kept and later lines are dropped.
type OutWriter struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

var _ contract.LineSink = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter(w io.Writer) *OutWriter {
	return &OutWriter{w: w}
}

// WriteLine implements the LineSink interface.
func (ow *OutWriter) WriteLine(line string) {
	ow.mu.Lock()
	defer ow.mu.Unlock()
	if ow.err != nil {
		return
	}
	if _, err := fmt.Fprintln(ow.w, line); err != nil {
		ow.err = fmt.Errorf("error writing report line: %w", err)
	}
}

// Log adapts the writer to the func(string) shape used by core.Config.
func (ow *OutWriter) Log(line string) {
	ow.WriteLine(line)
}

// Err returns the first write error, if any.
func (ow *OutWriter) Err() error {
	ow.mu.Lock()
	defer ow.mu.Unlock()
	return ow.err
}

// WriteReport writes every line through the sink in order.
func WriteReport(sink contract.LineSink, lines []string) {
	for _, line := range lines {
		sink.WriteLine(line)
	}
}

// PrintReport writes the report lines to stdout or the configured output file.
func PrintReport(lines []string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		ow := NewOutWriter(w)
		WriteReport(ow, lines)
		return ow.Err()
	}, "Wrote report")
}
