package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huangsam/chronometrist/internal/contract"
	"github.com/huangsam/chronometrist/internal/demo"
	"github.com/huangsam/chronometrist/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd runs the demo HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve demo endpoints and print a timeline for each request",
	Long: `Start an HTTP server whose requests are timed by the timeline middleware.

Endpoints:
  /fast        one quick stage
  /slow?ms=N   several stages spread over N milliseconds, one left open
  /fail        a failing upstream call (502)
  /stages      handler stages chained as middleware

Examples:
  chronometrist serve --addr :8080 --log-threshold 0
  curl localhost:8080/slow?ms=900`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runServe(viper.GetString("addr")); err != nil {
			contract.LogFatal("Cannot serve demo", err)
		}
	},
}

// runServe blocks until the server fails or an interrupt arrives.
func runServe(addr string) error {
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ow := outwriter.NewOutWriter(os.Stdout)
	srv := demo.New(addr, renderConfig(ow.Log))

	errCh := make(chan error, 1)
	go func() {
		_, _ = fmt.Fprintf(os.Stderr, "🚀 Serving demo endpoints on %s\n", addr)
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if demo.IsClosed(err) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ow.Err()
}
