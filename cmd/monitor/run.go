package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"notes-reviewer/internal/bootstrap"
	"notes-reviewer/internal/config"

	"github.com/spf13/cobra"
)

var notifyContext = signal.NotifyContext

// shutdownContext is cancelled by the first SIGINT or SIGTERM. The handler is released right
// away, so a second signal terminates the process even while a file is still in flight.
func shutdownContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stop := notifyContext(parent, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll the folder until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := shutdownContext(cmd.Context())
			defer stop()

			container, err := bootstrap.NewContainer(ctx, config.Load())
			if err != nil {
				return err
			}
			defer func() { _ = container.Logger.Sync() }()

			if err := container.MonitorService.Run(ctx); err != nil {
				container.Logger.Error("Monitor", "Monitor stopped", map[string]interface{}{"error": err})
				return err
			}
			container.Logger.Info("Monitor", "Exiting monitor.", nil)
			return nil
		},
	}
}

func newOnceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single poll cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := shutdownContext(cmd.Context())
			defer stop()

			container, err := bootstrap.NewContainer(ctx, config.Load())
			if err != nil {
				return err
			}
			defer func() { _ = container.Logger.Sync() }()

			report, err := container.MonitorService.RunOnce(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cycle %s: listed=%d new=%d processed=%d failed=%d\n",
				report.CycleID, report.Listed, report.New, report.Processed, report.Failed)
			return nil
		},
	}
}
