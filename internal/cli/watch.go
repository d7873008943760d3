package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/voice-minutes/internal/config"
	"github.com/nguyentantai21042004/voice-minutes/internal/watcher"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Generate minutes for every transcript dropped into the inbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			log := deps.Logger

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := ensureDirectories(cfg); err != nil {
				return err
			}

			proc, err := deps.newProcessor()
			if err != nil {
				return err
			}

			w, err := watcher.New(cfg.Paths.Inbox, proc.ProcessFile, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Stop()

			log.Info(ctx, "========================================")
			log.Info(ctx, "Minutes watcher is ready (%s/%s)", runtime.GOOS, runtime.GOARCH)
			log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
			log.Info(ctx, "Output: %s (%s)", cfg.Document.OutputDir, cfg.Document.Format)
			log.Info(ctx, "Press Ctrl+C to stop")
			log.Info(ctx, "========================================")

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("watcher: %w", err)
			}

			log.Info(context.Background(), "Minutes watcher stopped")
			return nil
		},
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Archived,
		cfg.Document.OutputDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
