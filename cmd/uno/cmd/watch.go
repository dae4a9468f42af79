package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cursorcult/uno/internal/adapters/fsnotify"
	"github.com/cursorcult/uno/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-extract on file changes",
	Long:  "Watches the project tree and regenerates every configured domain whenever a source file changes.",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Domains) == 0 {
		return fmt.Errorf("no domains configured in %s (run: uno init)", app.ConfigFileNames[0])
	}

	root := projectRoot()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	g, cleanup := newGenerator(root, cfg)
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	regen := func(trigger string) {
		res, err := regenerateAll(ctx, g, cfg)
		if err != nil {
			logger.Error("regenerate failed", "trigger", trigger, "error", err)
			return
		}
		attrs := []any{"trigger", trigger, "output", cfg.Output}
		if res.Report.Overall {
			logger.Info("rule holds", attrs...)
		} else {
			logger.Warn("rule violated", append(attrs, "failing", res.Report.Failing())...)
		}
	}

	// Full pass up front so the document is fresh before the first event.
	regen("startup")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Stop()

	if err := w.Watch(root, func(path string) {
		select {
		case <-ctx.Done():
		default:
			regen(path)
		}
	}); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	logger.Info("watching", "root", root, "domains", cfg.DomainNames())
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}
