package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/blogindex/internal/cli"
	"github.com/sgx-labs/blogindex/internal/config"
	"github.com/sgx-labs/blogindex/internal/logger"
	"github.com/sgx-labs/blogindex/internal/watcher"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the index whenever a post changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx)
		},
	}
}

func runWatch(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	lg := newLogger()

	// Initial build; a missing content dir is fatal here, later it is not.
	if _, err := rebuild(cfg, lg); err != nil {
		return err
	}

	src := newSource(cfg, lg)
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to stop.")
	return watcher.Watch(ctx, cfg.Site.ContentDir, watcher.Options{
		Skip:   src.Skip,
		Logger: lg,
		OnChange: func(paths []string) {
			lg.Debug("rebuilding", "changed", len(paths))
			if _, err := rebuild(cfg, lg); err != nil {
				lg.Error("rebuild failed", "error", err)
			}
		},
	})
}

// rebuild builds a fresh index and prints a one-line summary.
func rebuild(cfg *config.Config, lg *logger.Logger) (string, error) {
	ix, err := buildIndex(cfg, lg)
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf("%s %s, %s, %s",
		ix.BuiltAt.Local().Format("15:04:05"),
		cli.Plural(len(ix.Posts), "post"),
		cli.Plural(len(ix.Categories), "category"),
		cli.Plural(len(ix.Tags), "tag"))
	fmt.Println(line)
	return line, nil
}
