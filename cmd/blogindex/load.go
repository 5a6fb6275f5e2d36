package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sgx-labs/blogindex/internal/config"
	"github.com/sgx-labs/blogindex/internal/content"
	"github.com/sgx-labs/blogindex/internal/logger"
	"github.com/sgx-labs/blogindex/internal/site"
)

// newLogger returns the stderr logger, at debug level with --verbose.
func newLogger() *logger.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return logger.NewWithLevel(os.Stderr, level)
}

// newSource builds the filesystem source for cfg.
func newSource(cfg *config.Config, lg *logger.Logger) *content.Source {
	return content.NewSource(cfg.Site.ContentDir, content.Options{
		SkipDirs: cfg.Site.SkipDirs,
		Logger:   lg,
	})
}

// buildIndex reads every post under the configured content directory.
func buildIndex(cfg *config.Config, lg *logger.Logger) (*site.Index[content.Body], error) {
	start := time.Now()
	ix, err := site.Load[content.Body](newSource(cfg, lg), site.Options{Locale: cfg.Site.Locale})
	if err != nil {
		if errors.Is(err, content.ErrNoContentDir) {
			return nil, fmt.Errorf("%w (set --content or [site] content_dir in %s)",
				err, config.ConfigFilePath("."))
		}
		return nil, err
	}
	lg.IndexBuilt(ix.BuildID, len(ix.Posts), len(ix.Categories), len(ix.Tags), time.Since(start))
	return ix, nil
}

// loadIndex loads config and builds the index in one step.
func loadIndex() (*config.Config, *site.Index[content.Body], error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	lg := newLogger()
	if cfg.Display.Mode == "quiet" && !verbose {
		lg.SetLevel(log.WarnLevel)
	}
	ix, err := buildIndex(cfg, lg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, ix, nil
}
