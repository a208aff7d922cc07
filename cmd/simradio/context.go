package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"simradio/internal/config"
	"simradio/internal/journal"
	"simradio/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger    *slog.Logger
	logCloser io.Closer
	journal   *journal.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the process logger once. Console output goes to the
// command's stderr so stdout stays clean for reports and JSON.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	c.logger = logger
	c.logCloser = closer
	return logger, nil
}

// openJournal returns the run journal, or nil when journaling is disabled.
func (c *commandContext) openJournal(ctx context.Context) (*journal.Store, error) {
	if c.journal != nil {
		return c.journal, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	store, err := journal.Open(ctx, cfg.Paths.JournalPath)
	if err != nil {
		return nil, err
	}
	c.journal = store
	return store, nil
}

// close releases the journal and log file.
func (c *commandContext) close() error {
	var errs []error
	if c.journal != nil {
		errs = append(errs, c.journal.Close())
		c.journal = nil
	}
	if c.logCloser != nil {
		errs = append(errs, c.logCloser.Close())
		c.logCloser = nil
	}
	c.logger = nil
	return errors.Join(errs...)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
