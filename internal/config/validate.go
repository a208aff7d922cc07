package config

import (
	"errors"
	"fmt"
	"regexp"
)

var bitrateRe = regexp.MustCompile(`^[1-9][0-9]*k?$`)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateDuration(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.Catalog == "" {
		return errors.New("paths.catalog must be set")
	}
	if c.Paths.SourceDir == "" {
		return errors.New("paths.source_dir must be set (or SIMRADIO_SOURCE_DIR)")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set (or SIMRADIO_OUTPUT_DIR)")
	}
	if c.Paths.SourceDir == c.Paths.OutputDir {
		return fmt.Errorf("paths.output_dir must differ from paths.source_dir (%s)", c.Paths.SourceDir)
	}
	if c.Journal.Enabled && c.Paths.JournalPath == "" {
		return errors.New("paths.journal_path must be set when the journal is enabled")
	}
	return nil
}

func (c *Config) validateConversion() error {
	if c.Conversion.Workers <= 0 {
		return errors.New("conversion.workers must be positive")
	}
	if !bitrateRe.MatchString(c.Conversion.StereoBitrate) {
		return fmt.Errorf("conversion.stereo_bitrate %q is not a bitrate like 192k", c.Conversion.StereoBitrate)
	}
	if !bitrateRe.MatchString(c.Conversion.MonoBitrate) {
		return fmt.Errorf("conversion.mono_bitrate %q is not a bitrate like 128k", c.Conversion.MonoBitrate)
	}
	return nil
}

func (c *Config) validateDuration() error {
	if c.Duration.AnalysisTailSeconds <= 0 {
		return errors.New("duration.analysis_tail_seconds must be positive")
	}
	if c.Duration.SilenceThresholdDB >= 0 {
		return errors.New("duration.silence_threshold_db must be negative")
	}
	if c.Duration.MinSilenceSeconds <= 0 {
		return errors.New("duration.min_silence_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn or error", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must not be negative")
	}
	return nil
}
