package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCatalog()
	c.normalizeConversion()
	c.normalizeLogging()
	return nil
}

// applyEnv fills unset values from the environment. Explicit config wins
// for binaries; directories from the environment override the defaults.
func (c *Config) applyEnv() {
	if value, ok := lookupEnv("FFMPEG_PATH"); ok && (c.Conversion.FFmpegBinary == "" || c.Conversion.FFmpegBinary == defaultFFmpegBinary) {
		c.Conversion.FFmpegBinary = value
	}
	if value, ok := lookupEnv("FFPROBE_PATH"); ok && (c.Conversion.FFprobeBinary == "" || c.Conversion.FFprobeBinary == defaultFFprobeBinary) {
		c.Conversion.FFprobeBinary = value
	}
	if value, ok := lookupEnv("SIMRADIO_SOURCE_DIR"); ok && (c.Paths.SourceDir == "" || c.Paths.SourceDir == defaultSourceDir) {
		c.Paths.SourceDir = value
	}
	if value, ok := lookupEnv("SIMRADIO_OUTPUT_DIR"); ok && (c.Paths.OutputDir == "" || c.Paths.OutputDir == defaultOutputDir) {
		c.Paths.OutputDir = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.Catalog, err = expandPath(strings.TrimSpace(c.Paths.Catalog)); err != nil {
		return fmt.Errorf("paths.catalog: %w", err)
	}
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.JournalPath) == "" {
		c.Paths.JournalPath = defaultJournalPath
	}
	if c.Paths.JournalPath, err = expandPath(strings.TrimSpace(c.Paths.JournalPath)); err != nil {
		return fmt.Errorf("paths.journal_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCatalog() {
	dirs := make([]string, 0, len(c.Catalog.ExcludedDirs))
	seen := make(map[string]struct{}, len(c.Catalog.ExcludedDirs))
	for _, dir := range c.Catalog.ExcludedDirs {
		dir = strings.Trim(strings.TrimSpace(dir), "/")
		if dir == "" {
			continue
		}
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	c.Catalog.ExcludedDirs = dirs
}

func (c *Config) normalizeConversion() {
	conv := &c.Conversion
	conv.FFmpegBinary = strings.TrimSpace(conv.FFmpegBinary)
	if conv.FFmpegBinary == "" {
		conv.FFmpegBinary = defaultFFmpegBinary
	}
	conv.FFprobeBinary = strings.TrimSpace(conv.FFprobeBinary)
	if conv.FFprobeBinary == "" {
		conv.FFprobeBinary = defaultFFprobeBinary
	}
	conv.Codec = strings.TrimSpace(conv.Codec)
	if conv.Codec == "" {
		conv.Codec = defaultCodec
	}
	conv.Extension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(conv.Extension)), ".")
	if conv.Extension == "" {
		conv.Extension = defaultExtension
	}
	conv.StereoBitrate = strings.ToLower(strings.TrimSpace(conv.StereoBitrate))
	if conv.StereoBitrate == "" {
		conv.StereoBitrate = defaultStereoBitrate
	}
	conv.MonoBitrate = strings.ToLower(strings.TrimSpace(conv.MonoBitrate))
	if conv.MonoBitrate == "" {
		conv.MonoBitrate = defaultMonoBitrate
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	if level == "warning" {
		level = "warn"
	}
	c.Logging.Level = level
}
