package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	Catalog     string `toml:"catalog"`
	SourceDir   string `toml:"source_dir"`
	OutputDir   string `toml:"output_dir"`
	LogDir      string `toml:"log_dir"`
	JournalPath string `toml:"journal_path"`
}

// Catalog contains catalog traversal settings.
type Catalog struct {
	// ExcludedDirs lists first path segments whose tracks are not resolved.
	ExcludedDirs []string `toml:"excluded_dirs"`
}

// Conversion contains encoder settings.
type Conversion struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	Codec         string `toml:"codec"`
	Extension     string `toml:"extension"`
	StereoBitrate string `toml:"stereo_bitrate"`
	MonoBitrate   string `toml:"mono_bitrate"`
	Workers       int    `toml:"workers"`
	// Verify probes every encoded file and fails the job when the stream
	// layout does not match.
	Verify bool `toml:"verify"`
}

// Duration contains the silence analysis window.
type Duration struct {
	AnalysisTailSeconds float64 `toml:"analysis_tail_seconds"`
	SilenceThresholdDB  float64 `toml:"silence_threshold_db"`
	MinSilenceSeconds   float64 `toml:"min_silence_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Journal controls the run journal.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all configuration values for simradio.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Catalog    Catalog    `toml:"catalog"`
	Conversion Conversion `toml:"conversion"`
	Duration   Duration   `toml:"duration"`
	Logging    Logging    `toml:"logging"`
	Journal    Journal    `toml:"journal"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A .env file next to the config file or in the
// working directory seeds environment fallbacks without overriding the real environment.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(resolvedPath), ".env"), ".env"); err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func loadDotEnv(paths ...string) error {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, dup := seen[abs]; dup {
			continue
		}
		seen[abs] = struct{}{}
		if err := godotenv.Load(abs); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", abs, err)
		}
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LogFile returns the rotated log file path, or "" when file logging is off.
func (c *Config) LogFile() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "simradio.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
