package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"simradio/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose paths live in a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Catalog = filepath.Join(base, "new_sim_radio_stations.json")
	cfgVal.Paths.SourceDir = filepath.Join(base, "extracted")
	cfgVal.Paths.OutputDir = filepath.Join(base, "converted_m4a")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.JournalPath = filepath.Join(base, "journal.db")
	cfgVal.Conversion.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithoutJournal disables the run journal.
func WithoutJournal() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// WithExcludedDirs sets the excluded first path segments.
func WithExcludedDirs(dirs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.ExcludedDirs = append([]string(nil), dirs...)
	}
}

// WithStubbedBinaries writes stub executables that exit 0 for the provided
// names and prepends them to PATH. If names is empty, ffmpeg and ffprobe are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		for _, name := range names {
			writeStub(b, name, "exit 0\n")
		}
	}
}

// WithStubScript writes a shell stub with the given body, points the matching
// conversion binary at it when the name is ffmpeg or ffprobe, and prepends
// the stub directory to PATH.
func WithStubScript(name, body string) ConfigOption {
	return func(b *configBuilder) {
		target := writeStub(b, name, body)
		switch name {
		case "ffmpeg":
			b.cfg.Conversion.FFmpegBinary = target
		case "ffprobe":
			b.cfg.Conversion.FFprobeBinary = target
		}
	}
}

func writeStub(b *configBuilder, name, body string) string {
	b.t.Helper()
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		b.t.Fatalf("write stub %s: %v", name, err)
	}
	if !pathHasPrefix(binDir) {
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
	return target
}

func pathHasPrefix(dir string) bool {
	list := filepath.SplitList(os.Getenv("PATH"))
	return len(list) > 0 && list[0] == dir
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.JournalPath)
}
