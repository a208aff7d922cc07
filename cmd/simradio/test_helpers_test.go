package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"simradio/internal/audiohash"
	"simradio/internal/config"
	"simradio/internal/testsupport"
)

const testCatalog = `{
  "version": 3,
  "trackLists": [
    {
      "id": "RADIO_01_CLASS_ROCK",
      "tracks": [
        {"id": "circle", "path": "radio_01_class_rock/circle_in_the_sand", "duration": -1},
        {"trackList": "RADIO_02_POP"}
      ]
    },
    {
      "id": "RADIO_02_POP",
      "tracks": [
        {"id": "circle_pair", "path": "radio_04_punk/circle_in_the_sand", "duration": 200.5},
        {"id": "gone", "path": "radio_03_hiphop_new/missing_track", "duration": -1},
        {"id": "excluded", "path": "radio_99_excluded/circle_in_the_sand", "duration": 12}
      ]
    }
  ]
}
`

// ffmpegStub answers the three ffmpeg invocations the pipeline makes:
// encoding (creates the output), silence detection, and bare inspection.
// Outputs under a path containing "fail_" exit with an encoder error.
const ffmpegStub = `last=""
for a in "$@"; do last="$a"; done
case "$*" in
  *-encoders*)
    echo " A....D libfdk_aac           Fraunhofer FDK AAC (codec aac)"
    exit 0;;
  *-c:a*)
    case "$last" in
      *fail_*) echo "Error initializing output stream" 1>&2; echo "Conversion failed!" 1>&2; exit 1;;
    esac
    : > "$last"
    exit 0;;
  *silencedetect*)
    echo "[silencedetect @ 0x55d0] silence_start: 5.5" 1>&2
    echo "[silencedetect @ 0x55d0] silence_end: 8 | silence_duration: 2.5" 1>&2
    exit 0;;
esac
echo "  Stream #0:0: Audio: pcm_s16le ([1][0][0][0] / 0x0001), 44100 Hz, stereo, s16, 1411 kb/s" 1>&2
echo "At least one output file must be specified" 1>&2
exit 1
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	opts = append([]testsupport.ConfigOption{
		testsupport.WithStubScript("ffmpeg", ffmpegStub),
		testsupport.WithStubScript("ffprobe", "echo 20.0\n"),
		testsupport.WithExcludedDirs("radio_99_excluded"),
	}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)

	testsupport.WriteText(t, cfg.Paths.Catalog, testCatalog)
	writeSource(t, cfg, "radio_01_class_rock", "circle_in_the_sand")
	writeSource(t, cfg, "radio_04_punk", "circle_in_the_sand_left")
	writeSource(t, cfg, "radio_04_punk", "circle_in_the_sand_right")
	writeSource(t, cfg, "radio_99_excluded", "circle_in_the_sand")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeSource(t *testing.T, cfg *config.Config, dir, name string) {
	t.Helper()
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.SourceDir, dir, audiohash.FileName(name)), 64)
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
