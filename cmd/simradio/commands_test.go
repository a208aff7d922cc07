package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"simradio/internal/catalog"
	"simradio/internal/testsupport"
)

func TestHashCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"hash", "circle_in_the_sand", "DJ_SOLO_07_LEFT"}, "")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	want := "'circle_in_the_sand': 0x1B278B56\n'DJ_SOLO_07_LEFT': 0x1B88AD3E\n"
	if out != want {
		t.Fatalf("hash output = %q, want %q", out, want)
	}
}

func TestCheckCommandSummary(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Checked 3 tracks. Found: 2, Missing: 1\n")
	requireContains(t, out, "Skipped 1 tracks (excluded directories)\n")
	requireContains(t, out, "missing")
	requireContains(t, out, "merge")
	if strings.Contains(out, "radio_99_excluded") {
		t.Fatalf("excluded track should not be listed: %s", out)
	}
}

func TestCheckCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("check --json: %v", err)
	}
	var results []struct {
		ID        string   `json:"id"`
		Path      string   `json:"original_path"`
		Found     []string `json:"src_audio"`
		Originals []string `json:"original_filenames"`
	}
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	pair := results[1]
	if pair.ID != "circle_pair" || len(pair.Found) != 2 {
		t.Fatalf("unexpected merge result %+v", pair)
	}
	if filepath.Base(pair.Found[0]) != "0x0055B394.wav" || filepath.Base(pair.Found[1]) != "0x0CE86FF1.wav" {
		t.Fatalf("expected left then right sources, got %v", pair.Found)
	}
	if pair.Originals[0] != "circle_in_the_sand_left" {
		t.Fatalf("unexpected originals %v", pair.Originals)
	}
}

func TestConvertAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"convert", "--no-progress"}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, out)
	}
	requireContains(t, out, "Checked 3 tracks. Found: 2, Missing: 1")
	requireContains(t, out, "OK    circle → ")
	requireContains(t, out, "(stereo, 192k)")
	requireContains(t, out, "Converted 2 tracks. Failed: 0, Missing: 1")

	for _, rel := range []string{
		"radio_01_class_rock/circle_in_the_sand.m4a",
		"radio_04_punk/circle_in_the_sand.m4a",
	} {
		if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, rel)); err != nil {
			t.Fatalf("expected converted file %s: %v", rel, err)
		}
	}

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []struct {
		ID        string `json:"id"`
		Command   string `json:"command"`
		Succeeded int    `json:"succeeded"`
		Skipped   int    `json:"skipped"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode history: %v\n%s", err, out)
	}
	if len(runs) != 1 || runs[0].Command != "convert" || runs[0].Succeeded != 2 || runs[0].Skipped != 1 {
		t.Fatalf("unexpected runs %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history", runs[0].ID}, env.configPath)
	if err != nil {
		t.Fatalf("history run: %v", err)
	}
	requireContains(t, out, "2 converted, 0 failed, 1 missing")
	requireContains(t, out, "gone")
}

func TestConvertReportsToolErrors(t *testing.T) {
	env := setupCLITestEnv(t)
	broken := strings.Replace(testCatalog,
		`{"trackList": "RADIO_02_POP"}`,
		`{"id": "broken", "path": "radio_05_fail_zone/circle_in_the_sand", "duration": -1}`, 1)
	testsupport.WriteText(t, env.cfg.Paths.Catalog, broken)
	writeSource(t, env.cfg, "radio_05_fail_zone", "circle_in_the_sand")

	out, _, err := runCLI(t, []string{"convert", "--no-progress"}, env.configPath)
	if !errors.Is(err, errRunFailures) {
		t.Fatalf("expected run failure error, got %v", err)
	}
	requireContains(t, out, "ERROR broken [tool_failure]")
	requireContains(t, out, "Conversion failed!")
	requireContains(t, out, "Converted 2 tracks. Failed: 1, Missing: 1")
}

func TestDurationsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.OutputDir, "radio_01_class_rock", "circle_in_the_sand.m4a"), 32)

	out, _, err := runCLI(t, []string{"durations"}, env.configPath)
	if err != nil {
		t.Fatalf("durations: %v\n%s", err, out)
	}
	requireContains(t, out, "OK    circle 17.5s")
	requireContains(t, out, "WARN  gone skipped: audio file not found")
	requireContains(t, out, "Unknown durations: 2. Updated: 1, Skipped: 1, Failed: 0")

	cat, err := catalog.Load(env.cfg.Paths.Catalog)
	if err != nil {
		t.Fatalf("reload catalog: %v", err)
	}
	durations := map[string]string{}
	for _, lt := range cat.Tracks() {
		durations[lt.Track.ID] = lt.Track.Duration.String()
	}
	if durations["circle"] != "17.5" || durations["gone"] != "-1" || durations["circle_pair"] != "200.5" {
		t.Fatalf("unexpected durations %v", durations)
	}
	requireContains(t, testsupport.ReadText(t, env.cfg.Paths.Catalog), `"version"`)

	// A second pass has nothing left to measure.
	out, _, err = runCLI(t, []string{"durations"}, env.configPath)
	if err != nil {
		t.Fatalf("second durations pass: %v", err)
	}
	requireContains(t, out, "Updated: 0")
}

func TestDurationsRefusesLockedCatalog(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutJournal())
	unlock, err := catalog.Lock(env.cfg.Paths.Catalog)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	_, _, err = runCLI(t, []string{"durations"}, env.configPath)
	if !errors.Is(err, catalog.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestTrackListsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"tracklists", "RADIO_01_CLASS_ROCK"}, env.configPath)
	if err != nil {
		t.Fatalf("tracklists: %v", err)
	}
	requireContains(t, out, "RADIO_01_CLASS_ROCK")
	requireContains(t, out, "RADIO_02_POP (reference)")

	if _, _, err := runCLI(t, []string{"tracklists", "NOPE"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown track list")
	}
}

func TestDepsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps: %v\n%s", err, out)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "FFmpeg:")
	requireContains(t, out, "Encoder libfdk_aac:")
	if strings.Contains(out, "[ERROR]") {
		t.Fatalf("expected all dependencies ready, got:\n%s", out)
	}
}

func TestHistoryDisabledJournal(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutJournal())
	if _, _, err := runCLI(t, []string{"history"}, env.configPath); err == nil {
		t.Fatal("expected error when the journal is disabled")
	}
}
