package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCatalog = `{
  "version": 3,
  "trackLists": [
    {
      "id": "radio_13_jazz_music",
      "station": "WorldWide FM",
      "tracks": [
        {"id": "wwfm_p1", "path": "radio_13_jazz/wwfm_p1", "duration": -1, "markers": {"dj": [1.5, 2]}},
        {"id": "wwfm_p2", "path": "radio_13_jazz/wwfm_p2", "duration": 183.457},
        {"trackList": "radio_13_jazz_idents"}
      ]
    },
    {
      "id": "radio_13_jazz_idents",
      "tracks": [
        {"id": "id_01", "path": "radio_13_jazz/id_01", "title": "R&B <live>"}
      ]
    }
  ]
}`

func TestParseModelsKnownFields(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cat.TrackLists) != 2 {
		t.Fatalf("expected 2 track lists, got %d", len(cat.TrackLists))
	}
	first := cat.TrackLists[0]
	if first.ID != "radio_13_jazz_music" || len(first.Tracks) != 3 {
		t.Fatalf("unexpected first list: %+v", first)
	}
	if !first.Tracks[0].HasUnknownDuration() {
		t.Fatalf("expected sentinel duration on first track")
	}
	if first.Tracks[1].HasUnknownDuration() {
		t.Fatalf("expected known duration on second track")
	}
	if got, ok := first.Tracks[1].DurationSeconds(); !ok || got != 183.457 {
		t.Fatalf("unexpected duration %v (ok=%v)", got, ok)
	}
	if !first.Tracks[2].IsReference() || first.Tracks[2].TrackList != "radio_13_jazz_idents" {
		t.Fatalf("expected forward reference, got %+v", first.Tracks[2])
	}
	if got := len(cat.Tracks()); got != 3 {
		t.Fatalf("expected 3 asset tracks, got %d", got)
	}
}

func TestEncodePreservesUnknownFields(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cat.TrackLists[0].Tracks[0].SetDuration("172.5"); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	data, err := Encode(cat)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"version": 3`, `"station": "WorldWide FM"`, `"title": "R&B <live>"`, `"duration": 172.5`, `"duration": 183.457`, `"trackList": "radio_13_jazz_idents"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"duration": -1`) {
		t.Fatalf("expected sentinel to be replaced:\n%s", out)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if again.TrackLists[0].Tracks[0].Duration != "172.5" {
		t.Fatalf("unexpected duration after round trip: %q", again.TrackLists[0].Tracks[0].Duration)
	}
	if _, ok := again.TrackLists[0].Tracks[0].raw.values["markers"]; !ok {
		t.Fatalf("expected markers to survive round trip")
	}
}

func TestEncodeKeepsMemberOrderAndEmptyValues(t *testing.T) {
	const doc = `{"trackLists":[{"tracks":[{"title":"x","path":"a/b","id":"t1","duration":null},{"id":"","path":"a/c","duration":-1.0}],"id":"L"}],"version":1}`
	cat, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compact, err := cat.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(compact) != doc {
		t.Fatalf("round trip changed the document:\n got %s\nwant %s", compact, doc)
	}

	second := cat.TrackLists[0].Tracks[1]
	if !second.HasUnknownDuration() {
		t.Fatalf("expected -1.0 to read as the unknown sentinel")
	}
	if err := second.SetDuration("42.25"); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	first := cat.TrackLists[0].Tracks[0]
	if err := first.SetDuration("7"); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	compact, err = cat.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"trackLists":[{"tracks":[{"title":"x","path":"a/b","id":"t1","duration":7},{"id":"","path":"a/c","duration":42.25}],"id":"L"}],"version":1}`
	if string(compact) != want {
		t.Fatalf("unexpected encoding after update:\n got %s\nwant %s", compact, want)
	}
}

func TestEncodeAppendsNewMembers(t *testing.T) {
	cat, err := Parse([]byte(`{"trackLists":[{"id":"L","tracks":[{"path":"a/b","id":"t1"}]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := cat.TrackLists[0].Tracks[0].SetDuration("12.5"); err != nil {
		t.Fatalf("SetDuration: %v", err)
	}
	compact, err := cat.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"trackLists":[{"id":"L","tracks":[{"path":"a/b","id":"t1","duration":12.5}]}]}`
	if string(compact) != want {
		t.Fatalf("got %s, want %s", compact, want)
	}
}

func TestParseRejectsNonObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"x"`, `{"trackLists": {"id": "L"}}`} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("expected error for %s", doc)
		}
	}
}

func TestSetDurationRejectsNonNumeric(t *testing.T) {
	track := &Track{ID: "x"}
	if err := track.SetDuration("abc"); err == nil {
		t.Fatal("expected error for non-numeric duration")
	}
}

func TestSummaries(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	summaries := cat.Summaries([]string{"radio_13_jazz_music", "missing"})
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	got := summaries[0]
	if got.TrackCount != 3 {
		t.Fatalf("unexpected track count %d", got.TrackCount)
	}
	want := []string{"wwfm_p1", "wwfm_p2", "radio_13_jazz_idents (reference)"}
	if strings.Join(got.TrackIDs, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected ids %v", got.TrackIDs)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "catalog.json")
	cat, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := Save(path, cat); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.TrackLists) != 2 {
		t.Fatalf("unexpected list count %d", len(loaded.TrackLists))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	unlock, err := Lock(path)
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if _, err := Lock(path); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	unlockAgain, err := Lock(path)
	if err != nil {
		t.Fatalf("re-lock: %v", err)
	}
	_ = unlockAgain()
}
