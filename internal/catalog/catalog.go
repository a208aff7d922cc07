package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnknownDuration marks a track whose audible duration has not been computed yet.
const UnknownDuration = -1

// Catalog is the decoded catalog document.
type Catalog struct {
	TrackLists []*TrackList
	raw        *object
}

// TrackList groups tracks under a shared identifier.
type TrackList struct {
	ID     string
	Tracks []*Track
	raw    *object
}

// Track is a single catalog entry. Entries with a TrackList value reference
// another list instead of naming an asset.
type Track struct {
	ID        string
	TrackList string
	Path      string
	Duration  json.Number
	raw       *object
}

// IsReference reports whether the entry forward-references another track list.
func (t *Track) IsReference() bool {
	return t.TrackList != "" && t.ID == ""
}

// HasDuration reports whether the entry carries a duration field at all.
func (t *Track) HasDuration() bool {
	return t.Duration != ""
}

// DurationSeconds returns the stored duration.
func (t *Track) DurationSeconds() (float64, bool) {
	if t.Duration == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(t.Duration.String(), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// HasUnknownDuration reports whether the stored duration equals the sentinel.
func (t *Track) HasUnknownDuration() bool {
	value, ok := t.DurationSeconds()
	return ok && value == UnknownDuration
}

// SetDuration stores a pre-formatted numeric duration.
func (t *Track) SetDuration(formatted string) error {
	formatted = strings.TrimSpace(formatted)
	if _, err := strconv.ParseFloat(formatted, 64); err != nil {
		return fmt.Errorf("duration %q: %w", formatted, err)
	}
	t.Duration = json.Number(formatted)
	return nil
}

// Tracks returns every non-reference track in catalog order together with its list.
func (c *Catalog) Tracks() []ListedTrack {
	var out []ListedTrack
	for _, list := range c.TrackLists {
		for _, track := range list.Tracks {
			if track == nil || track.IsReference() {
				continue
			}
			out = append(out, ListedTrack{List: list, Track: track})
		}
	}
	return out
}

// ListedTrack pairs a track with its owning list.
type ListedTrack struct {
	List  *TrackList
	Track *Track
}

// ListSummary describes one track list for reporting.
type ListSummary struct {
	ID         string   `json:"id"`
	TrackCount int      `json:"track_count"`
	TrackIDs   []string `json:"tracks"`
}

// Summaries returns summaries for the requested list ids in catalog order.
// Reference entries are rendered as "<id> (reference)".
func (c *Catalog) Summaries(ids []string) []ListSummary {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[strings.TrimSpace(id)] = struct{}{}
	}
	var out []ListSummary
	for _, list := range c.TrackLists {
		if _, ok := wanted[list.ID]; !ok {
			continue
		}
		summary := ListSummary{ID: list.ID, TrackCount: len(list.Tracks)}
		for _, track := range list.Tracks {
			switch {
			case track.ID != "":
				summary.TrackIDs = append(summary.TrackIDs, track.ID)
			case track.TrackList != "":
				summary.TrackIDs = append(summary.TrackIDs, track.TrackList+" (reference)")
			}
		}
		out = append(out, summary)
	}
	return out
}

// UnmarshalJSON decodes the document while retaining every member and its order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	var lists []*TrackList
	if err := raw.take("trackLists", &lists); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	c.TrackLists = lists
	c.raw = raw
	return nil
}

// MarshalJSON encodes the document.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	lists := c.TrackLists
	if lists == nil {
		lists = []*TrackList{}
	}
	return encodeObject([]member{{"trackLists", lists, true}}, c.raw)
}

// UnmarshalJSON decodes a track list.
func (l *TrackList) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	if err := raw.take("id", &l.ID); err != nil {
		return err
	}
	if err := raw.take("tracks", &l.Tracks); err != nil {
		return fmt.Errorf("track list %q: %w", l.ID, err)
	}
	l.raw = raw
	return nil
}

// MarshalJSON encodes a track list.
func (l *TrackList) MarshalJSON() ([]byte, error) {
	tracks := l.Tracks
	if tracks == nil {
		tracks = []*Track{}
	}
	return encodeObject([]member{
		{"id", l.ID, l.ID != ""},
		{"tracks", tracks, true},
	}, l.raw)
}

// UnmarshalJSON decodes a track entry.
func (t *Track) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	for _, f := range []struct {
		key string
		dst any
	}{
		{"id", &t.ID},
		{"trackList", &t.TrackList},
		{"path", &t.Path},
		{"duration", &t.Duration},
	} {
		if err := raw.take(f.key, f.dst); err != nil {
			return err
		}
	}
	t.raw = raw
	return nil
}

// MarshalJSON encodes a track entry. Members keep their decoded order and
// empty values that were present in the source are written back unchanged.
func (t *Track) MarshalJSON() ([]byte, error) {
	return encodeObject([]member{
		{"id", t.ID, t.ID != ""},
		{"trackList", t.TrackList, t.TrackList != ""},
		{"path", t.Path, t.Path != ""},
		{"duration", t.Duration, t.Duration != ""},
	}, t.raw)
}
