package logging

import (
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
)

type infoField struct {
	label string
	value string
}

var infoHighlightKeys = []string{
	FieldAlert,
	FieldEventType,
	FieldFailure,
	"path",
	"source",
	"destination",
	"layout",
	"bitrate",
	"duration",
	"candidates",
	"found",
	"missing",
	"skipped",
	"checked",
	"jobs",
	"workers",
	"succeeded",
	"failed",
	"pending",
	"updated",
	"output_bytes",
	"elapsed",
	FieldErrorHint,
	"error",
}

// selectInfoFields returns formatted info-level fields and a count of hidden entries.
// Highlighted keys come first in a fixed order, the rest keep record order.
func selectInfoFields(attrs []kv) ([]infoField, int) {
	if len(attrs) == 0 {
		return nil, 0
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, len(attrs))
	hidden := 0

	add := func(idx int) {
		used[idx] = true
		attr := attrs[idx]
		if skipInfoKey(attr.key) {
			return
		}
		if isDebugOnlyKey(attr.key) {
			hidden++
			return
		}
		value := formatValueForKey(attr.key, attr.value)
		if shouldHideInfoValue(attr.key, value) {
			hidden++
			return
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: value})
	}

	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				add(idx)
				break
			}
		}
	}
	for idx := range attrs {
		if !used[idx] {
			add(idx)
		}
	}
	return result, hidden
}

// formatValueForKey applies friendlier formatting based on the key name.
func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	switch {
	case isByteSizeKey(key) && v.Kind() == slog.KindInt64 && v.Int64() >= 0:
		return humanize.Bytes(uint64(v.Int64()))
	case isByteSizeKey(key) && v.Kind() == slog.KindUint64:
		return humanize.Bytes(v.Uint64())
	case v.Kind() == slog.KindDuration:
		return formatElapsed(v.Duration())
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	value := formatValue(v)
	if key == "error" {
		value = truncateErrorValue(value)
	}
	return value
}

func isByteSizeKey(key string) bool {
	return strings.HasSuffix(key, "_bytes") || key == "size"
}

func truncateErrorValue(value string) string {
	value = strings.TrimSpace(value)
	const maxLen = 240
	if len(value) > maxLen {
		value = value[:maxLen] + "…"
	}
	return value
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldTrackID, FieldStage, FieldComponent:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case FieldRunID, FieldTrackListID, "args", "stderr":
		return true
	}
	return strings.HasPrefix(key, "ffprobe.")
}

func shouldHideInfoValue(key, value string) bool {
	switch key {
	case "error", "path", "source", "destination":
		return false
	}
	return len(value) > 120
}

func displayLabel(key string) string {
	switch key {
	case FieldAlert:
		return "Alert"
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case "output_bytes":
		return "Output"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = capitalizeASCII(part)
	}
	return strings.Join(parts, " ")
}

func capitalizeASCII(value string) string {
	switch len(value) {
	case 0:
		return ""
	case 1:
		return strings.ToUpper(value)
	default:
		lower := strings.ToLower(value)
		return strings.ToUpper(lower[:1]) + lower[1:]
	}
}
