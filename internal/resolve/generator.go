package resolve

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"simradio/internal/audiohash"
)

var (
	// Dual-mono DJ solos were split into hashed left/right halves.
	motomamiSoloRe = regexp.MustCompile(`^motomami_dj_solo_(\d{2})$`)
	// Optional free-text prefix, upper-cased into the literal name.
	takeoverSoloRe = regexp.MustCompile(`^(?:(.*?)_)?takeover_djsolo_(\d{2})$`)
	djSoloRe       = regexp.MustCompile(`^(?:(.*?)_)?djsolo_(\d{2})$`)
	// The "rls" infix was dropped from the hashed launch solo names.
	launchSoloRe     = regexp.MustCompile(`^dj_mono_solo_rls_launch_(\d{2})$`)
	postLaunchSoloRe = regexp.MustCompile(`^dj_mono_solo_rls_post_launch_(\d{2})$`)
)

// Generator produces ordered candidate names for symbolic tracks.
type Generator struct {
	table *Table
}

// NewGenerator returns a generator consulting table before any naming rule.
// A nil table disables the exception tier.
func NewGenerator(table *Table) *Generator {
	return &Generator{table: table}
}

// Generate returns the candidates for base in directory dir. The first rule
// that matches decides the result; the list is never empty.
func (g *Generator) Generate(dir, base string) []Candidate {
	if found := g.table.Lookup(dir, base); len(found) > 0 {
		return found
	}

	if m := motomamiSoloRe.FindStringSubmatch(base); m != nil {
		left := "dj_solo_" + m[1] + "_left"
		right := "dj_solo_" + m[1] + "_right"
		return []Candidate{
			{Original: left + audiohash.WaveExt, Hashed: audiohash.FileName(left)},
			{Original: right + audiohash.WaveExt, Hashed: audiohash.FileName(right)},
		}
	}

	if m := takeoverSoloRe.FindStringSubmatch(base); m != nil {
		return []Candidate{{Original: prefixed(m[1], "MONO_TAKEOVER_SOLO_"+m[2]) + audiohash.WaveExt}}
	}

	if m := djSoloRe.FindStringSubmatch(base); m != nil {
		return []Candidate{{Original: prefixed(m[1], "MONO_SOLO_"+m[2]) + audiohash.WaveExt}}
	}

	if m := launchSoloRe.FindStringSubmatch(base); m != nil {
		return []Candidate{hashedCandidate("dj_mono_solo_launch_" + m[1])}
	}

	if m := postLaunchSoloRe.FindStringSubmatch(base); m != nil {
		return []Candidate{hashedCandidate("dj_mono_solo_post_launch_" + m[1])}
	}

	return fallbackCandidates(base)
}

// fallbackCandidates covers names whose on-disk convention is unknown:
// a literal upper-case file, the hashed name, and hashed left/right halves.
func fallbackCandidates(base string) []Candidate {
	return []Candidate{
		{Original: upper(base) + audiohash.WaveExt},
		{Original: base, Hashed: audiohash.FileName(base)},
		{Original: base + "_left", Hashed: audiohash.FileName(base + "_left")},
		{Original: base + "_right", Hashed: audiohash.FileName(base + "_right")},
	}
}

func hashedCandidate(name string) Candidate {
	return Candidate{Original: name + audiohash.WaveExt, Hashed: audiohash.FileName(name)}
}

func prefixed(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return upper(prefix) + "_" + name
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}
