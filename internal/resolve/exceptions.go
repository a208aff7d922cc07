package resolve

import (
	"fmt"
	"regexp"
)

// HashException pins a split stereo asset to the literal hashed names of its
// left and right halves. These were found by inspecting the dumps; the
// generic hash does not reproduce them.
type HashException struct {
	Dir   string
	Base  string
	Left  string
	Right string
}

// RenameException maps base names in one directory to a literal, unhashed
// file name. Pattern is matched against the whole base name and Replace is
// expanded with its submatches.
type RenameException struct {
	Dir     string
	Pattern string
	Replace string
	AltDir  string
}

type dirBase struct {
	dir  string
	base string
}

type renameRule struct {
	dir     string
	re      *regexp.Regexp
	replace string
	altDir  string
}

// Table is the immutable exception lookup consulted before any naming rule.
type Table struct {
	hashed  map[dirBase][2]string
	renames []renameRule
}

var hashedNameRe = regexp.MustCompile(`^0x[0-9A-F]{8}\.wav$`)

// NewTable validates and indexes the exception data.
func NewTable(hashes []HashException, renames []RenameException) (*Table, error) {
	t := &Table{hashed: make(map[dirBase][2]string, len(hashes))}
	for _, h := range hashes {
		key := dirBase{dir: h.Dir, base: h.Base}
		if _, dup := t.hashed[key]; dup {
			return nil, fmt.Errorf("duplicate hash exception %s/%s", h.Dir, h.Base)
		}
		for _, name := range []string{h.Left, h.Right} {
			if !hashedNameRe.MatchString(name) {
				return nil, fmt.Errorf("hash exception %s/%s: malformed hashed name %q", h.Dir, h.Base, name)
			}
		}
		t.hashed[key] = [2]string{h.Left, h.Right}
	}
	for _, r := range renames {
		re, err := regexp.Compile("^(?:" + r.Pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("rename exception %s %q: %w", r.Dir, r.Pattern, err)
		}
		if r.Replace == "" {
			return nil, fmt.Errorf("rename exception %s %q: empty replacement", r.Dir, r.Pattern)
		}
		t.renames = append(t.renames, renameRule{dir: r.Dir, re: re, replace: r.Replace, altDir: r.AltDir})
	}
	return t, nil
}

// Lookup returns the exception candidates for a track, or nil when the track
// has none. Hash exceptions win over renames. A rename rule whose directory
// matches but whose pattern does not is skipped, so such names fall through
// to the naming rules.
func (t *Table) Lookup(dir, base string) []Candidate {
	if t == nil {
		return nil
	}
	if pair, ok := t.hashed[dirBase{dir: dir, base: base}]; ok {
		return []Candidate{
			{Original: base + "_left.wav", Hashed: pair[0]},
			{Original: base + "_right.wav", Hashed: pair[1]},
		}
	}
	for _, rule := range t.renames {
		if rule.dir != dir || !rule.re.MatchString(base) {
			continue
		}
		return []Candidate{{
			Original: rule.re.ReplaceAllString(base, rule.replace),
			AltDir:   rule.altDir,
		}}
	}
	return nil
}

// Len reports the number of hash and rename exceptions.
func (t *Table) Len() (hashes, renames int) {
	if t == nil {
		return 0, 0
	}
	return len(t.hashed), len(t.renames)
}

// DefaultTable returns the exception data for the extracted station dumps.
func DefaultTable() *Table {
	t, err := NewTable(defaultHashExceptions, defaultRenameExceptions)
	if err != nil {
		panic(fmt.Sprintf("resolve: invalid built-in exception table: %v", err))
	}
	return t
}

var defaultHashExceptions = []HashException{
	{Dir: "dlc_update", Base: "tape_loop_alt", Left: "0x04A1DDBA.wav", Right: "0x185C7B1E.wav"},
	{Dir: "dlc_update", Base: "wwfm_p3_start", Left: "0x0A99A529.wav", Right: "0x02A4FDD0.wav"},
	{Dir: "radio_13_jazz", Base: "wwfm_p1", Left: "0x04A02233.wav", Right: "0x120DAFC1.wav"},
	{Dir: "radio_13_jazz", Base: "wwfm_p2", Left: "0x1EDECB2F.wav", Right: "0x117A33D2.wav"},
	{Dir: "radio_13_jazz", Base: "wwfm_p3", Left: "0x15ED4708.wav", Right: "0x032BC446.wav"},
	{Dir: "radio_13_jazz", Base: "wwfm_p4", Left: "0x1E4AFD9D.wav", Right: "0x1E66F1A0.wav"},
	{Dir: "radio_14_dance_02", Base: "flylo_part1", Left: "0x0A818E80.wav", Right: "0x17E2800E.wav"},
	{Dir: "radio_14_dance_02", Base: "flylo_part2", Left: "0x0339EC32.wav", Right: "0x08194D53.wav"},
}

var defaultRenameExceptions = []RenameException{
	{Dir: "radio_02_pop", Pattern: `circle_in_the_sand`, Replace: "circle_in_the_sand.wav", AltDir: "radio_01_class_rock"},
	{Dir: "radio_02_pop/intro", Pattern: `tell_to_my_heart_(\d{2})`, Replace: "tell_it_to_my_heart_${1}.wav"},
	{Dir: "radio_17_funk/intro", Pattern: `heart_beat_(\d{2})`, Replace: "heartbeat_${1}.wav"},
	{Dir: "radio_02_pop/intro", Pattern: `tape_loop_alt_(\d{2})`, Replace: "tape_loop_${1}.wav"},
}
