package audiohash

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameMask keeps the low 29 bits; the asset tooling reserves the top three.
const nameMask uint32 = 0x1FFFFFFF

// WaveExt is the extension carried by every hashed source file.
const WaveExt = ".wav"

// Sum32 returns the one-at-a-time hash of the lower-cased name.
func Sum32(name string) uint32 {
	var h uint32
	for _, r := range lower(name) {
		h += uint32(r)
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// Name renders the masked hash as "0x" followed by eight upper-case hex digits.
func Name(name string) string {
	return fmt.Sprintf("0x%08X", Sum32(name)&nameMask)
}

// FileName returns the on-disk wave file name for a logical name.
func FileName(name string) string {
	return Name(name) + WaveExt
}

// Caser values are not safe for concurrent use, so one is built per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
