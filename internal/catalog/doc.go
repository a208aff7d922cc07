// Package catalog reads and writes the radio station catalog document.
//
// A catalog is a JSON object whose "trackLists" array holds track lists, each
// an identifier plus an ordered sequence of tracks. A track either names an
// audio asset through its symbolic path or forward-references another track
// list by identifier. The package only understands the handful of fields the
// pipeline needs (ids, paths, durations); every other field is carried
// through a load/save cycle untouched so rewriting durations does not lose
// station metadata.
//
// Saves are atomic (temp file + rename) and callers that rewrite a catalog
// in place are expected to hold the advisory lock returned by Lock.
package catalog
