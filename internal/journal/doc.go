// Package journal records pipeline runs in SQLite.
//
// Each CLI invocation that touches media (convert, durations) opens a run,
// appends one outcome row per track and closes the run with its counts.
// The journal is write-mostly history for the history command; nothing read
// back from it influences resolution or conversion.
//
// Schema changes bump schemaVersion in schema.go; an older database must be
// deleted to adopt the new schema.
package journal
