// Package resolve maps symbolic catalog paths onto the source wave files of
// an extracted audio dump.
//
// Most assets were written under a hash of their logical name (see
// audiohash), some were renamed by hand, and a few stereo pairs were split
// into separate left/right mono files whose hashes do not follow the generic
// scheme at all. Resolution therefore happens in two steps:
//
//   - Generator turns a (directory, base name) pair into an ordered list of
//     candidate file names. Hand-verified exceptions from the Table win,
//     followed by the known naming conventions; the generic four-way hash
//     fallback runs last.
//   - Resolver probes the filesystem for each candidate and keeps the first
//     hit per candidate, capped at two sources per track.
//
// Nothing here caches results or treats a missing file as an error; a track
// with no hits is simply reported as missing.
package resolve
