// Package ffprobe runs ffprobe and decodes what it reports about audio files.
//
// Inspect returns the full stream and format listing as JSON-decoded
// structs; Duration asks only for the container duration and treats any
// diagnostic output as a failed probe.
package ffprobe
