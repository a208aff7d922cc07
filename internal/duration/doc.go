// Package duration estimates the audible length of encoded tracks and
// writes it back into catalog entries whose duration is still the -1
// sentinel.
//
// The audible length is the container duration minus trailing silence. Only
// the last few seconds are analysed: ffmpeg seeks to total-tail, runs
// silencedetect, and the last reported silence start (relative to the seek
// point) marks the end of audible content.
package duration
