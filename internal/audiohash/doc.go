// Package audiohash reproduces the one-way name hash used by the extracted
// game audio assets.
//
// Source banks store most waves under the Jenkins one-at-a-time hash of their
// lower-cased logical name, truncated to 29 bits and rendered as an
// upper-case hex token ("0x1A2B6A28"). The functions here are pure and safe
// for concurrent use.
package audiohash
