// Command simradio prepares GTA V radio audio for the simulated radio
// stations catalog.
//
// It resolves catalog tracks to extracted source files, transcodes them in
// parallel with ffmpeg, fills in unknown track durations using silence
// detection, and records every run in a local journal. Configuration is read
// from ~/.config/simradio/config.toml or ./simradio.toml.
package main
