// Package transcode turns resolved tracks into encoded output files.
//
// PlanJobs mirrors each track's symbolic path under the output directory and
// creates every destination directory up front. Orchestrator.Run then feeds
// the jobs to a fixed pool of workers; each worker picks the bitrate from the
// source layout (two sources are always merged to stereo) and asks the
// Converter to encode. Outcomes stream back in completion order and a
// failing job never stops its siblings.
package transcode
