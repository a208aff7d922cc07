// Package ffmpeg wraps the ffmpeg executable for the three questions the
// pipeline asks of it: what channel layout a source has, how to encode one
// or two sources into a single output, and where silence starts.
//
// Every call shells out through exec.CommandContext; cancelling the context
// kills the child process. A binary that cannot be started surfaces as
// services.ErrToolMissing, a failed encode as services.ErrExternalTool.
package ffmpeg
