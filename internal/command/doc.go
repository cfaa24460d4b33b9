// Package command runs external tools (ffmpeg, ffprobe) to completion,
// capturing their output and recording every invocation in the run log.
package command
