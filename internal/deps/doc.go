// Package deps checks the external tools moviekit shells out to.
//
// A tool passes when its configured path resolves to an executable file and,
// for ffmpeg and ffprobe, when `<tool> -version` exits 0 and names the tool.
package deps
