// Package stream turns the text form of `ffprobe -show_streams` into typed
// Stream records, partitions them by media class and builds the ffmpeg
// argument vectors that keep a selection of them.
package stream
