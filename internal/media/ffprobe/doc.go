// Package ffprobe inspects media files with `ffprobe -show_streams`.
//
// Key types:
//   - Prober: runs ffprobe through a command.Runner, writes the raw dump to a
//     timestamped probe log and caches results per path, size and mtime
//   - Result: the raw output plus the parsed stream list
//
// Parsing itself lives in the stream package.
package ffprobe
