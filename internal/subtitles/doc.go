// Package subtitles reads, converts and rewrites text subtitles.
//
// Supported formats are SubRip (.srt) and Advanced SubStation Alpha (.ass).
// Files of unknown encoding are sniffed with chardet and decoded through
// x/text before parsing; everything written back is UTF-8.
//
// Main entry points:
//   - ReadText: load a file and decode it to UTF-8
//   - ParseSRT / ParseASS: build the in-memory cue lists
//   - FromSRT: convert SubRip cues into an ASS document
//   - StyleCounts: dialogue events per style, most used first
//   - Purify: reset script info and collapse styles into Main and Signs
//   - (*Document).Encode / WriteFile: emit the canonical ASS layout
package subtitles
