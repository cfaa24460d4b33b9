// Package organizer runs the media-folder operations behind every command and
// menu entry: stream analysis, remuxing selected tracks, language tagging,
// episode renaming, subtitle extraction/conversion/purification/translation
// and poster previews.
//
// Every operation is a single pass over the configured movies folder. A file
// that fails is logged, journaled and skipped; the batch continues and the
// returned Report carries each outcome. External tools run through a
// command.Runner and locked files are retried by fileutil.Retrier.
//
// An Organizer caches the streams of the last analysed file. It is not safe
// for concurrent use; the CLI holds an instance lock so only one process
// touches a folder at a time.
package organizer
