// Package journal keeps an append-only SQLite record of the file operations
// moviekit performs: remuxes, renames, subtitle rewrites and previews.
//
// Every row carries the run id of the session that produced it, so a history
// listing can be matched against the log file. The store uses WAL mode with a
// busy timeout and retries writes that hit SQLITE_BUSY.
package journal
