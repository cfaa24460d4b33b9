// Package library enumerates the movies folder by file class.
//
// A Listing is a sorted snapshot of the folder's regular files split into
// videos, subtitles and images. The organizer takes a fresh listing before
// each batch operation, so renames and remuxes never rely on stale state.
package library
