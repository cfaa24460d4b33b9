package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Class is the kind of file a folder entry is treated as.
type Class int

const (
	ClassOther Class = iota
	ClassVideo
	ClassSubtitle
	ClassImage
)

func (c Class) String() string {
	switch c {
	case ClassVideo:
		return "video"
	case ClassSubtitle:
		return "subtitle"
	case ClassImage:
		return "image"
	default:
		return "other"
	}
}

// Extension sets, lower-case with leading dot.
var (
	VideoExtensions    = []string{".mkv", ".mp4", ".avi", ".m4v", ".mov", ".ts", ".webm"}
	SubtitleExtensions = []string{".srt", ".ass", ".ssa"}
	ImageExtensions    = []string{".jpg", ".jpeg", ".png"}
)

const (
	ExtSRT = ".srt"
	ExtASS = ".ass"
)

// Classify maps a file name onto a Class by extension, case-insensitively.
func Classify(name string) Class {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case contains(VideoExtensions, ext):
		return ClassVideo
	case contains(SubtitleExtensions, ext):
		return ClassSubtitle
	case contains(ImageExtensions, ext):
		return ClassImage
	default:
		return ClassOther
	}
}

// HasExt reports whether name ends in ext, ignoring case.
func HasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// Listing is one sorted scan of a folder. Entries hold absolute paths.
type Listing struct {
	Dir       string
	Videos    []string
	Subtitles []string
	Images    []string
	Other     []string
}

// Scan lists the regular files of dir, sorted by name and grouped by class.
// Subdirectories and hidden files are skipped.
func Scan(dir string) (Listing, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Listing{}, fmt.Errorf("scan library: empty folder")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, fmt.Errorf("scan library: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	listing := Listing{Dir: dir}
	for _, name := range names {
		path := filepath.Join(dir, name)
		switch Classify(name) {
		case ClassVideo:
			listing.Videos = append(listing.Videos, path)
		case ClassSubtitle:
			listing.Subtitles = append(listing.Subtitles, path)
		case ClassImage:
			listing.Images = append(listing.Images, path)
		default:
			listing.Other = append(listing.Other, path)
		}
	}
	return listing, nil
}

// FirstVideo returns the first video in name order.
func (l Listing) FirstVideo() (string, bool) {
	if len(l.Videos) == 0 {
		return "", false
	}
	return l.Videos[0], true
}

// IsSeries reports whether the folder holds more than one video. A single
// video is treated as a film.
func (l Listing) IsSeries() bool {
	return len(l.Videos) > 1
}

// SubtitlesWithExt returns the subtitles ending in ext.
func (l Listing) SubtitlesWithExt(ext string) []string {
	var out []string
	for _, path := range l.Subtitles {
		if HasExt(path, ext) {
			out = append(out, path)
		}
	}
	return out
}

// Count returns the number of classified files (videos, subtitles and images).
func (l Listing) Count() int {
	return len(l.Videos) + len(l.Subtitles) + len(l.Images)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
