package stream

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the codec_type reported by ffprobe for a stream.
type Kind string

const (
	KindUnset      Kind = ""
	KindVideo      Kind = "video"
	KindAudio      Kind = "audio"
	KindSubtitle   Kind = "subtitle"
	KindAttachment Kind = "attachment"
	KindData       Kind = "data"
)

// NoIndex marks a stream whose block carried no usable index.
const NoIndex = -1

// IsMedia reports whether k is one of the classes users select from.
func (k Kind) IsMedia() bool {
	switch k {
	case KindVideo, KindAudio, KindSubtitle:
		return true
	}
	return false
}

// Stream is one track inside a media container.
type Stream struct {
	Index     int
	Type      Kind
	CodecName string
	Tags      map[string]string
}

// HasIndex reports whether the probe supplied an index for s.
func (s Stream) HasIndex() bool {
	return s.Index >= 0
}

// Language returns the language tag, or "" when absent.
func (s Stream) Language() string {
	return s.Tags["language"]
}

// Title returns the title tag, or "" when absent.
func (s Stream) Title() string {
	return s.Tags["title"]
}

// Label returns the title or a synthesized "Track N" fallback.
func (s Stream) Label() string {
	if title := strings.TrimSpace(s.Title()); title != "" {
		return title
	}
	return fmt.Sprintf("Track %d", s.Index)
}

// String renders "{index}: ({language}) {title}".
func (s Stream) String() string {
	return fmt.Sprintf("%d: (%s) %s", s.Index, s.Language(), s.Label())
}

var blockPattern = regexp.MustCompile(`(?s)\[STREAM\](.*?)\[/STREAM\]`)

// Parse extracts every [STREAM] block from ffprobe -show_streams output.
// Blocks without a parsable index or codec_type are kept with those fields
// unset so callers can decide what to drop.
func Parse(output string) []Stream {
	matches := blockPattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return nil
	}
	streams := make([]Stream, 0, len(matches))
	for _, match := range matches {
		streams = append(streams, parseBlock(match[1]))
	}
	return streams
}

func parseBlock(block string) Stream {
	s := Stream{Index: NoIndex, Tags: map[string]string{}}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		switch {
		case key == "index":
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 0 {
				s.Index = n
			}
		case key == "codec_type":
			s.Type = Kind(strings.TrimSpace(value))
		case key == "codec_name":
			s.CodecName = strings.TrimSpace(value)
		case strings.HasPrefix(key, "TAG:"):
			s.Tags[strings.TrimPrefix(key, "TAG:")] = strings.TrimSpace(value)
		}
	}
	return s
}

// FilterMedia keeps indexed video, audio and subtitle streams in order.
func FilterMedia(streams []Stream) []Stream {
	var out []Stream
	for _, s := range streams {
		if s.HasIndex() && s.Type.IsMedia() {
			out = append(out, s)
		}
	}
	return out
}

// SeparateByType partitions streams by class, preserving relative order.
// Streams with an unset index or type land in none of the groups.
func SeparateByType(streams []Stream) (video, audio, subtitle []Stream) {
	for _, s := range streams {
		if !s.HasIndex() {
			continue
		}
		switch s.Type {
		case KindVideo:
			video = append(video, s)
		case KindAudio:
			audio = append(audio, s)
		case KindSubtitle:
			subtitle = append(subtitle, s)
		}
	}
	return video, audio, subtitle
}

// ErrUnknownStream is returned when a selection names an index the probed
// file does not have.
var ErrUnknownStream = errors.New("unknown stream index")

// Set indexes the streams of one probed file.
type Set struct {
	streams []Stream
	byIndex map[int]int
}

// NewSet builds a lookup over streams. Later duplicates of an index are ignored.
func NewSet(streams []Stream) Set {
	set := Set{
		streams: append([]Stream(nil), streams...),
		byIndex: make(map[int]int, len(streams)),
	}
	for i, s := range set.streams {
		if !s.HasIndex() {
			continue
		}
		if _, exists := set.byIndex[s.Index]; !exists {
			set.byIndex[s.Index] = i
		}
	}
	return set
}

// Streams returns the streams in probe order.
func (s Set) Streams() []Stream {
	return append([]Stream(nil), s.streams...)
}

// Len returns the number of streams in the set.
func (s Set) Len() int {
	return len(s.streams)
}

// Lookup returns the stream carrying index.
func (s Set) Lookup(index int) (Stream, bool) {
	pos, ok := s.byIndex[index]
	if !ok {
		return Stream{}, false
	}
	return s.streams[pos], true
}

// Has reports whether index exists in the set.
func (s Set) Has(index int) bool {
	_, ok := s.byIndex[index]
	return ok
}

// Selection is one chosen stream with an optional language override.
type Selection struct {
	Index    int
	Language string
}

// Selections wraps plain indices without language overrides.
func Selections(indices []int) []Selection {
	out := make([]Selection, len(indices))
	for i, idx := range indices {
		out[i] = Selection{Index: idx}
	}
	return out
}

// Validate checks that every selection names a stream in set.
func Validate(set Set, selections []Selection) error {
	for _, sel := range selections {
		if !set.Has(sel.Index) {
			return fmt.Errorf("%w: %d", ErrUnknownStream, sel.Index)
		}
	}
	return nil
}

// BuildRemuxArgs returns the ffmpeg arguments that keep only the selected
// streams, in selection order. The first selection of each class becomes that
// class's default track and the rest have their disposition cleared.
func BuildRemuxArgs(set Set, selections []Selection) ([]string, error) {
	if err := Validate(set, selections); err != nil {
		return nil, err
	}
	args := make([]string, 0, len(selections)*6)
	for _, sel := range selections {
		args = append(args, "-map", fmt.Sprintf("0:%d", sel.Index))
	}
	seen := make(map[Kind]bool, 3)
	for n, sel := range selections {
		s, _ := set.Lookup(sel.Index)
		if lang := strings.TrimSpace(sel.Language); lang != "" {
			args = append(args, fmt.Sprintf("-metadata:s:%d", n), "language="+lang)
		}
		if !s.Type.IsMedia() {
			continue
		}
		disposition := "0"
		if !seen[s.Type] {
			seen[s.Type] = true
			disposition = "default"
		}
		args = append(args, fmt.Sprintf("-disposition:%d", n), disposition)
	}
	return args, nil
}
