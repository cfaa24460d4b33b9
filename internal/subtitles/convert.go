package subtitles

import (
	"regexp"
	"strings"
)

var (
	srtFormatTag = regexp.MustCompile(`(?i)<(/?)([ibus])>`)
	srtOtherTag  = regexp.MustCompile(`<[^>]*>`)
)

// FromSRT builds an ASS document with one Default style and a Dialogue
// event per cue. Basic SubRip markup (<i>, <b>, <u>, <s>) becomes the
// matching override tag; other HTML-like tags are dropped.
func FromSRT(cues []Cue, opts StyleOptions) *Document {
	style := MainStyle(opts)
	style.Name = StyleDefault
	style.Bold = false

	doc := &Document{
		Info:   standardInfo(),
		Styles: []Style{style},
		Events: make([]Event, 0, len(cues)),
	}
	for _, cue := range cues {
		doc.Events = append(doc.Events, Event{
			Kind:  "Dialogue",
			Start: cue.Start,
			End:   cue.End,
			Style: StyleDefault,
			Text:  srtLinesToASS(cue.Lines),
		})
	}
	return doc
}

func srtLinesToASS(lines []string) string {
	text := strings.Join(lines, `\N`)
	text = srtFormatTag.ReplaceAllStringFunc(text, func(tag string) string {
		m := srtFormatTag.FindStringSubmatch(tag)
		state := "1"
		if m[1] == "/" {
			state = "0"
		}
		return `{\` + strings.ToLower(m[2]) + state + `}`
	})
	return srtOtherTag.ReplaceAllString(text, "")
}
