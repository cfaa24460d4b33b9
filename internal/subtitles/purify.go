package subtitles

import (
	"regexp"
	"strings"
)

var overrideTag = regexp.MustCompile(`\{[^}]*\}`)

// StripOverrides removes {...} override blocks and surrounding whitespace.
func StripOverrides(text string) string {
	return strings.TrimSpace(overrideTag.ReplaceAllString(text, ""))
}

// Purify rewrites doc in place into the house layout: the standard script
// info, exactly the Main and Signs styles, and plain event text. Events whose
// style starts with "Main" or "Default" become Main; everything else Signs.
func Purify(doc *Document, opts StyleOptions) *Document {
	doc.Info = standardInfo()
	doc.Styles = []Style{MainStyle(opts), SignsStyle(opts)}
	for i := range doc.Events {
		e := &doc.Events[i]
		e.Text = StripOverrides(e.Text)
		if strings.HasPrefix(e.Style, StyleMain) || strings.HasPrefix(e.Style, StyleDefault) {
			e.Style = StyleMain
		} else {
			e.Style = StyleSigns
		}
	}
	return doc
}
