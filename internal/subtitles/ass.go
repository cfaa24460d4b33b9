package subtitles

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	sectionScriptInfo = "[Script Info]"
	sectionStyles     = "[V4+ Styles]"
	sectionStylesV4   = "[V4 Styles]"
	sectionEvents     = "[Events]"
)

// StyleFormat is the V4+ style column order used when writing.
var StyleFormat = []string{
	"Name", "Fontname", "Fontsize", "PrimaryColour", "SecondaryColour", "OutlineColour", "BackColour",
	"Bold", "Italic", "Underline", "StrikeOut", "ScaleX", "ScaleY", "Spacing", "Angle",
	"BorderStyle", "Outline", "Shadow", "Alignment", "MarginL", "MarginR", "MarginV", "Encoding",
}

// EventFormat is the event column order used when writing.
var EventFormat = []string{
	"Layer", "Start", "End", "Style", "Name", "MarginL", "MarginR", "MarginV", "Effect", "Text",
}

// InfoLine is one "Key: Value" pair of [Script Info], kept in file order.
type InfoLine struct {
	Key   string
	Value string
}

// Style is one line of [V4+ Styles]. Colours keep their &HAABBGGRR spelling.
type Style struct {
	Name            string
	Fontname        string
	Fontsize        float64
	PrimaryColour   string
	SecondaryColour string
	OutlineColour   string
	BackColour      string
	Bold            bool
	Italic          bool
	Underline       bool
	StrikeOut       bool
	ScaleX          float64
	ScaleY          float64
	Spacing         float64
	Angle           float64
	BorderStyle     int
	Outline         float64
	Shadow          float64
	Alignment       int
	MarginL         int
	MarginR         int
	MarginV         int
	Encoding        int
}

// Event is a Dialogue or Comment line of [Events].
type Event struct {
	Kind    string // "Dialogue" or "Comment"
	Layer   int
	Start   time.Duration
	End     time.Duration
	Style   string
	Name    string
	MarginL int
	MarginR int
	MarginV int
	Effect  string
	Text    string
}

// IsDialogue reports whether the event is shown on screen.
func (e Event) IsDialogue() bool {
	return e.Kind == "Dialogue"
}

// Section is any other block ([Fonts], [Graphics], ...), kept verbatim.
type Section struct {
	Name  string
	Lines []string
}

// Document is a parsed ASS script.
type Document struct {
	Info   []InfoLine
	Styles []Style
	Events []Event
	Extra  []Section
}

// InfoValue returns the value of a [Script Info] key.
func (d *Document) InfoValue(key string) (string, bool) {
	for _, line := range d.Info {
		if strings.EqualFold(line.Key, key) {
			return line.Value, true
		}
	}
	return "", false
}

// ParseASS parses an ASS/SSA script. Unknown sections are preserved, and
// malformed style or event lines fail with the offending line number.
func ParseASS(text string) (*Document, error) {
	text = strings.TrimPrefix(strings.ReplaceAll(text, "\r\n", "\n"), "\ufeff")
	doc := &Document{}
	section := ""
	var styleFormat, eventFormat []string
	var extra *Section

	for n, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			section = trimmed
			extra = nil
			if !isKnownSection(section) {
				doc.Extra = append(doc.Extra, Section{Name: section})
				extra = &doc.Extra[len(doc.Extra)-1]
			}
			continue
		}
		if extra != nil {
			if trimmed != "" {
				extra.Lines = append(extra.Lines, line)
			}
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch section {
		case sectionScriptInfo:
			doc.Info = append(doc.Info, InfoLine{Key: key, Value: value})
		case sectionStyles, sectionStylesV4:
			switch key {
			case "Format":
				styleFormat = splitFormat(value)
			case "Style":
				style, err := parseStyle(styleFormat, value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", n+1, err)
				}
				doc.Styles = append(doc.Styles, style)
			}
		case sectionEvents:
			switch key {
			case "Format":
				eventFormat = splitFormat(value)
			case "Dialogue", "Comment":
				event, err := parseEvent(eventFormat, key, value)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", n+1, err)
				}
				doc.Events = append(doc.Events, event)
			}
		}
	}
	return doc, nil
}

func isKnownSection(name string) bool {
	switch name {
	case sectionScriptInfo, sectionStyles, sectionStylesV4, sectionEvents:
		return true
	}
	return false
}

func splitFormat(value string) []string {
	fields := strings.Split(value, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func parseStyle(format []string, value string) (Style, error) {
	if len(format) == 0 {
		format = StyleFormat
	}
	values := strings.Split(value, ",")
	if len(values) < len(format) {
		return Style{}, fmt.Errorf("style has %d fields, format expects %d", len(values), len(format))
	}
	var s Style
	var err error
	for i, name := range format {
		field := strings.TrimSpace(values[i])
		switch strings.ToLower(name) {
		case "name":
			s.Name = field
		case "fontname":
			s.Fontname = field
		case "fontsize":
			s.Fontsize, err = parseFloat(name, field)
		case "primarycolour":
			s.PrimaryColour = field
		case "secondarycolour":
			s.SecondaryColour = field
		case "outlinecolour", "tertiarycolour":
			s.OutlineColour = field
		case "backcolour":
			s.BackColour = field
		case "bold":
			s.Bold = field != "0"
		case "italic":
			s.Italic = field != "0"
		case "underline":
			s.Underline = field != "0"
		case "strikeout":
			s.StrikeOut = field != "0"
		case "scalex":
			s.ScaleX, err = parseFloat(name, field)
		case "scaley":
			s.ScaleY, err = parseFloat(name, field)
		case "spacing":
			s.Spacing, err = parseFloat(name, field)
		case "angle":
			s.Angle, err = parseFloat(name, field)
		case "borderstyle":
			s.BorderStyle, err = parseInt(name, field)
		case "outline":
			s.Outline, err = parseFloat(name, field)
		case "shadow":
			s.Shadow, err = parseFloat(name, field)
		case "alignment":
			s.Alignment, err = parseInt(name, field)
		case "marginl":
			s.MarginL, err = parseInt(name, field)
		case "marginr":
			s.MarginR, err = parseInt(name, field)
		case "marginv":
			s.MarginV, err = parseInt(name, field)
		case "encoding":
			s.Encoding, err = parseInt(name, field)
		}
		if err != nil {
			return Style{}, fmt.Errorf("style %q: %w", s.Name, err)
		}
	}
	return s, nil
}

func parseEvent(format []string, kind, value string) (Event, error) {
	if len(format) == 0 {
		format = EventFormat
	}
	// Text is last and may itself contain commas.
	values := strings.SplitN(value, ",", len(format))
	if len(values) < len(format) {
		return Event{}, fmt.Errorf("%s has %d fields, format expects %d", kind, len(values), len(format))
	}
	e := Event{Kind: kind}
	var err error
	for i, name := range format {
		field := values[i]
		if !strings.EqualFold(name, "Text") {
			field = strings.TrimSpace(field)
		}
		switch strings.ToLower(name) {
		case "layer", "marked":
			if n, convErr := strconv.Atoi(strings.TrimPrefix(field, "Marked=")); convErr == nil {
				e.Layer = n
			}
		case "start":
			e.Start, err = parseClock(field, ".")
		case "end":
			e.End, err = parseClock(field, ".")
		case "style":
			e.Style = field
		case "name", "actor":
			e.Name = field
		case "marginl":
			e.MarginL, err = parseInt(name, field)
		case "marginr":
			e.MarginR, err = parseInt(name, field)
		case "marginv":
			e.MarginV, err = parseInt(name, field)
		case "effect":
			e.Effect = field
		case "text":
			e.Text = field
		}
		if err != nil {
			return Event{}, err
		}
	}
	return e, nil
}

func parseFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", name, value)
	}
	return f, nil
}

func parseInt(name, value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil {
			return 0, fmt.Errorf("%s: invalid integer %q", name, value)
		}
		n = int(f)
	}
	return n, nil
}
