package subtitles

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Encode renders the document in the canonical section order: script info,
// V4+ styles, events, then any preserved sections.
func (d *Document) Encode() string {
	var b strings.Builder
	b.WriteString(sectionScriptInfo + "\n")
	b.WriteString("; Script generated by moviekit\n")
	for _, line := range d.Info {
		fmt.Fprintf(&b, "%s: %s\n", line.Key, line.Value)
	}

	b.WriteString("\n" + sectionStyles + "\n")
	b.WriteString("Format: " + strings.Join(StyleFormat, ", ") + "\n")
	for _, s := range d.Styles {
		b.WriteString("Style: " + s.encode() + "\n")
	}

	b.WriteString("\n" + sectionEvents + "\n")
	b.WriteString("Format: " + strings.Join(EventFormat, ", ") + "\n")
	for _, e := range d.Events {
		b.WriteString(e.encode() + "\n")
	}

	for _, section := range d.Extra {
		b.WriteString("\n" + section.Name + "\n")
		for _, line := range section.Lines {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// WriteFile writes the encoded document as UTF-8, optionally with a BOM.
func (d *Document) WriteFile(path string, bom bool) error {
	var buf bytes.Buffer
	if bom {
		buf.Write(utf8BOM)
	}
	buf.WriteString(d.Encode())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write subtitle: %w", err)
	}
	return nil
}

func (s Style) encode() string {
	fields := []string{
		s.Name,
		s.Fontname,
		formatNumber(s.Fontsize),
		s.PrimaryColour,
		s.SecondaryColour,
		s.OutlineColour,
		s.BackColour,
		formatFlag(s.Bold),
		formatFlag(s.Italic),
		formatFlag(s.Underline),
		formatFlag(s.StrikeOut),
		formatNumber(s.ScaleX),
		formatNumber(s.ScaleY),
		formatNumber(s.Spacing),
		formatNumber(s.Angle),
		strconv.Itoa(s.BorderStyle),
		formatNumber(s.Outline),
		formatNumber(s.Shadow),
		strconv.Itoa(s.Alignment),
		strconv.Itoa(s.MarginL),
		strconv.Itoa(s.MarginR),
		strconv.Itoa(s.MarginV),
		strconv.Itoa(s.Encoding),
	}
	return strings.Join(fields, ",")
}

func (e Event) encode() string {
	kind := e.Kind
	if kind == "" {
		kind = "Dialogue"
	}
	return fmt.Sprintf("%s: %d,%s,%s,%s,%s,%d,%d,%d,%s,%s",
		kind, e.Layer, formatASSTime(e.Start), formatASSTime(e.End), e.Style, e.Name,
		e.MarginL, e.MarginR, e.MarginV, e.Effect, e.Text)
}

// formatFlag uses the ASS convention of -1 for true.
func formatFlag(v bool) string {
	if v {
		return "-1"
	}
	return "0"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
