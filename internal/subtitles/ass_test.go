package subtitles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleASS = `[Script Info]
; comment line
Title: Demo
ScriptType: v4.00+
PlayResX: 1920

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Verdana,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,-1,0,0,0,100,100,0,0,1,2,1,2,10,10,20,1
Style: Main-Italic,Verdana,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,-1,0,0,100,100,0,0,1,2,1,2,10,10,20,1
Style: OP,Impact,30,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,1,8,10,10,20,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:02.50,Default,,0,0,0,,{\i1}Hello, world{\i0}
Dialogue: 0,0:00:03.00,0:00:04.00,Main-Italic,Bob,0,0,0,,Second
Dialogue: 1,0:00:05.00,0:00:06.00,OP,,0,0,0,,{\pos(10,10)}Sign
Comment: 0,0:00:07.00,0:00:08.00,Default,,0,0,0,,note
Dialogue: 0,0:00:09.00,0:00:10.00,Default,,0,0,0,,Third

[Fonts]
fontname: x.ttf
abc
`

func mustParseASS(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := ParseASS(text)
	if err != nil {
		t.Fatalf("ParseASS: %v", err)
	}
	return doc
}

func TestParseASS(t *testing.T) {
	doc := mustParseASS(t, strings.ReplaceAll(sampleASS, "\n", "\r\n"))

	if title, ok := doc.InfoValue("title"); !ok || title != "Demo" {
		t.Fatalf("Title = %q, %v", title, ok)
	}
	if len(doc.Info) != 3 {
		t.Fatalf("expected comments to be skipped, got %+v", doc.Info)
	}
	if len(doc.Styles) != 3 {
		t.Fatalf("expected 3 styles, got %d", len(doc.Styles))
	}
	def := doc.Styles[0]
	if def.Name != "Default" || def.Fontname != "Verdana" || def.Fontsize != 48 || !def.Bold || def.MarginV != 20 || def.Encoding != 1 {
		t.Fatalf("unexpected default style %+v", def)
	}
	if !doc.Styles[1].Italic || doc.Styles[2].Alignment != 8 {
		t.Fatalf("unexpected styles %+v", doc.Styles)
	}

	if len(doc.Events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(doc.Events))
	}
	first := doc.Events[0]
	if first.Text != `{\i1}Hello, world{\i0}` || first.Start != time.Second || first.End != 2500*time.Millisecond {
		t.Fatalf("unexpected first event %+v", first)
	}
	if doc.Events[1].Name != "Bob" || doc.Events[2].Layer != 1 || doc.Events[3].IsDialogue() {
		t.Fatalf("unexpected events %+v", doc.Events)
	}
	if len(doc.Extra) != 1 || doc.Extra[0].Name != "[Fonts]" || len(doc.Extra[0].Lines) != 2 {
		t.Fatalf("unexpected extra sections %+v", doc.Extra)
	}
}

func TestParseASSRejectsShortEvent(t *testing.T) {
	text := "[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\nDialogue: 0,0:00:01.00,Default\n"
	if _, err := ParseASS(text); err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line-numbered error, got %v", err)
	}
}

func TestStyleCounts(t *testing.T) {
	counts := StyleCounts(mustParseASS(t, sampleASS))
	want := []StyleCount{{"Default", 2}, {"Main-Italic", 1}, {"OP", 1}}
	if len(counts) != len(want) {
		t.Fatalf("StyleCounts = %+v", counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("StyleCounts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestPurify(t *testing.T) {
	doc := Purify(mustParseASS(t, sampleASS), DefaultStyleOptions())
	out := doc.Encode()

	for _, fragment := range []string{
		"[Script Info]\n; Script generated by moviekit\nWrapStyle: 0\nScaledBorderAndShadow: yes\nCollisions: Normal\nScriptType: v4.00+\n",
		"Style: Main,Arial,20,&H00FFFFFF,&H00000000,&H00000000,&H00000000,-1,0,0,0,100,100,0,0,1,1,0,2,0,0,10,0\n",
		"Style: Signs,Arial,14,&H00FFFFFF,&H00000000,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,1,0,8,0,0,10,0\n",
		"Dialogue: 0,0:00:01.00,0:00:02.50,Main,,0,0,0,,Hello, world\n",
		"Dialogue: 0,0:00:03.00,0:00:04.00,Main,Bob,0,0,0,,Second\n",
		"Dialogue: 1,0:00:05.00,0:00:06.00,Signs,,0,0,0,,Sign\n",
		"Comment: 0,0:00:07.00,0:00:08.00,Main,,0,0,0,,note\n",
		"\n[Fonts]\nfontname: x.ttf\nabc\n",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("purified output missing %q:\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "Verdana") || strings.Contains(out, "PlayResX") || strings.Contains(out, `\pos`) {
		t.Fatalf("purified output kept old data:\n%s", out)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := mustParseASS(t, sampleASS)
	again := mustParseASS(t, doc.Encode())
	if len(again.Events) != len(doc.Events) || len(again.Styles) != len(doc.Styles) {
		t.Fatalf("round trip lost data: %d/%d events, %d/%d styles",
			len(again.Events), len(doc.Events), len(again.Styles), len(doc.Styles))
	}
	if again.Events[0] != doc.Events[0] || again.Styles[0] != doc.Styles[0] {
		t.Fatalf("round trip changed values:\n%+v\n%+v", again.Events[0], doc.Events[0])
	}
}

func TestWriteFileWithBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ass")
	doc := &Document{Info: standardInfo()}
	if err := doc.WriteFile(path, true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\ufeff[Script Info]") {
		t.Fatalf("missing BOM: %q", data)
	}
	text, charset, err := ReadText(path)
	if err != nil || charset != "UTF-8" || !strings.HasPrefix(text, "[Script Info]") {
		t.Fatalf("ReadText = %q, %q, %v", text, charset, err)
	}
}

func TestDialogueTexts(t *testing.T) {
	doc := mustParseASS(t, sampleASS)
	texts := doc.DialogueTexts()
	want := []string{"Hello, world", "Second", "Sign", "Third"}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Fatalf("DialogueTexts = %v", texts)
	}
	if err := doc.ReplaceDialogueTexts([]string{"a", "b"}); err == nil {
		t.Fatal("expected count mismatch error")
	}
	if err := doc.ReplaceDialogueTexts([]string{"A", "B", "C", "D"}); err != nil {
		t.Fatal(err)
	}
	if doc.Events[3].Text != "note" || doc.Events[4].Text != "D" {
		t.Fatalf("comment must be untouched: %+v", doc.Events)
	}
}

func TestFormatASSTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00.00"},
		{2500 * time.Millisecond, "0:00:02.50"},
		{time.Hour + 2*time.Minute + 3*time.Second + 456*time.Millisecond, "1:02:03.46"},
		{-time.Second, "0:00:00.00"},
	}
	for _, tc := range tests {
		if got := formatASSTime(tc.in); got != tc.want {
			t.Fatalf("formatASSTime(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
