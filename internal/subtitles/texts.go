package subtitles

import "fmt"

// DialogueTexts returns the text of every dialogue event with override tags
// removed, in event order.
func (d *Document) DialogueTexts() []string {
	var texts []string
	for _, e := range d.Events {
		if e.IsDialogue() {
			texts = append(texts, StripOverrides(e.Text))
		}
	}
	return texts
}

// ReplaceDialogueTexts assigns texts to the dialogue events in order. The
// count must match DialogueTexts.
func (d *Document) ReplaceDialogueTexts(texts []string) error {
	n := 0
	for _, e := range d.Events {
		if e.IsDialogue() {
			n++
		}
	}
	if n != len(texts) {
		return fmt.Errorf("replace dialogue: document has %d lines, got %d", n, len(texts))
	}
	i := 0
	for j := range d.Events {
		if d.Events[j].IsDialogue() {
			d.Events[j].Text = texts[i]
			i++
		}
	}
	return nil
}
