package subtitles

import "sort"

// StyleCount is how many dialogue events use one style.
type StyleCount struct {
	Style string
	Count int
}

// StyleCounts tallies dialogue events per style, most used first and
// alphabetical among equals.
func StyleCounts(doc *Document) []StyleCount {
	counts := make(map[string]int)
	for _, e := range doc.Events {
		if e.IsDialogue() {
			counts[e.Style]++
		}
	}
	out := make([]StyleCount, 0, len(counts))
	for style, n := range counts {
		out = append(out, StyleCount{Style: style, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Style < out[j].Style
	})
	return out
}
