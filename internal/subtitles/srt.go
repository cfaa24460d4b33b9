package subtitles

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Cue is one SubRip entry.
type Cue struct {
	Index int
	Start time.Duration
	End   time.Duration
	Lines []string
}

// ErrNoCues is returned when a file holds no usable subtitle entries.
var ErrNoCues = errors.New("no cues found")

// ParseSRT parses SubRip text. Blocks without a valid timing line are
// skipped; cues are renumbered from 1.
func ParseSRT(text string) ([]Cue, error) {
	var cues []Cue
	for _, block := range splitBlocks(text) {
		cue, err := parseSRTBlock(block)
		if err != nil {
			continue
		}
		cue.Index = len(cues) + 1
		cues = append(cues, cue)
	}
	if len(cues) == 0 {
		return nil, ErrNoCues
	}
	return cues, nil
}

// EncodeSRT renders cues back into SubRip text.
func EncodeSRT(cues []Cue) string {
	var b strings.Builder
	for i, cue := range cues {
		fmt.Fprintf(&b, "%d\n%s --> %s\n", i+1, formatSRTTime(cue.Start), formatSRTTime(cue.End))
		for _, line := range cue.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func splitBlocks(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func parseSRTBlock(lines []string) (Cue, error) {
	// The index line is optional in the wild; find the timing line instead.
	timing := -1
	for i, line := range lines {
		if strings.Contains(line, "-->") {
			timing = i
			break
		}
		if i >= 1 {
			break
		}
	}
	if timing < 0 {
		return Cue{}, errors.New("srt block without timing line")
	}
	startText, endText, _ := strings.Cut(lines[timing], "-->")
	start, err := parseClock(strings.ReplaceAll(startText, ".", ","), ",")
	if err != nil {
		return Cue{}, fmt.Errorf("start time: %w", err)
	}
	// Some encoders append position hints after the end time.
	endFields := strings.Fields(endText)
	if len(endFields) == 0 {
		return Cue{}, errors.New("missing end time")
	}
	end, err := parseClock(strings.ReplaceAll(endFields[0], ".", ","), ",")
	if err != nil {
		return Cue{}, fmt.Errorf("end time: %w", err)
	}
	return Cue{Start: start, End: end, Lines: append([]string(nil), lines[timing+1:]...)}, nil
}
