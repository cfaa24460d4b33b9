package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DecodeLLMJSON decodes a model answer into target. Code fences or prose
// around the outermost {...} object are ignored.
func DecodeLLMJSON(content string, target any) error {
	raw := strings.TrimSpace(content)
	if raw == "" {
		return errors.New("empty payload")
	}
	err := json.Unmarshal([]byte(raw), target)
	if err == nil {
		return nil
	}
	start, end := strings.IndexByte(raw, '{'), strings.LastIndexByte(raw, '}')
	if start >= 0 && end > start && (start > 0 || end < len(raw)-1) {
		if err = json.Unmarshal([]byte(raw[start:end+1]), target); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w (payload: %s)", err, summarizePayloadSnippet(raw))
}

// summarizePayloadSnippet collapses whitespace and keeps the first 160 runes.
func summarizePayloadSnippet(content string) string {
	clean := strings.Join(strings.Fields(content), " ")
	if clean == "" {
		return "<empty>"
	}
	if runes := []rune(clean); len(runes) > 160 {
		return string(runes[:160]) + "..."
	}
	return clean
}
