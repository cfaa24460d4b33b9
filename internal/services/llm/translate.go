package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrLineCountMismatch is returned when the model answers with a different
// number of lines than it was given.
var ErrLineCountMismatch = errors.New("translated line count mismatch")

// DefaultBatchSize bounds how many lines go into one request.
const DefaultBatchSize = 40

const translationPrompt = `You translate subtitle dialogue into %s.
You receive a JSON object {"lines": [...]} and must answer with JSON only:
{"lines": [...]} holding exactly %d strings, one per input line, in the same order.
Keep the literal markers \N and \n where they appear. Do not merge, split, or
drop lines, and do not add notes.`

type linesPayload struct {
	Lines []string `json:"lines"`
}

// Translate translates lines into the named language, batchSize lines per
// request. The result has the same length and order as lines.
func (c *Client) Translate(ctx context.Context, lines []string, language string, batchSize int) ([]string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, errors.New("llm translate: target language required")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	out := make([]string, 0, len(lines))
	for start := 0; start < len(lines); start += batchSize {
		end := min(start+batchSize, len(lines))
		translated, err := c.translateBatch(ctx, lines[start:end], language)
		if err != nil {
			return nil, fmt.Errorf("llm translate: lines %d-%d: %w", start+1, end, err)
		}
		out = append(out, translated...)
	}
	return out, nil
}

func (c *Client) translateBatch(ctx context.Context, batch []string, language string) ([]string, error) {
	request, err := json.Marshal(linesPayload{Lines: batch})
	if err != nil {
		return nil, fmt.Errorf("encode batch: %w", err)
	}
	system := fmt.Sprintf(translationPrompt, language, len(batch))

	var lastErr error
	for range c.retry.maxAttempts() {
		content, err := c.CompleteJSON(ctx, system, string(request))
		if err != nil {
			return nil, err
		}
		var parsed linesPayload
		if err := DecodeLLMJSON(content, &parsed); err != nil {
			lastErr = fmt.Errorf("parse payload: %w", err)
		} else if len(parsed.Lines) != len(batch) {
			lastErr = fmt.Errorf("%w: sent %d, got %d", ErrLineCountMismatch, len(batch), len(parsed.Lines))
		} else {
			return parsed.Lines, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}
