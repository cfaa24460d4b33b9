package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNotation is matched by every error this package returns.
var ErrInvalidNotation = errors.New("invalid track notation")

// MaxIndex bounds range ends, far above any container's stream count.
const MaxIndex = 1 << 16

// ParseError describes the first token Expand could not turn into indices.
type ParseError struct {
	Input    string
	Token    string
	Position int // zero-based token position
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: token %d %q: %s", ErrInvalidNotation, e.Position, e.Token, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidNotation.
func (e *ParseError) Unwrap() error {
	return ErrInvalidNotation
}

// Validate reports whether every rune of input is a digit, comma, or hyphen.
// Empty input is not rejected here.
func Validate(input string) bool {
	for _, r := range input {
		if (r < '0' || r > '9') && r != ',' && r != '-' {
			return false
		}
	}
	return true
}

// Expand converts notation into indices in left-to-right token order. Ranges
// expand ascending and duplicates are kept. On failure the indices gathered
// before the offending token are returned together with a *ParseError.
// A range whose start exceeds its end, or whose end exceeds MaxIndex, is
// rejected.
func Expand(input string) ([]int, error) {
	var out []int
	for pos, token := range strings.Split(input, ",") {
		fail := func(reason string) ([]int, error) {
			return out, &ParseError{Input: input, Token: token, Position: pos, Reason: reason}
		}
		if !strings.Contains(token, "-") {
			value, err := parseNumber(token)
			if err != nil {
				return fail(err.Error())
			}
			out = append(out, value)
			continue
		}
		bounds := strings.Split(token, "-")
		if len(bounds) != 2 {
			return fail("range must have exactly one hyphen")
		}
		start, err := parseNumber(bounds[0])
		if err != nil {
			return fail("range start " + err.Error())
		}
		end, err := parseNumber(bounds[1])
		if err != nil {
			return fail("range end " + err.Error())
		}
		if start > end {
			return fail("descending range")
		}
		if end > MaxIndex {
			return fail(fmt.Sprintf("range too large (end above %d)", MaxIndex))
		}
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
	}
	return out, nil
}

// Parse trims input, rejects empty or illegal text, then expands it.
func Parse(input string) ([]int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidNotation)
	}
	if !Validate(trimmed) {
		return nil, fmt.Errorf("%w: only digits, commas and hyphens are allowed", ErrInvalidNotation)
	}
	return Expand(trimmed)
}

func parseNumber(value string) (int, error) {
	if value == "" {
		return 0, errors.New("is empty")
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a non-negative integer", value)
	}
	return n, nil
}
