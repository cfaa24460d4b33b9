// Package notation parses the track-range mini-grammar users type to pick
// streams: comma-separated tokens, each either a single non-negative integer
// or an inclusive "start-end" range (for example "0,2-4,7").
//
// Validate performs the character-level check, Expand turns a validated string
// into indices, and Parse combines both for prompt and flag handling.
package notation
