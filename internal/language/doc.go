// Package language normalizes language designations for stream metadata.
//
// Codes typed by the user or found in container tags are mapped onto
// ISO 639-2 through golang.org/x/text, which is what ffmpeg writes into
// `-metadata:s:N language=...`. Display names come from x/text/language/display.
package language
