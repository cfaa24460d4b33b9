package language

import (
	"errors"
	"fmt"
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-2 code for an unknown language.
const Undetermined = "und"

// ErrUnknownLanguage is returned when a code cannot be mapped to ISO 639.
var ErrUnknownLanguage = errors.New("unknown language")

// bibliographic maps ISO 639-2/B codes, which Matroska files often carry, onto
// their terminology form.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"tib": "bod",
	"wel": "cym",
}

// words accepts the English names people type at the prompt.
var words = map[string]string{
	"english":    "eng",
	"russian":    "rus",
	"ukrainian":  "ukr",
	"japanese":   "jpn",
	"korean":     "kor",
	"chinese":    "zho",
	"french":     "fra",
	"german":     "deu",
	"spanish":    "spa",
	"italian":    "ita",
	"portuguese": "por",
	"polish":     "pol",
	"dutch":      "nld",
	"swedish":    "swe",
	"finnish":    "fin",
}

// Normalize maps a 2-letter, 3-letter or English-word language designation to
// its ISO 639-2 (terminology) code. "und" is accepted as is.
func Normalize(code string) (string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: empty code", ErrUnknownLanguage)
	}
	if code == Undetermined {
		return code, nil
	}
	if mapped, ok := words[code]; ok {
		return mapped, nil
	}
	if mapped, ok := bibliographic[code]; ok {
		code = mapped
	}
	base, err := xlang.ParseBase(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	iso3 := base.ISO3()
	if len(iso3) != 3 {
		return "", fmt.Errorf("%w: %q has no ISO 639-2 form", ErrUnknownLanguage, code)
	}
	return iso3, nil
}

// ToISO3 is Normalize without the error: unknown input maps to "und".
func ToISO3(code string) string {
	iso3, err := Normalize(code)
	if err != nil {
		return Undetermined
	}
	return iso3
}

// ToISO2 returns the shortest code for a language (ISO 639-1 when one exists).
// Unknown input returns an empty string.
func ToISO2(code string) string {
	iso3, err := Normalize(code)
	if err != nil || iso3 == Undetermined {
		return ""
	}
	base, err := xlang.ParseBase(iso3)
	if err != nil {
		return ""
	}
	return base.String()
}

// DisplayName returns the English name of a language code.
// Empty input gives "Unknown"; unrecognized codes are upper-cased.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	iso3, err := Normalize(trimmed)
	if err != nil || iso3 == Undetermined {
		return strings.ToUpper(trimmed)
	}
	tag, err := xlang.Parse(iso3)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}

// ParseList splits a comma-separated list and normalizes each entry.
// Order and duplicates are kept: entry i belongs to the i-th selected track.
func ParseList(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		code, err := Normalize(part)
		if err != nil {
			return nil, fmt.Errorf("language %d: %w", i+1, err)
		}
		out = append(out, code)
	}
	return out, nil
}

// ExtractFromTags extracts the language from stream metadata tags.
// Checks common tag keys: language, LANGUAGE, Language, language_ietf, lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}
