package language

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes
		{"en", "eng"},
		{"RU", "rus"},
		{"ja", "jpn"},
		// 3-letter codes pass through
		{"eng", "eng"},
		{"rus", "rus"},
		{" jpn ", "jpn"},
		// bibliographic forms
		{"fre", "fra"},
		{"ger", "deu"},
		{"chi", "zho"},
		// word forms
		{"english", "eng"},
		{"Russian", "rus"},
		{"und", "und"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Normalize(tc.input)
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tc.input, err)
			}
			if got != tc.expected {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	for _, input := range []string{"", "  ", "e1", "english1", "toolongcode"} {
		if _, err := Normalize(input); !errors.Is(err, ErrUnknownLanguage) {
			t.Fatalf("Normalize(%q) error = %v, want ErrUnknownLanguage", input, err)
		}
	}
}

func TestToISO2AndISO3(t *testing.T) {
	if got := ToISO2("rus"); got != "ru" {
		t.Fatalf("ToISO2(rus) = %q", got)
	}
	if got := ToISO2("ger"); got != "de" {
		t.Fatalf("ToISO2(ger) = %q", got)
	}
	if got := ToISO2(""); got != "" {
		t.Fatalf("ToISO2(empty) = %q", got)
	}
	if got := ToISO3("e1"); got != Undetermined {
		t.Fatalf("ToISO3(e1) = %q", got)
	}
	if got := ToISO3("fr"); got != "fra" {
		t.Fatalf("ToISO3(fr) = %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"rus", "Russian"},
		{"jpn", "Japanese"},
		{"", "Unknown"},
		{"e1", "E1"},
	}
	for _, tc := range tests {
		if got := DisplayName(tc.input); got != tc.expected {
			t.Fatalf("DisplayName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList("en, rus,en")
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}
	if want := []string{"eng", "rus", "eng"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseList = %v, want %v", got, want)
	}
	if got, err := ParseList(" "); err != nil || got != nil {
		t.Fatalf("blank list = %v, %v", got, err)
	}
	if _, err := ParseList("en,,ru"); !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage for empty entry, got %v", err)
	}
}

func TestExtractFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"nil", nil, ""},
		{"lower", map[string]string{"language": "ENG"}, "eng"},
		{"upper key", map[string]string{"LANGUAGE": "jpn"}, "jpn"},
		{"nul padded", map[string]string{"language": "rus\u0000"}, "rus"},
		{"ietf", map[string]string{"language_ietf": "en-US"}, "en-us"},
		{"blank", map[string]string{"language": "  "}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractFromTags(tc.tags); got != tc.expected {
				t.Fatalf("ExtractFromTags = %q, want %q", got, tc.expected)
			}
		})
	}
}
