package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Check is one line of the configuration report.
type Check struct {
	Key    string
	Value  string
	Passed bool
	Detail string
}

// ValidationError lists every check that ran, failed or not.
type ValidationError struct {
	Checks []Check
}

func (e *ValidationError) Error() string {
	var failed []string
	for _, check := range e.Checks {
		if !check.Passed {
			failed = append(failed, fmt.Sprintf("%s %s", check.Key, check.Detail))
		}
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(failed, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

const illegalNameChars = `/\:*?"<>|`

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate runs the static checks and returns a *ValidationError when any fails.
func (c *Config) Validate() error {
	checks := c.Checks()
	for _, check := range checks {
		if !check.Passed {
			return &ValidationError{Checks: checks}
		}
	}
	return nil
}

// Checks evaluates every static rule, in report order.
func (c *Config) Checks() []Check {
	var checks []Check
	add := func(key, value, problem string) {
		checks = append(checks, Check{Key: key, Value: value, Passed: problem == "", Detail: problem})
	}

	add("tools.ffmpeg_path", c.Tools.FFmpegPath, notSet(c.Tools.FFmpegPath))
	add("tools.ffprobe_path", c.Tools.FFprobePath, notSet(c.Tools.FFprobePath))
	add("library.movies_folder", c.Library.MoviesFolder, notSet(c.Library.MoviesFolder))
	add("library.name_template", c.Library.NameTemplate, validateName(c.Library.NameTemplate))
	add("library.subtitle_suffix", c.Library.SubtitleSuffix, validateName(c.Library.SubtitleSuffix))
	add("paths.log_dir", c.Paths.LogDir, notSet(c.Paths.LogDir))
	add("files.busy_retry_delay", fmt.Sprint(c.Files.BusyRetryDelay), positive(c.Files.BusyRetryDelay))
	add("logging.level", c.Logging.Level, oneOf(c.Logging.Level, "debug", "info", "warn", "error"))
	add("logging.max_size_mb", fmt.Sprint(c.Logging.MaxSizeMB), positive(c.Logging.MaxSizeMB))
	add("subtitles.main_font_size", fmt.Sprint(c.Subtitles.MainFontSize), positive(c.Subtitles.MainFontSize))
	add("subtitles.signs_font_size", fmt.Sprint(c.Subtitles.SignsFontSize), positive(c.Subtitles.SignsFontSize))
	add("subtitles.margin_v", fmt.Sprint(c.Subtitles.MarginV), nonNegative(c.Subtitles.MarginV))
	add("preview.width", fmt.Sprint(c.Preview.Width), c.validatePreviewSize())
	add("preview.background", c.Preview.Background, hexColor(c.Preview.Background))
	add("preview.number_color", c.Preview.NumberColor, hexColor(c.Preview.NumberColor))
	if c.Preview.FontSize <= 0 {
		add("preview.font_size", fmt.Sprint(c.Preview.FontSize), "must be positive")
	}
	if c.Translation.Enabled {
		apiKey := ""
		if c.Translation.APIKey == "" {
			apiKey = "must be set when translation.enabled is true (or set OPENROUTER_API_KEY)"
		}
		add("translation.api_key", redact(c.Translation.APIKey), apiKey)
		add("translation.target_language", c.Translation.TargetLanguage, validateLanguage(c.Translation.TargetLanguage))
	}
	return checks
}

func (c *Config) validatePreviewSize() string {
	switch {
	case c.Preview.Width <= 0 || c.Preview.CanvasWidth <= 0 || c.Preview.CanvasHeight <= 0:
		return "preview dimensions must be positive"
	case c.Preview.Width > c.Preview.CanvasWidth:
		return fmt.Sprintf("must not exceed preview.canvas_width (%d)", c.Preview.CanvasWidth)
	}
	return ""
}

func notSet(value string) string {
	if strings.TrimSpace(value) == "" {
		return "not set"
	}
	return ""
}

func validateName(value string) string {
	if strings.TrimSpace(value) == "" {
		return "not set"
	}
	if strings.ContainsAny(value, illegalNameChars) {
		return "contains special characters"
	}
	return ""
}

func positive(value int) string {
	if value <= 0 {
		return "must be positive"
	}
	return ""
}

func nonNegative(value int) string {
	if value < 0 {
		return "must be >= 0"
	}
	return ""
}

func oneOf(value string, allowed ...string) string {
	for _, candidate := range allowed {
		if value == candidate {
			return ""
		}
	}
	return fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))
}

func hexColor(value string) string {
	if !hexColorPattern.MatchString(value) {
		return "must be a #RRGGBB colour"
	}
	return ""
}

func validateLanguage(value string) string {
	if _, err := language.Parse(value); err != nil {
		return "unknown language"
	}
	return ""
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
