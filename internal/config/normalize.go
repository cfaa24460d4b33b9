package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeTools(); err != nil {
		return err
	}
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeSubtitles()
	c.normalizePreview()
	c.normalizeTranslation()
	return nil
}

func (c *Config) normalizeTools() error {
	if value, ok := os.LookupEnv("MOVIEKIT_FFMPEG"); ok && strings.TrimSpace(value) != "" {
		c.Tools.FFmpegPath = value
	}
	if value, ok := os.LookupEnv("MOVIEKIT_FFPROBE"); ok && strings.TrimSpace(value) != "" {
		c.Tools.FFprobePath = value
	}
	var err error
	if c.Tools.FFmpegPath, err = normalizeBinary(c.Tools.FFmpegPath); err != nil {
		return fmt.Errorf("tools.ffmpeg_path: %w", err)
	}
	if c.Tools.FFprobePath, err = normalizeBinary(c.Tools.FFprobePath); err != nil {
		return fmt.Errorf("tools.ffprobe_path: %w", err)
	}
	if c.Tools.CommandTimeout < 0 {
		c.Tools.CommandTimeout = 0
	}
	return nil
}

// normalizeBinary expands path-like values and leaves bare command names for PATH lookup.
func normalizeBinary(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || !strings.ContainsAny(value, `/\~`) {
		return value, nil
	}
	return expandPath(value)
}

func (c *Config) normalizeLibrary() error {
	var err error
	c.Library.MoviesFolder = strings.TrimSpace(c.Library.MoviesFolder)
	if c.Library.MoviesFolder, err = expandPath(c.Library.MoviesFolder); err != nil {
		return fmt.Errorf("library.movies_folder: %w", err)
	}
	c.Library.NameTemplate = strings.TrimSpace(c.Library.NameTemplate)
	c.Library.SubtitleSuffix = strings.Trim(strings.TrimSpace(c.Library.SubtitleSuffix), ".")
	if c.Library.SubtitleSuffix == "" {
		c.Library.SubtitleSuffix = defaultSubtitleSuffix
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.JournalPath) == "" {
		c.Paths.JournalPath = filepath.Join(c.Paths.LogDir, "journal.db")
	}
	if c.Paths.JournalPath, err = expandPath(c.Paths.JournalPath); err != nil {
		return fmt.Errorf("paths.journal_path: %w", err)
	}
	if c.Files.BusyRetryDelay <= 0 {
		c.Files.BusyRetryDelay = defaultBusyRetryDelay
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func (c *Config) normalizeSubtitles() {
	c.Subtitles.MainFont = strings.TrimSpace(c.Subtitles.MainFont)
	if c.Subtitles.MainFont == "" {
		c.Subtitles.MainFont = defaultMainFont
	}
}

func (c *Config) normalizePreview() {
	c.Preview.Background = strings.TrimSpace(c.Preview.Background)
	if c.Preview.Background == "" {
		c.Preview.Background = defaultPreviewBackground
	}
	c.Preview.NumberColor = strings.TrimSpace(c.Preview.NumberColor)
	if c.Preview.NumberColor == "" {
		c.Preview.NumberColor = defaultPreviewNumberColor
	}
}

func (c *Config) normalizeTranslation() {
	c.Translation.APIKey = strings.TrimSpace(c.Translation.APIKey)
	if c.Translation.APIKey == "" {
		if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.Translation.APIKey = strings.TrimSpace(value)
		}
	}
	c.Translation.BaseURL = strings.TrimSpace(c.Translation.BaseURL)
	if c.Translation.BaseURL == "" {
		c.Translation.BaseURL = defaultTranslationBaseURL
	}
	c.Translation.Model = strings.TrimSpace(c.Translation.Model)
	if c.Translation.Model == "" {
		c.Translation.Model = defaultTranslationModel
	}
	c.Translation.TargetLanguage = strings.ToLower(strings.TrimSpace(c.Translation.TargetLanguage))
	if c.Translation.TargetLanguage == "" {
		c.Translation.TargetLanguage = defaultTranslationLanguage
	}
	if c.Translation.BatchSize <= 0 {
		c.Translation.BatchSize = defaultTranslationBatchSize
	}
	if c.Translation.TimeoutSeconds <= 0 {
		c.Translation.TimeoutSeconds = defaultTranslationTimeoutSec
	}
}
