package config

import (
	_ "embed"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools locates the external media binaries.
type Tools struct {
	FFmpegPath     string `toml:"ffmpeg_path"`
	FFprobePath    string `toml:"ffprobe_path"`
	CommandTimeout int    `toml:"command_timeout"` // seconds, 0 disables
}

// Library describes the folder being organized and its naming rules.
type Library struct {
	MoviesFolder   string `toml:"movies_folder"`
	NameTemplate   string `toml:"name_template"`
	SubtitleSuffix string `toml:"subtitle_suffix"`
}

// Paths contains state and log locations.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	JournalPath string `toml:"journal_path"`
}

// Files tunes filesystem retries.
type Files struct {
	BusyRetryDelay int `toml:"busy_retry_delay"` // seconds
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	MaxSizeMB     int    `toml:"max_size_mb"`
	MaxBackups    int    `toml:"max_backups"`
	RetentionDays int    `toml:"retention_days"`
}

// Subtitles controls the styles written by purification and conversion.
type Subtitles struct {
	MainFont      string `toml:"main_font"`
	MainFontSize  int    `toml:"main_font_size"`
	SignsFontSize int    `toml:"signs_font_size"`
	MarginV       int    `toml:"margin_v"`
}

// Preview controls poster preview generation.
type Preview struct {
	Width        int     `toml:"width"`
	CanvasWidth  int     `toml:"canvas_width"`
	CanvasHeight int     `toml:"canvas_height"`
	Background   string  `toml:"background"`
	NumberColor  string  `toml:"number_color"`
	FontSize     float64 `toml:"font_size"`
}

// Translation configures the LLM endpoint used for subtitle translation.
type Translation struct {
	Enabled        bool   `toml:"enabled"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TargetLanguage string `toml:"target_language"`
	BatchSize      int    `toml:"batch_size"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Config encapsulates all configuration values for moviekit.
type Config struct {
	Tools       Tools       `toml:"tools"`
	Library     Library     `toml:"library"`
	Paths       Paths       `toml:"paths"`
	Files       Files       `toml:"files"`
	Logging     Logging     `toml:"logging"`
	Subtitles   Subtitles   `toml:"subtitles"`
	Preview     Preview     `toml:"preview"`
	Translation Translation `toml:"translation"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded. When validation fails the error is a *ValidationError and the
// partially usable config is still returned so callers can render the report.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return &cfg, resolvedPath, exists, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("moviekit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and probe-log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.ProbeLogDir(), filepath.Dir(c.Paths.JournalPath)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LogFilePath is the rotating application log.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "moviekit.log")
}

// ProbeLogDir holds one raw ffprobe dump per analysis.
func (c *Config) ProbeLogDir() string {
	return filepath.Join(c.Paths.LogDir, "probe")
}

// LockPath is the instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.LogDir, "moviekit.lock")
}

// CommandTimeout bounds a single ffmpeg/ffprobe invocation; zero means unbounded.
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.Tools.CommandTimeout) * time.Second
}

// BusyRetryDelay is the pause between attempts on a locked file.
func (c *Config) BusyRetryDelay() time.Duration {
	return time.Duration(c.Files.BusyRetryDelay) * time.Second
}

// TranslationTimeout bounds one translation request.
func (c *Config) TranslationTimeout() time.Duration {
	return time.Duration(c.Translation.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Save writes c to path as TOML, replacing any existing file.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
