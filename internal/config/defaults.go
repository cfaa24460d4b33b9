package config

const (
	defaultConfigPath            = "~/.config/moviekit/config.toml"
	defaultFFmpegPath            = "ffmpeg"
	defaultFFprobePath           = "ffprobe"
	defaultLogDir                = "~/.local/share/moviekit/logs"
	defaultSubtitleSuffix        = "RUS"
	defaultBusyRetryDelay        = 5
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogMaxSizeMB          = 10
	defaultLogMaxBackups         = 5
	defaultLogRetentionDays      = 60
	defaultMainFont              = "Arial"
	defaultMainFontSize          = 20
	defaultSignsFontSize         = 14
	defaultMarginV               = 10
	defaultPreviewWidth          = 380
	defaultPreviewCanvasWidth    = 400
	defaultPreviewCanvasHeight   = 600
	defaultPreviewBackground     = "#101010"
	defaultPreviewNumberColor    = "#FFFF00"
	defaultPreviewFontSize       = 50
	defaultTranslationBaseURL    = "https://openrouter.ai/api/v1/chat/completions"
	defaultTranslationModel      = "google/gemini-3-flash-preview"
	defaultTranslationLanguage   = "ru"
	defaultTranslationBatchSize  = 40
	defaultTranslationTimeoutSec = 120
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFmpegPath:  defaultFFmpegPath,
			FFprobePath: defaultFFprobePath,
		},
		Library: Library{
			SubtitleSuffix: defaultSubtitleSuffix,
		},
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Files: Files{
			BusyRetryDelay: defaultBusyRetryDelay,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultLogRetentionDays,
		},
		Subtitles: Subtitles{
			MainFont:      defaultMainFont,
			MainFontSize:  defaultMainFontSize,
			SignsFontSize: defaultSignsFontSize,
			MarginV:       defaultMarginV,
		},
		Preview: Preview{
			Width:        defaultPreviewWidth,
			CanvasWidth:  defaultPreviewCanvasWidth,
			CanvasHeight: defaultPreviewCanvasHeight,
			Background:   defaultPreviewBackground,
			NumberColor:  defaultPreviewNumberColor,
			FontSize:     defaultPreviewFontSize,
		},
		Translation: Translation{
			BaseURL:        defaultTranslationBaseURL,
			Model:          defaultTranslationModel,
			TargetLanguage: defaultTranslationLanguage,
			BatchSize:      defaultTranslationBatchSize,
			TimeoutSeconds: defaultTranslationTimeoutSec,
		},
	}
}
