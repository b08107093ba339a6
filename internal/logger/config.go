package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// LogConfig holds logging settings, read from LOG_* environment variables.
type LogConfig struct {
	// trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL"`
	// json or text
	Format string `env:"LOG_FORMAT"`
	// file, stdout or both
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"`

	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"` // days
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"`

	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ErrorFile string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Comma separated allow lists, empty or "*" means everything.
	FilterModules  string `env:"LOG_FILTER_MODULES"`
	FilterLogTypes string `env:"LOG_FILTER_TYPES"`

	// Error level entries are forwarded to Sentry when set.
	SentryDSN string `env:"SENTRY_DSN"`
	// Environment name reported to Sentry.
	Environment string `env:"GO_ENV" envDefault:"development"`

	// Entries buffered by the async hook before new ones are dropped.
	BufferSize int `env:"LOG_BUFFER_SIZE" envDefault:"1000"`
}

// DefaultConfig returns the configuration built from the environment.
// Development defaults to debug text output, everything else to info json.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		cfg = &LogConfig{
			Output:      "stdout",
			MaxSize:     100,
			MaxBackups:  7,
			MaxAge:      7,
			LogPath:     "./logs",
			AppFile:     "app.log",
			AuditFile:   "audit.log",
			ErrorFile:   "error.log",
			Environment: os.Getenv("GO_ENV"),
			BufferSize:  1000,
		}
	}

	if cfg.Level == "" {
		if cfg.Environment == "production" {
			cfg.Level = "info"
		} else {
			cfg.Level = "debug"
		}
	}
	if cfg.Format == "" {
		if cfg.Environment == "production" {
			cfg.Format = "json"
		} else {
			cfg.Format = "text"
		}
	}

	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}
