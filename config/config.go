package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings needed to run the server.
type Configuration struct {
	Address     string `env:"ADDRESS" envDefault:":8000"`
	Environment string `env:"GO_ENV" envDefault:"development"`
	BodyLimitMB int    `env:"BODY_LIMIT_MB" envDefault:"64"` // must fit the largest video upload

	// MongoDB
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required,notEmpty"`
	MongoDB_DBName        string `env:"MONGODB_DBNAME" envDefault:"videotube"`

	// Tokens
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET,required,notEmpty"`
	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"24h"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET,required,notEmpty"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"240h"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"true"`

	// CORS
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`

	// Admission control
	RateLimit_Enabled  bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimit_Max      int    `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimit_Window   int    `env:"RATE_LIMIT_WINDOW" envDefault:"900"` // seconds
	UploadLimit_Max    int    `env:"UPLOAD_LIMIT_MAX" envDefault:"5"`
	UploadLimit_Window int    `env:"UPLOAD_LIMIT_WINDOW" envDefault:"86400"` // seconds
	RedisURL           string `env:"REDIS_URL"`                              // shared limiter counters when set

	// Object storage
	S3_Bucket        string  `env:"S3_BUCKET,required,notEmpty"`
	S3_Region        string  `env:"S3_REGION" envDefault:"us-east-1"`
	S3_Endpoint      string  `env:"S3_ENDPOINT"` // S3 compatible services (MinIO, R2...)
	S3_AccessKey     string  `env:"S3_ACCESS_KEY_ID"`
	S3_SecretKey     string  `env:"S3_SECRET_ACCESS_KEY"`
	S3_PublicBaseURL string  `env:"S3_PUBLIC_BASE_URL"`
	S3_KeyPrefix     string  `env:"S3_KEY_PREFIX" envDefault:"videotube"`
	MediaUploadRPS   float64 `env:"MEDIA_UPLOAD_RPS" envDefault:"10"`
	UploadTmpDir     string  `env:"UPLOAD_TMP_DIR" envDefault:"./public/temp"`

	// Temp files older than this are swept in the background. older than this are swept in the background
	UploadTmpMaxAge time.Duration `env:"UPLOAD_TMP_MAX_AGE" envDefault:"1h"`

	// Mail, disabled when SMTP_HOST is empty
	SMTP_Host     string `env:"SMTP_HOST"`
	SMTP_Port     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTP_Username string `env:"SMTP_USERNAME"`
	SMTP_Password string `env:"SMTP_PASSWORD"`
	MailFrom      string `env:"MAIL_FROM" envDefault:"VideoTube <no-reply@videotube.local>"`
}

// IsProduction reports whether GO_ENV is production.
func (c *Configuration) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Configuration) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORS_Origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getEnvPath walks up from the working directory looking for config/env/<GO_ENV>.env.
func getEnvPath() string {
	name := os.Getenv("GO_ENV")
	if name == "" {
		name = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", name))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file for GO_ENV (when present) and parses the environment.
// Variables already set in the process take precedence over the file.
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("load env file %s: %w", envPath, err)
			}
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
