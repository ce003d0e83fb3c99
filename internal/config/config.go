// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// --- HTTP ---
	Port    string `envconfig:"PORT" default:"8080"`
	BaseURL string `envconfig:"BASE_URL"`
	// Comma separated; empty allows same-origin only.
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	// --- Application ---
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`

	// --- Database ---
	// Empty keeps projects in memory.
	DBDSN      string `envconfig:"DB_DSN"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`

	// --- Preview sessions ---
	SessionIdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
	SweepSchedule  string        `envconfig:"SWEEP_SCHEDULE" default:"@every 1m"`

	// --- Quiz drafting ---
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`

	// --- Export ---
	ExportDir string `envconfig:"EXPORT_DIR"`
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

// UsePostgres reports whether a database is configured.
func (c *Config) UsePostgres() bool {
	return strings.TrimSpace(c.DBDSN) != ""
}

// DraftEnabled reports whether quiz drafting can reach Gemini.
func (c *Config) DraftEnabled() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if _, err := log.ParseLevel(c.AppLogLevel); err != nil {
		return fmt.Errorf("APP_LOG_LEVEL: %w", err)
	}
	if c.UsePostgres() && c.DBMaxConns <= 0 {
		return errors.New("DB_MAX_CONNS must be > 0")
	}
	if c.SessionIdleTTL <= 0 {
		return errors.New("SESSION_IDLE_TTL must be > 0")
	}
	if _, err := cron.ParseStandard(c.SweepSchedule); err != nil {
		return fmt.Errorf("SWEEP_SCHEDULE: %w", err)
	}
	return nil
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
