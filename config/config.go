package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the typed runtime configuration, read from the environment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	AdminURL        string        `env:"ADMIN_URL"`
	AdminEmail      string        `env:"ADMIN_EMAIL" envDefault:"admin@guiapiracicaba.com.br"`
	AdminPassword   string        `env:"ADMIN_PASSWORD"`
	SeedSampleData  bool          `env:"SEED_SAMPLE_DATA" envDefault:"false"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"` // text, json
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	DraftIdleTTL    time.Duration `env:"DRAFT_IDLE_TTL" envDefault:"12h"`
	Timezone        string        `env:"TZ_NAME" envDefault:"America/Sao_Paulo"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		logrus.WithError(err).WithField("timezone", c.Timezone).Warn("Unknown timezone, using UTC")
		return time.UTC
	}
	return loc
}

func LoadEnv() error {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()
	return nil
}

// Warnings lists optional settings that are unset. Required settings are enforced by Load.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.FrontendURL == "" {
		warnings = append(warnings, "FRONTEND_URL not set - CORS may not work correctly")
	}
	if c.AdminURL == "" {
		warnings = append(warnings, "ADMIN_URL not set")
	}
	if c.AdminPassword == "" {
		warnings = append(warnings, "ADMIN_PASSWORD not set - a random admin password will be generated")
	}
	return warnings
}
