// Package config handles application configuration via environment variables.
package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
)

// Config holds all configurable values for the app.
type Config struct {
	Env  string `env:"ENV" envDefault:"development"`
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// EmailEndpoint selects HTTP delivery when set; empty falls back to mail handoff.
	EmailEndpoint string        `env:"EMAIL_ENDPOINT"`
	SubmitTimeout time.Duration `env:"SUBMIT_TIMEOUT" envDefault:"0s"`
	MailTo        string        `env:"MAIL_TO" envDefault:"info@royalgatetravels.com"`
	MailSubject   string        `env:"MAIL_SUBJECT" envDefault:"New Travel Inquiry - Royal Gate Travels"`

	FormSchema   string `env:"FORM_SCHEMA" envDefault:"contact"`
	MessagingURL string `env:"MESSAGING_URL" envDefault:"https://wa.me/923214899987"`
	AirportsFile string `env:"AIRPORTS_FILE"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0.5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	LogFile   string `env:"LOG_FILE"`
	SentryDSN string `env:"SENTRY_DSN"`
}

// Load reads an optional .env file and environment variables into a Config.
// It panics on values that cannot be parsed.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Panicf("Invalid configuration: %v", err)
	}
	if _, err := model.ParseSchema(cfg.FormSchema); err != nil {
		log.Panicf("Invalid FORM_SCHEMA: %v", err)
	}
	if cfg.RateLimitBurst < 1 {
		log.Panicf("Invalid RATE_LIMIT_BURST: %d", cfg.RateLimitBurst)
	}
	return cfg
}

// Schema returns the configured form variant.
func (c *Config) Schema() model.Schema {
	s, err := model.ParseSchema(c.FormSchema)
	if err != nil {
		return model.SchemaContact
	}
	return s
}
