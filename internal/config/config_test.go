package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.EmailEndpoint)
	assert.Equal(t, time.Duration(0), cfg.SubmitTimeout)
	assert.Equal(t, "info@royalgatetravels.com", cfg.MailTo)
	assert.Equal(t, model.SchemaContact, cfg.Schema())
	assert.Equal(t, "https://wa.me/923214899987", cfg.MessagingURL)
	assert.Equal(t, 5, cfg.RateLimitBurst)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("EMAIL_ENDPOINT", "https://example.com/inquiries")
	t.Setenv("SUBMIT_TIMEOUT", "15s")
	t.Setenv("FORM_SCHEMA", "quote")
	t.Setenv("RATE_LIMIT_RPS", "2")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "https://example.com/inquiries", cfg.EmailEndpoint)
	assert.Equal(t, 15*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, model.SchemaQuote, cfg.Schema())
	assert.Equal(t, 2.0, cfg.RateLimitRPS)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("SUBMIT_TIMEOUT", "soon")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic due to invalid SUBMIT_TIMEOUT")
		}
	}()
	Load()
}

func TestLoad_InvalidSchema(t *testing.T) {
	t.Setenv("FORM_SCHEMA", "newsletter")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic due to invalid FORM_SCHEMA")
		}
	}()
	Load()
}

func TestLoad_InvalidBurst(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "0")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic due to invalid RATE_LIMIT_BURST")
		}
	}()
	Load()
}
