// Package diagnostics reports submission failures to Sentry when a DSN is configured.
package diagnostics

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter records the underlying cause of failures that users only see as a banner.
type Reporter interface {
	CaptureError(err error, extras map[string]any)
}

// Nop discards every report.
type Nop struct{}

// CaptureError implements Reporter.
func (Nop) CaptureError(error, map[string]any) {}

type sentryReporter struct {
	hub *sentry.Hub
}

// New returns a Sentry-backed Reporter, or Nop when dsn is empty.
func New(dsn, env string) (Reporter, error) {
	if dsn == "" {
		return Nop{}, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     "royal-gate-inquiryd",
	})
	if err != nil {
		return nil, fmt.Errorf("sentry initialization failed: %w", err)
	}
	return &sentryReporter{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// CaptureError implements Reporter.
func (r *sentryReporter) CaptureError(err error, extras map[string]any) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range extras {
			scope.SetExtra(k, v)
		}
		r.hub.CaptureException(err)
	})
}

// Flush waits for buffered events to be sent.
func Flush(r Reporter, timeout time.Duration) {
	if s, ok := r.(*sentryReporter); ok {
		s.hub.Flush(timeout)
	}
}
