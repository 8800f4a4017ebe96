// Package submitter delivers validated inquiries to the configured destination.
package submitter

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/config"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/diagnostics"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/metrics"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
)

// ErrSubmission wraps every delivery failure. Callers surface it as a single
// generic error; the cause is only logged.
var ErrSubmission = errors.New("submission failed")

// Channel names the delivery path a submitter uses.
type Channel string

const (
	ChannelEndpoint Channel = "endpoint"
	ChannelMailto   Channel = "mailto"
)

// Receipt describes a delivered submission.
type Receipt struct {
	ID      string  `json:"id"`
	Channel Channel `json:"channel"`
	// Handoff is a link the caller should open for the visitor, if any.
	Handoff    string `json:"handoff,omitempty"`
	StatusCode int    `json:"-"`
}

// Submitter defines the single dispatch contract shared by both delivery paths.
type Submitter interface {
	Submit(ctx context.Context, s model.Submission) (Receipt, error)
	Channel() Channel
}

// New selects the delivery path once, from configuration.
func New(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, rep diagnostics.Reporter) Submitter {
	var s Submitter
	if cfg.EmailEndpoint != "" {
		s = newEndpoint(cfg.EmailEndpoint, cfg.SubmitTimeout, log)
	} else {
		s = newMailto(cfg.MailTo, cfg.MailSubject, log)
	}
	log.Info("submission channel selected", zap.String("channel", string(s.Channel())))
	return &instrumented{next: s, log: log, metrics: m, reporter: rep}
}

// instrumented records metrics and diagnostics around a Submitter.
type instrumented struct {
	next     Submitter
	log      *zap.Logger
	metrics  *metrics.Metrics
	reporter diagnostics.Reporter
}

func (i *instrumented) Channel() Channel { return i.next.Channel() }

func (i *instrumented) Submit(ctx context.Context, s model.Submission) (Receipt, error) {
	receipt, err := i.next.Submit(ctx, s)
	outcome := string(model.StatusSuccess)
	if err != nil {
		outcome = string(model.StatusError)
		if i.reporter != nil {
			i.reporter.CaptureError(err, map[string]any{
				"channel":    string(i.next.Channel()),
				"receipt_id": receipt.ID,
			})
		}
	}
	if i.metrics != nil {
		i.metrics.Submissions.WithLabelValues(string(i.next.Channel()), outcome).Inc()
	}
	return receipt, err
}

func newReceipt(ch Channel) Receipt {
	return Receipt{ID: uuid.NewString(), Channel: ch}
}
