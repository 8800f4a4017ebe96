package submitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
)

// endpoint POSTs each submission as JSON to a configured address.
type endpoint struct {
	log    *zap.Logger
	url    string
	client *http.Client
}

// newEndpoint builds the HTTP delivery path. A zero timeout leaves the
// transport defaults in place.
func newEndpoint(url string, timeout time.Duration, log *zap.Logger) *endpoint {
	return &endpoint{
		log:    log,
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (e *endpoint) Channel() Channel { return ChannelEndpoint }

// Submit sends one request and never retries. The request outlives caller
// cancellation: once dispatched it runs to completion or failure.
func (e *endpoint) Submit(ctx context.Context, s model.Submission) (Receipt, error) {
	receipt := newReceipt(ChannelEndpoint)

	payload, err := json.Marshal(s)
	if err != nil {
		e.log.Error("failed to marshal submission", zap.String("id", receipt.ID), zap.Error(err))
		return receipt, fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		e.log.Error("failed to build request", zap.String("id", receipt.ID), zap.Error(err))
		return receipt, fmt.Errorf("%w: %v", ErrSubmission, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Error("POST failed", zap.String("id", receipt.ID), zap.Error(err))
		return receipt, fmt.Errorf("%w: %v", ErrSubmission, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	receipt.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e.log.Error("endpoint rejected submission",
			zap.String("id", receipt.ID),
			zap.Int("status", resp.StatusCode))
		return receipt, fmt.Errorf("%w: unexpected status %d", ErrSubmission, resp.StatusCode)
	}

	e.log.Info("submission sent successfully",
		zap.String("id", receipt.ID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return receipt, nil
}
