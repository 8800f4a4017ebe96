package submitter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/config"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/metrics"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
)

var sample = model.Inquiry{
	Name:    "Mohammed Ali",
	Email:   "m.ali@example.com",
	Phone:   "+44 161 555 0199",
	Message: "Please quote a Hajj package for two & a half weeks.",
}

type mockServer struct {
	mu          sync.Mutex
	Bodies      []map[string]any
	ContentType string
	Status      int
	Server      *httptest.Server
}

func newMockServer(status int) *mockServer {
	s := &mockServer{Status: status}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		_ = json.Unmarshal(body, &payload)
		s.mu.Lock()
		s.Bodies = append(s.Bodies, payload)
		s.ContentType = r.Header.Get("Content-Type")
		status := s.Status
		s.mu.Unlock()
		w.WriteHeader(status)
	}))
	return s
}

func (s *mockServer) setStatus(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = status
}

func (s *mockServer) bodies() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.Bodies...)
}

func (s *mockServer) contentType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ContentType
}

type recordingReporter struct {
	errs []error
}

func (r *recordingReporter) CaptureError(err error, _ map[string]any) {
	r.errs = append(r.errs, err)
}

func TestEndpoint_Success(t *testing.T) {
	srv := newMockServer(http.StatusOK)
	defer srv.Server.Close()

	e := newEndpoint(srv.Server.URL, 0, zaptest.NewLogger(t))
	receipt, err := e.Submit(context.Background(), sample)

	require.NoError(t, err)
	assert.Equal(t, ChannelEndpoint, receipt.Channel)
	assert.Equal(t, http.StatusOK, receipt.StatusCode)
	assert.NotEmpty(t, receipt.ID)
	assert.Empty(t, receipt.Handoff)

	require.Len(t, srv.bodies(), 1)
	assert.Equal(t, "application/json", srv.contentType())
	assert.Equal(t, map[string]any{
		"name":    sample.Name,
		"email":   sample.Email,
		"phone":   sample.Phone,
		"message": sample.Message,
	}, srv.bodies()[0])
}

func TestEndpoint_QuotePayload(t *testing.T) {
	srv := newMockServer(http.StatusCreated)
	defer srv.Server.Close()

	quote := model.QuoteRequest{
		Name: "Sarah Johnson", Email: "sarah@example.com", Phone: "07700900123",
		Service: "Hotel Booking", Travelers: 4, AcceptTerms: true,
	}
	e := newEndpoint(srv.Server.URL, 0, zaptest.NewLogger(t))
	_, err := e.Submit(context.Background(), quote)
	require.NoError(t, err)

	require.Len(t, srv.bodies(), 1)
	body := srv.bodies()[0]
	for _, key := range []string{"name", "email", "phone", "service", "destination", "dateFrom", "dateTo", "travelers", "budget", "message", "acceptTerms"} {
		assert.Contains(t, body, key)
	}
	assert.Len(t, body, 11)
	assert.Equal(t, float64(4), body["travelers"])
	assert.Equal(t, true, body["acceptTerms"])
}

func TestEndpoint_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"server error", http.StatusInternalServerError},
		{"bad request", http.StatusBadRequest},
		{"redirect is not success", http.StatusNotModified},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newMockServer(tc.status)
			defer srv.Server.Close()

			e := newEndpoint(srv.Server.URL, 0, zaptest.NewLogger(t))
			receipt, err := e.Submit(context.Background(), sample)
			assert.ErrorIs(t, err, ErrSubmission)
			assert.Equal(t, tc.status, receipt.StatusCode)
			assert.Len(t, srv.bodies(), 1, "no retry expected")
		})
	}
}

func TestEndpoint_NetworkFailure(t *testing.T) {
	srv := newMockServer(http.StatusOK)
	srv.Server.Close()

	e := newEndpoint(srv.Server.URL, time.Second, zaptest.NewLogger(t))
	_, err := e.Submit(context.Background(), sample)
	assert.ErrorIs(t, err, ErrSubmission)
}

func TestEndpoint_BadURL(t *testing.T) {
	e := newEndpoint("://missing-scheme", 0, zaptest.NewLogger(t))
	_, err := e.Submit(context.Background(), sample)
	assert.ErrorIs(t, err, ErrSubmission)
}

func TestEndpoint_IgnoresCallerCancellation(t *testing.T) {
	srv := newMockServer(http.StatusOK)
	defer srv.Server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newEndpoint(srv.Server.URL, 0, zaptest.NewLogger(t))
	_, err := e.Submit(ctx, sample)
	assert.NoError(t, err)
	assert.Len(t, srv.bodies(), 1)
}

func TestMailto_ContainsEnteredValues(t *testing.T) {
	m := newMailto("info@royalgatetravels.com", "New Travel Inquiry", zaptest.NewLogger(t))
	receipt, err := m.Submit(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, ChannelMailto, receipt.Channel)

	assert.True(t, strings.HasPrefix(receipt.Handoff, "mailto:info@royalgatetravels.com?subject="))
	assert.NotContains(t, receipt.Handoff, "+", "spaces must be encoded as %20")

	u, err := url.Parse(receipt.Handoff)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "New Travel Inquiry", q.Get("subject"))
	body := q.Get("body")
	for _, v := range []string{sample.Name, sample.Email, sample.Phone, sample.Message} {
		assert.Contains(t, body, v)
	}
	assert.Equal(t, "Name: Mohammed Ali\r\nEmail: m.ali@example.com\r\nPhone: +44 161 555 0199\r\nMessage: "+sample.Message, body)
}

func TestNew_SelectsChannel(t *testing.T) {
	log := zaptest.NewLogger(t)

	s := New(&config.Config{EmailEndpoint: "http://localhost:1"}, log, nil, nil)
	assert.Equal(t, ChannelEndpoint, s.Channel())

	s = New(&config.Config{MailTo: "info@royalgatetravels.com", MailSubject: "Inquiry"}, log, nil, nil)
	assert.Equal(t, ChannelMailto, s.Channel())
}

func TestNew_RecordsOutcome(t *testing.T) {
	srv := newMockServer(http.StatusBadGateway)
	defer srv.Server.Close()

	m := metrics.New(prometheus.NewRegistry())
	rep := &recordingReporter{}
	s := New(&config.Config{EmailEndpoint: srv.Server.URL}, zaptest.NewLogger(t), m, rep)

	_, err := s.Submit(context.Background(), sample)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubmission))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("endpoint", "error")))
	assert.Len(t, rep.errs, 1)

	srv.setStatus(http.StatusOK)
	_, err = s.Submit(context.Background(), sample)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("endpoint", "success")))
	assert.Len(t, rep.errs, 1)
}
