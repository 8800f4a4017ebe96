package form

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
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
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/submitter"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/validation"
)

type stubSubmitter struct {
	err     error
	release chan struct{}
	started chan struct{}
	calls   atomic.Int32
}

func (s *stubSubmitter) Channel() submitter.Channel { return submitter.ChannelEndpoint }

func (s *stubSubmitter) Submit(_ context.Context, _ model.Submission) (submitter.Receipt, error) {
	s.calls.Add(1)
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		<-s.release
	}
	return submitter.Receipt{ID: "r-1", Channel: submitter.ChannelEndpoint}, s.err
}

func entered() map[string]any {
	return map[string]any{
		"name":    "Ibrahim Khan",
		"email":   "ibrahim@example.com",
		"phone":   "+44 113 496 0000",
		"message": "Need visa assistance for Schengen.",
	}
}

func newForm(t *testing.T, s submitter.Submitter) *Form {
	t.Helper()
	f := New(validation.New(model.SchemaContact), s, zaptest.NewLogger(t), nil)
	for k, v := range entered() {
		f.Set(k, v)
	}
	return f
}

func TestSubmit_SuccessClearsFields(t *testing.T) {
	s := &stubSubmitter{}
	f := newForm(t, s)

	res, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, res.Status)
	assert.Equal(t, model.StatusSuccess, f.Status())
	assert.Empty(t, f.Fields())
	assert.False(t, f.Submitting())
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestSubmit_ErrorRetainsFields(t *testing.T) {
	s := &stubSubmitter{err: submitter.ErrSubmission}
	f := newForm(t, s)

	res, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, submitter.ErrSubmission)
	assert.Equal(t, model.StatusError, res.Status)
	assert.Equal(t, model.StatusError, f.Status())
	assert.Equal(t, entered(), f.Fields())
	assert.False(t, f.Submitting())
}

func TestSubmit_InvalidNeverDispatches(t *testing.T) {
	s := &stubSubmitter{}
	m := metrics.New(prometheus.NewRegistry())
	f := New(validation.New(model.SchemaContact), s, zaptest.NewLogger(t), m)
	f.Set("name", "I")
	f.Set("email", "ibrahim@example.com")

	res, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, model.StatusIdle, res.Status)
	assert.Len(t, res.Errors, 3)
	assert.Contains(t, f.Errors(), "name")
	assert.Equal(t, int32(0), s.calls.Load())
	assert.Equal(t, "I", f.Fields()["name"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("phone")))
}

func TestSubmit_OneAttemptInFlight(t *testing.T) {
	s := &stubSubmitter{started: make(chan struct{}, 1), release: make(chan struct{})}
	f := newForm(t, s)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	<-s.started
	assert.True(t, f.Submitting())

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInFlight)

	_, err = f.SubmitFields(context.Background(), map[string]any{"name": "Someone Else"})
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, "Ibrahim Khan", f.Fields()["name"], "pending values must not be replaced")

	close(s.release)
	require.NoError(t, <-done)
	assert.False(t, f.Submitting())
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestSubmit_StatusResetsToIdle(t *testing.T) {
	s := &stubSubmitter{err: submitter.ErrSubmission}
	f := newForm(t, s)
	_, _ = f.Submit(context.Background())
	require.Equal(t, model.StatusError, f.Status())

	s.err = nil
	s.started = make(chan struct{}, 1)
	s.release = make(chan struct{})
	done := make(chan struct{})
	go func() {
		_, _ = f.Submit(context.Background())
		close(done)
	}()

	<-s.started
	assert.Equal(t, model.StatusIdle, f.Status())
	close(s.release)
	<-done
	assert.Equal(t, model.StatusSuccess, f.Status())
}

func TestSubmit_ThroughEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus model.Status
		wantFields map[string]any
	}{
		{"endpoint returns 200", http.StatusOK, model.StatusSuccess, map[string]any{}},
		{"endpoint returns 500", http.StatusInternalServerError, model.StatusError, entered()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			s := submitter.New(&config.Config{EmailEndpoint: srv.URL}, zaptest.NewLogger(t), nil, nil)
			f := newForm(t, s)

			res, _ := f.Submit(context.Background())
			assert.Equal(t, tc.wantStatus, res.Status)
			assert.Equal(t, tc.wantFields, f.Fields())
		})
	}
}

func TestSubmit_MailHandoff(t *testing.T) {
	cfg := &config.Config{MailTo: "info@royalgatetravels.com", MailSubject: "New Travel Inquiry"}
	s := submitter.New(cfg, zaptest.NewLogger(t), nil, nil)
	f := newForm(t, s)

	res, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, res.Status)

	u, err := url.Parse(res.Receipt.Handoff)
	require.NoError(t, err)
	body := u.Query().Get("body")
	for _, v := range entered() {
		assert.Contains(t, body, v.(string))
	}
}

func TestRegistry_SameInstanceRejectsConcurrentSubmit(t *testing.T) {
	s := &stubSubmitter{started: make(chan struct{}, 1), release: make(chan struct{})}
	r := NewRegistry(func() *Form {
		return New(validation.New(model.SchemaContact), s, zaptest.NewLogger(t), nil)
	})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, _, firstErr = r.Submit(context.Background(), "form-1", entered())
	}()
	<-s.started

	id, _, err := r.Submit(context.Background(), "form-1", entered())
	assert.Equal(t, "form-1", id)
	assert.ErrorIs(t, err, ErrInFlight)

	close(s.release)
	wg.Wait()
	require.NoError(t, firstErr)

	id, res, err := r.Submit(context.Background(), "", entered())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, model.StatusSuccess, res.Status)

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestRegistry_KeepsInstanceWhileHeld(t *testing.T) {
	s := &stubSubmitter{started: make(chan struct{}, 1), release: make(chan struct{})}
	r := NewRegistry(func() *Form {
		return New(validation.New(model.SchemaContact), s, zaptest.NewLogger(t), nil)
	})
	ctx := context.Background()

	firstDone := make(chan error, 1)
	go func() {
		_, _, err := r.Submit(ctx, "x", entered())
		firstDone <- err
	}()
	<-s.started

	// A second request has looked up the instance but not submitted yet.
	held := r.acquire("x")

	s.release <- struct{}{}
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, r.Len(), "instance must survive while another request holds it")

	secondDone := make(chan error, 1)
	go func() {
		defer r.release("x")
		_, err := held.SubmitFields(ctx, entered())
		secondDone <- err
	}()
	<-s.started

	_, _, err := r.Submit(ctx, "x", entered())
	assert.ErrorIs(t, err, ErrInFlight)

	s.release <- struct{}{}
	require.NoError(t, <-secondDone)
	assert.Equal(t, int32(2), s.calls.Load())
	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 10*time.Millisecond)
}
