// Package form holds the per-instance state of an inquiry form and drives its
// validate-then-submit flow.
package form

import (
	"context"
	"errors"
	"maps"
	"sync"

	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/apperror"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/metrics"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/submitter"
)

var (
	// ErrInFlight is returned while a previous attempt on the same form is pending.
	ErrInFlight = errors.New("a submission is already in progress")
	// ErrInvalid is returned when at least one field fails validation.
	ErrInvalid = errors.New("form has invalid fields")
)

// Validator turns raw field data into a submission or field errors.
type Validator interface {
	Validate(fields map[string]any) (model.Submission, apperror.FieldErrors)
}

// Result is the visible outcome of one Submit call.
type Result struct {
	Status  model.Status
	Errors  apperror.FieldErrors
	Receipt submitter.Receipt
}

// Form is one form instance. Its state is owned locally and never shared
// between instances.
type Form struct {
	validator Validator
	submitter submitter.Submitter
	log       *zap.Logger
	metrics   *metrics.Metrics

	mu         sync.Mutex
	fields     map[string]any
	status     model.Status
	errors     apperror.FieldErrors
	submitting bool
}

// New creates an empty form in the idle state.
func New(v Validator, s submitter.Submitter, log *zap.Logger, m *metrics.Metrics) *Form {
	return &Form{
		validator: v,
		submitter: s,
		log:       log,
		metrics:   m,
		fields:    make(map[string]any),
		status:    model.StatusIdle,
	}
}

// Set updates one field value.
func (f *Form) Set(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields[name] = value
}

// Fields returns a copy of the current field values.
func (f *Form) Fields() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.fields)
}

// Status returns the outcome of the latest attempt.
func (f *Form) Status() model.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Errors returns the field errors of the latest validation.
func (f *Form) Errors() apperror.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Submitting reports whether an attempt is pending.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit validates the current fields and dispatches them.
func (f *Form) Submit(ctx context.Context) (Result, error) {
	return f.submit(ctx, nil)
}

// SubmitFields replaces all field values and submits them. The replacement is
// skipped when another attempt is pending so that attempt's values survive.
func (f *Form) SubmitFields(ctx context.Context, fields map[string]any) (Result, error) {
	if fields == nil {
		fields = make(map[string]any)
	}
	return f.submit(ctx, fields)
}

func (f *Form) submit(ctx context.Context, replace map[string]any) (Result, error) {
	f.mu.Lock()
	if f.submitting {
		status := f.status
		f.mu.Unlock()
		return Result{Status: status}, ErrInFlight
	}
	if replace != nil {
		f.fields = maps.Clone(replace)
	}

	sub, errs := f.validator.Validate(f.fields)
	if len(errs) > 0 {
		f.errors = errs
		status := f.status
		f.mu.Unlock()
		f.recordInvalid(errs)
		return Result{Status: status, Errors: maps.Clone(errs)}, ErrInvalid
	}

	f.errors = nil
	f.status = model.StatusIdle
	f.submitting = true
	f.mu.Unlock()
	defer f.finish()

	receipt, err := f.submitter.Submit(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.status = model.StatusError
		f.log.Error("form submission error", zap.String("id", receipt.ID), zap.Error(err))
		return Result{Status: model.StatusError, Receipt: receipt}, err
	}
	f.status = model.StatusSuccess
	f.fields = make(map[string]any)
	return Result{Status: model.StatusSuccess, Receipt: receipt}, nil
}

func (f *Form) finish() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
}

func (f *Form) recordInvalid(errs apperror.FieldErrors) {
	if f.metrics == nil {
		return
	}
	for field := range errs {
		f.metrics.ValidationFailures.WithLabelValues(field).Inc()
	}
}
