// Package handler contains HTTP handlers for the inquiry API.
package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/flightsearch"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/form"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/metrics"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/validation"
)

// FormInstanceHeader carries the form instance ID between client and server.
const FormInstanceHeader = "X-Form-Instance"

const (
	maxBodyBytes = 64 << 10

	bannerSuccess = "Thank you! Your request has been submitted successfully. We'll get back to you within 24 hours."
	bannerError   = "Sorry, there was an error submitting your request. Please try again or contact us directly."
)

// Handler wraps HTTP handlers with logger, form registry and flight search.
type Handler struct {
	log     *zap.Logger
	forms   *form.Registry
	flights *flightsearch.Builder
	metrics *metrics.Metrics
}

// New creates a new Handler instance.
func New(log *zap.Logger, forms *form.Registry, flights *flightsearch.Builder, m *metrics.Metrics) *Handler {
	return &Handler{log: log, forms: forms, flights: flights, metrics: m}
}

// Healthz is a simple health check endpoint.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// SubmitInquiry validates and dispatches one inquiry form.
func (h *Handler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	fields, formEncoded, err := decodeFields(w, r)
	if err != nil {
		h.log.Error("failed to decode inquiry", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid request payload",
		})
		return
	}

	id, res, err := h.forms.Submit(r.Context(), r.Header.Get(FormInstanceHeader), fields)
	w.Header().Set(FormInstanceHeader, id)
	switch {
	case errors.Is(err, form.ErrInvalid):
		h.log.Warn("validation failed", zap.String("form", id), zap.Int("fields", len(res.Errors)))
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"status": res.Status,
			"errors": res.Errors,
		})
		return
	case errors.Is(err, form.ErrInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "a submission is already in progress",
		})
		return
	case err != nil:
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"status":  string(res.Status),
			"message": bannerError,
		})
		return
	}

	if formEncoded && res.Receipt.Handoff != "" {
		http.Redirect(w, r, res.Receipt.Handoff, http.StatusSeeOther)
		return
	}
	body := map[string]string{
		"status":  string(res.Status),
		"message": bannerSuccess,
		"id":      res.Receipt.ID,
	}
	if res.Receipt.Handoff != "" {
		body["handoff"] = res.Receipt.Handoff
	}
	writeJSON(w, http.StatusOK, body)
}

// decodeFields reads the untyped field map from a JSON object or a form post.
func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]any, bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, true, err
		}
		return validation.FromValues(r.PostForm), true, nil
	}

	var fields map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, false, err
	}
	if fields == nil {
		return nil, false, errors.New("empty payload")
	}
	return fields, false, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
