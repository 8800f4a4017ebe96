package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/flightsearch"
)

const (
	alertMissingSelection = "Please select both departure and destination airports."
	alertInvalidDate      = "Please enter travel dates as YYYY-MM-DD."

	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

// SearchFlights builds the prefilled messaging link and sends the visitor to it.
// With format=json the message and link are returned instead.
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	msg, link, err := h.flights.Compose(flightQuery(r))
	if err != nil {
		h.flightFailed(w, err)
		return
	}
	h.countFlight("success")

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": msg,
			"link":    link,
		})
		return
	}
	http.Redirect(w, r, link, http.StatusSeeOther)
}

// FlightQRCode renders the messaging link as a PNG QR code.
func (h *Handler) FlightQRCode(w http.ResponseWriter, r *http.Request) {
	link, err := h.flights.Link(flightQuery(r))
	if err != nil {
		h.flightFailed(w, err)
		return
	}

	size := defaultQRSize
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		size = min(max(s, minQRSize), maxQRSize)
	}
	png, err := flightsearch.QRCode(link, size)
	if err != nil {
		h.log.Error("failed to render qr code", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "unable to render qr code",
		})
		return
	}
	h.countFlight("success")

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// Airports lists the airports selectable in the flight search.
func (h *Handler) Airports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, h.flights.Directory().Search(r.URL.Query().Get("q"), limit))
}

func (h *Handler) flightFailed(w http.ResponseWriter, err error) {
	alert := alertMissingSelection
	if errors.Is(err, flightsearch.ErrInvalidDate) {
		alert = alertInvalidDate
	}
	h.log.Warn("flight search rejected", zap.Error(err))
	h.countFlight("rejected")
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": alert})
}

func (h *Handler) countFlight(outcome string) {
	if h.metrics != nil {
		h.metrics.FlightLinks.WithLabelValues(outcome).Inc()
	}
}

// flightQuery reads the quick-search form. Passenger counts such as "5+" read as 5.
func flightQuery(r *http.Request) flightsearch.Query {
	v := r.URL.Query()
	passengers, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v.Get("passengers")), "+"))
	return flightsearch.Query{
		Origin:      v.Get("from"),
		Destination: v.Get("to"),
		Departure:   v.Get("departure"),
		Return:      v.Get("return"),
		Passengers:  passengers,
	}
}
