package model

import "fmt"

// Status is the outcome shown to the visitor for the latest attempt.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Schema selects which form variant a deployment accepts.
type Schema string

const (
	SchemaContact Schema = "contact"
	SchemaQuote   Schema = "quote"
)

// ParseSchema validates a configured schema name.
func ParseSchema(s string) (Schema, error) {
	switch Schema(s) {
	case SchemaContact, SchemaQuote:
		return Schema(s), nil
	}
	return "", fmt.Errorf("unknown form schema %q", s)
}

// Services lists the services a quote can be requested for.
var Services = []string{
	"Honeymoon packages",
	"Hajj & Umra",
	"Worldwide Air tickets",
	"Travel Insurance",
	"Visa Services",
	"Hotel Booking",
}

// BudgetRanges lists the accepted budget bucket identifiers.
var BudgetRanges = []string{
	"under-1000",
	"1000-2500",
	"2500-5000",
	"5000-10000",
	"over-10000",
}
