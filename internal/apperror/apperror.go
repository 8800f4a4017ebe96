// Package apperror maps validation failures to the messages shown beside each form field.
package apperror

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	msgNameTooShort      = "Name must be at least 2 characters"
	msgInvalidEmail      = "Please enter a valid email address"
	msgInvalidPhone      = "Please enter a valid phone number"
	msgMessageTooShort   = "Message must be at least 10 characters"
	msgServiceRequired   = "Please select a service"
	msgTravelersTooFew   = "Number of travelers must be at least 1"
	msgTermsNotAccepted  = "You must accept the terms and conditions"
	msgInvalidDate       = "Please enter a valid date"
	msgReturnBeforeStart = "Return date must be on or after the departure date"
	msgInvalidBudget     = "Please select a valid budget range"
)

var customMessages = map[string]string{
	"Inquiry.name.min":    msgNameTooShort,
	"Inquiry.email.email": msgInvalidEmail,
	"Inquiry.phone.min":   msgInvalidPhone,
	"Inquiry.message.min": msgMessageTooShort,

	"QuoteRequest.name.min":              msgNameTooShort,
	"QuoteRequest.email.email":           msgInvalidEmail,
	"QuoteRequest.phone.min":             msgInvalidPhone,
	"QuoteRequest.service.required":      msgServiceRequired,
	"QuoteRequest.service.travelservice": msgServiceRequired,
	"QuoteRequest.dateFrom.datetime":     msgInvalidDate,
	"QuoteRequest.dateTo.datetime":       msgInvalidDate,
	"QuoteRequest.dateTo.notbeforestart": msgReturnBeforeStart,
	"QuoteRequest.travelers.min":         msgTravelersTooFew,
	"QuoteRequest.budget.budgetrange":    msgInvalidBudget,
	"QuoteRequest.acceptTerms.eq":        msgTermsNotAccepted,
}

// FieldErrors maps a form field name to the message rendered next to it.
type FieldErrors map[string]string

// Error implements error so a non-empty set can travel through error returns.
func (fe FieldErrors) Error() string {
	return fmt.Sprintf("%d invalid field(s)", len(fe))
}

// Message returns the user-facing text for a failed rule.
// namespace is "<Struct>.<field>" and tag is the rule name.
func Message(namespace, tag string) string {
	if msg, ok := customMessages[namespace+"."+tag]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", namespace)
}

// CustomValidationError converts validator errors into field-level messages.
// Only the first failing rule of each field is kept.
func CustomValidationError(err error) FieldErrors {
	errs := make(FieldErrors)

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		for _, e := range validationErr {
			if _, seen := errs[e.Field()]; seen {
				continue
			}
			errs[e.Field()] = Message(e.Namespace(), e.Tag())
		}
	}
	return errs
}
