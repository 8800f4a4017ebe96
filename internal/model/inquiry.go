// Package model holds the inquiry payloads accepted from the website forms.
package model

import "strconv"

// Line is one labelled value of a submission, used for plain-text renderings.
type Line struct {
	Label string
	Value string
}

// Submission is a validated form payload ready for dispatch.
type Submission interface {
	Lines() []Line
}

// Inquiry represents the core contact form.
type Inquiry struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"email"`
	Phone   string `json:"phone" validate:"min=10"`
	Message string `json:"message" validate:"min=10"`
}

// Lines implements Submission.
func (i Inquiry) Lines() []Line {
	return []Line{
		{Label: "Name", Value: i.Name},
		{Label: "Email", Value: i.Email},
		{Label: "Phone", Value: i.Phone},
		{Label: "Message", Value: i.Message},
	}
}

// QuoteRequest represents the trip-planning variant of the contact form.
type QuoteRequest struct {
	Name        string `json:"name" validate:"min=2"`
	Email       string `json:"email" validate:"email"`
	Phone       string `json:"phone" validate:"min=10"`
	Service     string `json:"service" validate:"required,travelservice"`
	Destination string `json:"destination"`
	DateFrom    string `json:"dateFrom" validate:"omitempty,datetime=2006-01-02"`
	DateTo      string `json:"dateTo" validate:"omitempty,datetime=2006-01-02"`
	Travelers   int    `json:"travelers" validate:"min=1"`
	Budget      string `json:"budget" validate:"omitempty,budgetrange"`
	Message     string `json:"message"`
	AcceptTerms bool   `json:"acceptTerms" validate:"eq=true"`
}

// Lines implements Submission. Optional fields left blank are omitted.
func (q QuoteRequest) Lines() []Line {
	lines := []Line{
		{Label: "Name", Value: q.Name},
		{Label: "Email", Value: q.Email},
		{Label: "Phone", Value: q.Phone},
		{Label: "Service", Value: q.Service},
	}
	optional := []Line{
		{Label: "Destination", Value: q.Destination},
		{Label: "Travel Date From", Value: q.DateFrom},
		{Label: "Travel Date To", Value: q.DateTo},
	}
	for _, l := range optional {
		if l.Value != "" {
			lines = append(lines, l)
		}
	}
	lines = append(lines, Line{Label: "Travelers", Value: strconv.Itoa(q.Travelers)})
	if q.Budget != "" {
		lines = append(lines, Line{Label: "Budget", Value: q.Budget})
	}
	if q.Message != "" {
		lines = append(lines, Line{Label: "Message", Value: q.Message})
	}
	return lines
}
