// Package validation turns raw form field data into a typed submission or field errors.
package validation

import (
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/apperror"
	"github.com/AbdullahRiazMirza/royal-gate-travels/internal/model"
)

const dateLayout = "2006-01-02"

// ServiceValidator accepts only services offered in the quote form.
var ServiceValidator = func(fl validator.FieldLevel) bool {
	return slices.Contains(model.Services, fl.Field().String())
}

// BudgetValidator accepts only the budget buckets offered in the quote form.
var BudgetValidator = func(fl validator.FieldLevel) bool {
	return slices.Contains(model.BudgetRanges, fl.Field().String())
}

// Validator checks form input against the schema of one deployment.
type Validator struct {
	schema   model.Schema
	validate *validator.Validate
}

// New builds a Validator for the given schema.
func New(schema model.Schema) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("travelservice", ServiceValidator)
	_ = v.RegisterValidation("budgetrange", BudgetValidator)
	v.RegisterStructValidation(quoteDates, model.QuoteRequest{})
	return &Validator{schema: schema, validate: v}
}

// Schema reports which form variant the validator accepts.
func (v *Validator) Schema() model.Schema {
	return v.schema
}

// Validate checks every rule of the schema and reports all violating fields at once.
// On success the returned submission carries the input values unchanged.
func (v *Validator) Validate(fields map[string]any) (model.Submission, apperror.FieldErrors) {
	if v.schema == model.SchemaQuote {
		return check(v.validate, model.QuoteRequest{
			Name:        text(fields, "name"),
			Email:       text(fields, "email"),
			Phone:       text(fields, "phone"),
			Service:     text(fields, "service"),
			Destination: text(fields, "destination"),
			DateFrom:    text(fields, "dateFrom"),
			DateTo:      text(fields, "dateTo"),
			Travelers:   number(fields, "travelers"),
			Budget:      text(fields, "budget"),
			Message:     text(fields, "message"),
			AcceptTerms: flag(fields, "acceptTerms"),
		})
	}
	return check(v.validate, model.Inquiry{
		Name:    text(fields, "name"),
		Email:   text(fields, "email"),
		Phone:   text(fields, "phone"),
		Message: text(fields, "message"),
	})
}

func check[T model.Submission](validate *validator.Validate, s T) (model.Submission, apperror.FieldErrors) {
	if err := validate.Struct(s); err != nil {
		errs := apperror.CustomValidationError(err)
		if len(errs) == 0 {
			errs["form"] = err.Error()
		}
		return nil, errs
	}
	return s, nil
}

func quoteDates(sl validator.StructLevel) {
	q, ok := sl.Current().Interface().(model.QuoteRequest)
	if !ok || q.DateFrom == "" || q.DateTo == "" {
		return
	}
	from, err := time.Parse(dateLayout, q.DateFrom)
	if err != nil {
		return
	}
	to, err := time.Parse(dateLayout, q.DateTo)
	if err != nil {
		return
	}
	if to.Before(from) {
		sl.ReportError(q.DateTo, "dateTo", "DateTo", "notbeforestart", "")
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
