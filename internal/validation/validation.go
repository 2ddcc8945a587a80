// Package validation wires go-playground/validator for registration
// payloads and turns its per-field errors into a single rejection reason.
package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// emailPattern accepts anything shaped like local@domain.tld, nothing more.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Reason identifies which rule a submission broke.
type Reason string

const (
	ReasonMissingField Reason = "missing_field"
	ReasonAgeRange     Reason = "age_out_of_range"
	ReasonEmailFormat  Reason = "invalid_email"
)

// Error is a rejected submission.
type Error struct {
	Reason Reason
	Field  string
}

func (e *Error) Error() string {
	switch e.Reason {
	case ReasonMissingField:
		return "please fill in all required fields"
	case ReasonAgeRange:
		return "age must be between 10 and 25"
	case ReasonEmailFormat:
		return "please enter a valid email address"
	default:
		return "invalid registration"
	}
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// New returns a validator with the "basic_email" rule registered.
//
// A *validator.Validate caches struct metadata, so callers should build
// one and share it.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// RegisterValidation only fails for an empty tag or nil func.
	_ = v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})

	return v
}

// Struct validates s and returns nil or an *Error.
//
// The checks are reported in a fixed priority regardless of field order:
// any missing required field first, then the age range, then the email
// format.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	return Classify(verrs)
}

// Classify picks the highest-priority failure out of errs.
func Classify(errs validator.ValidationErrors) *Error {
	var ageErr, emailErr *Error

	for _, fe := range errs {
		switch {
		case fe.Tag() == "required":
			return &Error{Reason: ReasonMissingField, Field: fe.Field()}
		case fe.Field() == "Age" && ageErr == nil:
			ageErr = &Error{Reason: ReasonAgeRange, Field: fe.Field()}
		case fe.Tag() == "basic_email" && emailErr == nil:
			emailErr = &Error{Reason: ReasonEmailFormat, Field: fe.Field()}
		}
	}

	if ageErr != nil {
		return ageErr
	}
	if emailErr != nil {
		return emailErr
	}

	// Any other tag we never declared on a registration payload.
	return &Error{Reason: ReasonMissingField, Field: errs[0].Field()}
}
