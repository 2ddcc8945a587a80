// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Registration is one stored sign-up for the dance event, exactly as it
// sits in the registrations table.
//
// The optional fields are pointers so a value that was never submitted
// encodes as JSON null rather than "".
type Registration struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	DanceStyle *string   `json:"dance_style"`
	Experience *string   `json:"experience"`
	Message    *string   `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegistrationRequest is the payload of POST /api/register.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  is the key expected in a JSON body (form bodies use the
//     same names).
//
//  2. validate:"..." lists rules checked by the go-playground/validator
//     package. "required" means the field must be non-zero / non-empty,
//     so an age of 0 counts as missing. "basic_email" is registered by
//     the validation package.
type RegistrationRequest struct {
	Name       string  `json:"name"        validate:"required"`
	Age        Age     `json:"age"         validate:"required,gte=10,lte=25"`
	Phone      string  `json:"phone"       validate:"required"`
	Email      string  `json:"email"       validate:"required,basic_email"`
	DanceStyle *string `json:"dance_style"`
	Experience *string `json:"experience"`
	Message    *string `json:"message"`
}

// ErrInvalidAge is returned when an age value is not a whole number.
var ErrInvalidAge = errors.New("age must be a whole number")

// Age is a registrant's age in years.
//
// Browsers and hand-written clients send it either as a JSON number or as
// a string ("16"), so both are accepted. An empty string or null leaves the
// age at zero, which validation then reports as a missing field.
type Age int

// UnmarshalJSON implements json.Unmarshaler.
func (a *Age) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAge
		}
		return a.Parse(s)
	}

	return a.Parse(string(data))
}

// Parse sets the age from its textual form.
func (a *Age) Parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*a = 0
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return ErrInvalidAge
	}

	*a = Age(n)
	return nil
}
