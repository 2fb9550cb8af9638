package validation

import (
	"errors"
	"sort"
	"strings"
)

// NoInputMessage is the client-facing message for a request without a payload.
const NoInputMessage = "No input data provided"

var (
	// ErrNoInput is returned when the body is absent, empty, null or {}.
	ErrNoInput = errors.New("no input data provided")

	// ErrMalformedBody is returned when the body is not parseable JSON.
	ErrMalformedBody = errors.New("malformed request body")
)

// Messages reported against individual fields.
const (
	msgMissing      = "Missing data for required field."
	msgInvalidNum   = "Not a valid number."
	msgSpecialNum   = "Special numeric values (nan or infinity) are not permitted."
	msgInvalidStr   = "Not a valid string."
	msgInvalidList  = "Not a valid list."
	msgInvalidInput = "Invalid input type."
)

// SchemaField is the key used for errors that concern the payload as a whole.
const SchemaField = "_schema"

// FieldErrors maps an input field name to its validation messages.
type FieldErrors map[string][]string

// Add appends msg to the messages recorded for field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// covers reports whether field, or a record containing it, already has a
// message.
func (fe FieldErrors) covers(field string) bool {
	for f := range fe {
		if f == field || strings.HasPrefix(field, f+".") {
			return true
		}
	}
	return false
}

// Error renders the errors as "field: msg; field: msg" with fields sorted.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(fe[f], " "))
	}
	return strings.Join(parts, "; ")
}
