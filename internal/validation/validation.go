// Package validation turns untyped request input into typed, constrained
// records.
//
// A record is a struct whose fields carry a `json` tag (request bodies) or a
// `query` tag (query strings) naming the wire field, and an optional
// `validate` tag understood by go-playground/validator. Supported field types
// are *float64, string and slices of records. Numeric fields accept JSON
// numbers and numeric strings; null is treated as absent.
//
// Decoding either fills the whole record or reports every problem at once as
// FieldErrors.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// Validator decodes and validates request records. It is safe for concurrent
// use and is meant to be built once at startup.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that reports fields by their wire names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(wireName)
	return &Validator{validate: v}
}

// DecodeJSON reads a JSON object from body into dst, which must be a pointer
// to a record struct. It returns ErrNoInput, ErrMalformedBody or FieldErrors
// on failure.
func (v *Validator) DecodeJSON(body io.Reader, dst any) error {
	if body == nil {
		return ErrNoInput
	}

	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(data) > maxBodyBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedBody, maxBodyBytes)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrNoInput
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON value", ErrMalformedBody)
	}

	switch p := payload.(type) {
	case nil:
		return ErrNoInput
	case map[string]any:
		if len(p) == 0 {
			return ErrNoInput
		}
		return v.decode(p, "json", dst)
	default:
		return FieldErrors{SchemaField: {msgInvalidInput}}
	}
}

// DecodeQuery fills dst from query parameters, using the first value of each
// parameter. It returns FieldErrors on failure.
func (v *Validator) DecodeQuery(values url.Values, dst any) error {
	raw := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return v.decode(raw, "query", dst)
}

func (v *Validator) decode(raw map[string]any, tag string, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("validation: dst must be a non-nil pointer to a struct, got %T", dst)
	}

	errs := FieldErrors{}
	if err := bindStruct(rv.Elem(), raw, tag, "", errs); err != nil {
		return err
	}
	if err := v.check(dst, errs); err != nil {
		return err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// check runs the validate tags and adds their failures to errs, skipping
// fields that already failed coercion.
func (v *Validator) check(rec any, errs FieldErrors) error {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}

	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if errs.covers(field) {
			continue
		}
		errs.Add(field, message(fe))
	}
	return nil
}

func bindStruct(sv reflect.Value, raw map[string]any, tag, prefix string, errs FieldErrors) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := tagName(sf, tag)
		if name == "" {
			continue
		}

		val, ok := raw[name]
		if !ok || val == nil {
			continue
		}

		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if err := bindField(sv.Field(i), val, tag, key, errs); err != nil {
			return fmt.Errorf("validation: field %s.%s: %w", st.Name(), sf.Name, err)
		}
	}
	return nil
}

func bindField(fv reflect.Value, val any, tag, key string, errs FieldErrors) error {
	switch {
	case fv.Type() == reflect.TypeFor[*float64]():
		f, msg := coerceNumber(val)
		if msg != "" {
			errs.Add(key, msg)
			return nil
		}
		fv.Set(reflect.ValueOf(&f))

	case fv.Kind() == reflect.String:
		s, ok := val.(string)
		if !ok {
			errs.Add(key, msgInvalidStr)
			return nil
		}
		fv.SetString(s)

	case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.Struct:
		items, ok := val.([]any)
		if !ok {
			errs.Add(key, msgInvalidList)
			return nil
		}
		out := reflect.MakeSlice(fv.Type(), len(items), len(items))
		for i, item := range items {
			itemKey := fmt.Sprintf("%s[%d]", key, i)
			obj, ok := item.(map[string]any)
			if !ok {
				errs.Add(itemKey, msgInvalidInput)
				continue
			}
			if err := bindStruct(out.Index(i), obj, tag, itemKey, errs); err != nil {
				return err
			}
		}
		fv.Set(out)

	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

// coerceNumber converts a decoded JSON value or query string to a finite
// float64. A non-empty message means the value was rejected.
func coerceNumber(val any) (float64, string) {
	var s string
	switch x := val.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	case float64:
		s = strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return 0, msgInvalidNum
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, msgSpecialNum
		}
		return 0, msgInvalidNum
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, msgSpecialNum
	}
	return f, ""
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgMissing
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
		}
		return fmt.Sprintf("Must be greater than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed %q validation.", fe.Tag())
	}
}

// fieldPath drops the root struct name from a validator namespace, leaving
// e.g. "steps[0].op".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func wireName(sf reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		if name := tagName(sf, tag); name != "" {
			return name
		}
	}
	return ""
}

func tagName(sf reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
	if name == "-" {
		return ""
	}
	return name
}
