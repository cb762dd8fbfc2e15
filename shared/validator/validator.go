// Package validator decodes request bodies and checks them against their
// validate tags. Every failure is a 400 naming the JSON field at fault.
package validator

import (
	"careops/shared/failure"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidate()

func newValidate() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}

	return v
}

// notBlank rejects whitespace-only strings. A nil pointer passes so optional
// patch fields can combine it with omitempty.
func notBlank(field val.FieldLevel) bool {
	value := field.Field()

	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return true
		}

		value = value.Elem()
	}

	if value.Kind() == reflect.String {
		return strings.TrimSpace(value.String()) != ""
	}

	return !value.IsZero()
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// Validate decodes a single JSON document from r into data and validates it.
// An empty body decodes to the zero value, so required fields still fail.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(io.LimitReader(r, maxBodyBytes))

	if err := decoder.Decode(data); err != nil && !errors.Is(err, io.EOF) {
		return failure.BadRequestFromString(decodeMessage(err))
	}

	if decoder.More() {
		return failure.BadRequestFromString("request body must contain a single JSON object")
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err))
	}

	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type)
	}

	return fmt.Sprintf("failed to decode request body: %v", err)
}
