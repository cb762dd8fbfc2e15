package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const fallbackMessage = "{field} is invalid"

var messages = map[string]string{
	"required": "{field} is required",
	"notblank": "{field} must not be blank",
	"email":    "{field} must be a valid email address",
	"uuid":     "{field} must be a valid UUID",
	"oneof":    "{field} must be one of {param}",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"max":      "{field} must be less than or equal to {param}",
	"gtfield":  "{field} must be after {param}",
}

// message describes the first failing field only.
func message(err error) string {
	var fieldErrs val.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	first := fieldErrs[0]

	template, ok := messages[first.Tag()]
	if !ok {
		template = fallbackMessage
	}

	param := first.Param()
	if first.Tag() == "gtfield" {
		param = lowerFirst(param)
	}

	return strings.NewReplacer("{field}", first.Field(), "{param}", param).Replace(template)
}

// lowerFirst maps a Go field name such as StartTime to its wire name.
func lowerFirst(name string) string {
	if name == "" {
		return name
	}

	return strings.ToLower(name[:1]) + name[1:]
}
