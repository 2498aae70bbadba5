// Package validate is the validation integration. Importing it enables the
// validation capability and provides struct and single-value validation on
// top of go-playground/validator tags.
//
// Failures come back as the library's validation error kind with every
// violated rule listed, and the native validator error is preserved in the
// chain for callers that need field-level detail.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GeneralBots/botlib/boterr"
	"github.com/GeneralBots/botlib/capability"
)

func init() {
	capability.Register(capability.Validation)
}

// shared instance, safe for concurrent use
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates the exported fields of s against their validate tags.
func Struct(s any) error {
	return wrapErr(v.Struct(s))
}

// Var validates a single value against a tag expression such as
// "required,email".
func Var(value any, tag string) error {
	return wrapErr(v.Var(value, tag))
}

// RegisterValidation installs a custom tag. Returns a config error when the
// tag name is empty or reserved.
func RegisterValidation(tag string, fn validator.Func) error {
	if err := v.RegisterValidation(tag, fn); err != nil {
		return boterr.Wrapf(boterr.ErrConfig, "register validation %q: %v", tag, err)
	}
	return nil
}

// Fields extracts the offending field names from a validation error, in
// declaration order. Returns nil when err carries no field detail.
func Fields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			if fe.Param() != "" {
				parts = append(parts, fmt.Sprintf("%s violates %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			} else {
				parts = append(parts, fmt.Sprintf("%s violates %s", fe.Field(), fe.Tag()))
			}
		}
		return boterr.MarkKind(fmt.Errorf("%s: %w", strings.Join(parts, "; "), err), boterr.KindValidation)
	}

	// InvalidValidationError: the input was not a validatable value at all.
	return boterr.MarkKind(err, boterr.KindValidation)
}
