// Movie Library - Educational Movie Catalog with AI Recommendations
// Copyright 2026 alotaibiaseel22-ops
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/alotaibiaseel22-ops/movie-library

// Package validation provides struct validation using go-playground/validator
// v10 and the ValidationError type shared by the catalog and account
// services.
//
// A single thread-safe validator instance is shared process-wide; validator
// caches struct metadata, so reusing one instance is both correct and cheap.
//
// Example usage:
//
//	type registration struct {
//	    Username string `validate:"required"`
//	    Password string `validate:"required"`
//	}
//
//	if err := validation.Struct(&registration{...}); err != nil {
//	    return err // *validation.ValidationError
//	}
package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports a rejected input: a required field missing or
// empty, or a uniqueness constraint violated. It propagates to the immediate
// caller, which decides the user-facing message.
type ValidationError struct {
	// Field is the offending field in its wire-format spelling ("username").
	Field string

	// Message describes the violation ("required", "already exists").
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewError builds a ValidationError for a field.
func NewError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Struct validates a tagged struct using the shared validator.
// It returns nil on success, or a *ValidationError for the first failing
// field. Field names are lowercased to match the persisted JSON spelling.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := fieldErrs[0]
	return &ValidationError{
		Field:   strings.ToLower(first.Field()),
		Message: tagMessage(first),
	}
}

// tagMessage translates a validator tag into a short human message.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "invalid value (" + fe.Tag() + ")"
	}
}
