package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the configuration file does not exist at the expected path.
	ErrNotFound = errors.New("config file not found")
	// ErrIO is returned when the configuration file cannot be read.
	ErrIO = errors.New("config file unreadable")
	// ErrParse is returned when the configuration file is not a valid flat YAML mapping.
	ErrParse = errors.New("config file malformed")
	// ErrValidation is returned when the document does not satisfy the configuration schemas.
	ErrValidation = errors.New("config validation failed")
)

// ParseError reports malformed YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse YAML: %v", e.Err)
	}
	return fmt.Sprintf("parse YAML %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrParse so callers can match without a type assertion.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// FieldError is a single schema violation.
type FieldError struct {
	Schema  string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Schema, e.Field, e.Message)
}

// ValidationError aggregates every field violation found across both schemas.
type ValidationError struct {
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s with %d error(s):", ErrValidation, len(e.Fields))
	for i, field := range e.Fields {
		fmt.Fprintf(&sb, "\n  %d. %s", i+1, field.Error())
	}
	return sb.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Field returns the first violation reported for the named key, or nil.
func (e *ValidationError) Field(name string) *FieldError {
	for _, field := range e.Fields {
		if field.Field == name {
			return field
		}
	}
	return nil
}
