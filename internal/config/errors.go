package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is.
var (
	ErrNotFound = errors.New("config not found")
	ErrParse    = errors.New("config parse error")
	ErrInvalid  = errors.New("config validation error")
)

// NotFoundError is returned when the config file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ParseError is returned for malformed YAML or a document that does not
// match the config schema. Exactly one of Err or Issues is set.
type ParseError struct {
	Path   string
	Err    error
	Issues []SchemaIssue
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
	}
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("%s does not match the config schema: %s", e.Path, strings.Join(msgs, "; "))
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ValidationError is returned when a well-formed config has empty or
// unsupported values.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Path, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }
