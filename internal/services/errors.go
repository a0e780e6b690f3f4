package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrWorkspaceClosed    = errors.New("workspace is closed")
	ErrUnknownEmail       = errors.New("no account registered for this email")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrDraftNotFound      = errors.New("signup draft not found or expired")
	ErrDraftIncomplete    = errors.New("signup draft is missing a step")
	ErrNotVerified        = errors.New("email not verified")
	ErrUnknownPlatform    = errors.New("unknown platform")
	ErrUnknownOutcome     = errors.New("unknown oauth outcome")
	ErrRequestResolved    = errors.New("oauth request already resolved")
)

// ValidationError carries one message per rejected field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors accumulates per-field messages, keeping the first per field.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: map[string]string(f)}
}
