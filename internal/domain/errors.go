package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds surfaced by every service. The HTTP layer maps them onto
// status codes (404, 409, 400, 500); nothing below the API layer knows
// about HTTP.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrInternal   = errors.New("internal error")
)

// NotFoundError reports a missing entity by name and id.
func NotFoundError(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// ConflictError reports a business-rule conflict (vehicle unavailable,
// quote already converted, contract already generated).
func ConflictError(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// InternalError wraps an unexpected persistence or runtime failure.
func InternalError(err error) error {
	return fmt.Errorf("%v: %w", err, ErrInternal)
}

// ValidationErrors collects field-level problems so callers get one report
// instead of the first failure.
type ValidationErrors struct {
	Fields map[string]string
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Fields: map[string]string{}}
}

// Add records a problem for a field. Only the first message per field is kept.
// The zero value is usable; the map is allocated on first use.
func (v *ValidationErrors) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = map[string]string{}
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

func (v *ValidationErrors) Empty() bool { return len(v.Fields) == 0 }

// Err returns the aggregate error, or nil when no field failed.
func (v *ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match aggregated field errors.
func (v *ValidationErrors) Is(target error) bool { return target == ErrValidation }
