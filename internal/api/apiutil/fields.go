package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// PathID parses the positive integer path value name.
func PathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	if raw == "" {
		return 0, FieldError{Field: name, Reason: "is required"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, FieldError{Field: name, Reason: "must be a positive integer"}
	}
	return id, nil
}

// RequireText trims value and checks it is present and at most max runes.
func RequireText(value, field string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	return OptionalText(value, field, max)
}

// OptionalText trims value and checks it is at most max runes.
func OptionalText(value, field string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > max {
		return "", FieldError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", max)}
	}
	return value, nil
}

func RequirePositiveID(value *int64, field string) (int64, error) {
	if value == nil {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	if *value <= 0 {
		return 0, FieldError{Field: field, Reason: "must be a positive integer"}
	}
	return *value, nil
}

func RequireIntInRange(value *int64, field string, min, max int64) (int64, error) {
	if value == nil {
		return 0, FieldError{Field: field, Reason: "is required"}
	}
	if *value < min || *value > max {
		return 0, FieldError{Field: field, Reason: fmt.Sprintf("must be between %d and %d", min, max)}
	}
	return *value, nil
}

// ParseDate validates a YYYY-MM-DD calendar date and returns it normalized.
func ParseDate(raw, field string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", FieldError{Field: field, Reason: "is required"}
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return "", FieldError{Field: field, Reason: "must be a date formatted YYYY-MM-DD"}
	}
	return parsed.Format(time.DateOnly), nil
}
