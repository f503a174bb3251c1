package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/codr1/leagueapi/internal/api/authz"
)

// QueryTimeout bounds every storage call made by a handler.
const QueryTimeout = 5 * time.Second

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

type messageResponse struct {
	Message string `json:"message"`
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("missing request body")
		}
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteMessage writes {"message": msg}.
func WriteMessage(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, messageResponse{Message: msg})
}

// WriteError maps err to a JSON message. HandlerError and FieldError carry
// their own status; everything else is logged and reported as 500.
func WriteError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var handlerErr HandlerError
	var fieldErr FieldError
	switch {
	case errors.As(err, &handlerErr):
		if handlerErr.Status >= http.StatusInternalServerError {
			logger.Error().Err(err).Msg(handlerErr.Message)
		}
		_ = WriteMessage(w, handlerErr.Status, handlerErr.Message)
	case errors.As(err, &fieldErr):
		_ = WriteMessage(w, http.StatusBadRequest, fieldErr.Error())
	default:
		logger.Error().Err(err).Msg("Unhandled handler error")
		_ = WriteMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// WriteAuthzError reports authz failures as 401/403.
func WriteAuthzError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		logger.Warn().Msg("Access denied: unauthenticated")
		_ = WriteMessage(w, http.StatusUnauthorized, "Authentication credentials were not provided")
	case errors.Is(err, authz.ErrForbidden):
		logger.Warn().Msg("Access denied: forbidden")
		_ = WriteMessage(w, http.StatusForbidden, "You do not have permission to perform this action")
	default:
		logger.Error().Err(err).Msg("Access check failed")
		_ = WriteMessage(w, http.StatusInternalServerError, "Failed to authorize request")
	}
}

// WriteRateLimited sets Retry-After (whole seconds, at least 1) and writes 429.
func WriteRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int((retryAfter + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	_ = WriteMessage(w, http.StatusTooManyRequests, "Too many requests, try again later")
}

// NotFound builds the 404 HandlerError for entity.
func NotFound(entity string) HandlerError {
	return HandlerError{Status: http.StatusNotFound, Message: entity + " not found"}
}

// BadRequest builds a 400 HandlerError.
func BadRequest(msg string) HandlerError {
	return HandlerError{Status: http.StatusBadRequest, Message: msg}
}

// ListResponse wraps items as {"<key>": [...]}, never null.
func ListResponse[T any](key string, items []T) map[string][]T {
	if items == nil {
		items = []T{}
	}
	return map[string][]T{key: items}
}
