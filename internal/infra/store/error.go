package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tablebook/internal/pkg/errs"
)

type ErrorKind string

// Store-specific error kinds
const (
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindConflict    ErrorKind = "CONFLICT"
	KindValidation  ErrorKind = "VALIDATION"
	KindUnavailable ErrorKind = "UNAVAILABLE"
	KindBadResponse ErrorKind = "BAD_RESPONSE"
)

// StoreError is the uniform shape every Reservation Store failure is
// normalized to before it reaches a usecase. Message carries the server's
// own wording so submission failures can be surfaced verbatim.
type StoreError struct {
	Kind    ErrorKind
	Message string
	err     error // wrapped low-level error
}

func (e StoreError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e StoreError) Unwrap() error {
	return e.err
}

func IsKind(err error, kind ErrorKind) bool {
	var e StoreError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// UserMessage extracts the store's verbatim message from a normalized
// error, or falls back to a generic one.
func UserMessage(err error) string {
	var e StoreError
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "reservation service is unavailable"
}

func newStoreErr(logger *slog.Logger, kind ErrorKind, msg string, err error) error {
	logger.Error("store error: "+msg, slog.String("kind", string(kind)))
	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return StoreError{Kind: kind, Message: msg, err: err}
}

// errorEnvelope is the single accepted error body shape; anything else
// degrades to a status-derived message instead of ad hoc shape guessing.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func normalizeResponse(logger *slog.Logger, resp *http.Response, body []byte) error {
	kind := kindForStatus(resp.StatusCode)

	var env errorEnvelope
	msg := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		msg = env.Error.Message
	}
	return newStoreErr(logger, kind, msg, nil)
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindUnavailable
	}
}
