// Package errs defines the API error envelope and the mapping from domain
// failures to HTTP statuses.
package errs

import (
	"errors"
	"net/http"

	"ideaforge-api/pkg/extract"
)

// Stable error codes surfaced to clients.
const (
	CodeInvalidRequest      = "invalid_request"
	CodeNotFound            = "not_found"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeMalformedPayload    = "malformed_payload"
	CodeSchemaMismatch      = "schema_mismatch"
	CodeInternal            = "internal_error"
)

// APIError carries an HTTP status plus the client-facing error detail.
type APIError struct {
	Status  int
	Code    string
	Message string
	// Snippet is set for payload failures and holds the leading portion of
	// the raw model completion.
	Snippet string
	cause   error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *APIError) Unwrap() error { return e.cause }

// Invalid builds a 400 invalid_request error.
func Invalid(err error) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeInvalidRequest, Message: err.Error(), cause: err}
}

// NotFound builds a 404 not_found error.
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// FromAdvisor classifies an error returned by the advisor call path. Payload
// extraction failures map to their dedicated codes; anything else is treated
// as an unavailable upstream.
func FromAdvisor(err error) *APIError {
	if pe, ok := extract.AsParseError(err); ok {
		code := CodeMalformedPayload
		message := "model returned malformed JSON"
		if pe.Reason == extract.ReasonSchemaMismatch {
			code = CodeSchemaMismatch
			message = "model response missing required fields"
		}
		if pe.Err != nil {
			message = message + ": " + pe.Err.Error()
		}
		return &APIError{
			Status:  http.StatusBadGateway,
			Code:    code,
			Message: message,
			Snippet: pe.Snippet,
			cause:   err,
		}
	}
	return &APIError{
		Status:  http.StatusBadGateway,
		Code:    CodeUpstreamUnavailable,
		Message: "language model request failed",
		cause:   err,
	}
}

// Internal builds a 500 internal_error.
func Internal(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "internal error", cause: err}
}

// As unwraps err into an *APIError when possible.
func As(err error) (*APIError, bool) {
	var api *APIError
	if errors.As(err, &api) {
		return api, true
	}
	return nil, false
}
