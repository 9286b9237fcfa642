// Package extract recovers JSON objects from free-form LLM completions.
//
// Chat models asked for JSON frequently wrap the payload in markdown code
// fences or surround it with explanatory prose. This package normalises such
// completions through a small sequence of text steps and decodes the result,
// reporting failures with a diagnostic snippet of the original text.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// SnippetLimit caps the diagnostic excerpt retained on parse failures.
const SnippetLimit = 500

const (
	fenceMarker   = "```"
	fenceLangJSON = "json"
)

// Reason classifies why extraction failed.
type Reason string

const (
	// ReasonMalformedJSON means a candidate payload was located but did not
	// decode as JSON.
	ReasonMalformedJSON Reason = "malformed_json"
	// ReasonSchemaMismatch means the payload decoded but a required field was
	// missing or out of range. Raised by callers that validate the decoded
	// value, not by Object/Decode themselves.
	ReasonSchemaMismatch Reason = "schema_mismatch"
)

// ParseError is the failure outcome of an extraction attempt. Snippet holds
// the leading portion of the original, un-normalised completion text.
type ParseError struct {
	Reason  Reason
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extract: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMismatch builds a ParseError for payloads that decoded but failed
// required-field validation.
func SchemaMismatch(raw string, err error) *ParseError {
	return &ParseError{Reason: ReasonSchemaMismatch, Snippet: Snippet(raw), Err: err}
}

// AsParseError unwraps err into a *ParseError when possible.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Snippet returns the first SnippetLimit characters of raw, with an ellipsis
// marker when the text was truncated.
func Snippet(raw string) string {
	runes := []rune(raw)
	if len(runes) <= SnippetLimit {
		return raw
	}
	return string(runes[:SnippetLimit]) + "..."
}

// stripFence removes a single leading and trailing markdown fence marker.
// Text without fences passes through unchanged, so the step is idempotent.
func stripFence(s string) string {
	if strings.HasPrefix(s, fenceMarker) {
		s = strings.TrimPrefix(s, fenceMarker)
		s = strings.TrimPrefix(s, fenceLangJSON)
	}
	if strings.HasSuffix(s, fenceMarker) {
		s = strings.TrimSuffix(s, fenceMarker)
	}
	return strings.TrimSpace(s)
}

// braceSpan slices s to the inclusive span between the first '{' and the last
// '}'. Both braces must be present; the payload is assumed to be a single
// top-level object with no braces in the surrounding prose.
func braceSpan(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < 0 {
		return s
	}
	if end < start {
		return ""
	}
	return s[start : end+1]
}

// Normalize applies the full cleanup pipeline: whitespace trim, two rounds of
// fence stripping (some completions emit doubled fences), then the brace-span
// slice. Every step is a no-op when its precondition is absent.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripFence(s)
	s = stripFence(s)
	return braceSpan(s)
}

// Object extracts and decodes a top-level JSON object from raw. On success
// the decoded mapping is returned; on failure the error is a *ParseError
// carrying a snippet of the original text.
func Object(raw string) (map[string]any, error) {
	var out map[string]any
	if err := Decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode normalises raw and decodes the candidate payload into target, which
// must be a non-nil pointer. Decode performs no required-field validation:
// success guarantees only that the payload was valid JSON for target's shape.
func Decode(raw string, target any) error {
	if target == nil {
		return errors.New("extract: target cannot be nil")
	}
	if v := reflect.ValueOf(target); v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.New("extract: target must be a non-nil pointer")
	}
	candidate := Normalize(raw)
	if err := json.Unmarshal([]byte(candidate), target); err != nil {
		return &ParseError{
			Reason:  ReasonMalformedJSON,
			Snippet: Snippet(raw),
			Err:     err,
		}
	}
	return nil
}
