// Package session keeps per-caller workflow state between requests: the last
// generated idea batch, the idea queued for validation and the last completed
// validation report.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"ideaforge-api/pkg/advisor"
)

// ErrNotFound is returned when a session id has no stored state.
var ErrNotFound = errors.New("session: not found")

// State is the serialised per-session payload.
type State struct {
	Ideas             []advisor.Idea            `msgpack:"ideas"`
	PendingValidation *advisor.ValidateRequest  `msgpack:"pending_validation,omitempty"`
	LastValidation    *advisor.ValidationReport `msgpack:"last_validation,omitempty"`
	UpdatedAt         time.Time                 `msgpack:"updated_at"`
}

// Store persists session state keyed by session id.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Put(ctx context.Context, id string, state *State) error
	Clear(ctx context.Context, id string) error
}

// NewID mints a fresh session identifier.
func NewID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// rand.Read only fails when the platform entropy source is broken.
		panic(err)
	}
	return hex.EncodeToString(buf[:])
}
