package session

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"ideaforge-api/internal/cache"
)

type redisStore struct {
	client *redis.Redis
	ttl    time.Duration
}

// NewRedisStore builds a Store backed by Redis. Payloads are msgpack-encoded
// and expire after ttl of inactivity.
func NewRedisStore(client *redis.Redis, ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, id string) (*State, error) {
	raw, err := s.client.GetCtx(ctx, cache.SessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("session: get %s: %w", id, err)
	}
	if raw == "" {
		return nil, ErrNotFound
	}
	var state State
	if err := msgpack.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return &state, nil
}

func (s *redisStore) Put(ctx context.Context, id string, state *State) error {
	if state == nil {
		return fmt.Errorf("session: nil state for %s", id)
	}
	state.UpdatedAt = time.Now().UTC()
	payload, err := msgpack.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", id, err)
	}
	seconds := int(s.ttl / time.Second)
	if err := s.client.SetexCtx(ctx, cache.SessionKey(id), string(payload), seconds); err != nil {
		return fmt.Errorf("session: put %s: %w", id, err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, id string) error {
	if _, err := s.client.DelCtx(ctx, cache.SessionKey(id)); err != nil {
		return fmt.Errorf("session: clear %s: %w", id, err)
	}
	return nil
}
