package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/require"
)

func TestRetryHandlerDefaults(t *testing.T) {
	h := NewRetryHandler(RetryConfig{MaxRetries: -5})
	require.Equal(t, 0, h.cfg.MaxRetries)
	require.Equal(t, defaultInitialBackoff, h.cfg.InitialBackoff)
	require.Equal(t, defaultMaxBackoff, h.cfg.MaxBackoff)
	require.InDelta(t, defaultBackoffFactor, h.cfg.Multiplier, 0.0001)
}

func TestRetryHandlerDoSucceedsFirstTry(t *testing.T) {
	h := NewRetryHandler(RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond})

	calls := 0
	err := h.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryHandlerRetriesRetriableErrors(t *testing.T) {
	h := NewRetryHandler(RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond})

	calls := 0
	err := h.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &openai.Error{StatusCode: http.StatusTooManyRequests}
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryHandlerStopsOnNonRetriable(t *testing.T) {
	h := NewRetryHandler(RetryConfig{MaxRetries: 3, InitialBackoff: time.Millisecond})

	calls := 0
	err := h.Do(context.Background(), func() error {
		calls++
		return &openai.Error{StatusCode: http.StatusUnauthorized}
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryHandlerExhaustsAttempts(t *testing.T) {
	h := NewRetryHandler(RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond})

	calls := 0
	err := h.Do(context.Background(), func() error {
		calls++
		return &openai.Error{StatusCode: http.StatusServiceUnavailable}
	})
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryHandlerHonoursContextCancel(t *testing.T) {
	h := NewRetryHandler(RetryConfig{MaxRetries: 5, InitialBackoff: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.Do(ctx, func() error {
		return &openai.Error{StatusCode: http.StatusBadGateway}
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRetriable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"http 429 rate limited", &openai.Error{StatusCode: http.StatusTooManyRequests}, true},
		{"http 500", &openai.Error{StatusCode: http.StatusInternalServerError}, true},
		{"http 524 edge timeout", &openai.Error{StatusCode: 524}, true},
		{"http 400", &openai.Error{StatusCode: http.StatusBadRequest}, false},
		{"http 401", &openai.Error{StatusCode: http.StatusUnauthorized}, false},
		{"http 402 credits exhausted", &openai.Error{StatusCode: http.StatusPaymentRequired}, false},
		{"net op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, retriable(tt.err))
		})
	}
}

func TestRetryHandlerDelayCapped(t *testing.T) {
	h := NewRetryHandler(RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		Multiplier:     2,
	})

	require.Equal(t, 100*time.Millisecond, h.delay(0))
	require.Equal(t, 200*time.Millisecond, h.delay(1))
	require.Equal(t, 400*time.Millisecond, h.delay(2))
	require.Equal(t, time.Second, h.delay(4))
	require.Equal(t, time.Second, h.delay(10))
}
