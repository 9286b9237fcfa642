package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/openai/openai-go"
)

const (
	defaultInitialBackoff = 200 * time.Millisecond
	defaultMaxBackoff     = 3 * time.Second
	defaultBackoffFactor  = 2.0
)

// RetryConfig controls re-attempts of chat completion calls.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// RetryHandler re-runs a chat call until it succeeds, fails terminally, or
// runs out of attempts. OpenRouter's free tier rate-limits aggressively, so
// 429 is the common trigger here.
type RetryHandler struct {
	cfg RetryConfig
}

func NewRetryHandler(cfg RetryConfig) *RetryHandler {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = defaultMaxBackoff
	}
	if cfg.Multiplier <= 1 {
		cfg.Multiplier = defaultBackoffFactor
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &RetryHandler{cfg: cfg}
}

// Do runs fn, pausing between attempts with exponential backoff. The context
// bounds the total wait; cancellation during a pause wins over the last
// attempt's error.
func (r *RetryHandler) Do(ctx context.Context, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= r.cfg.MaxRetries || !retriable(err) {
			return err
		}

		select {
		case <-time.After(r.delay(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *RetryHandler) delay(attempt int) time.Duration {
	d := r.cfg.InitialBackoff
	for i := 0; i < attempt; i++ {
		d = time.Duration(float64(d) * r.cfg.Multiplier)
		if d >= r.cfg.MaxBackoff {
			return r.cfg.MaxBackoff
		}
	}
	return d
}

// retriableStatuses lists the upstream responses worth another attempt.
// 429 is OpenRouter rate limiting; 524 is its Cloudflare front timing out a
// slow model. 402 (credits exhausted) is deliberately absent: retrying
// cannot make the account solvent.
var retriableStatuses = map[int]bool{
	http.StatusRequestTimeout:      true,
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
	524:                            true,
}

func retriable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return retriableStatuses[apiErr.StatusCode]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Temporary() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
