package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"ideaforge-api/internal/config"
)

// Namespace is the Redis key prefix for the IdeaForge application.
const Namespace = "ideaforge"

// Cache is the subset of the go-zero cache node used for derived payloads
// such as the analytics chart data. Narrowed so logic code and tests do not
// depend on the full node surface.
type Cache interface {
	GetCtx(ctx context.Context, key string, val any) error
	SetWithExpireCtx(ctx context.Context, key string, val any, expire time.Duration) error
	IsNotFound(err error) bool
}

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, time.Minute),
		Medium: durationOrDefault(cfg.Medium, 10*time.Minute),
		Long:   durationOrDefault(cfg.Long, time.Hour),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// --- Session Keys -----------------------------------------------------------

// SessionKey holds the serialised per-session state payload.
func SessionKey(sessionID string) string {
	return formatKey("session", sessionID)
}

// --- History Keys -----------------------------------------------------------

// IdeaBatchKey caches a persisted idea batch by row id.
func IdeaBatchKey(id int64) string {
	return formatKey("ideas", "batch", strconv.FormatInt(id, 10))
}

// ValidationKey caches a persisted validation report by row id.
func ValidationKey(id int64) string {
	return formatKey("validation", strconv.FormatInt(id, 10))
}

// AnalyticsKey caches the derived chart payload for a validation.
func AnalyticsKey(id int64) string {
	return formatKey("analytics", strconv.FormatInt(id, 10))
}

// --- TTL Helpers ------------------------------------------------------------

// SessionTTL returns the retention window for idle sessions.
func SessionTTL(cfg config.SessionConf) time.Duration {
	if cfg.TTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(cfg.TTLSeconds) * time.Second
}

// IdeaBatchTTL returns the TTL for cached idea batches.
func IdeaBatchTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// ValidationTTL returns the TTL for cached validation reports.
func ValidationTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// AnalyticsTTL returns the TTL for derived analytics payloads.
func AnalyticsTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}
