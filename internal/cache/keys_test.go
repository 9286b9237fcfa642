package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ideaforge-api/internal/config"
)

func TestKeyFormatting(t *testing.T) {
	assert.Equal(t, "ideaforge:session:abc123", SessionKey("abc123"))
	assert.Equal(t, "ideaforge:ideas:batch:42", IdeaBatchKey(42))
	assert.Equal(t, "ideaforge:validation:7", ValidationKey(7))
	assert.Equal(t, "ideaforge:analytics:7", AnalyticsKey(7))
}

func TestNewTTLSet(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 30, Medium: 120, Long: 900})
	assert.Equal(t, 30*time.Second, ttl.Short)
	assert.Equal(t, 2*time.Minute, ttl.Medium)
	assert.Equal(t, 15*time.Minute, ttl.Long)

	defaults := NewTTLSet(config.CacheTTL{})
	assert.Equal(t, time.Minute, defaults.Short)
	assert.Equal(t, 10*time.Minute, defaults.Medium)
	assert.Equal(t, time.Hour, defaults.Long)
}

func TestTTLSetDuration(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 10, Medium: 60, Long: 300})
	assert.Equal(t, 10*time.Second, ttl.Duration(TTLShort))
	assert.Equal(t, time.Minute, ttl.Duration(TTLMedium))
	assert.Equal(t, 5*time.Minute, ttl.Duration(TTLLong))
	assert.Zero(t, ttl.Duration(TTLClass("other")))
}

func TestRowTTLHelpers(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 10, Medium: 60, Long: 300})
	assert.Equal(t, 5*time.Minute, IdeaBatchTTL(ttl))
	assert.Equal(t, 5*time.Minute, ValidationTTL(ttl))
	assert.Equal(t, time.Minute, AnalyticsTTL(ttl))
}

func TestSessionTTL(t *testing.T) {
	assert.Equal(t, time.Hour, SessionTTL(config.SessionConf{TTLSeconds: 3600}))
	assert.Equal(t, 24*time.Hour, SessionTTL(config.SessionConf{}))
}
