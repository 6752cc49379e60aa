package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_RedisAddrDefault(t *testing.T) {
	t.Setenv("REDIS_ADDR", "placeholder") // register cleanup of any outer value
	os.Unsetenv("REDIS_ADDR")
	cfg := Load()
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_RedisAddrExplicitlyEmpty_DisablesRedis(t *testing.T) {
	// REDIS_ADDR="" is a deliberate setting, not an absent one: it must
	// survive Load so the in-process cache fallback is selectable.
	t.Setenv("REDIS_ADDR", "")
	cfg := Load()
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_RedisAddrFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	cfg := Load()
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
}

func TestUserCacheTTL(t *testing.T) {
	t.Setenv("USER_CACHE_TTL_SECONDS", "120")
	cfg := Load()
	assert.Equal(t, 2*time.Minute, cfg.UserCacheTTL())
}
