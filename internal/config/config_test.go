package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "DB_DRIVER", "JWT_TTL", "REDIS_ADDR", "SUMMARY_CACHE_TTL", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("SUMMARY_CACHE_TTL", "-5s")

	cfg := LoadConfig()

	assert.Equal(t, "", cfg.AppPort)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.SummaryCacheTTL)
	assert.Nil(t, cfg.TrustedProxies)
}

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/tasks.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1 , ,10.0.0.2")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.DbDriver)
	assert.Equal(t, "/tmp/tasks.db", cfg.SqlitePath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestParseTrustedProxies_Empty(t *testing.T) {
	assert.Nil(t, parseTrustedProxies("  "))
	assert.Nil(t, parseTrustedProxies(" , "))
}
