package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "calc-service", cfg.ServiceName)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "arb_opportunities_broadcast", cfg.ArbPubSubChannel)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "9095", cfg.MetricsPort)
	assert.Equal(t, 500, cfg.CurveDefaultSamples)
	assert.Equal(t, 5000, cfg.CurveMaxSamples)
	assert.Equal(t, 100.0, cfg.CurveDefaultMaxOdd)
	assert.Equal(t, 30*time.Second, cfg.CurveCacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CURVE_DEFAULT_SAMPLES", "100")
	t.Setenv("CURVE_DEFAULT_MAX_ODD", "250.5")
	t.Setenv("CURVE_CACHE_TTL", "1m")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 100, cfg.CurveDefaultSamples)
	assert.Equal(t, 250.5, cfg.CurveDefaultMaxOdd)
	assert.Equal(t, time.Minute, cfg.CurveCacheTTL)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("CURVE_DEFAULT_SAMPLES", "not-a-number")
	t.Setenv("CURVE_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 500, cfg.CurveDefaultSamples)
	assert.Equal(t, 30*time.Second, cfg.CurveCacheTTL)
}
