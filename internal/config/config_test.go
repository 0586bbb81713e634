package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "postgres", c.StoreDriver)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, "admin@example.com", c.AdminEmail)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Empty(t, c.TrustedProxies)

	assert.Equal(t, time.UTC, c.Slots.Location)
	assert.Equal(t, 9*time.Hour, c.Slots.DayStart)
	assert.Equal(t, 17*time.Hour, c.Slots.DayEnd)
	assert.Equal(t, 30*time.Minute, c.Slots.Step)
	assert.Equal(t, 7, c.Slots.LookaheadDays)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SLOT_DAY_START", "08:30")
	t.Setenv("SLOT_DAY_END", "12:00")
	t.Setenv("SLOT_STEP", "15m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", c.StoreDriver)
	assert.Equal(t, 2*time.Hour, c.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowedOrigins)
	assert.Equal(t, 8*time.Hour+30*time.Minute, c.Slots.DayStart)
	assert.Equal(t, 12*time.Hour, c.Slots.DayEnd)
	assert.Equal(t, 15*time.Minute, c.Slots.Step)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	require.Len(t, c.TrustedProxies, 2)
	assert.Equal(t, "10.0.0.0/8", c.TrustedProxies[0].String())
	assert.Equal(t, "127.0.0.1/32", c.TrustedProxies[1].String())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"STORE_DRIVER":    "mysql",
		"TOKEN_TTL":       "forever",
		"SLOT_DAY_START":  "9am",
		"SLOT_TIMEZONE":   "Mars/Olympus",
		"RATE_LIMIT_RPS":  "fast",
		"TRUSTED_PROXIES": "10.0.0.0/33",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv(key, val)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}

	t.Run("day end before start", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("SLOT_DAY_START", "18:00")
		_, err := Load()
		assert.Error(t, err)
	})
}
