package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.App.Env)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, 60, cfg.Booking.LeadTimeMinutes)
	assert.Equal(t, time.Hour, cfg.LeadTime())
	assert.Equal(t, "clinic.events", cfg.RabbitMQ.Exchange)
	assert.Equal(t, 1000, cfg.Cache.ProfessionalsSize)
	assert.True(t, cfg.IsLocal())
	assert.False(t, cfg.IsNotLocal())
}

func TestNewConfig_EnvIsLowercased(t *testing.T) {
	t.Setenv("APP_ENV", "PRODUCTION")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.True(t, cfg.IsNotLocal())
}

func TestNewConfig_BasicClients(t *testing.T) {
	t.Run("default client", func(t *testing.T) {
		cfg, err := NewConfig()
		require.NoError(t, err)

		require.Len(t, cfg.Auth.BasicClients, 1)
		assert.Equal(t, "slots_generator", cfg.Auth.BasicClients[0].Username)
		assert.Equal(t, "slots_generator", cfg.Auth.BasicClients[0].Password)
	})

	t.Run("multiple clients", func(t *testing.T) {
		t.Setenv("AUTH_BASIC_CLIENTS", "reception:secret1,mobile:secret2")

		cfg, err := NewConfig()
		require.NoError(t, err)

		require.Len(t, cfg.Auth.BasicClients, 2)
		assert.Equal(t, "reception", cfg.Auth.BasicClients[0].Username)
		assert.Equal(t, "secret2", cfg.Auth.BasicClients[1].Password)
	})

	t.Run("malformed pairs are skipped", func(t *testing.T) {
		t.Setenv("AUTH_BASIC_CLIENTS", "valid:pass,broken,also:broken:extra")

		cfg, err := NewConfig()
		require.NoError(t, err)

		require.Len(t, cfg.Auth.BasicClients, 1)
		assert.Equal(t, "valid", cfg.Auth.BasicClients[0].Username)
	})
}

func TestNewConfig_CacheRequiresRabbitMQ(t *testing.T) {
	t.Run("cache is forced off without rabbitmq", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "true")
		t.Setenv("RABBITMQ_ENABLED", "false")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.False(t, cfg.Cache.Enabled)
	})

	t.Run("cache stays on with rabbitmq", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "true")
		t.Setenv("RABBITMQ_ENABLED", "true")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.True(t, cfg.Cache.Enabled)
	})
}

func TestConfig_Location(t *testing.T) {
	t.Run("loads configured timezone", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "America/Mexico_City")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "America/Mexico_City", cfg.Location().String())
	})

	t.Run("falls back to UTC on bad timezone", func(t *testing.T) {
		t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, time.UTC, cfg.Location())
	})
}
