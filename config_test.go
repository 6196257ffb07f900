package databus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/databus"
	"github.com/dmitrymomot/databus/core/logger"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABUS_DISCIPLINE", "multi")
	t.Setenv("DATABUS_CAPACITY", "16")
	t.Setenv("DATABUS_NAME", "orders")
	t.Setenv("DATABUS_LOG_LEVEL", "debug")

	cfg, err := databus.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, databus.Multi, cfg.Discipline)
	assert.Equal(t, 16, cfg.Capacity)
	assert.Equal(t, "orders", cfg.Name)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("builds registry", func(t *testing.T) {
		t.Parallel()

		cfg := databus.Config{Discipline: databus.Multi, Capacity: 4, LogLevel: "error", LogFormat: "json"}
		reg, err := databus.NewFromConfig[string, int](cfg, databus.WithLogger(logger.Discard()))
		require.NoError(t, err)
		assert.Equal(t, databus.Multi, reg.Discipline())

		calls := 0
		noop := func(context.Context, int) error { calls++; return nil }
		databus.MustSubscribe("k", noop, reg)
		databus.MustSubscribe("k", noop, reg)
		require.NoError(t, databus.MustPublisher("k", reg).Publish(context.Background(), 1))
		assert.Equal(t, 2, calls)
	})

	t.Run("unknown discipline", func(t *testing.T) {
		t.Parallel()

		_, err := databus.NewFromConfig[string, int](databus.Config{LogLevel: "info"})
		require.ErrorIs(t, err, databus.ErrUnknownDiscipline)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		_, err := databus.NewFromConfig[string, int](databus.Config{Discipline: databus.Single, LogLevel: "chatty"})
		require.Error(t, err)
	})
}
