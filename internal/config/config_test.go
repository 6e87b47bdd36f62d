package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(overrides map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "₹", cfg.CurrencySymbol)
	assert.Equal(t, 10*time.Second, cfg.BookingAPI.Timeout)
	assert.False(t, cfg.BookingAPI.Mock)
	assert.Empty(t, cfg.KafkaConfig.Brokers)
	assert.Equal(t, "booking.events", cfg.KafkaConfig.Topic)
	assert.Equal(t, "booking_web", cfg.DBConfig.DBName)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]any{
		"SERVICE_PORT":         ":9090",
		"BOOKING_API_BASE_URL": "https://api.example.com/",
		"BOOKING_API_TIMEOUT":  "3s",
		"KAFKA_BROKERS":        "k1:9092, k2:9092,",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, "https://api.example.com", cfg.BookingAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.BookingAPI.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
}

func TestFromViper_RequiresBaseURLWithoutMock(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]any{"BOOKING_API_BASE_URL": ""}))
	require.Error(t, err)

	cfg, err := fromViper(newTestViper(map[string]any{
		"BOOKING_API_BASE_URL": "",
		"BOOKING_API_MOCK":     true,
	}))
	require.NoError(t, err)
	assert.True(t, cfg.BookingAPI.Mock)
}

func TestFromViper_RejectsNonPositiveTimeout(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]any{"BOOKING_API_TIMEOUT": "0s"}))
	assert.Error(t, err)
}

func TestFromViper_SessionStore(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)
	assert.Equal(t, SessionStorePostgres, cfg.SessionStore)

	cfg, err = fromViper(newTestViper(map[string]any{"SESSION_STORE": "Memory"}))
	require.NoError(t, err)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)

	_, err = fromViper(newTestViper(map[string]any{"SESSION_STORE": "redis"}))
	assert.Error(t, err)
}
