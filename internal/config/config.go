package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/highwaydelite/service-booking-web/pkg/database"
)

// BookingAPIConfig holds settings for the remote booking API.
type BookingAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	Mock    bool
}

// KafkaConfig holds Kafka settings. No brokers disables event publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Session stores.
const (
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

// ServiceConfig holds all configuration for the booking web service.
type ServiceConfig struct {
	Port           string
	AppEnv         string
	CurrencySymbol string
	SessionStore   string
	AdminToken     string
	DBConfig       database.PostgresConfig
	BookingAPI     BookingAPIConfig
	KafkaConfig    KafkaConfig
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("CURRENCY_SYMBOL", "₹")
	v.SetDefault("SESSION_STORE", SessionStorePostgres)
	v.SetDefault("ADMIN_TOKEN", "")

	v.SetDefault("BOOKING_API_BASE_URL", "http://localhost:5000")
	v.SetDefault("BOOKING_API_TIMEOUT", "10s")
	v.SetDefault("BOOKING_API_MOCK", false)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "booking_web")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "booking.events")
	v.SetDefault("KAFKA_GROUP_ID", "booking-web-eventlog")
}

func fromViper(v *viper.Viper) (*ServiceConfig, error) {
	timeout := v.GetDuration("BOOKING_API_TIMEOUT")
	if timeout <= 0 {
		return nil, fmt.Errorf("BOOKING_API_TIMEOUT must be positive, got %q", v.GetString("BOOKING_API_TIMEOUT"))
	}

	baseURL := strings.TrimRight(v.GetString("BOOKING_API_BASE_URL"), "/")
	mock := v.GetBool("BOOKING_API_MOCK")
	if baseURL == "" && !mock {
		return nil, fmt.Errorf("BOOKING_API_BASE_URL is required unless BOOKING_API_MOCK is set")
	}

	store := strings.ToLower(v.GetString("SESSION_STORE"))
	if store != SessionStorePostgres && store != SessionStoreMemory {
		return nil, fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStorePostgres, SessionStoreMemory, store)
	}

	return &ServiceConfig{
		Port:           servicePort(v.GetString("SERVICE_PORT")),
		AppEnv:         v.GetString("APP_ENV"),
		CurrencySymbol: v.GetString("CURRENCY_SYMBOL"),
		SessionStore:   store,
		AdminToken:     v.GetString("ADMIN_TOKEN"),
		DBConfig: database.PostgresConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		BookingAPI: BookingAPIConfig{
			BaseURL: baseURL,
			Timeout: timeout,
			Mock:    mock,
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
			GroupID: v.GetString("KAFKA_GROUP_ID"),
		},
	}, nil
}

// servicePort normalises "8080" to ":8080" for http.Server.Addr.
func servicePort(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
