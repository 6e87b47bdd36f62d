//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/highwaydelite/service-booking-web/internal/adapter"
	"github.com/highwaydelite/service-booking-web/internal/application"
	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/internal/events"
	"github.com/highwaydelite/service-booking-web/internal/repository"
	"github.com/highwaydelite/service-booking-web/internal/saga"
	"github.com/highwaydelite/service-booking-web/migrations"
	"github.com/highwaydelite/service-booking-web/pkg/database"
	"github.com/highwaydelite/service-booking-web/pkg/kafka"
)

var (
	nov1 = experience.NewDate(2025, time.November, 1)
	nov2 = experience.NewDate(2025, time.November, 2)
)

// setupPostgres starts a PostgreSQL container, applies the SQL migrations and
// returns a connected GORM DB.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_booking_web",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := database.PostgresConfig{
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_booking_web",
		SSLMode:  "disable",
	}

	// Poll until the server accepts connections.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(cfg, zap.NewNop())
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(migrations.FS, cfg.DatabaseURL(), zap.NewNop()))
	return db
}

// setupKafka starts a Kafka container and pre-creates topics.
func setupKafka(t *testing.T, topics ...string) []string {
	t.Helper()
	ctx := context.Background()

	// confluent-local supports KRaft natively.
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")
	t.Cleanup(func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, brokers, topics...)
	return brokers
}

// bookingStack holds wired-up checkout components backed by real infrastructure.
type bookingStack struct {
	API      *adapter.MockBookingAPI
	Repo     *repository.CheckoutSessionRepositoryImpl
	Checkout *application.CheckoutService
}

// setupBookingStack wires the checkout service against postgres and Kafka.
func setupBookingStack(t *testing.T, db *gorm.DB, brokers []string) *bookingStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	api := adapter.NewMockBookingAPIWith([]experience.Experience{
		{
			ID:       "exp-1",
			Name:     "Kayaking",
			Location: "Udupi",
			Price:    1000,
			Slots: []experience.Slot{
				{Date: nov1, Time: "07:00 am", Capacity: 1, Booked: 0},
				{Date: nov2, Time: "07:00 am", Capacity: 4, Booked: 0},
			},
		},
	}, nil, logger)

	producer := kafka.NewProducer(brokers, logger)
	t.Cleanup(func() { _ = producer.Close() })

	repo := repository.NewCheckoutSessionRepository(db)
	publisher := events.NewKafkaPublisher(producer, events.TopicBookingEvents)
	sagaSvc := saga.NewBookingSagaService(repo, api, publisher, logger)

	return &bookingStack{
		API:      api,
		Repo:     repo,
		Checkout: application.NewCheckoutService(repo, api, sagaSvc, logger),
	}
}

// startRecorder runs a BookingEventConsumer in the background that records
// every event it sees.
func startRecorder(t *testing.T, brokers []string) *recordingHandler {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	rec := &recordingHandler{}
	groupID := fmt.Sprintf("test-eventlog-%s", uuid.New().String()[:8])
	consumer := events.NewBookingEventConsumer(brokers, groupID, events.TopicBookingEvents, rec, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = consumer.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = consumer.Close()
	})
	return rec
}

// recordingHandler collects booking events.
type recordingHandler struct {
	mu        sync.Mutex
	confirmed []events.BookingConfirmedEvent
	failed    []events.BookingFailedEvent
}

func (h *recordingHandler) HandleBookingConfirmed(ctx context.Context, e events.BookingConfirmedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.confirmed = append(h.confirmed, e)
	return nil
}

func (h *recordingHandler) HandleBookingFailed(ctx context.Context, e events.BookingFailedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failed = append(h.failed, e)
	return nil
}

// waitConfirmed polls until a confirmed event for sessionID arrives.
func (h *recordingHandler) waitConfirmed(t *testing.T, sessionID string, timeout time.Duration) events.BookingConfirmedEvent {
	t.Helper()
	var found events.BookingConfirmedEvent
	require.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		for _, e := range h.confirmed {
			if e.SessionID == sessionID {
				found = e
				return true
			}
		}
		return false
	}, timeout, 200*time.Millisecond, "no %s event for session %s", events.BookingConfirmed, sessionID)
	return found
}

// waitFailed polls until a failed event for sessionID arrives.
func (h *recordingHandler) waitFailed(t *testing.T, sessionID string, timeout time.Duration) events.BookingFailedEvent {
	t.Helper()
	var found events.BookingFailedEvent
	require.Eventually(t, func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		for _, e := range h.failed {
			if e.SessionID == sessionID {
				found = e
				return true
			}
		}
		return false
	}, timeout, 200*time.Millisecond, "no %s event for session %s", events.BookingFailed, sessionID)
	return found
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...), "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
