package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/config"
	"github.com/highwaydelite/service-booking-web/internal/events"
	"github.com/highwaydelite/service-booking-web/pkg/logger"
)

const serviceName = "booking-web-eventlog"

// eventlog tails the booking events topic and writes every event to the log.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if len(cfg.KafkaConfig.Brokers) == 0 {
		zapLogger.Fatal("KAFKA_BROKERS is required")
	}

	consumer := events.NewBookingEventConsumer(
		cfg.KafkaConfig.Brokers,
		cfg.KafkaConfig.GroupID,
		cfg.KafkaConfig.Topic,
		events.NewLogHandler(zapLogger),
		zapLogger,
	)
	defer consumer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	zapLogger.Info("consuming booking events",
		zap.Strings("brokers", cfg.KafkaConfig.Brokers),
		zap.String("topic", cfg.KafkaConfig.Topic),
		zap.String("group_id", cfg.KafkaConfig.GroupID),
	)
	if err := consumer.Start(ctx); err != nil {
		zapLogger.Error("booking event consumer stopped", zap.Error(err))
	}

	zapLogger.Info(serviceName + " stopped")
}
