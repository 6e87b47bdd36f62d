package events

import (
	"context"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/pkg/kafka"
)

// BookingEventHandler reacts to booking events read back from Kafka.
type BookingEventHandler interface {
	HandleBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	HandleBookingFailed(ctx context.Context, event BookingFailedEvent) error
}

// BookingEventConsumer listens to booking events and routes them to a handler.
type BookingEventConsumer struct {
	consumer *kafka.Consumer
	handler  BookingEventHandler
	logger   *zap.Logger
}

// NewBookingEventConsumer creates a new consumer for booking events.
func NewBookingEventConsumer(
	brokers []string,
	groupID, topic string,
	handler BookingEventHandler,
	logger *zap.Logger,
) *BookingEventConsumer {
	if topic == "" {
		topic = TopicBookingEvents
	}
	return &BookingEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, topic, logger),
		handler:  handler,
		logger:   logger,
	}
}

// Start begins consuming booking events. It blocks until the context is cancelled.
func (c *BookingEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *BookingEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	return c.Dispatch(ctx, msg.Value)
}

// Dispatch decodes one CloudEvent and routes it by type.
func (c *BookingEventConsumer) Dispatch(ctx context.Context, value []byte) error {
	cloudEvent, err := kafka.ParseCloudEvent(value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from booking topic",
			zap.Error(err),
			zap.String("raw", string(value)),
		)
		return err
	}

	switch {
	case strings.EqualFold(cloudEvent.Type, BookingConfirmed):
		var event BookingConfirmedEvent
		if err := cloudEvent.ParseData(&event); err != nil {
			c.logger.Error("failed to parse BookingConfirmedEvent data", zap.Error(err))
			return err
		}
		return c.handler.HandleBookingConfirmed(ctx, event)

	case strings.EqualFold(cloudEvent.Type, BookingFailed):
		var event BookingFailedEvent
		if err := cloudEvent.ParseData(&event); err != nil {
			c.logger.Error("failed to parse BookingFailedEvent data", zap.Error(err))
			return err
		}
		return c.handler.HandleBookingFailed(ctx, event)

	default:
		c.logger.Debug("ignoring unhandled booking event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

// Close closes the underlying Kafka consumer.
func (c *BookingEventConsumer) Close() error {
	return c.consumer.Close()
}

// LogHandler writes every booking event to the logger.
type LogHandler struct {
	logger *zap.Logger
}

// NewLogHandler creates a LogHandler.
func NewLogHandler(logger *zap.Logger) *LogHandler {
	return &LogHandler{logger: logger}
}

// HandleBookingConfirmed implements BookingEventHandler.
func (h *LogHandler) HandleBookingConfirmed(ctx context.Context, e BookingConfirmedEvent) error {
	h.logger.Info("booking confirmed",
		zap.String("session_id", e.SessionID),
		zap.String("booking_ref", e.BookingRef),
		zap.String("experience", e.ExperienceName),
		zap.String("date", e.Date),
		zap.String("time", e.Time),
		zap.Int("quantity", e.Quantity),
		zap.Int64("total", e.Total),
	)
	return nil
}

// HandleBookingFailed implements BookingEventHandler.
func (h *LogHandler) HandleBookingFailed(ctx context.Context, e BookingFailedEvent) error {
	h.logger.Warn("booking failed",
		zap.String("session_id", e.SessionID),
		zap.String("experience_id", e.ExperienceID),
		zap.String("reason", e.Reason),
	)
	return nil
}
