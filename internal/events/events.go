package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/pkg/kafka"
)

// Source is the CloudEvents source of everything this service publishes.
const Source = "service-booking-web"

// Topics.
const (
	TopicBookingEvents = "booking.events"
)

// Event types.
const (
	BookingConfirmed = "booking.confirmed"
	BookingFailed    = "booking.failed"
)

// BookingConfirmedEvent is published once a checkout session is confirmed.
type BookingConfirmedEvent struct {
	SessionID      string    `json:"session_id"`
	BookingRef     string    `json:"booking_ref"`
	ExperienceID   string    `json:"experience_id"`
	ExperienceName string    `json:"experience_name"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Quantity       int       `json:"quantity"`
	Total          int64     `json:"total"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// BookingFailedEvent is published when the confirm-booking saga gives up.
type BookingFailedEvent struct {
	SessionID    string    `json:"session_id"`
	ExperienceID string    `json:"experience_id"`
	Reason       string    `json:"reason"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher publishes booking domain events.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data any) error
}

// KafkaPublisher wraps events in CloudEvents and writes them to one topic.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaPublisher creates a publisher writing to topic.
func NewKafkaPublisher(producer *kafka.Producer, topic string) *KafkaPublisher {
	if topic == "" {
		topic = TopicBookingEvents
	}
	return &KafkaPublisher{producer: producer, topic: topic}
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, data any) error {
	ce, err := kafka.NewCloudEvent(Source, eventType, data)
	if err != nil {
		return err
	}
	return p.producer.PublishEvent(ctx, p.topic, ce)
}

// NopPublisher drops events. It is used when no brokers are configured.
type NopPublisher struct {
	logger *zap.Logger
}

// NewNopPublisher creates a publisher that only logs at debug level.
func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

// Publish implements Publisher.
func (p *NopPublisher) Publish(ctx context.Context, eventType string, data any) error {
	p.logger.Debug("event publishing disabled, dropping event", zap.String("type", eventType))
	return nil
}
