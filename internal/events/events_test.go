package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/pkg/kafka"
)

type recordingHandler struct {
	confirmed []BookingConfirmedEvent
	failed    []BookingFailedEvent
}

func (h *recordingHandler) HandleBookingConfirmed(_ context.Context, e BookingConfirmedEvent) error {
	h.confirmed = append(h.confirmed, e)
	return nil
}

func (h *recordingHandler) HandleBookingFailed(_ context.Context, e BookingFailedEvent) error {
	h.failed = append(h.failed, e)
	return nil
}

func encode(t *testing.T, eventType string, data any) []byte {
	t.Helper()
	ce, err := kafka.NewCloudEvent(Source, eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return raw
}

func TestBookingEventConsumer_Dispatch(t *testing.T) {
	h := &recordingHandler{}
	c := &BookingEventConsumer{handler: h, logger: zap.NewNop()}
	ctx := context.Background()

	confirmed := BookingConfirmedEvent{
		SessionID:  "s-1",
		BookingRef: "6650aa01",
		Date:       "2025-11-01",
		Time:       "07:00 am",
		Quantity:   2,
		Total:      2060,
		OccurredAt: time.Now().UTC(),
	}
	require.NoError(t, c.Dispatch(ctx, encode(t, BookingConfirmed, confirmed)))
	require.NoError(t, c.Dispatch(ctx, encode(t, BookingFailed, BookingFailedEvent{SessionID: "s-2", Reason: "sold out"})))
	require.NoError(t, c.Dispatch(ctx, encode(t, "booking.something_else", map[string]string{})))

	require.Len(t, h.confirmed, 1)
	assert.Equal(t, "6650aa01", h.confirmed[0].BookingRef)
	assert.Equal(t, int64(2060), h.confirmed[0].Total)
	require.Len(t, h.failed, 1)
	assert.Equal(t, "sold out", h.failed[0].Reason)

	assert.Error(t, c.Dispatch(ctx, []byte("not json")))
	assert.Error(t, c.Dispatch(ctx, []byte(`{"id":"x"}`)), "no type")
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher(zap.NewNop())
	assert.NoError(t, p.Publish(context.Background(), BookingConfirmed, BookingConfirmedEvent{}))
}
