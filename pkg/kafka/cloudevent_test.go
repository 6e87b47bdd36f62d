package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudEvent_RoundTrip(t *testing.T) {
	type payload struct {
		SessionID string `json:"session_id"`
		Total     int64  `json:"total"`
	}

	ce, err := NewCloudEvent("service-booking-web", "booking.confirmed", payload{SessionID: "s-1", Total: 954})
	require.NoError(t, err)
	assert.Equal(t, "1.0", ce.SpecVersion)
	assert.NotEmpty(t, ce.ID)
	assert.Equal(t, "application/json", ce.DataContentType)

	raw, err := json.Marshal(ce)
	require.NoError(t, err)

	parsed, err := ParseCloudEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, "booking.confirmed", parsed.Type)
	assert.Equal(t, "service-booking-web", parsed.Source)

	var got payload
	require.NoError(t, parsed.ParseData(&got))
	assert.Equal(t, payload{SessionID: "s-1", Total: 954}, got)
}

func TestParseCloudEvent_Invalid(t *testing.T) {
	_, err := ParseCloudEvent([]byte("not json"))
	assert.Error(t, err)

	_, err = ParseCloudEvent([]byte(`{"specversion":"1.0","id":"x"}`))
	assert.Error(t, err, "type is required")
}
