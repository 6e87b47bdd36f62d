package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/internal/domain/promo"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

const experienceJSON = `{
	"_id": "65f1c0ffee",
	"name": "Kayaking",
	"location": "Udupi",
	"description": "Paddle out",
	"price": 999,
	"image": "https://img/k.jpg",
	"slots": [
		{"date": "2025-11-01T00:00:00.000Z", "time": "07:00 am", "capacity": 4, "booked": 1},
		{"date": "2025-11-02", "time": "09:00 am", "capacity": 4, "booked": 4}
	]
}`

func newTestAPI(t *testing.T, h http.HandlerFunc) *HTTPBookingAPI {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPBookingAPI(srv.URL+"/", 2*time.Second, zap.NewNop())
}

func TestHTTPBookingAPI_ListExperiences(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/experiences", r.URL.Path)
		_, _ = w.Write([]byte("[" + experienceJSON + "]"))
	})

	exps, err := api.ListExperiences(context.Background())
	require.NoError(t, err)
	require.Len(t, exps, 1)

	e := exps[0]
	assert.Equal(t, "65f1c0ffee", e.ID)
	assert.Equal(t, int64(999), e.Price)
	require.Len(t, e.Slots, 2)
	assert.Equal(t, experience.NewDate(2025, time.November, 1), e.Slots[0].Date)
	assert.Equal(t, 3, e.Slots[0].Remaining())
	assert.True(t, e.Slots[1].SoldOut())
}

func TestHTTPBookingAPI_GetExperience(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/experiences/65f1c0ffee":
			_, _ = w.Write([]byte(experienceJSON))
		case "/api/experiences/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Experience not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	exp, err := api.GetExperience(context.Background(), "65f1c0ffee")
	require.NoError(t, err)
	assert.Equal(t, "Kayaking", exp.Name)

	_, err = api.GetExperience(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = api.GetExperience(context.Background(), "boom")
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestHTTPBookingAPI_ValidatePromo(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/promo/validate", r.URL.Path)
		var body struct {
			Code string `json:"code"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		switch body.Code {
		case "SAVE10":
			_, _ = w.Write([]byte(`{"valid":true,"promo":{"code":"SAVE10","discountType":"percent","value":10}}`))
		case "WEIRD":
			_, _ = w.Write([]byte(`{"valid":true,"promo":{"discountType":"percent","value":250}}`))
		case "GONE":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"valid":false}`))
		case "MALFORMED":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"valid":false,"message":"code is malformed"}`))
		case "LOCKED":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"missing api key"}`))
		case "BUSY":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_, _ = w.Write([]byte(`{"valid":false}`))
		}
	})
	ctx := context.Background()

	p, err := api.ValidatePromo(ctx, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, promo.DiscountTypePercent, p.DiscountType())
	assert.Equal(t, int64(954), p.Apply(1060))

	for _, code := range []string{"NOPE", "WEIRD", "GONE", "MALFORMED"} {
		p, err = api.ValidatePromo(ctx, code)
		assert.NoError(t, err, code)
		assert.Nil(t, p, code)
	}

	// Auth and rate limit failures are not invalid codes.
	for _, code := range []string{"LOCKED", "BUSY"} {
		p, err = api.ValidatePromo(ctx, code)
		assert.Error(t, err, code)
		assert.Nil(t, p, code)
	}
}

func TestHTTPBookingAPI_CreateBooking(t *testing.T) {
	var got map[string]any
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		if got["name"] == "nobody" {
			_, _ = w.Write([]byte(`{"message":"Slot full"}`))
			return
		}
		if got["name"] == "bad" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Missing fields"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking":{"_id":"6650aa01"}}`))
	})

	req := CreateBookingRequest{
		Name:         "Asha",
		Email:        "asha@example.com",
		ExperienceID: "65f1c0ffee",
		Date:         experience.NewDate(2025, time.November, 1),
		Time:         "07:00 am",
	}
	ref, err := api.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "6650aa01", ref)
	assert.Equal(t, "65f1c0ffee", got["experienceId"])
	assert.Equal(t, map[string]any{"date": "2025-11-01", "time": "07:00 am"}, got["slot"])

	req.Name = "nobody"
	_, err = api.CreateBooking(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrRejected))
	assert.Contains(t, err.Error(), "Slot full")

	// A refused request is an error, not a business rejection.
	req.Name = "bad"
	_, err = api.CreateBooking(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
	assert.False(t, errors.Is(err, domain.ErrRejected))
	assert.Contains(t, err.Error(), "Missing fields")
}

func TestHTTPBookingAPI_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	api := NewHTTPBookingAPI(url, time.Second, zap.NewNop())
	_, err := api.ListExperiences(context.Background())
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestMockBookingAPI_BooksAgainstCapacity(t *testing.T) {
	d := experience.NewDate(2025, time.November, 1)
	exps := []experience.Experience{{
		ID:    "exp-1",
		Name:  "Kayaking",
		Price: 1000,
		Slots: []experience.Slot{{Date: d, Time: "07:00 am", Capacity: 1}},
	}}
	m := NewMockBookingAPIWith(exps, seedPromos(), zap.NewNop())
	ctx := context.Background()

	req := CreateBookingRequest{Name: "Asha", Email: "a@b.c", ExperienceID: "exp-1", Date: d, Time: "07:00 am"}
	ref, err := m.CreateBooking(ctx, req)
	require.NoError(t, err)
	assert.Len(t, ref, 24)

	_, err = m.CreateBooking(ctx, req)
	assert.True(t, errors.Is(err, domain.ErrRejected), "slot now sold out")

	exp, err := m.GetExperience(ctx, "exp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, exp.Slots[0].Remaining())

	_, err = m.GetExperience(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	p, err := m.ValidatePromo(ctx, " save10 ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "SAVE10", p.Code())

	p, err = m.ValidatePromo(ctx, "BOGUS")
	assert.NoError(t, err)
	assert.Nil(t, p)
}
