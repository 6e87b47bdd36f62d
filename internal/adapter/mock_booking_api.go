package adapter

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/internal/domain/promo"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// MockBookingAPI is a development/testing implementation of BookingAPI.
// It serves an in-memory catalogue and books against it without a remote service.
type MockBookingAPI struct {
	mu          sync.Mutex
	experiences []experience.Experience
	promos      map[string]*promo.Promo
	logger      *zap.Logger
}

// NewMockBookingAPI creates a mock booking API seeded with a small catalogue
// whose slots start tomorrow.
func NewMockBookingAPI(logger *zap.Logger) *MockBookingAPI {
	return NewMockBookingAPIWith(seedExperiences(time.Now()), seedPromos(), logger)
}

// NewMockBookingAPIWith creates a mock booking API over the given data.
func NewMockBookingAPIWith(exps []experience.Experience, promos []*promo.Promo, logger *zap.Logger) *MockBookingAPI {
	byCode := make(map[string]*promo.Promo, len(promos))
	for _, p := range promos {
		byCode[strings.ToUpper(p.Code())] = p
	}
	return &MockBookingAPI{experiences: exps, promos: byCode, logger: logger}
}

// ListExperiences returns a copy of the catalogue.
func (m *MockBookingAPI) ListExperiences(ctx context.Context) ([]experience.Experience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]experience.Experience, len(m.experiences))
	for i, e := range m.experiences {
		out[i] = cloneExperience(e)
	}
	m.logger.Debug("[MOCK BOOKING API] experiences listed", zap.Int("count", len(out)))
	return out, nil
}

// GetExperience returns one experience by id.
func (m *MockBookingAPI) GetExperience(ctx context.Context, id string) (*experience.Experience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.experiences {
		if e.ID == id {
			exp := cloneExperience(e)
			return &exp, nil
		}
	}
	return nil, domain.NewNotFoundError("Experience", id)
}

// ValidatePromo looks codes up case-insensitively.
func (m *MockBookingAPI) ValidatePromo(ctx context.Context, code string) (*promo.Promo, error) {
	p, ok := m.promos[strings.ToUpper(strings.TrimSpace(code))]
	m.logger.Info("[MOCK BOOKING API] promo validated",
		zap.String("code", code),
		zap.Bool("valid", ok),
	)
	if !ok {
		return nil, nil
	}
	return p, nil
}

// CreateBooking books one unit on the slot and returns a generated reference.
func (m *MockBookingAPI) CreateBooking(ctx context.Context, req CreateBookingRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.experiences {
		if m.experiences[i].ID != req.ExperienceID {
			continue
		}
		slots := m.experiences[i].Slots
		for j := range slots {
			if slots[j].Date != req.Date || slots[j].Time != req.Time {
				continue
			}
			if !slots[j].Selectable() {
				return "", domain.NewRejectedError("slot is sold out")
			}
			slots[j].Booked++

			ref := strings.ReplaceAll(uuid.New().String(), "-", "")[:24]
			m.logger.Info("[MOCK BOOKING API] booking created",
				zap.String("booking_id", ref),
				zap.String("experience_id", req.ExperienceID),
				zap.String("date", req.Date.String()),
				zap.String("time", req.Time),
				zap.String("email", req.Email),
			)
			return ref, nil
		}
		return "", domain.NewRejectedError("slot not found")
	}
	return "", domain.NewNotFoundError("Experience", req.ExperienceID)
}

func cloneExperience(e experience.Experience) experience.Experience {
	e.Slots = append([]experience.Slot(nil), e.Slots...)
	return e
}

func seedExperiences(now time.Time) []experience.Experience {
	d1 := experience.DateOf(now.AddDate(0, 0, 1))
	d2 := experience.DateOf(now.AddDate(0, 0, 2))
	d3 := experience.DateOf(now.AddDate(0, 0, 3))

	return []experience.Experience{
		{
			ID:          "kayaking-udupi",
			Name:        "Kayaking",
			Location:    "Udupi",
			Description: "Curated small-group experience. Certified guide. Safety first with gear included.",
			Price:       999,
			Image:       "https://images.unsplash.com/photo-1544551763-46a013bb70d5",
			Slots: []experience.Slot{
				{Date: d1, Time: "07:00 am", Capacity: 8, Booked: 4},
				{Date: d1, Time: "09:00 am", Capacity: 8, Booked: 6},
				{Date: d1, Time: "11:00 am", Capacity: 8, Booked: 8},
				{Date: d2, Time: "07:00 am", Capacity: 8, Booked: 1},
				{Date: d3, Time: "01:00 pm", Capacity: 8, Booked: 0},
			},
		},
		{
			ID:          "nandi-hills-sunrise",
			Name:        "Nandi Hills Sunrise",
			Location:    "Bangalore",
			Description: "Early morning drive and sunrise trek. Hot breakfast at the summit.",
			Price:       899,
			Image:       "https://images.unsplash.com/photo-1500530855697-b586d89ba3ee",
			Slots: []experience.Slot{
				{Date: d1, Time: "05:00 am", Capacity: 12, Booked: 10},
				{Date: d2, Time: "05:00 am", Capacity: 12, Booked: 12},
				{Date: d3, Time: "05:00 am", Capacity: 12, Booked: 2},
			},
		},
		{
			ID:          "coffee-trail-coorg",
			Name:        "Coffee Trail",
			Location:    "Coorg",
			Description: "Walk through a working estate and taste fresh brews with the planters.",
			Price:       1299,
			Image:       "https://images.unsplash.com/photo-1447933601403-0c6688de566e",
			Slots: []experience.Slot{
				{Date: d2, Time: "10:00 am", Capacity: 6, Booked: 3},
				{Date: d2, Time: "03:00 pm", Capacity: 6, Booked: 0},
			},
		},
	}
}

func seedPromos() []*promo.Promo {
	save10, _ := promo.NewPromo("SAVE10", promo.DiscountTypePercent, 10)
	flat100, _ := promo.NewPromo("FLAT100", promo.DiscountTypeFlat, 100)
	return []*promo.Promo{save10, flat100}
}
