package adapter

import (
	"context"

	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/internal/domain/promo"
)

// BookingAPI is the Anti-Corruption Layer over the remote booking API.
// The domain only sees experiences, promos and booking references.
type BookingAPI interface {
	// ListExperiences returns every experience on offer.
	ListExperiences(ctx context.Context) ([]experience.Experience, error)

	// GetExperience returns one experience or a not-found domain error.
	GetExperience(ctx context.Context, id string) (*experience.Experience, error)

	// ValidatePromo returns the promo for code, or nil when the API says it is not valid.
	ValidatePromo(ctx context.Context, code string) (*promo.Promo, error)

	// CreateBooking books a slot and returns the booking reference.
	CreateBooking(ctx context.Context, req CreateBookingRequest) (string, error)
}

// CreateBookingRequest is what the booking API needs to reserve a slot.
type CreateBookingRequest struct {
	Name         string
	Email        string
	ExperienceID string
	Date         experience.Date
	Time         string
}
