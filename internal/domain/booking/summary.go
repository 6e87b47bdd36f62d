package booking

import (
	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// CheckoutSummary is the snapshot handed from the details page to checkout.
// It is taken once and never re-derived.
type CheckoutSummary struct {
	experienceID   string
	experienceName string
	date           experience.Date
	time           string
	quantity       int
	subtotal       int64
	taxes          int64
	total          int64
}

// NewCheckoutSummary snapshots a complete selection.
func NewCheckoutSummary(exp *experience.Experience, sel *Selection) (CheckoutSummary, error) {
	if !sel.CanProceed() {
		return CheckoutSummary{}, domain.NewValidationError("select a date and time before checking out")
	}
	q, err := sel.Quote(exp.Price)
	if err != nil {
		return CheckoutSummary{}, err
	}
	return CheckoutSummary{
		experienceID:   exp.ID,
		experienceName: exp.Name,
		date:           sel.Date(),
		time:           sel.Time(),
		quantity:       q.Quantity,
		subtotal:       q.Subtotal,
		taxes:          q.Taxes,
		total:          q.Total,
	}, nil
}

// ReconstructSummary rebuilds a summary from persistence.
func ReconstructSummary(experienceID, experienceName string, date experience.Date, time string, quantity int, subtotal, taxes, total int64) CheckoutSummary {
	return CheckoutSummary{
		experienceID: experienceID, experienceName: experienceName,
		date: date, time: time, quantity: quantity,
		subtotal: subtotal, taxes: taxes, total: total,
	}
}

// Getters.
func (s CheckoutSummary) ExperienceID() string   { return s.experienceID }
func (s CheckoutSummary) ExperienceName() string { return s.experienceName }
func (s CheckoutSummary) Date() experience.Date  { return s.date }
func (s CheckoutSummary) Time() string           { return s.time }
func (s CheckoutSummary) Quantity() int          { return s.quantity }
func (s CheckoutSummary) Subtotal() int64        { return s.subtotal }
func (s CheckoutSummary) Taxes() int64           { return s.taxes }
func (s CheckoutSummary) Total() int64           { return s.total }
