package booking

import (
	"math"

	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
)

// Selection is the transient date, time and quantity a visitor has picked on
// the details page.
type Selection struct {
	slots    []experience.Slot
	date     experience.Date
	time     string
	quantity int
}

// NewSelection starts an empty selection over slots with quantity one.
func NewSelection(slots []experience.Slot) *Selection {
	return &Selection{slots: slots, quantity: 1}
}

// SelectDate sets the date and always clears the time, even when the new
// date has a slot with the same label. A date with no slots clears the
// selection and reports false.
func (s *Selection) SelectDate(date experience.Date) bool {
	s.time = ""
	if !experience.HasDate(s.slots, date) {
		s.date = experience.Date{}
		return false
	}
	s.date = date
	return true
}

// SelectTime picks a time on the selected date. Sold out slots and labels not
// offered on that date are refused.
func (s *Selection) SelectTime(label string) bool {
	if s.date.IsZero() {
		return false
	}
	slot, ok := experience.FindSlot(s.slots, s.date, label)
	if !ok || !slot.Selectable() {
		return false
	}
	s.time = label
	return true
}

// SetQuantity clamps q to at least one.
func (s *Selection) SetQuantity(q int) {
	if q < 1 {
		q = 1
	}
	s.quantity = q
}

// Increment adds one unit. No upper bound is enforced here beyond the int range.
func (s *Selection) Increment() {
	s.quantity = s.IncrementedQuantity()
}

// Decrement removes one unit; it is a no-op at one.
func (s *Selection) Decrement() {
	if s.quantity > 1 {
		s.quantity--
	}
}

// CanProceed reports whether both a date and a time are selected.
func (s *Selection) CanProceed() bool {
	return !s.date.IsZero() && s.time != ""
}

// AvailableDates lists the distinct slot dates.
func (s *Selection) AvailableDates() []experience.Date {
	return experience.DistinctDates(s.slots)
}

// AvailableTimes lists the slots on the selected date.
func (s *Selection) AvailableTimes() []experience.Slot {
	if s.date.IsZero() {
		return nil
	}
	return experience.TimesForDate(s.slots, s.date)
}

// Quote prices the current quantity.
func (s *Selection) Quote(price int64) (Quote, error) {
	return NewQuote(price, s.quantity)
}

// Getters.
func (s *Selection) Date() experience.Date { return s.date }
func (s *Selection) Time() string          { return s.time }
func (s *Selection) Quantity() int         { return s.quantity }

// DecrementedQuantity and IncrementedQuantity return what the −/+ controls
// would produce without mutating the selection.
func (s *Selection) DecrementedQuantity() int {
	if s.quantity > 1 {
		return s.quantity - 1
	}
	return 1
}

func (s *Selection) IncrementedQuantity() int {
	if s.quantity == math.MaxInt {
		return s.quantity
	}
	return s.quantity + 1
}
