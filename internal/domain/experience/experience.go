package experience

import (
	"strings"
)

// Slot is one date and time instance of an experience with finite capacity.
type Slot struct {
	Date     Date
	Time     string
	Capacity int
	Booked   int
}

// Remaining returns capacity minus booked units. It is not clamped and may be
// zero or negative when the upstream over-books.
func (s Slot) Remaining() int {
	return s.Capacity - s.Booked
}

// Selectable reports whether at least one unit is still bookable.
func (s Slot) Selectable() bool {
	return s.Remaining() > 0
}

// SoldOut is the display complement of Selectable.
func (s Slot) SoldOut() bool {
	return !s.Selectable()
}

// Experience is a bookable activity as returned by the booking API.
type Experience struct {
	ID          string
	Name        string
	Location    string
	Description string
	Price       int64
	Image       string
	Slots       []Slot
}

// DistinctDates returns every slot date once, in first-occurrence order.
func DistinctDates(slots []Slot) []Date {
	seen := make(map[Date]struct{}, len(slots))
	dates := make([]Date, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s.Date]; ok {
			continue
		}
		seen[s.Date] = struct{}{}
		dates = append(dates, s.Date)
	}
	return dates
}

// TimesForDate returns the slots on date, preserving their original order.
func TimesForDate(slots []Slot, date Date) []Slot {
	var out []Slot
	for _, s := range slots {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out
}

// FindSlot returns the first slot with the given date and time label.
func FindSlot(slots []Slot, date Date, label string) (Slot, bool) {
	for _, s := range slots {
		if s.Date == date && s.Time == label {
			return s, true
		}
	}
	return Slot{}, false
}

// HasDate reports whether any slot falls on date.
func HasDate(slots []Slot, date Date) bool {
	for _, s := range slots {
		if s.Date == date {
			return true
		}
	}
	return false
}

// FilterByName keeps experiences whose name contains query, ignoring case.
// The query is trimmed first; an empty query keeps everything.
func FilterByName(experiences []Experience, query string) []Experience {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return experiences
	}
	out := make([]Experience, 0, len(experiences))
	for _, e := range experiences {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}
