package booking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// SessionStatus is the state of a checkout session.
type SessionStatus string

const (
	SessionOpen       SessionStatus = "open"
	SessionConfirming SessionStatus = "confirming"
	SessionConfirmed  SessionStatus = "confirmed"
)

// CheckoutSession carries a CheckoutSummary from the details page through
// checkout to the confirmation page.
type CheckoutSession struct {
	id            uuid.UUID
	summary       CheckoutSummary
	status        SessionStatus
	bookingRef    string
	customerName  string
	customerEmail string
	version       int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewCheckoutSession opens a session for summary.
func NewCheckoutSession(summary CheckoutSummary) *CheckoutSession {
	now := time.Now().UTC()
	return &CheckoutSession{
		id:        uuid.New(),
		summary:   summary,
		status:    SessionOpen,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}
}

// ReconstructSession rebuilds a session from persistence.
func ReconstructSession(
	id uuid.UUID,
	summary CheckoutSummary,
	status SessionStatus,
	bookingRef, customerName, customerEmail string,
	version int64,
	createdAt, updatedAt time.Time,
) *CheckoutSession {
	return &CheckoutSession{
		id:            id,
		summary:       summary,
		status:        status,
		bookingRef:    bookingRef,
		customerName:  customerName,
		customerEmail: customerEmail,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// BeginConfirmation moves an open session to confirming so a second
// submission cannot book twice.
func (s *CheckoutSession) BeginConfirmation() error {
	if s.status != SessionOpen {
		return domain.NewInvalidStateError(string(s.status), string(SessionConfirming))
	}
	s.status = SessionConfirming
	s.touch()
	return nil
}

// AbortConfirmation returns a confirming session to open after a failed attempt.
func (s *CheckoutSession) AbortConfirmation() error {
	if s.status != SessionConfirming {
		return domain.NewInvalidStateError(string(s.status), string(SessionOpen))
	}
	s.status = SessionOpen
	s.touch()
	return nil
}

// Confirm records the booking reference returned by the booking API.
func (s *CheckoutSession) Confirm(bookingRef, customerName, customerEmail string) error {
	if s.status != SessionConfirming {
		return domain.NewInvalidStateError(string(s.status), string(SessionConfirmed))
	}
	if strings.TrimSpace(bookingRef) == "" {
		return domain.NewValidationError("booking reference is required")
	}
	s.status = SessionConfirmed
	s.bookingRef = bookingRef
	s.customerName = customerName
	s.customerEmail = customerEmail
	s.touch()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (s *CheckoutSession) IncrementVersion() {
	s.version++
	s.updatedAt = time.Now().UTC()
}

func (s *CheckoutSession) touch() {
	s.updatedAt = time.Now().UTC()
}

// Confirmation returns what the confirmation page shows, or false while the
// session is not confirmed.
func (s *CheckoutSession) Confirmation() (Confirmation, bool) {
	if s.status != SessionConfirmed {
		return Confirmation{}, false
	}
	return Confirmation{
		BookingRef:     s.bookingRef,
		ExperienceName: s.summary.ExperienceName(),
		Date:           s.summary.Date().String(),
		Time:           s.summary.Time(),
	}, true
}

// Getters.
func (s *CheckoutSession) ID() uuid.UUID            { return s.id }
func (s *CheckoutSession) Summary() CheckoutSummary { return s.summary }
func (s *CheckoutSession) Status() SessionStatus    { return s.status }
func (s *CheckoutSession) BookingRef() string       { return s.bookingRef }
func (s *CheckoutSession) CustomerName() string     { return s.customerName }
func (s *CheckoutSession) CustomerEmail() string    { return s.customerEmail }
func (s *CheckoutSession) Version() int64           { return s.version }
func (s *CheckoutSession) CreatedAt() time.Time     { return s.createdAt }
func (s *CheckoutSession) UpdatedAt() time.Time     { return s.updatedAt }

// Confirmation is the read model of a confirmed booking.
type Confirmation struct {
	BookingRef     string `json:"booking_ref"`
	ExperienceName string `json:"experience_name"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

// DisplayRef is the reference as printed on the confirmation page.
func (c Confirmation) DisplayRef() string {
	return strings.ToUpper(c.BookingRef)
}
