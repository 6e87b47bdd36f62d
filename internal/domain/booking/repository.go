package booking

import (
	"context"

	"github.com/google/uuid"
)

// CheckoutSessionRepository defines the persistence contract for checkout sessions.
type CheckoutSessionRepository interface {
	// Save persists a new session.
	Save(ctx context.Context, s *CheckoutSession) error

	// FindByID returns a session or a not-found domain error.
	FindByID(ctx context.Context, id uuid.UUID) (*CheckoutSession, error)

	// Update persists changes with optimistic locking on the version.
	Update(ctx context.Context, s *CheckoutSession) error

	// List returns one page of sessions, newest first, and the total count.
	List(ctx context.Context, page, limit int) ([]*CheckoutSession, int64, error)

	// CountByStatus returns how many sessions are in each status.
	CountByStatus(ctx context.Context) (map[SessionStatus]int64, error)
}
