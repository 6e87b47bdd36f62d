package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// MemoryCheckoutSessionRepository keeps sessions in process memory. It is
// used when no database is configured and follows the same optimistic
// locking rules as the GORM repository.
type MemoryCheckoutSessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]CheckoutSessionModel
}

// NewMemoryCheckoutSessionRepository creates an empty in-memory repository.
func NewMemoryCheckoutSessionRepository() *MemoryCheckoutSessionRepository {
	return &MemoryCheckoutSessionRepository{sessions: make(map[uuid.UUID]CheckoutSessionModel)}
}

// Save persists a new session.
func (r *MemoryCheckoutSessionRepository) Save(ctx context.Context, s *booking.CheckoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[s.ID()]; ok {
		return domain.NewConflictError("checkout session already exists")
	}
	r.sessions[s.ID()] = *toModel(s)
	return nil
}

// FindByID returns a copy of the stored session.
func (r *MemoryCheckoutSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.CheckoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.sessions[id]
	if !ok {
		return nil, domain.NewNotFoundError("CheckoutSession", id.String())
	}
	return toDomain(&model), nil
}

// Update stores s if the stored version is s.Version()-1.
func (r *MemoryCheckoutSessionRepository) Update(ctx context.Context, s *booking.CheckoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.sessions[s.ID()]
	if !ok || stored.Version != s.Version()-1 {
		return domain.NewConflictError("checkout session was modified by another request")
	}
	r.sessions[s.ID()] = *toModel(s)
	return nil
}

// List returns one page of sessions, newest first.
func (r *MemoryCheckoutSessionRepository) List(ctx context.Context, page, limit int) ([]*booking.CheckoutSession, int64, error) {
	r.mu.RLock()
	models := make([]CheckoutSessionModel, 0, len(r.sessions))
	for _, m := range r.sessions {
		models = append(models, m)
	}
	r.mu.RUnlock()

	sort.Slice(models, func(i, j int) bool {
		return models[i].CreatedAt.After(models[j].CreatedAt)
	})

	total := int64(len(models))
	start := (page - 1) * limit
	if start < 0 || start >= len(models) {
		return []*booking.CheckoutSession{}, total, nil
	}
	end := min(start+limit, len(models))

	out := make([]*booking.CheckoutSession, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, toDomain(&models[i]))
	}
	return out, total, nil
}

// CountByStatus groups sessions by status.
func (r *MemoryCheckoutSessionRepository) CountByStatus(ctx context.Context) (map[booking.SessionStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[booking.SessionStatus]int64)
	for _, m := range r.sessions {
		counts[booking.SessionStatus(m.Status)]++
	}
	return counts, nil
}
