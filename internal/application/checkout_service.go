package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/adapter"
	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/internal/domain/promo"
	"github.com/highwaydelite/service-booking-web/internal/saga"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// CheckoutSessionDTO is the API response DTO for a checkout session.
type CheckoutSessionDTO struct {
	ID             uuid.UUID `json:"id"`
	ExperienceID   string    `json:"experience_id"`
	ExperienceName string    `json:"experience_name"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Quantity       int       `json:"quantity"`
	Subtotal       int64     `json:"subtotal"`
	Taxes          int64     `json:"taxes"`
	Total          int64     `json:"total"`
	Status         string    `json:"status"`
	BookingRef     string    `json:"booking_ref,omitempty"`
	CustomerName   string    `json:"customer_name,omitempty"`
	CustomerEmail  string    `json:"customer_email,omitempty"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SessionStatsDTO counts sessions per status.
type SessionStatsDTO struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// CheckoutService orchestrates the checkout use cases.
type CheckoutService struct {
	repo    booking.CheckoutSessionRepository
	api     adapter.BookingAPI
	sagaSvc *saga.BookingSagaService
	logger  *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	repo booking.CheckoutSessionRepository,
	api adapter.BookingAPI,
	sagaSvc *saga.BookingSagaService,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		repo:    repo,
		api:     api,
		sagaSvc: sagaSvc,
		logger:  logger,
	}
}

// Start snapshots the selection for experienceID into a new checkout session.
// The experience is fetched again so the summary reflects current slots.
func (s *CheckoutService) Start(ctx context.Context, experienceID string, params SelectionParams) (uuid.UUID, error) {
	exp, err := s.api.GetExperience(ctx, experienceID)
	if err != nil {
		return uuid.Nil, err
	}

	sel := buildSelection(exp, params)
	summary, err := booking.NewCheckoutSummary(exp, sel)
	if err != nil {
		return uuid.Nil, err
	}

	session := booking.NewCheckoutSession(summary)
	if err := s.repo.Save(ctx, session); err != nil {
		s.logger.Error("failed to save checkout session", zap.Error(err))
		return uuid.Nil, err
	}

	s.logger.Info("checkout started",
		zap.String("session_id", session.ID().String()),
		zap.String("experience_id", experienceID),
		zap.String("date", summary.Date().String()),
		zap.String("time", summary.Time()),
		zap.Int("quantity", summary.Quantity()),
	)
	return session.ID(), nil
}

// Get returns a session.
func (s *CheckoutService) Get(ctx context.Context, sessionID uuid.UUID) (*CheckoutSessionDTO, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	dto := toSessionDTO(session)
	return &dto, nil
}

// ApplyPromo evaluates code against the session total. A blank code is a
// no-op; an unknown code leaves the total unchanged. Errors are transport
// failures and also leave the total unchanged.
func (s *CheckoutService) ApplyPromo(ctx context.Context, sessionID uuid.UUID, code string) (promo.Outcome, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return promo.Outcome{}, err
	}
	total := session.Summary().Total()

	code = strings.TrimSpace(code)
	if code == "" {
		return promo.None(total), nil
	}

	p, err := s.api.ValidatePromo(ctx, code)
	if err != nil {
		s.logger.Warn("promo validation failed", zap.String("code", code), zap.Error(err))
		return promo.Evaluate(code, total, nil), err
	}

	outcome := promo.Evaluate(code, total, p)
	s.logger.Info("promo evaluated",
		zap.String("session_id", sessionID.String()),
		zap.String("code", code),
		zap.Bool("applied", outcome.Applied),
		zap.Int64("total", outcome.DiscountedTotal),
	)
	return outcome, nil
}

// Confirm books the session for the customer in form. An incomplete form is
// refused before anything is sent to the booking API.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID uuid.UUID, form booking.CheckoutForm) (*booking.Confirmation, error) {
	form = form.Trimmed()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.sagaSvc.ConfirmBookingSaga(ctx, session, saga.Customer{
		Name:  form.FullName,
		Email: form.Email,
	})
	if err != nil {
		return nil, err
	}

	c, _ := confirmed.Confirmation()
	return &c, nil
}

// Confirmation returns the booking of a confirmed session. Sessions that are
// missing or not yet confirmed have no booking data.
func (s *CheckoutService) Confirmation(ctx context.Context, sessionID uuid.UUID) (*booking.Confirmation, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c, ok := session.Confirmation()
	if !ok {
		return nil, domain.NewNotFoundError("Booking", sessionID.String())
	}
	return &c, nil
}

// ListSessions returns one page of sessions (admin).
func (s *CheckoutService) ListSessions(ctx context.Context, page, limit int) ([]CheckoutSessionDTO, int64, error) {
	sessions, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]CheckoutSessionDTO, len(sessions))
	for i, session := range sessions {
		dtos[i] = toSessionDTO(session)
	}
	return dtos, total, nil
}

// SessionStats counts sessions by status (admin).
func (s *CheckoutService) SessionStats(ctx context.Context) (*SessionStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats := &SessionStatsDTO{ByStatus: make(map[string]int64, len(counts))}
	for status, n := range counts {
		stats.ByStatus[string(status)] = n
		stats.Total += n
	}
	return stats, nil
}

func toSessionDTO(s *booking.CheckoutSession) CheckoutSessionDTO {
	summary := s.Summary()
	return CheckoutSessionDTO{
		ID:             s.ID(),
		ExperienceID:   summary.ExperienceID(),
		ExperienceName: summary.ExperienceName(),
		Date:           summary.Date().String(),
		Time:           summary.Time(),
		Quantity:       summary.Quantity(),
		Subtotal:       summary.Subtotal(),
		Taxes:          summary.Taxes(),
		Total:          summary.Total(),
		Status:         string(s.Status()),
		BookingRef:     s.BookingRef(),
		CustomerName:   s.CustomerName(),
		CustomerEmail:  s.CustomerEmail(),
		Version:        s.Version(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}
