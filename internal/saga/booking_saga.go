package saga

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/adapter"
	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/internal/events"
)

// Customer is who the booking is made for.
type Customer struct {
	Name  string
	Email string
}

// BookingSagaService orchestrates the confirm-booking workflow.
type BookingSagaService struct {
	repo      booking.CheckoutSessionRepository
	api       adapter.BookingAPI
	publisher events.Publisher
	logger    *zap.Logger
}

// NewBookingSagaService creates a new BookingSagaService.
func NewBookingSagaService(
	repo booking.CheckoutSessionRepository,
	api adapter.BookingAPI,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingSagaService {
	return &BookingSagaService{
		repo:      repo,
		api:       api,
		publisher: publisher,
		logger:    logger,
	}
}

// confirmSaveAttempts bounds how often mark_confirmed retries the final save
// once the remote booking exists.
const confirmSaveAttempts = 3

// ConfirmBookingSaga reserves the session, books the slot remotely and marks
// the session confirmed, then publishes BookingConfirmed.
func (s *BookingSagaService) ConfirmBookingSaga(
	ctx context.Context,
	session *booking.CheckoutSession,
	customer Customer,
) (*booking.CheckoutSession, error) {
	summary := session.Summary()
	var (
		bookingRef string
		confirmed  *booking.CheckoutSession
	)

	saga := NewSaga("confirm_booking", s.logger)

	// Step 1: Move the session to confirming so a second submit is refused
	saga.AddStep(SagaStep{
		Name: "reserve_session",
		Execute: func(ctx context.Context) error {
			if err := session.BeginConfirmation(); err != nil {
				return err
			}
			session.IncrementVersion()
			return s.repo.Update(ctx, session)
		},
		Compensate: func(ctx context.Context) error {
			// A booked slot must never be offered for checkout again.
			if bookingRef != "" {
				s.logger.Warn("remote booking exists, leaving session reserved",
					zap.String("session_id", session.ID().String()),
					zap.String("booking_ref", bookingRef),
				)
				return nil
			}
			if err := session.AbortConfirmation(); err != nil {
				return err
			}
			session.IncrementVersion()
			return s.repo.Update(ctx, session)
		},
	})

	// Step 2: Create the booking on the remote API
	saga.AddStep(SagaStep{
		Name: "create_remote_booking",
		Execute: func(ctx context.Context) error {
			ref, err := s.api.CreateBooking(ctx, adapter.CreateBookingRequest{
				Name:         customer.Name,
				Email:        customer.Email,
				ExperienceID: summary.ExperienceID(),
				Date:         summary.Date(),
				Time:         summary.Time(),
			})
			if err != nil {
				return err
			}
			bookingRef = ref
			return nil
		},
		Compensate: nil, // The booking API has no cancel endpoint
	})

	// Step 3: Record the reference
	saga.AddStep(SagaStep{
		Name: "mark_confirmed",
		Execute: func(ctx context.Context) error {
			var err error
			confirmed, err = s.persistConfirmation(context.WithoutCancel(ctx), session, bookingRef, customer)
			if err != nil {
				s.logger.Error("remote booking exists but session could not be confirmed",
					zap.String("session_id", session.ID().String()),
					zap.String("booking_ref", bookingRef),
					zap.Error(err),
				)
			}
			return err
		},
		Compensate: nil,
	})

	if err := saga.Execute(ctx); err != nil {
		var stepErr *StepError
		if bookingRef == "" && errors.As(err, &stepErr) && stepErr.Step != "reserve_session" {
			s.publishFailedEvent(ctx, session, stepErr.Err.Error())
		}
		return nil, err
	}

	s.publishConfirmedEvent(ctx, confirmed)
	return confirmed, nil
}

// persistConfirmation stores the booking reference on the session. A failed
// save is retried on a fresh copy; a copy that already carries the reference
// counts as saved.
func (s *BookingSagaService) persistConfirmation(
	ctx context.Context,
	session *booking.CheckoutSession,
	bookingRef string,
	customer Customer,
) (*booking.CheckoutSession, error) {
	current := session
	var err error
	for attempt := 1; attempt <= confirmSaveAttempts; attempt++ {
		if attempt > 1 {
			current, err = s.repo.FindByID(ctx, session.ID())
			if err != nil {
				s.logger.Warn("reload before confirm retry failed",
					zap.String("session_id", session.ID().String()),
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
				continue
			}
			if current.Status() == booking.SessionConfirmed && current.BookingRef() == bookingRef {
				return current, nil
			}
		}

		if err = current.Confirm(bookingRef, customer.Name, customer.Email); err != nil {
			return nil, err
		}
		current.IncrementVersion()
		if err = s.repo.Update(ctx, current); err == nil {
			return current, nil
		}
		s.logger.Warn("saving confirmed session failed",
			zap.String("session_id", session.ID().String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return nil, err
}

// publishConfirmedEvent is best-effort: the booking already exists.
func (s *BookingSagaService) publishConfirmedEvent(ctx context.Context, session *booking.CheckoutSession) {
	summary := session.Summary()
	event := events.BookingConfirmedEvent{
		SessionID:      session.ID().String(),
		BookingRef:     session.BookingRef(),
		ExperienceID:   summary.ExperienceID(),
		ExperienceName: summary.ExperienceName(),
		Date:           summary.Date().String(),
		Time:           summary.Time(),
		Quantity:       summary.Quantity(),
		Total:          summary.Total(),
		OccurredAt:     time.Now().UTC(),
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), events.BookingConfirmed, event); err != nil {
		s.logger.Error("failed to publish booking confirmed event",
			zap.String("session_id", event.SessionID),
			zap.Error(err),
		)
	}
}

// publishFailedEvent publishes a BookingFailedEvent.
func (s *BookingSagaService) publishFailedEvent(ctx context.Context, session *booking.CheckoutSession, reason string) {
	event := events.BookingFailedEvent{
		SessionID:    session.ID().String(),
		ExperienceID: session.Summary().ExperienceID(),
		Reason:       reason,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), events.BookingFailed, event); err != nil {
		s.logger.Error("failed to publish booking failed event", zap.Error(err))
	}
}
