package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/adapter"
	adaptermocks "github.com/highwaydelite/service-booking-web/internal/adapter/mocks"
	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/internal/events"
	eventmocks "github.com/highwaydelite/service-booking-web/internal/events/mocks"
	"github.com/highwaydelite/service-booking-web/internal/repository"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

func TestSaga_CompensatesInReverseOrder(t *testing.T) {
	var trail []string
	step := func(name string, fail bool) SagaStep {
		return SagaStep{
			Name: name,
			Execute: func(ctx context.Context) error {
				trail = append(trail, "exec:"+name)
				if fail {
					return errors.New("boom")
				}
				return nil
			},
			Compensate: func(ctx context.Context) error {
				trail = append(trail, "undo:"+name)
				return nil
			},
		}
	}

	s := NewSaga("test", zap.NewNop())
	s.AddStep(step("a", false))
	s.AddStep(step("b", false))
	s.AddStep(step("c", true))
	s.AddStep(step("d", false))

	err := s.Execute(context.Background())
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "c", stepErr.Step)
	assert.Equal(t, []string{"exec:a", "exec:b", "exec:c", "undo:b", "undo:a"}, trail)
}

func openSession(t *testing.T, repo booking.CheckoutSessionRepository) *booking.CheckoutSession {
	t.Helper()
	date := experience.NewDate(2025, time.November, 1)
	summary := booking.ReconstructSummary("exp-1", "Kayaking", date, "07:00 am", 2, 2000, 60, 2060)
	s := booking.NewCheckoutSession(summary)
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func TestConfirmBookingSaga_Success(t *testing.T) {
	repo := repository.NewMemoryCheckoutSessionRepository()
	api := adaptermocks.NewMockBookingAPI(t)
	pub := eventmocks.NewMockPublisher(t)
	svc := NewBookingSagaService(repo, api, pub, zap.NewNop())
	session := openSession(t, repo)

	api.EXPECT().CreateBooking(mock.Anything, adapter.CreateBookingRequest{
		Name:         "Asha",
		Email:        "asha@example.com",
		ExperienceID: "exp-1",
		Date:         experience.NewDate(2025, time.November, 1),
		Time:         "07:00 am",
	}).Return("6650aa01", nil)

	var published events.BookingConfirmedEvent
	pub.EXPECT().Publish(mock.Anything, events.BookingConfirmed, mock.Anything).
		Run(func(_ context.Context, _ string, data interface{}) {
			published = data.(events.BookingConfirmedEvent)
		}).
		Return(nil)

	got, err := svc.ConfirmBookingSaga(context.Background(), session, Customer{Name: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, booking.SessionConfirmed, got.Status())

	stored, err := repo.FindByID(context.Background(), session.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.SessionConfirmed, stored.Status())
	assert.Equal(t, "6650aa01", stored.BookingRef())
	assert.Equal(t, int64(3), stored.Version())

	assert.Equal(t, "6650aa01", published.BookingRef)
	assert.Equal(t, int64(2060), published.Total)
	assert.Equal(t, "2025-11-01", published.Date)
}

func TestConfirmBookingSaga_RemoteFailureReopensSession(t *testing.T) {
	repo := repository.NewMemoryCheckoutSessionRepository()
	api := adaptermocks.NewMockBookingAPI(t)
	pub := eventmocks.NewMockPublisher(t)
	svc := NewBookingSagaService(repo, api, pub, zap.NewNop())
	session := openSession(t, repo)

	api.EXPECT().CreateBooking(mock.Anything, mock.Anything).
		Return("", domain.NewUnavailableError("booking service is unreachable", nil))
	pub.EXPECT().Publish(mock.Anything, events.BookingFailed, mock.Anything).Return(nil)

	_, err := svc.ConfirmBookingSaga(context.Background(), session, Customer{Name: "Asha", Email: "a@b.c"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))

	stored, err := repo.FindByID(context.Background(), session.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.SessionOpen, stored.Status(), "compensation returns the session to open")
	assert.Equal(t, int64(3), stored.Version())
}

func TestConfirmBookingSaga_PublishFailureDoesNotFailBooking(t *testing.T) {
	repo := repository.NewMemoryCheckoutSessionRepository()
	api := adaptermocks.NewMockBookingAPI(t)
	pub := eventmocks.NewMockPublisher(t)
	svc := NewBookingSagaService(repo, api, pub, zap.NewNop())
	session := openSession(t, repo)

	api.EXPECT().CreateBooking(mock.Anything, mock.Anything).Return("abc", nil)
	pub.EXPECT().Publish(mock.Anything, events.BookingConfirmed, mock.Anything).Return(errors.New("broker down"))

	got, err := svc.ConfirmBookingSaga(context.Background(), session, Customer{Name: "Asha", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "abc", got.BookingRef())
}

func TestConfirmBookingSaga_StaleSessionIsRefused(t *testing.T) {
	repo := repository.NewMemoryCheckoutSessionRepository()
	api := adaptermocks.NewMockBookingAPI(t)
	pub := eventmocks.NewMockPublisher(t)
	svc := NewBookingSagaService(repo, api, pub, zap.NewNop())
	session := openSession(t, repo)

	// Two requests loaded the same session; the first one wins.
	first, err := repo.FindByID(context.Background(), session.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(context.Background(), session.ID())
	require.NoError(t, err)

	api.EXPECT().CreateBooking(mock.Anything, mock.Anything).Return("abc", nil).Once()
	pub.EXPECT().Publish(mock.Anything, events.BookingConfirmed, mock.Anything).Return(nil).Once()

	_, err = svc.ConfirmBookingSaga(context.Background(), first, Customer{Name: "Asha", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = svc.ConfirmBookingSaga(context.Background(), second, Customer{Name: "Asha", Email: "a@b.c"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

// flakyUpdateRepo fails the Update calls whose 1-based index is listed.
type flakyUpdateRepo struct {
	booking.CheckoutSessionRepository
	failOn  map[int]bool
	updates int
}

func (r *flakyUpdateRepo) Update(ctx context.Context, s *booking.CheckoutSession) error {
	r.updates++
	if r.failOn[r.updates] {
		return errors.New("connection reset")
	}
	return r.CheckoutSessionRepository.Update(ctx, s)
}

func TestConfirmBookingSaga_ConfirmSaveRetriesOnFreshLoad(t *testing.T) {
	repo := &flakyUpdateRepo{
		CheckoutSessionRepository: repository.NewMemoryCheckoutSessionRepository(),
		failOn:                    map[int]bool{2: true},
	}
	api := adaptermocks.NewMockBookingAPI(t)
	pub := eventmocks.NewMockPublisher(t)
	svc := NewBookingSagaService(repo, api, pub, zap.NewNop())
	session := openSession(t, repo)

	api.EXPECT().CreateBooking(mock.Anything, mock.Anything).Return("6650aa02", nil).Once()
	pub.EXPECT().Publish(mock.Anything, events.BookingConfirmed, mock.Anything).Return(nil).Once()

	got, err := svc.ConfirmBookingSaga(context.Background(), session, Customer{Name: "Asha", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "6650aa02", got.BookingRef())
	assert.Equal(t, 3, repo.updates)

	stored, err := repo.FindByID(context.Background(), session.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.SessionConfirmed, stored.Status())
	assert.Equal(t, "6650aa02", stored.BookingRef())
	assert.Equal(t, int64(3), stored.Version())
}

func TestConfirmBookingSaga_BookedSessionIsNeverReopened(t *testing.T) {
	repo := &flakyUpdateRepo{
		CheckoutSessionRepository: repository.NewMemoryCheckoutSessionRepository(),
		failOn:                    map[int]bool{2: true, 3: true, 4: true, 5: true},
	}
	api := adaptermocks.NewMockBookingAPI(t)
	// No Publish expectation: neither event may be sent.
	pub := eventmocks.NewMockPublisher(t)
	svc := NewBookingSagaService(repo, api, pub, zap.NewNop())
	session := openSession(t, repo)

	api.EXPECT().CreateBooking(mock.Anything, mock.Anything).Return("6650aa03", nil).Once()

	_, err := svc.ConfirmBookingSaga(context.Background(), session, Customer{Name: "Asha", Email: "a@b.c"})
	require.Error(t, err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, "mark_confirmed", stepErr.Step)
	assert.Equal(t, 1+confirmSaveAttempts, repo.updates, "no compensating update after the remote booking")

	stored, err := repo.FindByID(context.Background(), session.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.SessionConfirming, stored.Status(), "a booked slot stays reserved")
	assert.Equal(t, int64(2), stored.Version())
}
