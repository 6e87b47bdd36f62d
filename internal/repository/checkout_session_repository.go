package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// CheckoutSessionModel is the GORM persistence model for the checkout_sessions table.
type CheckoutSessionModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExperienceID   string    `gorm:"type:varchar(64);not null;index"`
	ExperienceName string    `gorm:"type:varchar(255);not null"`
	SlotDate       time.Time `gorm:"type:date;not null"`
	SlotTime       string    `gorm:"type:varchar(32);not null"`
	Quantity       int       `gorm:"not null;default:1"`
	Subtotal       int64     `gorm:"not null"`
	Taxes          int64     `gorm:"not null"`
	Total          int64     `gorm:"not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:'open';index"`
	BookingRef     string    `gorm:"type:varchar(64)"`
	CustomerName   string    `gorm:"type:varchar(255)"`
	CustomerEmail  string    `gorm:"type:varchar(255)"`
	Version        int64     `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt      time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (CheckoutSessionModel) TableName() string {
	return "checkout_sessions"
}

// CheckoutSessionRepositoryImpl is the GORM-based implementation of CheckoutSessionRepository.
type CheckoutSessionRepositoryImpl struct {
	db *gorm.DB
}

// NewCheckoutSessionRepository creates a new GORM-based checkout session repository.
func NewCheckoutSessionRepository(db *gorm.DB) *CheckoutSessionRepositoryImpl {
	return &CheckoutSessionRepositoryImpl{db: db}
}

// AutoMigrate creates or updates the checkout_sessions table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&CheckoutSessionModel{})
}

// FindByID retrieves a session by its unique ID.
func (r *CheckoutSessionRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*booking.CheckoutSession, error) {
	var model CheckoutSessionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("CheckoutSession", id.String())
		}
		return nil, err
	}
	return toDomain(&model), nil
}

// Save persists a new session.
func (r *CheckoutSessionRepositoryImpl) Save(ctx context.Context, s *booking.CheckoutSession) error {
	return r.db.WithContext(ctx).Create(toModel(s)).Error
}

// Update persists changes to an existing session with optimistic locking.
// The caller bumps the version first; the row must still hold the previous one.
func (r *CheckoutSessionRepositoryImpl) Update(ctx context.Context, s *booking.CheckoutSession) error {
	model := toModel(s)
	previousVersion := s.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&CheckoutSessionModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(map[string]any{
			"status":         model.Status,
			"booking_ref":    model.BookingRef,
			"customer_name":  model.CustomerName,
			"customer_email": model.CustomerEmail,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("checkout session was modified by another request")
	}

	return nil
}

// List retrieves sessions with pagination, newest first.
func (r *CheckoutSessionRepositoryImpl) List(ctx context.Context, page, limit int) ([]*booking.CheckoutSession, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&CheckoutSessionModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []CheckoutSessionModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	sessions := make([]*booking.CheckoutSession, len(models))
	for i := range models {
		sessions[i] = toDomain(&models[i])
	}
	return sessions, total, nil
}

// CountByStatus groups sessions by status.
func (r *CheckoutSessionRepositoryImpl) CountByStatus(ctx context.Context) (map[booking.SessionStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&CheckoutSessionModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, err
	}

	counts := make(map[booking.SessionStatus]int64, len(results))
	for _, sc := range results {
		counts[booking.SessionStatus(sc.Status)] = sc.Count
	}
	return counts, nil
}

// toDomain maps a CheckoutSessionModel to the domain CheckoutSession aggregate.
func toDomain(model *CheckoutSessionModel) *booking.CheckoutSession {
	summary := booking.ReconstructSummary(
		model.ExperienceID,
		model.ExperienceName,
		experience.DateOf(model.SlotDate.UTC()),
		model.SlotTime,
		model.Quantity,
		model.Subtotal,
		model.Taxes,
		model.Total,
	)
	return booking.ReconstructSession(
		model.ID,
		summary,
		booking.SessionStatus(model.Status),
		model.BookingRef,
		model.CustomerName,
		model.CustomerEmail,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// toModel maps a domain CheckoutSession aggregate to a CheckoutSessionModel for persistence.
func toModel(s *booking.CheckoutSession) *CheckoutSessionModel {
	summary := s.Summary()
	return &CheckoutSessionModel{
		ID:             s.ID(),
		ExperienceID:   summary.ExperienceID(),
		ExperienceName: summary.ExperienceName(),
		SlotDate:       summary.Date().Time(),
		SlotTime:       summary.Time(),
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
