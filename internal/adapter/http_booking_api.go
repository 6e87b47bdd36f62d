package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/internal/domain/promo"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// maxResponseBytes bounds how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// HTTPBookingAPI talks JSON to the booking API over HTTP.
type HTTPBookingAPI struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPBookingAPI creates a client for baseURL with a per-request timeout.
func NewHTTPBookingAPI(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPBookingAPI {
	return &HTTPBookingAPI{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// --- wire formats ---

type slotDTO struct {
	Date     experience.Date `json:"date"`
	Time     string          `json:"time"`
	Capacity int             `json:"capacity"`
	Booked   int             `json:"booked"`
}

type experienceDTO struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	Slots       []slotDTO `json:"slots"`
}

type validatePromoRequest struct {
	Code string `json:"code"`
}

type validatePromoResponse struct {
	Valid bool `json:"valid"`
	Promo *struct {
		DiscountType string  `json:"discountType"`
		Value        float64 `json:"value"`
	} `json:"promo,omitempty"`
}

type bookingSlotDTO struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type createBookingRequest struct {
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	ExperienceID string         `json:"experienceId"`
	Slot         bookingSlotDTO `json:"slot"`
}

type createBookingResponse struct {
	Booking *struct {
		ID string `json:"_id"`
	} `json:"booking,omitempty"`
	Message string `json:"message,omitempty"`
}

// ListExperiences handles GET /api/experiences.
func (a *HTTPBookingAPI) ListExperiences(ctx context.Context) ([]experience.Experience, error) {
	var dtos []experienceDTO
	if err := a.do(ctx, http.MethodGet, "/api/experiences", nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]experience.Experience, len(dtos))
	for i := range dtos {
		out[i] = toExperience(&dtos[i])
	}
	return out, nil
}

// GetExperience handles GET /api/experiences/{id}.
func (a *HTTPBookingAPI) GetExperience(ctx context.Context, id string) (*experience.Experience, error) {
	var dto experienceDTO
	err := a.do(ctx, http.MethodGet, "/api/experiences/"+url.PathEscape(id), nil, &dto)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewNotFoundError("Experience", id)
		}
		return nil, err
	}
	if dto.ID == "" {
		return nil, domain.NewNotFoundError("Experience", id)
	}

	exp := toExperience(&dto)
	return &exp, nil
}

// ValidatePromo handles POST /api/promo/validate.
func (a *HTTPBookingAPI) ValidatePromo(ctx context.Context, code string) (*promo.Promo, error) {
	var resp validatePromoResponse
	err := a.do(ctx, http.MethodPost, "/api/promo/validate", validatePromoRequest{Code: code}, &resp)
	if err != nil {
		// Some deployments answer unknown codes with 404 or 400 and {valid:false}.
		// Any other status is a failure to validate, not an invalid code.
		if isUnknownCode(err) && resp.Promo == nil {
			return nil, nil
		}
		return nil, err
	}
	if !resp.Valid || resp.Promo == nil {
		return nil, nil
	}

	p, err := promo.NewPromo(code, promo.DiscountType(resp.Promo.DiscountType), resp.Promo.Value)
	if err != nil {
		a.logger.Warn("booking API returned an unusable promo, treating as invalid",
			zap.String("code", code),
			zap.String("discount_type", resp.Promo.DiscountType),
			zap.Float64("value", resp.Promo.Value),
			zap.Error(err),
		)
		return nil, nil
	}
	return p, nil
}

// CreateBooking handles POST /api/bookings.
func (a *HTTPBookingAPI) CreateBooking(ctx context.Context, req CreateBookingRequest) (string, error) {
	body := createBookingRequest{
		Name:         req.Name,
		Email:        req.Email,
		ExperienceID: req.ExperienceID,
		Slot: bookingSlotDTO{
			Date: req.Date.String(),
			Time: req.Time,
		},
	}

	var resp createBookingResponse
	if err := a.do(ctx, http.MethodPost, "/api/bookings", body, &resp); err != nil {
		var se *statusError
		if asStatusError(err, &se) && se.status < http.StatusInternalServerError {
			return "", domain.NewUnavailableError("booking service refused the request", se)
		}
		return "", err
	}
	if resp.Booking == nil || resp.Booking.ID == "" {
		msg := "booking was not created"
		if resp.Message != "" {
			msg = resp.Message
		}
		return "", domain.NewRejectedError(msg)
	}

	a.logger.Info("booking created",
		zap.String("booking_id", resp.Booking.ID),
		zap.String("experience_id", req.ExperienceID),
		zap.String("date", req.Date.String()),
		zap.String("time", req.Time),
	)
	return resp.Booking.ID, nil
}

// do sends a JSON request and decodes a JSON response into target. Non-2xx
// statuses come back as *statusError after best-effort decoding of the body.
func (a *HTTPBookingAPI) do(ctx context.Context, method, path string, body, target any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Error("booking API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return domain.NewUnavailableError("booking service is unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.NewUnavailableError("failed to read booking service response", err)
	}

	a.logger.Debug("booking API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if target != nil && len(raw) > 0 {
			_ = json.Unmarshal(raw, target)
		}
		return &statusError{status: resp.StatusCode, message: errorMessage(raw, resp.Status)}
	}

	if target == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return domain.NewUnavailableError("booking service sent an unreadable response", err)
	}
	return nil
}

// statusError is an upstream non-2xx answer. It never leaves this package
// without being translated, except for 5xx which map to ErrUnavailable.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("booking service answered %d: %s", e.status, e.message)
}

// Unwrap classifies server errors as unavailable so callers can errors.Is them.
func (e *statusError) Unwrap() error {
	if e.status >= http.StatusInternalServerError {
		return domain.ErrUnavailable
	}
	return nil
}

func asStatusError(err error, target **statusError) bool {
	se, ok := err.(*statusError)
	if ok {
		*target = se
	}
	return ok
}

func isNotFound(err error) bool {
	var se *statusError
	return asStatusError(err, &se) && se.status == http.StatusNotFound
}

func isUnknownCode(err error) bool {
	var se *statusError
	return asStatusError(err, &se) && (se.status == http.StatusBadRequest || se.status == http.StatusNotFound)
}

// errorMessage pulls "message" or "error" out of a JSON error body.
func errorMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallback
}

func toExperience(dto *experienceDTO) experience.Experience {
	slots := make([]experience.Slot, len(dto.Slots))
	for i, s := range dto.Slots {
		slots[i] = experience.Slot{
			Date:     s.Date,
			Time:     s.Time,
			Capacity: s.Capacity,
			Booked:   s.Booked,
		}
	}
	return experience.Experience{
		ID:          dto.ID,
		Name:        dto.Name,
		Location:    dto.Location,
		Description: dto.Description,
		Price:       int64(math.Round(dto.Price)),
		Image:       dto.Image,
		Slots:       slots,
	}
}
