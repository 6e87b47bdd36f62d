package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/highwaydelite/service-booking-web/internal/application"
	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/pkg/response"
)

// AvailabilityDTO lists the dates of an experience and the times of one date.
type AvailabilityDTO struct {
	ExperienceID string                   `json:"experience_id"`
	Dates        []application.DateOption `json:"dates"`
	Date         experience.Date          `json:"date"`
	Times        []application.TimeOption `json:"times"`
}

// QuoteDTO prices a selection and says whether checkout may proceed.
type QuoteDTO struct {
	ExperienceID string          `json:"experience_id"`
	Date         experience.Date `json:"date"`
	Time         string          `json:"time,omitempty"`
	Quantity     int             `json:"quantity"`
	Subtotal     int64           `json:"subtotal"`
	Taxes        int64           `json:"taxes"`
	Total        int64           `json:"total"`
	CanProceed   bool            `json:"can_proceed"`
}

// ExperienceHandler handles the JSON API over the experience catalogue.
type ExperienceHandler struct {
	service *application.ExperienceService
}

// NewExperienceHandler creates a new ExperienceHandler.
func NewExperienceHandler(service *application.ExperienceService) *ExperienceHandler {
	return &ExperienceHandler{service: service}
}

// RegisterRoutes registers all experience routes on the given router group.
func (h *ExperienceHandler) RegisterRoutes(r *gin.RouterGroup) {
	exps := r.Group("/experiences")
	{
		exps.GET("", h.ListExperiences)
		exps.GET("/:id/availability", h.Availability)
		exps.GET("/:id/quote", h.Quote)
	}
}

// ListExperiences handles GET /api/v1/experiences
func (h *ExperienceHandler) ListExperiences(c *gin.Context) {
	dtos, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dtos)
}

// Availability handles GET /api/v1/experiences/:id/availability
func (h *ExperienceHandler) Availability(c *gin.Context) {
	view, err := h.service.Details(c.Request.Context(), c.Param("id"), application.SelectionParams{
		Date: c.Query("date"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	dto := AvailabilityDTO{
		ExperienceID: view.Experience.ID,
		Dates:        view.Dates,
		Date:         view.Date,
		Times:        view.Times,
	}
	if dto.Dates == nil {
		dto.Dates = []application.DateOption{}
	}
	if dto.Times == nil {
		dto.Times = []application.TimeOption{}
	}
	response.Success(c, dto)
}

// Quote handles GET /api/v1/experiences/:id/quote
func (h *ExperienceHandler) Quote(c *gin.Context) {
	view, err := h.service.Details(c.Request.Context(), c.Param("id"), bindSelection(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, QuoteDTO{
		ExperienceID: view.Experience.ID,
		Date:         view.Date,
		Time:         view.Time,
		Quantity:     view.Quantity,
		Subtotal:     view.Quote.Subtotal,
		Taxes:        view.Quote.Taxes,
		Total:        view.Quote.Total,
		CanProceed:   view.CanProceed,
	})
}
