package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/adapter"
	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
)

// SelectionParams is the details page state carried in the query string.
type SelectionParams struct {
	Date     string `form:"date"`
	Time     string `form:"time"`
	Quantity int    `form:"qty"`
}

// ExperienceDTO is the API response DTO for an experience card.
type ExperienceDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Image       string `json:"image"`
}

// DateOption is one date button.
type DateOption struct {
	Date     experience.Date `json:"date"`
	Label    string          `json:"label"`
	Selected bool            `json:"selected"`
}

// TimeOption is one time button for the selected date.
type TimeOption struct {
	Label      string `json:"label"`
	Remaining  int    `json:"remaining"`
	Selectable bool   `json:"selectable"`
	Selected   bool   `json:"selected"`
}

// DetailsView is everything the details page and the availability/quote API
// derive from one experience and a selection.
type DetailsView struct {
	Experience  ExperienceDTO   `json:"experience"`
	Dates       []DateOption    `json:"dates"`
	Times       []TimeOption    `json:"times"`
	Date        experience.Date `json:"date"`
	Time        string          `json:"time,omitempty"`
	Quantity    int             `json:"quantity"`
	DecQuantity int             `json:"-"`
	IncQuantity int             `json:"-"`
	Quote       booking.Quote   `json:"quote"`
	CanProceed  bool            `json:"can_proceed"`
}

// ExperienceService serves the browse and details use cases.
type ExperienceService struct {
	api    adapter.BookingAPI
	logger *zap.Logger
}

// NewExperienceService creates a new ExperienceService.
func NewExperienceService(api adapter.BookingAPI, logger *zap.Logger) *ExperienceService {
	return &ExperienceService{api: api, logger: logger}
}

// List returns the experiences whose name matches query.
func (s *ExperienceService) List(ctx context.Context, query string) ([]ExperienceDTO, error) {
	exps, err := s.api.ListExperiences(ctx)
	if err != nil {
		s.logger.Error("failed to list experiences", zap.Error(err))
		return nil, err
	}

	filtered := experience.FilterByName(exps, query)
	dtos := make([]ExperienceDTO, len(filtered))
	for i := range filtered {
		dtos[i] = toExperienceDTO(&filtered[i])
	}
	return dtos, nil
}

// Details fetches one experience and derives the view for params. Invalid or
// stale parameters are dropped rather than reported.
func (s *ExperienceService) Details(ctx context.Context, id string, params SelectionParams) (*DetailsView, error) {
	exp, err := s.api.GetExperience(ctx, id)
	if err != nil {
		s.logger.Warn("failed to fetch experience", zap.String("experience_id", id), zap.Error(err))
		return nil, err
	}

	sel := buildSelection(exp, params)
	quote, err := sel.Quote(exp.Price)
	if err != nil {
		return nil, err
	}
	view := &DetailsView{
		Experience:  toExperienceDTO(exp),
		Date:        sel.Date(),
		Time:        sel.Time(),
		Quantity:    sel.Quantity(),
		DecQuantity: sel.DecrementedQuantity(),
		IncQuantity: sel.IncrementedQuantity(),
		Quote:       quote,
		CanProceed:  sel.CanProceed(),
	}
	for _, d := range sel.AvailableDates() {
		view.Dates = append(view.Dates, DateOption{Date: d, Label: d.Short(), Selected: d == sel.Date()})
	}
	for _, slot := range sel.AvailableTimes() {
		view.Times = append(view.Times, TimeOption{
			Label:      slot.Time,
			Remaining:  slot.Remaining(),
			Selectable: slot.Selectable(),
			Selected:   slot.Time == sel.Time(),
		})
	}
	return view, nil
}

// buildSelection replays the query parameters through the selection rules,
// so a time that is not offered on the date is dropped.
func buildSelection(exp *experience.Experience, params SelectionParams) *booking.Selection {
	sel := booking.NewSelection(exp.Slots)
	sel.SetQuantity(params.Quantity)
	if params.Date == "" {
		return sel
	}
	date, err := experience.ParseDate(params.Date)
	if err != nil {
		return sel
	}
	if sel.SelectDate(date) && params.Time != "" {
		sel.SelectTime(params.Time)
	}
	return sel
}

func toExperienceDTO(e *experience.Experience) ExperienceDTO {
	return ExperienceDTO{
		ID:          e.ID,
		Name:        e.Name,
		Location:    e.Location,
		Description: e.Description,
		Price:       e.Price,
		Image:       e.Image,
	}
}
