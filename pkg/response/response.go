package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success writes a 200 with data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 with data.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// BadRequest writes a 400 with a message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: message})
}

// Error maps a domain error to its HTTP status.
func Error(c *gin.Context, err error) {
	c.JSON(StatusOf(err), Envelope{Success: false, Error: domain.MessageOf(err)})
}

// StatusOf returns the HTTP status for an error.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrRejected):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// PageMeta describes one page of a listing.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// PaginatedEnvelope is an Envelope with page metadata.
type PaginatedEnvelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Meta    PageMeta `json:"meta"`
}

// Paginated writes a 200 with one page of data.
func Paginated(c *gin.Context, data any, total int64, page, limit int) {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	c.JSON(http.StatusOK, PaginatedEnvelope{
		Success: true,
		Data:    data,
		Meta:    PageMeta{Page: page, Limit: limit, Total: total, TotalPages: pages},
	})
}
