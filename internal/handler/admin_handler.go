package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/highwaydelite/service-booking-web/internal/application"
	"github.com/highwaydelite/service-booking-web/pkg/middleware"
	"github.com/highwaydelite/service-booking-web/pkg/response"
)

// AdminCheckoutHandler handles admin HTTP requests for checkout sessions.
type AdminCheckoutHandler struct {
	checkoutService *application.CheckoutService
}

// NewAdminCheckoutHandler creates a new AdminCheckoutHandler.
func NewAdminCheckoutHandler(checkoutService *application.CheckoutService) *AdminCheckoutHandler {
	return &AdminCheckoutHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers admin routes behind the bearer token.
func (h *AdminCheckoutHandler) RegisterRoutes(r *gin.RouterGroup, token string) {
	admin := r.Group("/admin")
	admin.Use(middleware.AdminTokenMiddleware(token))
	{
		admin.GET("/checkouts", h.ListCheckouts)
		admin.GET("/checkouts/:session", h.GetCheckout)
		admin.GET("/stats/checkouts", h.CheckoutStats)
	}
}

// ListCheckouts handles GET /api/v1/admin/checkouts
func (h *AdminCheckoutHandler) ListCheckouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	sessions, total, err := h.checkoutService.ListSessions(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, sessions, total, page, limit)
}

// GetCheckout handles GET /api/v1/admin/checkouts/:session
func (h *AdminCheckoutHandler) GetCheckout(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		response.BadRequest(c, "invalid session ID")
		return
	}

	dto, err := h.checkoutService.Get(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// CheckoutStats handles GET /api/v1/admin/stats/checkouts
func (h *AdminCheckoutHandler) CheckoutStats(c *gin.Context) {
	stats, err := h.checkoutService.SessionStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
