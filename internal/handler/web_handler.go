package handler

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/highwaydelite/service-booking-web/internal/application"
	"github.com/highwaydelite/service-booking-web/internal/domain/booking"
	"github.com/highwaydelite/service-booking-web/internal/domain/experience"
	"github.com/highwaydelite/service-booking-web/internal/domain/promo"
	"github.com/highwaydelite/service-booking-web/pkg/domain"
	"github.com/highwaydelite/service-booking-web/pkg/response"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Notification texts shown in the page banner.
const (
	noticeLoadExperiences = "Could not load experiences. Please try again."
	noticeLoadDetails     = "Could not load experience details. Please try again."
	noticeNotFound        = "Experience not found."
	noticeSelectSlot      = "Please select a date and time."
	noticeQuantity        = "Please choose a smaller quantity."
	noticeInvalidPromo    = "Invalid promo code"
	noticePromoError      = "Error validating promo code"
	noticeIncompleteForm  = "Please fill all required fields and agree to terms."
	noticeBookingFailed   = "Booking failed, please try again."
	noticeBookingError    = "Error during booking process"
	noticeInProgress      = "This booking is already being processed."
)

// page is the data every template receives.
type page struct {
	Title        string
	Query        string
	Notice       string
	NoticeOK     bool
	Loaded       bool
	Experiences  []application.ExperienceDTO
	View         *application.DetailsView
	Session      *application.CheckoutSessionDTO
	Form         booking.CheckoutForm
	Outcome      promo.Outcome
	Confirmation *booking.Confirmation
}

// Templates parses the embedded page templates. Amounts are printed with currency.
func Templates(currency string) (*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(amount int64) string {
			return fmt.Sprintf("%s%d", currency, amount)
		},
		"detailsURL": detailsURL,
	}
	return template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// detailsURL links to the details page with the given selection.
func detailsURL(id string, date experience.Date, time string, qty int) string {
	q := url.Values{}
	if !date.IsZero() {
		q.Set("date", date.String())
	}
	if time != "" {
		q.Set("time", time)
	}
	if qty > 1 {
		q.Set("qty", strconv.Itoa(qty))
	}
	u := "/experience/" + url.PathEscape(id)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// WebHandler serves the server-rendered booking pages.
type WebHandler struct {
	experiences *application.ExperienceService
	checkout    *application.CheckoutService
	currency    string
	logger      *zap.Logger
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(
	experiences *application.ExperienceService,
	checkout *application.CheckoutService,
	currency string,
	logger *zap.Logger,
) *WebHandler {
	return &WebHandler{
		experiences: experiences,
		checkout:    checkout,
		currency:    currency,
		logger:      logger,
	}
}

// RegisterRoutes registers all page routes.
func (h *WebHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/experience/:id", h.Details)
	r.POST("/experience/:id/checkout", h.StartCheckout)
	r.GET("/checkout/:session", h.Checkout)
	r.POST("/checkout/:session/promo", h.ApplyPromo)
	r.POST("/checkout/:session/confirm", h.Confirm)
	r.GET("/confirmation/:session", h.Confirmation)
}

// Home handles GET /
func (h *WebHandler) Home(c *gin.Context) {
	query := c.Query("q")
	exps, err := h.experiences.List(c.Request.Context(), query)
	if err != nil {
		c.HTML(response.StatusOf(err), "home", page{Query: query, Notice: noticeLoadExperiences})
		return
	}
	c.HTML(http.StatusOK, "home", page{Query: query, Loaded: true, Experiences: exps})
}

// Details handles GET /experience/:id
func (h *WebHandler) Details(c *gin.Context) {
	h.renderDetails(c, http.StatusOK, "")
}

// StartCheckout handles POST /experience/:id/checkout
func (h *WebHandler) StartCheckout(c *gin.Context) {
	id := c.Param("id")
	sessionID, err := h.checkout.Start(c.Request.Context(), id, bindSelection(c))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			h.renderDetails(c, http.StatusUnprocessableEntity, noticeSelectSlot)
			return
		}
		h.renderDetailsError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/checkout/"+sessionID.String())
}

// Checkout handles GET /checkout/:session
func (h *WebHandler) Checkout(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "checkout", page{
		Title:   "Checkout",
		Session: session,
		Outcome: promo.None(session.Total),
	})
}

// ApplyPromo handles POST /checkout/:session/promo
func (h *WebHandler) ApplyPromo(c *gin.Context) {
	session, ok := h.loadSession(c)
	if !ok {
		return
	}
	form := bindForm(c)

	data := page{Title: "Checkout", Session: session, Form: form}
	outcome, err := h.checkout.ApplyPromo(c.Request.Context(), session.ID, form.Promo)
	data.Outcome = outcome
	switch {
	case err != nil:
		data.Outcome = promo.None(session.Total)
		data.Notice = noticePromoError
	case outcome.Applied:
		data.Notice = "Promo applied: " + outcome.Promo.Label(h.currency)
		data.NoticeOK = true
	case outcome.Code != "":
		data.Notice = noticeInvalidPromo
	}
	c.HTML(http.StatusOK, "checkout", data)
}

// Confirm handles POST /checkout/:session/confirm
func (h *WebHandler) Confirm(c *gin.Context) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "checkout", page{Title: "Checkout"})
		return
	}
	form := bindForm(c)

	_, err := h.checkout.Confirm(c.Request.Context(), sessionID, form)
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/confirmation/"+sessionID.String())
		return
	}

	session, loadErr := h.checkout.Get(c.Request.Context(), sessionID)
	if loadErr != nil {
		c.HTML(response.StatusOf(loadErr), "checkout", page{Title: "Checkout"})
		return
	}
	if session.Status == string(booking.SessionConfirmed) {
		c.Redirect(http.StatusSeeOther, "/confirmation/"+sessionID.String())
		return
	}

	h.logger.Warn("booking confirmation failed",
		zap.String("session_id", sessionID.String()),
		zap.Error(err),
	)

	data := page{Title: "Checkout", Session: session, Form: form, Notice: confirmNotice(err)}
	data.Outcome = promo.None(session.Total)
	// An incomplete form never reaches the booking API, promo validation included.
	if form.Promo != "" && !errors.Is(err, domain.ErrValidation) {
		if outcome, perr := h.checkout.ApplyPromo(c.Request.Context(), sessionID, form.Promo); perr == nil {
			data.Outcome = outcome
		}
	}
	c.HTML(response.StatusOf(err), "checkout", data)
}

// Confirmation handles GET /confirmation/:session
func (h *WebHandler) Confirmation(c *gin.Context) {
	data := page{Title: "Booking Confirmed"}
	sessionID, ok := parseSessionID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "confirmation", data)
		return
	}
	conf, err := h.checkout.Confirmation(c.Request.Context(), sessionID)
	if err != nil {
		c.HTML(response.StatusOf(err), "confirmation", data)
		return
	}
	data.Confirmation = conf
	c.HTML(http.StatusOK, "confirmation", data)
}

func (h *WebHandler) renderDetails(c *gin.Context, status int, notice string) {
	view, err := h.experiences.Details(c.Request.Context(), c.Param("id"), bindSelection(c))
	if err != nil {
		h.renderDetailsError(c, err)
		return
	}
	c.HTML(status, "details", page{Title: view.Experience.Name, View: view, Notice: notice})
}

func (h *WebHandler) renderDetailsError(c *gin.Context, err error) {
	notice := noticeLoadDetails
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notice = noticeNotFound
	case errors.Is(err, domain.ErrValidation):
		notice = noticeQuantity
	}
	c.HTML(response.StatusOf(err), "details", page{Notice: notice})
}

// loadSession renders the empty checkout state and reports false when the
// session cannot be loaded.
func (h *WebHandler) loadSession(c *gin.Context) (*application.CheckoutSessionDTO, bool) {
	sessionID, ok := parseSessionID(c)
	if !ok {
		c.HTML(http.StatusNotFound, "checkout", page{Title: "Checkout"})
		return nil, false
	}
	session, err := h.checkout.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.HTML(response.StatusOf(err), "checkout", page{Title: "Checkout"})
		return nil, false
	}
	return session, true
}

func confirmNotice(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return noticeIncompleteForm
	case errors.Is(err, domain.ErrRejected):
		return noticeBookingFailed
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidState):
		return noticeInProgress
	default:
		return noticeBookingError
	}
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session"))
	return id, err == nil
}

func bindSelection(c *gin.Context) application.SelectionParams {
	var p application.SelectionParams
	if err := c.ShouldBind(&p); err != nil {
		p.Quantity = 1
	}
	return p
}

func bindForm(c *gin.Context) booking.CheckoutForm {
	var f booking.CheckoutForm
	_ = c.ShouldBind(&f)
	return f
}
