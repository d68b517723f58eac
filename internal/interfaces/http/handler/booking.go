package handler

import (
	schedulingapp "github.com/OpianKyle/opianrer-sub001/internal/application/scheduling"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler drives the linear appointment booking wizard. Sessions
// are owned by the user who started them.
type BookingHandler struct {
	BaseHandler
	bookingService *schedulingapp.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *schedulingapp.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// RegisterRoutes registers booking wizard routes
func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	booking := rg.Group("/booking")
	{
		booking.POST("/sessions", h.Start)
		booking.GET("/sessions/:id", h.Get)
		booking.POST("/sessions/:id/person", h.SelectPerson)
		booking.POST("/sessions/:id/date", h.SelectDate)
		booking.POST("/sessions/:id/time", h.SelectTime)
		booking.POST("/sessions/:id/details", h.EnterDetails)
		booking.POST("/sessions/:id/confirm", h.Confirm)
		booking.POST("/sessions/:id/back", h.Back)
		booking.POST("/sessions/:id/reset", h.Reset)
	}
}

// Start opens a new wizard session
func (h *BookingHandler) Start(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Created(c, h.bookingService.Start(userID))
}

// Get returns the current wizard state
func (h *BookingHandler) Get(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	state, err := h.bookingService.Get(userID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// SelectPerson records who the appointment is with
func (h *BookingHandler) SelectPerson(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	var req schedulingapp.WizardSelectPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.bookingService.SelectPerson(userID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// SelectDate records the appointment date
func (h *BookingHandler) SelectDate(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	var req schedulingapp.WizardSelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.bookingService.SelectDate(userID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// SelectTime records the start slot, rejecting already booked slots
func (h *BookingHandler) SelectTime(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	var req schedulingapp.WizardSelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.bookingService.SelectTime(c.Request.Context(), userID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// EnterDetails records the appointment title, type and optional client
func (h *BookingHandler) EnterDetails(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	var req schedulingapp.WizardDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.bookingService.EnterDetails(userID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// Confirm re-checks the full interval and books the appointment
func (h *BookingHandler) Confirm(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	appointment, err := h.bookingService.Confirm(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, appointment)
}

// Back navigates to an earlier wizard step, clearing later answers
func (h *BookingHandler) Back(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	var req schedulingapp.WizardBackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.bookingService.Back(userID, sessionID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

// Reset returns the wizard to its first step
func (h *BookingHandler) Reset(c *gin.Context) {
	userID, sessionID, ok := h.sessionIDs(c)
	if !ok {
		return
	}

	state, err := h.bookingService.Reset(userID, sessionID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, state)
}

func (h *BookingHandler) sessionIDs(c *gin.Context) (userID, sessionID uuid.UUID, ok bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err = uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, sessionID, true
}
