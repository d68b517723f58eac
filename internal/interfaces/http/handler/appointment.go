package handler

import (
	schedulingapp "github.com/OpianKyle/opianrer-sub001/internal/application/scheduling"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AppointmentHandler handles appointment and availability endpoints
type AppointmentHandler struct {
	BaseHandler
	appointmentService  *schedulingapp.AppointmentService
	availabilityService *schedulingapp.AvailabilityService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(
	appointmentService *schedulingapp.AppointmentService,
	availabilityService *schedulingapp.AvailabilityService,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService:  appointmentService,
		availabilityService: availabilityService,
	}
}

// RegisterRoutes registers appointment routes
func (h *AppointmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/mine", h.ListMine)
		appointments.GET("/:id", h.GetByID)
		appointments.PUT("/:id/reschedule", h.Reschedule)
		appointments.POST("/:id/complete", h.Complete)
		appointments.POST("/:id/cancel", h.Cancel)
	}

	rg.GET("/availability/:personId", h.Availability)
	rg.GET("/clients/:id/appointments", h.ListForClient)
}

// Create books an appointment directly, outside the wizard
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req schedulingapp.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, appointment)
}

// GetByID returns one appointment
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	appointment, err := h.appointmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointment)
}

// List returns a paginated appointment list
func (h *AppointmentHandler) List(c *gin.Context) {
	var filter schedulingapp.AppointmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	appointments, total, err := h.appointmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, appointments, total, filter.Page, filter.PageSize)
}

// ListMine returns appointments attributed to the authenticated user
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	appointments, err := h.appointmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointments)
}

// ListForClient returns a client's appointment history
func (h *AppointmentHandler) ListForClient(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	appointments, err := h.appointmentService.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointments)
}

// Reschedule moves an appointment to a new date and time
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	var req schedulingapp.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Complete marks an appointment as completed
func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	if err := h.appointmentService.Complete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Cancel cancels an appointment and frees its slots
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid appointment ID format")
		return
	}

	if err := h.appointmentService.Cancel(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Availability returns the half-hour slot grid for a person on a date
func (h *AppointmentHandler) Availability(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("personId"))
	if err != nil {
		h.BadRequest(c, "Invalid person ID format")
		return
	}

	date := c.Query("date")
	if date == "" {
		h.BadRequest(c, "The 'date' query parameter is required")
		return
	}

	availability, err := h.availabilityService.AvailableSlots(c.Request.Context(), personID, date)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, availability)
}
