package scheduling

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/google/uuid"
)

// CreateAppointmentRequest represents a request to create an appointment
type CreateAppointmentRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description"`
	Date        string     `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime   string     `json:"start_time" binding:"required"` // HH:MM
	Type        string     `json:"type" binding:"required,oneof=meeting call review consultation"`
	Location    string     `json:"location" binding:"max=200"`
	ClientID    *uuid.UUID `json:"client_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id"`
}

// RescheduleRequest represents a request to move an appointment
type RescheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         string     `json:"date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Type         string     `json:"type"`
	Location     string     `json:"location"`
	Status       string     `json:"status"`
	ClientID     *uuid.UUID `json:"client_id"`
	CreatedBy    uuid.UUID  `json:"created_by"`
	AssigneeID   *uuid.UUID `json:"assignee_id"`
	AttributedTo uuid.UUID  `json:"attributed_to"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AppointmentListFilter represents filter options for the appointment list
type AppointmentListFilter struct {
	Date     string `form:"date"`
	Status   string `form:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// SlotResponse is one entry of the availability grid
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// AvailabilityResponse is the slot grid for one person on one date
type AvailabilityResponse struct {
	PersonID uuid.UUID      `json:"person_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

// WizardStateResponse mirrors the booking wizard for the client
type WizardStateResponse struct {
	SessionID uuid.UUID  `json:"session_id"`
	Step      string     `json:"step"`
	PersonID  *uuid.UUID `json:"person_id,omitempty"`
	Date      string     `json:"date,omitempty"`
	Time      string     `json:"time,omitempty"`
	Title     string     `json:"title,omitempty"`
	Type      string     `json:"type,omitempty"`
	ClientID  *uuid.UUID `json:"client_id,omitempty"`
}

// WizardSelectPersonRequest advances the wizard past person selection
type WizardSelectPersonRequest struct {
	PersonID uuid.UUID `json:"person_id" binding:"required"`
}

// WizardSelectDateRequest advances the wizard past date selection
type WizardSelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

// WizardSelectTimeRequest advances the wizard past time selection
type WizardSelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

// WizardDetailsRequest records title/type/client on the wizard
type WizardDetailsRequest struct {
	Title    string     `json:"title" binding:"required,min=1,max=200"`
	Type     string     `json:"type" binding:"required,oneof=meeting call review consultation"`
	ClientID *uuid.UUID `json:"client_id"`
}

// WizardBackRequest navigates the wizard to an earlier step
type WizardBackRequest struct {
	Step string `json:"step" binding:"required"`
}

// ToAppointmentResponse converts a domain appointment to a response DTO
func ToAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		Date:         a.Date,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Type:         string(a.Type),
		Location:     a.Location,
		Status:       string(a.Status),
		ClientID:     a.ClientID,
		CreatedBy:    a.CreatedBy,
		AssigneeID:   a.AssigneeID,
		AttributedTo: a.AttributedTo(),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ToWizardStateResponse converts wizard state to a response DTO
func ToWizardStateResponse(sessionID uuid.UUID, w *scheduling.BookingWizard) WizardStateResponse {
	resp := WizardStateResponse{
		SessionID: sessionID,
		Step:      string(w.Step),
		Date:      w.Date,
		Time:      w.Time,
		Title:     w.Title,
		Type:      string(w.Type),
		ClientID:  w.ClientID,
	}
	if w.PersonID != uuid.Nil {
		personID := w.PersonID
		resp.PersonID = &personID
	}
	return resp
}
