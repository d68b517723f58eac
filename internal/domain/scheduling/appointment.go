package scheduling

import (
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentType classifies an appointment and fixes its duration
type AppointmentType string

const (
	AppointmentTypeMeeting      AppointmentType = "meeting"
	AppointmentTypeCall         AppointmentType = "call"
	AppointmentTypeReview       AppointmentType = "review"
	AppointmentTypeConsultation AppointmentType = "consultation"
)

// appointmentDurations maps each type to its fixed duration in minutes
var appointmentDurations = map[AppointmentType]int{
	AppointmentTypeMeeting:      60,
	AppointmentTypeCall:         30,
	AppointmentTypeReview:       45,
	AppointmentTypeConsultation: 90,
}

// Duration returns the fixed duration of the type in minutes
func (t AppointmentType) Duration() (int, error) {
	d, ok := appointmentDurations[t]
	if !ok {
		return 0, shared.NewDomainError("INVALID_TYPE", "Unknown appointment type")
	}
	return d, nil
}

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is the aggregate root for calendar entries
type Appointment struct {
	shared.BaseAggregateRoot
	Title       string            `gorm:"type:varchar(200);not null"`
	Description string            `gorm:"type:text"`
	Date        string            `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	StartTime   string            `gorm:"type:varchar(5);not null"`        // HH:MM
	EndTime     string            `gorm:"type:varchar(5);not null"`        // HH:MM
	Type        AppointmentType   `gorm:"type:varchar(20);not null"`
	Location    string            `gorm:"type:varchar(200)"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	ClientID    *uuid.UUID        `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID         `gorm:"type:uuid;not null;index"`
	AssigneeID  *uuid.UUID        `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Appointment) TableName() string {
	return "appointments"
}

// NewAppointment creates an appointment starting at startTime; the end time
// derives from the type's fixed duration with minute overflow carried into
// the hour component.
func NewAppointment(createdBy uuid.UUID, title, date, startTime string, appointmentType AppointmentType) (*Appointment, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Appointment title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Appointment title cannot exceed 200 characters")
	}
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}
	duration, err := appointmentType.Duration()
	if err != nil {
		return nil, err
	}

	return &Appointment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Date:              date,
		StartTime:         start.String(),
		EndTime:           start.Add(duration).String(),
		Type:              appointmentType,
		Status:            AppointmentStatusScheduled,
		CreatedBy:         createdBy,
	}, nil
}

// AttributedTo returns the user the appointment occupies on the calendar:
// the assignee when one is set, otherwise the creator. This is the single
// rule used everywhere conflicts are checked.
func (a *Appointment) AttributedTo() uuid.UUID {
	if a.AssigneeID != nil {
		return *a.AssigneeID
	}
	return a.CreatedBy
}

// Interval returns the [start, end) interval in minutes since midnight.
// Stored times are validated on write, so parse failures map to a zero
// interval that blocks nothing.
func (a *Appointment) Interval() (TimeOfDay, TimeOfDay) {
	start, err := ParseTimeOfDay(a.StartTime)
	if err != nil {
		return 0, 0
	}
	end, err := ParseTimeOfDay(a.EndTime)
	if err != nil {
		return 0, 0
	}
	return start, end
}

// BlocksSlot reports whether the given slot is unavailable because it falls
// inside this appointment's [start, end) interval on the given date for the
// given person. Cancelled appointments block nothing.
func (a *Appointment) BlocksSlot(date string, personID uuid.UUID, slot TimeOfDay) bool {
	if a.Status == AppointmentStatusCancelled {
		return false
	}
	if a.Date != date || a.AttributedTo() != personID {
		return false
	}
	start, end := a.Interval()
	return slot.Within(start, end)
}

// Overlaps reports whether another interval on the same date for the same
// person overlaps this appointment. Zero-length intervals never overlap.
func (a *Appointment) Overlaps(date string, personID uuid.UUID, start, end TimeOfDay) bool {
	if a.Status == AppointmentStatusCancelled {
		return false
	}
	if a.Date != date || a.AttributedTo() != personID {
		return false
	}
	s, e := a.Interval()
	return start < e && s < end
}

// Assign assigns the appointment to a user
func (a *Appointment) Assign(userID uuid.UUID) {
	a.AssigneeID = &userID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// AttachClient links the appointment to a client record
func (a *Appointment) AttachClient(clientID uuid.UUID) {
	a.ClientID = &clientID
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// SetDetails sets optional description and location
func (a *Appointment) SetDetails(description, location string) error {
	if len(location) > 200 {
		return shared.NewDomainError("INVALID_LOCATION", "Location cannot exceed 200 characters")
	}
	a.Description = description
	a.Location = location
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Reschedule moves the appointment to a new date and start time, keeping
// the type's duration.
func (a *Appointment) Reschedule(date, startTime string) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	start, err := ParseTimeOfDay(startTime)
	if err != nil {
		return err
	}
	duration, err := a.Type.Duration()
	if err != nil {
		return err
	}
	a.Date = date
	a.StartTime = start.String()
	a.EndTime = start.Add(duration).String()
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Complete marks the appointment as completed
func (a *Appointment) Complete() error {
	if a.Status != AppointmentStatusScheduled {
		return shared.ErrInvalidState
	}
	a.Status = AppointmentStatusCompleted
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Cancel marks the appointment as cancelled, freeing its slots
func (a *Appointment) Cancel() error {
	if a.Status == AppointmentStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Appointment is already cancelled")
	}
	a.Status = AppointmentStatusCancelled
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}
