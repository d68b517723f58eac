package scheduling

import (
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// WizardStep identifies a step of the booking workflow
type WizardStep string

const (
	StepSelectPerson WizardStep = "select_person"
	StepSelectDate   WizardStep = "select_date"
	StepSelectTime   WizardStep = "select_time"
	StepEnterDetails WizardStep = "enter_details"
	StepConfirmed    WizardStep = "confirmed"
)

// stepOrder fixes the linear progression of the wizard
var stepOrder = []WizardStep{
	StepSelectPerson,
	StepSelectDate,
	StepSelectTime,
	StepEnterDetails,
	StepConfirmed,
}

func stepIndex(s WizardStep) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// BookingWizard is the multi-step booking workflow state machine.
// Progression is strictly linear; only backward navigation to prior
// steps is allowed, and Confirmed is terminal apart from Reset.
type BookingWizard struct {
	Step     WizardStep
	PersonID uuid.UUID
	Date     string
	Time     string
	Title    string
	Type     AppointmentType
	ClientID *uuid.UUID
}

// NewBookingWizard starts a wizard at the person-selection step
func NewBookingWizard() *BookingWizard {
	return &BookingWizard{Step: StepSelectPerson}
}

// SelectPerson resolves the target person and advances to date selection
func (w *BookingWizard) SelectPerson(personID uuid.UUID) error {
	if w.Step != StepSelectPerson {
		return shared.ErrInvalidState
	}
	if personID == uuid.Nil {
		return shared.NewDomainError("PERSON_REQUIRED", "A target person must be selected")
	}
	w.PersonID = personID
	w.Step = StepSelectDate
	return nil
}

// SelectDate records the candidate date and advances to time selection
func (w *BookingWizard) SelectDate(date string) error {
	if w.Step != StepSelectDate {
		return shared.ErrInvalidState
	}
	if _, err := ParseDate(date); err != nil {
		return err
	}
	w.Date = date
	w.Step = StepSelectTime
	return nil
}

// SelectTime records a slot already vetted for availability by the caller
// and advances to detail entry. The availability guard lives in the
// application service, which sees the appointment book.
func (w *BookingWizard) SelectTime(slot TimeOfDay) error {
	if w.Step != StepSelectTime {
		return shared.ErrInvalidState
	}
	w.Time = slot.String()
	w.Step = StepEnterDetails
	return nil
}

// EnterDetails records title and type; both are required to advance
func (w *BookingWizard) EnterDetails(title string, appointmentType AppointmentType) error {
	if w.Step != StepEnterDetails {
		return shared.ErrInvalidState
	}
	if title == "" {
		return shared.NewDomainError("TITLE_REQUIRED", "Appointment title is required")
	}
	if _, err := appointmentType.Duration(); err != nil {
		return err
	}
	w.Title = title
	w.Type = appointmentType
	return nil
}

// Confirm builds the appointment from the collected state and moves the
// wizard to its terminal step. The caller persists the result; on a failed
// save it simply does not call Confirm again with a stale wizard — the
// wizard stays on EnterDetails until the save succeeds.
func (w *BookingWizard) Confirm() (*Appointment, error) {
	if w.Step != StepEnterDetails {
		return nil, shared.ErrInvalidState
	}
	if w.Title == "" || w.Type == "" {
		return nil, shared.NewDomainError("DETAILS_REQUIRED", "Title and appointment type are required")
	}

	appointment, err := NewAppointment(w.PersonID, w.Title, w.Date, w.Time, w.Type)
	if err != nil {
		return nil, err
	}
	appointment.Assign(w.PersonID)
	if w.ClientID != nil {
		appointment.AttachClient(*w.ClientID)
	}
	w.Step = StepConfirmed
	return appointment, nil
}

// Back navigates to an earlier step, clearing state collected after it.
// Skipping ahead or leaving the terminal step via Back is rejected.
func (w *BookingWizard) Back(to WizardStep) error {
	if w.Step == StepConfirmed {
		return shared.ErrInvalidState
	}
	target := stepIndex(to)
	if target < 0 || target >= stepIndex(w.Step) {
		return shared.ErrInvalidState
	}

	if target <= stepIndex(StepEnterDetails) {
		w.Title = ""
		w.Type = ""
	}
	if target <= stepIndex(StepSelectTime) {
		w.Time = ""
	}
	if target <= stepIndex(StepSelectDate) {
		w.Date = ""
	}
	if target == stepIndex(StepSelectPerson) {
		w.PersonID = uuid.Nil
	}
	w.Step = to
	return nil
}

// Reset returns a confirmed wizard to its initial state
func (w *BookingWizard) Reset() {
	*w = BookingWizard{Step: StepSelectPerson}
}
