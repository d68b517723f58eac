package scheduling

import (
	"context"
	"fmt"
	"sync"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService drives the multi-step booking wizard. Wizard state is
// per-session and server-side; sessions are owned by the user that
// started them.
type BookingService struct {
	mu              sync.Mutex
	sessions        map[uuid.UUID]*wizardSession
	appointmentRepo scheduling.AppointmentRepository
	availability    *AvailabilityService
	notifier        *notification.Service
	logger          *zap.Logger
}

type wizardSession struct {
	ownerID uuid.UUID
	wizard  *scheduling.BookingWizard
}

// NewBookingService creates a new BookingService
func NewBookingService(
	appointmentRepo scheduling.AppointmentRepository,
	availability *AvailabilityService,
	notifier *notification.Service,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		sessions:        make(map[uuid.UUID]*wizardSession),
		appointmentRepo: appointmentRepo,
		availability:    availability,
		notifier:        notifier,
		logger:          logger,
	}
}

// Start opens a new wizard session for the user
func (s *BookingService) Start(ownerID uuid.UUID) WizardStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := uuid.New()
	s.sessions[sessionID] = &wizardSession{
		ownerID: ownerID,
		wizard:  scheduling.NewBookingWizard(),
	}
	return ToWizardStateResponse(sessionID, s.sessions[sessionID].wizard)
}

// Get returns the current wizard state
func (s *BookingService) Get(ownerID, sessionID uuid.UUID) (*WizardStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	resp := ToWizardStateResponse(sessionID, session.wizard)
	return &resp, nil
}

// SelectPerson advances the wizard past person selection
func (s *BookingService) SelectPerson(ownerID, sessionID uuid.UUID, req WizardSelectPersonRequest) (*WizardStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.wizard.SelectPerson(req.PersonID); err != nil {
		return nil, err
	}
	resp := ToWizardStateResponse(sessionID, session.wizard)
	return &resp, nil
}

// SelectDate advances the wizard past date selection
func (s *BookingService) SelectDate(ownerID, sessionID uuid.UUID, req WizardSelectDateRequest) (*WizardStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.wizard.SelectDate(req.Date); err != nil {
		return nil, err
	}
	resp := ToWizardStateResponse(sessionID, session.wizard)
	return &resp, nil
}

// SelectTime advances the wizard past time selection after verifying the
// slot is still free on the target person's calendar.
func (s *BookingService) SelectTime(ctx context.Context, ownerID, sessionID uuid.UUID, req WizardSelectTimeRequest) (*WizardStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	w := session.wizard

	slot, err := scheduling.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, err
	}
	if w.Step != scheduling.StepSelectTime {
		return nil, shared.ErrInvalidState
	}

	// Slot-level guard; the full interval is re-checked at Confirm once the
	// appointment type (and so the duration) is known.
	if err := s.availability.EnsureBookable(ctx, w.PersonID, w.Date, slot, slot.Add(1), nil); err != nil {
		return nil, err
	}

	if err := w.SelectTime(slot); err != nil {
		return nil, err
	}
	resp := ToWizardStateResponse(sessionID, w)
	return &resp, nil
}

// EnterDetails records title, type and optional client on the wizard
func (s *BookingService) EnterDetails(ownerID, sessionID uuid.UUID, req WizardDetailsRequest) (*WizardStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.wizard.EnterDetails(req.Title, scheduling.AppointmentType(req.Type)); err != nil {
		return nil, err
	}
	session.wizard.ClientID = req.ClientID
	resp := ToWizardStateResponse(sessionID, session.wizard)
	return &resp, nil
}

// Confirm builds and persists the appointment. The wizard only reaches its
// terminal step once the save succeeds, so a failed save can be retried.
func (s *BookingService) Confirm(ctx context.Context, ownerID, sessionID uuid.UUID) (*AppointmentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	w := session.wizard

	if w.Step != scheduling.StepEnterDetails {
		return nil, shared.ErrInvalidState
	}

	// Re-check the full interval now that the duration is known
	start, err := scheduling.ParseTimeOfDay(w.Time)
	if err != nil {
		return nil, err
	}
	duration, err := w.Type.Duration()
	if err != nil {
		return nil, err
	}
	if err := s.availability.EnsureBookable(ctx, w.PersonID, w.Date, start, start.Add(duration), nil); err != nil {
		return nil, err
	}

	appointment, err := w.Confirm()
	if err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		// Roll the wizard back to detail entry so Confirm can be retried
		w.Step = scheduling.StepEnterDetails
		s.logger.Error("Failed to persist booked appointment", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Booking confirmed",
		zap.String("session_id", sessionID.String()),
		zap.String("appointment_id", appointment.ID.String()))

	s.notifier.Notify(ctx, appointment.AttributedTo(), notification.KindAppointmentCreated,
		"New appointment",
		fmt.Sprintf("%s on %s at %s", appointment.Title, appointment.Date, appointment.StartTime),
		map[string]interface{}{"appointment_id": appointment.ID.String()})

	delete(s.sessions, sessionID)

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Back navigates the wizard to an earlier step
func (s *BookingService) Back(ownerID, sessionID uuid.UUID, req WizardBackRequest) (*WizardStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.wizard.Back(scheduling.WizardStep(req.Step)); err != nil {
		return nil, err
	}
	resp := ToWizardStateResponse(sessionID, session.wizard)
	return &resp, nil
}

// Reset returns the wizard to its initial state
func (s *BookingService) Reset(ownerID, sessionID uuid.UUID) (*WizardStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(ownerID, sessionID)
	if err != nil {
		return nil, err
	}
	session.wizard.Reset()
	resp := ToWizardStateResponse(sessionID, session.wizard)
	return &resp, nil
}

// session resolves and authorizes a wizard session; callers hold the lock
func (s *BookingService) session(ownerID, sessionID uuid.UUID) (*wizardSession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if session.ownerID != ownerID {
		return nil, shared.ErrForbidden
	}
	return session, nil
}
