package scheduling

import (
	"context"
	"fmt"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentService handles calendar operations
type AppointmentService struct {
	appointmentRepo scheduling.AppointmentRepository
	availability    *AvailabilityService
	notifier        *notification.Service
	logger          *zap.Logger
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(
	appointmentRepo scheduling.AppointmentRepository,
	availability *AvailabilityService,
	notifier *notification.Service,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		notifier:        notifier,
		logger:          logger,
	}
}

// Create creates an appointment after verifying the target calendar is free
func (s *AppointmentService) Create(ctx context.Context, createdBy uuid.UUID, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	appointment, err := scheduling.NewAppointment(createdBy, req.Title, req.Date, req.StartTime, scheduling.AppointmentType(req.Type))
	if err != nil {
		return nil, err
	}
	if req.AssigneeID != nil {
		appointment.Assign(*req.AssigneeID)
	}
	if req.ClientID != nil {
		appointment.AttachClient(*req.ClientID)
	}
	if req.Description != "" || req.Location != "" {
		if err := appointment.SetDetails(req.Description, req.Location); err != nil {
			return nil, err
		}
	}

	start, end := appointment.Interval()
	if err := s.availability.EnsureBookable(ctx, appointment.AttributedTo(), appointment.Date, start, end, nil); err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	s.logger.Info("Appointment created",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("date", appointment.Date),
		zap.String("attributed_to", appointment.AttributedTo().String()))

	s.notifier.Notify(ctx, appointment.AttributedTo(), notification.KindAppointmentCreated,
		"New appointment",
		fmt.Sprintf("%s on %s at %s", appointment.Title, appointment.Date, appointment.StartTime),
		map[string]interface{}{"appointment_id": appointment.ID.String()})

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// GetByID retrieves an appointment by ID
func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// List retrieves appointments with filtering and pagination
func (s *AppointmentService) List(ctx context.Context, filter AppointmentListFilter) ([]AppointmentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "date",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Date != "" {
		domainFilter.Filters["date"] = filter.Date
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	appointments, err := s.appointmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.appointmentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = ToAppointmentResponse(&appointments[i])
	}
	return responses, total, nil
}

// ListForUser returns the appointments attributed to a user
func (s *AppointmentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.FindByAttributedUser(ctx, userID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = ToAppointmentResponse(&appointments[i])
	}
	return responses, nil
}

// ListForClient returns the appointments linked to a client
func (s *AppointmentService) ListForClient(ctx context.Context, clientID uuid.UUID) ([]AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = ToAppointmentResponse(&appointments[i])
	}
	return responses, nil
}

// Reschedule moves an appointment, re-checking the target calendar
func (s *AppointmentService) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleRequest) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start, err := scheduling.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	duration, err := appointment.Type.Duration()
	if err != nil {
		return nil, err
	}
	if err := s.availability.EnsureBookable(ctx, appointment.AttributedTo(), req.Date, start, start.Add(duration), &id); err != nil {
		return nil, err
	}

	if err := appointment.Reschedule(req.Date, req.StartTime); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return nil, err
	}

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Complete marks an appointment as completed
func (s *AppointmentService) Complete(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := appointment.Complete(); err != nil {
		return err
	}
	return s.appointmentRepo.Save(ctx, appointment)
}

// Cancel cancels an appointment and notifies the affected calendar owner
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID) error {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := appointment.Cancel(); err != nil {
		return err
	}
	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		return err
	}

	s.notifier.Notify(ctx, appointment.AttributedTo(), notification.KindAppointmentCancelled,
		"Appointment cancelled",
		fmt.Sprintf("%s on %s at %s was cancelled", appointment.Title, appointment.Date, appointment.StartTime),
		map[string]interface{}{"appointment_id": appointment.ID.String()})
	return nil
}
