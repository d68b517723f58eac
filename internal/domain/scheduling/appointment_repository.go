package scheduling

import (
	"context"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// AppointmentRepository defines persistence operations for appointments
type AppointmentRepository interface {
	shared.Repository[Appointment]
	FindByDate(ctx context.Context, date string) ([]Appointment, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Appointment, error)
	FindByAttributedUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Appointment, error)
}
