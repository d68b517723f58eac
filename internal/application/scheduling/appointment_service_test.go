package scheduling

import (
	"context"
	"testing"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAppointmentService(repo *MockAppointmentRepository) *AppointmentService {
	notifier := notification.NewService(nil, zap.NewNop())
	return NewAppointmentService(repo, newAvailability(repo), notifier, zap.NewNop())
}

func TestAppointmentCreate(t *testing.T) {
	creator := uuid.New()

	t.Run("books a free slot", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAppointmentService(repo)

		repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{}, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).Return(nil)

		resp, err := svc.Create(context.Background(), creator, CreateAppointmentRequest{
			Title:     "Quarterly review",
			Date:      clockDate(1),
			StartTime: "10:00",
			Type:      "review",
		})
		require.NoError(t, err)
		assert.Equal(t, clockDate(1), resp.Date)
		assert.Equal(t, "10:45", resp.EndTime)
	})

	t.Run("rejects a past date", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAppointmentService(repo)

		_, err := svc.Create(context.Background(), creator, CreateAppointmentRequest{
			Title:     "Backdated",
			Date:      clockDate(-1),
			StartTime: "10:00",
			Type:      "call",
		})
		assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
		repo.AssertNotCalled(t, "FindByDate")
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects an occupied interval", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAppointmentService(repo)

		booked := mustAppointment(t, creator, clockDate(1), "10:00", scheduling.AppointmentTypeMeeting)
		repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

		_, err := svc.Create(context.Background(), creator, CreateAppointmentRequest{
			Title:     "Overlap",
			Date:      clockDate(1),
			StartTime: "10:30",
			Type:      "call",
		})
		assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestAppointmentReschedule(t *testing.T) {
	person := uuid.New()

	t.Run("moves to a free future slot", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAppointmentService(repo)

		existing := mustAppointment(t, person, clockDate(1), "10:00", scheduling.AppointmentTypeCall)
		repo.On("FindByID", mock.Anything, existing.ID).Return(&existing, nil)
		repo.On("FindByDate", mock.Anything, clockDate(2)).Return([]scheduling.Appointment{}, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).Return(nil)

		resp, err := svc.Reschedule(context.Background(), existing.ID, RescheduleRequest{Date: clockDate(2), StartTime: "14:00"})
		require.NoError(t, err)
		assert.Equal(t, clockDate(2), resp.Date)
		assert.Equal(t, "14:00", resp.StartTime)
	})

	t.Run("rejects moving onto a past date", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAppointmentService(repo)

		existing := mustAppointment(t, person, clockDate(1), "10:00", scheduling.AppointmentTypeCall)
		repo.On("FindByID", mock.Anything, existing.ID).Return(&existing, nil)

		_, err := svc.Reschedule(context.Background(), existing.ID, RescheduleRequest{Date: clockDate(-1), StartTime: "10:00"})
		assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
		repo.AssertNotCalled(t, "Save")
	})
}
