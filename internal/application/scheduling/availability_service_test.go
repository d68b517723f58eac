package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scheduling.Appointment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Save(ctx context.Context, appointment *scheduling.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) FindByDate(ctx context.Context, date string) ([]scheduling.Appointment, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]scheduling.Appointment, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByAttributedUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]scheduling.Appointment, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]scheduling.Appointment), args.Error(1)
}

// fixedClock pins the availability service to 2026-08-31
func fixedClock() time.Time {
	return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
}

// clockDate returns the pinned clock's date shifted by days, as YYYY-MM-DD
func clockDate(days int) string {
	return fixedClock().AddDate(0, 0, days).Format("2006-01-02")
}

func newAvailability(repo *MockAppointmentRepository) *AvailabilityService {
	svc := NewAvailabilityService(repo)
	svc.SetClock(fixedClock)
	return svc
}

func mustAppointment(t *testing.T, person uuid.UUID, date, start string, appoType scheduling.AppointmentType) scheduling.Appointment {
	t.Helper()
	a, err := scheduling.NewAppointment(person, "busy", date, start, appoType)
	require.NoError(t, err)
	return *a
}

func TestAvailableSlotsEmptyCalendar(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)
	person := uuid.New()

	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{}, nil)

	resp, err := svc.AvailableSlots(context.Background(), person, clockDate(1))
	require.NoError(t, err)
	require.Len(t, resp.Slots, 20)
	assert.Equal(t, "08:00", resp.Slots[0].Time)
	assert.Equal(t, "17:30", resp.Slots[19].Time)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestAvailableSlotsPastDateIsEmpty(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)

	resp, err := svc.AvailableSlots(context.Background(), uuid.New(), clockDate(-1))
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	repo.AssertNotCalled(t, "FindByDate")
}

func TestAvailableSlotsBlocksBookedInterval(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)
	person := uuid.New()

	// A 30-minute call at 10:00 blocks exactly the 10:00 slot
	booked := mustAppointment(t, person, clockDate(1), "10:00", scheduling.AppointmentTypeCall)
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

	resp, err := svc.AvailableSlots(context.Background(), person, clockDate(1))
	require.NoError(t, err)

	bySlot := make(map[string]bool)
	for _, slot := range resp.Slots {
		bySlot[slot.Time] = slot.Available
	}
	assert.False(t, bySlot["10:00"])
	assert.True(t, bySlot["09:30"])
	assert.True(t, bySlot["10:30"])
}

func TestAvailableSlotsIgnoresOtherPeople(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)
	person := uuid.New()

	booked := mustAppointment(t, uuid.New(), clockDate(1), "10:00", scheduling.AppointmentTypeMeeting)
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

	resp, err := svc.AvailableSlots(context.Background(), person, clockDate(1))
	require.NoError(t, err)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestAvailableSlotsIgnoresCancelled(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)
	person := uuid.New()

	booked := mustAppointment(t, person, clockDate(1), "10:00", scheduling.AppointmentTypeMeeting)
	require.NoError(t, booked.Cancel())
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

	resp, err := svc.AvailableSlots(context.Background(), person, clockDate(1))
	require.NoError(t, err)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestAvailableSlotsAssigneeOwnsTheSlot(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)
	creator := uuid.New()
	assignee := uuid.New()

	booked := mustAppointment(t, creator, clockDate(1), "10:00", scheduling.AppointmentTypeCall)
	booked.Assign(assignee)
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

	// The assignee's calendar is blocked
	resp, err := svc.AvailableSlots(context.Background(), assignee, clockDate(1))
	require.NoError(t, err)
	bySlot := make(map[string]bool)
	for _, slot := range resp.Slots {
		bySlot[slot.Time] = slot.Available
	}
	assert.False(t, bySlot["10:00"])

	// The creator's calendar is free
	resp, err = svc.AvailableSlots(context.Background(), creator, clockDate(1))
	require.NoError(t, err)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestAvailableSlotsRejectsBadDate(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)

	_, err := svc.AvailableSlots(context.Background(), uuid.New(), "09/01/2026")
	assert.Error(t, err)
}

func TestEnsureBookable(t *testing.T) {
	person := uuid.New()
	start := scheduling.MustParseTimeOfDay("10:00")

	t.Run("past date is unavailable without touching the calendar", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAvailability(repo)

		err := svc.EnsureBookable(context.Background(), person, clockDate(-1), start, start.Add(30), nil)
		assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
		repo.AssertNotCalled(t, "FindByDate")
	})

	t.Run("today and later are checked against the calendar", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAvailability(repo)

		repo.On("FindByDate", mock.Anything, clockDate(0)).Return([]scheduling.Appointment{}, nil)
		assert.NoError(t, svc.EnsureBookable(context.Background(), person, clockDate(0), start, start.Add(30), nil))
	})

	t.Run("occupied interval is unavailable", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := newAvailability(repo)

		booked := mustAppointment(t, person, clockDate(1), "10:00", scheduling.AppointmentTypeMeeting)
		repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

		err := svc.EnsureBookable(context.Background(), person, clockDate(1), start, start.Add(30), nil)
		assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
	})
}

func TestHasConflict(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newAvailability(repo)
	person := uuid.New()

	booked := mustAppointment(t, person, clockDate(1), "10:00", scheduling.AppointmentTypeMeeting) // 10:00-11:00
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

	start := scheduling.MustParseTimeOfDay("10:30")
	conflict, err := svc.HasConflict(context.Background(), person, clockDate(1), start, start.Add(30), nil)
	require.NoError(t, err)
	assert.True(t, conflict)

	// Excluding the appointment itself clears the conflict
	conflict, err = svc.HasConflict(context.Background(), person, clockDate(1), start, start.Add(30), &booked.ID)
	require.NoError(t, err)
	assert.False(t, conflict)

	// Adjacent interval does not conflict
	eleven := scheduling.MustParseTimeOfDay("11:00")
	conflict, err = svc.HasConflict(context.Background(), person, clockDate(1), eleven, eleven.Add(30), nil)
	require.NoError(t, err)
	assert.False(t, conflict)
}
