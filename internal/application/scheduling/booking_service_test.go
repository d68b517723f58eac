package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingService(repo *MockAppointmentRepository) *BookingService {
	availability := newAvailability(repo)
	notifier := notification.NewService(nil, zap.NewNop())
	return NewBookingService(repo, availability, notifier, zap.NewNop())
}

// walkToDetails drives a fresh session up to detail entry
func walkToDetails(t *testing.T, svc *BookingService, owner, person uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	state := svc.Start(owner)
	sessionID := state.SessionID

	_, err := svc.SelectPerson(owner, sessionID, WizardSelectPersonRequest{PersonID: person})
	require.NoError(t, err)
	_, err = svc.SelectDate(owner, sessionID, WizardSelectDateRequest{Date: clockDate(1)})
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, owner, sessionID, WizardSelectTimeRequest{Time: "10:00"})
	require.NoError(t, err)
	return sessionID
}

func TestBookingHappyPath(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{}, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).Return(nil)

	sessionID := walkToDetails(t, svc, owner, person)

	state, err := svc.EnterDetails(owner, sessionID, WizardDetailsRequest{Title: "Portfolio review", Type: "review"})
	require.NoError(t, err)
	assert.Equal(t, "enter_details", state.Step)

	resp, err := svc.Confirm(context.Background(), owner, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio review", resp.Title)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "10:45", resp.EndTime)
	assert.Equal(t, person, resp.AttributedTo)

	// The session is gone once confirmed
	_, err = svc.Get(owner, sessionID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBookingSelectTimeRejectsBookedSlot(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	booked := mustAppointment(t, person, clockDate(1), "10:00", scheduling.AppointmentTypeCall)
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

	state := svc.Start(owner)
	_, err := svc.SelectPerson(owner, state.SessionID, WizardSelectPersonRequest{PersonID: person})
	require.NoError(t, err)
	_, err = svc.SelectDate(owner, state.SessionID, WizardSelectDateRequest{Date: clockDate(1)})
	require.NoError(t, err)

	_, err = svc.SelectTime(context.Background(), owner, state.SessionID, WizardSelectTimeRequest{Time: "10:00"})
	assert.ErrorIs(t, err, shared.ErrSlotUnavailable)

	// The wizard stays on time selection, so another slot still works
	_, err = svc.SelectTime(context.Background(), owner, state.SessionID, WizardSelectTimeRequest{Time: "11:00"})
	assert.NoError(t, err)
}

func TestBookingSelectTimeRejectsPastDate(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	state := svc.Start(owner)
	_, err := svc.SelectPerson(owner, state.SessionID, WizardSelectPersonRequest{PersonID: person})
	require.NoError(t, err)

	// Date selection itself accepts any well-formed date; the calendar
	// guard fires when a slot is picked.
	_, err = svc.SelectDate(owner, state.SessionID, WizardSelectDateRequest{Date: clockDate(-7)})
	require.NoError(t, err)

	_, err = svc.SelectTime(context.Background(), owner, state.SessionID, WizardSelectTimeRequest{Time: "10:00"})
	assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
	repo.AssertNotCalled(t, "FindByDate")

	// Going back and picking a future date recovers the session
	_, err = svc.Back(owner, state.SessionID, WizardBackRequest{Step: "select_date"})
	require.NoError(t, err)
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{}, nil)
	_, err = svc.SelectDate(owner, state.SessionID, WizardSelectDateRequest{Date: clockDate(1)})
	require.NoError(t, err)
	_, err = svc.SelectTime(context.Background(), owner, state.SessionID, WizardSelectTimeRequest{Time: "10:00"})
	assert.NoError(t, err)
}

func TestBookingConfirmRejectsPastDate(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	repo.On("FindByDate", mock.Anything, clockDate(0)).Return([]scheduling.Appointment{}, nil)

	state := svc.Start(owner)
	_, err := svc.SelectPerson(owner, state.SessionID, WizardSelectPersonRequest{PersonID: person})
	require.NoError(t, err)
	_, err = svc.SelectDate(owner, state.SessionID, WizardSelectDateRequest{Date: clockDate(0)})
	require.NoError(t, err)
	_, err = svc.SelectTime(context.Background(), owner, state.SessionID, WizardSelectTimeRequest{Time: "10:00"})
	require.NoError(t, err)
	_, err = svc.EnterDetails(owner, state.SessionID, WizardDetailsRequest{Title: "Review", Type: "review"})
	require.NoError(t, err)

	// The calendar day rolls over between detail entry and confirmation
	svc.availability.SetClock(func() time.Time {
		return fixedClock().AddDate(0, 0, 1)
	})

	_, err = svc.Confirm(context.Background(), owner, state.SessionID)
	assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
	repo.AssertNotCalled(t, "Save")
}

func TestBookingConfirmRejectsConflictOverFullInterval(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	// 11:00-11:30 is booked. The 10:00 slot itself is free, but a 90-minute
	// consultation starting at 10:00 runs into it.
	booked := mustAppointment(t, person, clockDate(1), "11:00", scheduling.AppointmentTypeCall)
	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{booked}, nil)

	sessionID := walkToDetails(t, svc, owner, person)
	_, err := svc.EnterDetails(owner, sessionID, WizardDetailsRequest{Title: "Intro consultation", Type: "consultation"})
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), owner, sessionID)
	assert.ErrorIs(t, err, shared.ErrSlotUnavailable)
	repo.AssertNotCalled(t, "Save")
}

func TestBookingConfirmRetriesAfterFailedSave(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{}, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).Return(errors.New("connection reset")).Once()
	repo.On("Save", mock.Anything, mock.AnythingOfType("*scheduling.Appointment")).Return(nil).Once()

	sessionID := walkToDetails(t, svc, owner, person)
	_, err := svc.EnterDetails(owner, sessionID, WizardDetailsRequest{Title: "Catch-up", Type: "call"})
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), owner, sessionID)
	require.Error(t, err)

	// The failed save left the wizard on detail entry
	state, err := svc.Get(owner, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "enter_details", state.Step)
	assert.Equal(t, "Catch-up", state.Title)

	resp, err := svc.Confirm(context.Background(), owner, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Catch-up", resp.Title)
}

func TestBookingBackClearsLaterState(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{}, nil)

	sessionID := walkToDetails(t, svc, owner, person)

	state, err := svc.Back(owner, sessionID, WizardBackRequest{Step: "select_date"})
	require.NoError(t, err)
	assert.Equal(t, "select_date", state.Step)
	assert.Empty(t, state.Date)
	assert.Empty(t, state.Time)
	require.NotNil(t, state.PersonID)
	assert.Equal(t, person, *state.PersonID)
}

func TestBookingSessionOwnership(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	intruder := uuid.New()

	state := svc.Start(owner)

	_, err := svc.Get(intruder, state.SessionID)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	_, err = svc.SelectPerson(intruder, state.SessionID, WizardSelectPersonRequest{PersonID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestBookingUnknownSession(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)

	_, err := svc.Get(uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestBookingReset(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := newBookingService(repo)
	owner := uuid.New()
	person := uuid.New()

	repo.On("FindByDate", mock.Anything, clockDate(1)).Return([]scheduling.Appointment{}, nil)

	sessionID := walkToDetails(t, svc, owner, person)

	state, err := svc.Reset(owner, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "select_person", state.Step)
	assert.Nil(t, state.PersonID)
	assert.Empty(t, state.Date)
}
