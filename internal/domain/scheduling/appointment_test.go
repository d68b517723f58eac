package scheduling

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppointmentDerivesEndTime(t *testing.T) {
	creator := uuid.New()

	tests := []struct {
		name     string
		start    string
		appoType AppointmentType
		wantEnd  string
	}{
		{"meeting carries the hour", "10:00", AppointmentTypeMeeting, "11:00"},
		{"call half hour", "09:45", AppointmentTypeCall, "10:15"},
		{"consultation overflow", "17:45", AppointmentTypeConsultation, "19:15"},
		{"review", "14:00", AppointmentTypeReview, "14:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAppointment(creator, "Portfolio review", "2026-09-01", tt.start, tt.appoType)
			require.NoError(t, err)
			assert.Equal(t, tt.wantEnd, a.EndTime)
			assert.Equal(t, AppointmentStatusScheduled, a.Status)
		})
	}
}

func TestNewAppointmentValidation(t *testing.T) {
	creator := uuid.New()

	_, err := NewAppointment(creator, "", "2026-09-01", "10:00", AppointmentTypeMeeting)
	assert.Error(t, err)

	_, err = NewAppointment(creator, "Intro", "01-09-2026", "10:00", AppointmentTypeMeeting)
	assert.Error(t, err)

	_, err = NewAppointment(creator, "Intro", "2026-09-01", "25:00", AppointmentTypeMeeting)
	assert.Error(t, err)

	_, err = NewAppointment(creator, "Intro", "2026-09-01", "10:00", AppointmentType("workshop"))
	assert.Error(t, err)
}

func TestAttributedToPrefersAssignee(t *testing.T) {
	creator := uuid.New()
	assignee := uuid.New()

	a, err := NewAppointment(creator, "Intro call", "2026-09-01", "10:00", AppointmentTypeCall)
	require.NoError(t, err)

	// Unassigned appointments belong to their creator
	assert.Equal(t, creator, a.AttributedTo())

	a.Assign(assignee)
	assert.Equal(t, assignee, a.AttributedTo())
}

func TestBlocksSlot(t *testing.T) {
	creator := uuid.New()
	other := uuid.New()

	a, err := NewAppointment(creator, "Intro call", "2026-09-01", "10:00", AppointmentTypeCall) // 10:00-10:30
	require.NoError(t, err)

	assert.True(t, a.BlocksSlot("2026-09-01", creator, MustParseTimeOfDay("10:00")))
	assert.False(t, a.BlocksSlot("2026-09-01", creator, MustParseTimeOfDay("10:30")))
	assert.False(t, a.BlocksSlot("2026-09-02", creator, MustParseTimeOfDay("10:00")))
	assert.False(t, a.BlocksSlot("2026-09-01", other, MustParseTimeOfDay("10:00")))

	require.NoError(t, a.Cancel())
	assert.False(t, a.BlocksSlot("2026-09-01", creator, MustParseTimeOfDay("10:00")))
}

func TestOverlaps(t *testing.T) {
	creator := uuid.New()

	a, err := NewAppointment(creator, "Meeting", "2026-09-01", "10:00", AppointmentTypeMeeting) // 10:00-11:00
	require.NoError(t, err)

	assert.True(t, a.Overlaps("2026-09-01", creator, MustParseTimeOfDay("10:30"), MustParseTimeOfDay("11:30")))
	assert.True(t, a.Overlaps("2026-09-01", creator, MustParseTimeOfDay("09:30"), MustParseTimeOfDay("10:01")))
	assert.False(t, a.Overlaps("2026-09-01", creator, MustParseTimeOfDay("11:00"), MustParseTimeOfDay("12:00")))
	assert.False(t, a.Overlaps("2026-09-01", creator, MustParseTimeOfDay("09:00"), MustParseTimeOfDay("10:00")))

	// Zero-length candidate interval never conflicts
	assert.False(t, a.Overlaps("2026-09-01", creator, MustParseTimeOfDay("10:30"), MustParseTimeOfDay("10:30")))
}

func TestRescheduleKeepsDuration(t *testing.T) {
	creator := uuid.New()

	a, err := NewAppointment(creator, "Review", "2026-09-01", "14:00", AppointmentTypeReview)
	require.NoError(t, err)

	require.NoError(t, a.Reschedule("2026-09-02", "16:30"))
	assert.Equal(t, "2026-09-02", a.Date)
	assert.Equal(t, "16:30", a.StartTime)
	assert.Equal(t, "17:15", a.EndTime)
}

func TestAppointmentLifecycle(t *testing.T) {
	creator := uuid.New()

	a, err := NewAppointment(creator, "Meeting", "2026-09-01", "10:00", AppointmentTypeMeeting)
	require.NoError(t, err)

	require.NoError(t, a.Complete())
	assert.Equal(t, AppointmentStatusCompleted, a.Status)
	assert.Error(t, a.Complete())

	require.NoError(t, a.Cancel())
	assert.Error(t, a.Cancel())
}
