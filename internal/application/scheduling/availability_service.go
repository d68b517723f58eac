package scheduling

import (
	"context"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
	"github.com/google/uuid"
)

// AvailabilityService computes the bookable slot grid for a person and day
type AvailabilityService struct {
	appointmentRepo scheduling.AppointmentRepository
	now             func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(appointmentRepo scheduling.AppointmentRepository) *AvailabilityService {
	return &AvailabilityService{
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

// SetClock overrides the clock, for tests
func (s *AvailabilityService) SetClock(now func() time.Time) {
	s.now = now
}

// AvailableSlots returns the half-hour grid for the person on the given
// date. Dates in the past yield an empty grid; a slot is unavailable when
// it falls inside any scheduled appointment attributed to the person.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, personID uuid.UUID, date string) (*AvailabilityResponse, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return nil, err
	}

	resp := &AvailabilityResponse{
		PersonID: personID,
		Date:     date,
		Slots:    []SlotResponse{},
	}
	if scheduling.DateBeforeToday(day, s.now()) {
		return resp, nil
	}

	appointments, err := s.appointmentRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	for _, slot := range scheduling.SlotGrid() {
		available := true
		for i := range appointments {
			if appointments[i].BlocksSlot(date, personID, slot) {
				available = false
				break
			}
		}
		resp.Slots = append(resp.Slots, SlotResponse{Time: slot.String(), Available: available})
	}
	return resp, nil
}

// EnsureBookable verifies that [start, end) on the date can still be
// booked on the person's calendar. Past dates and occupied intervals
// both come back as ErrSlotUnavailable; the booking paths treat them
// the same way the slot grid does.
func (s *AvailabilityService) EnsureBookable(ctx context.Context, personID uuid.UUID, date string, start, end scheduling.TimeOfDay, exclude *uuid.UUID) error {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return err
	}
	if scheduling.DateBeforeToday(day, s.now()) {
		return shared.ErrSlotUnavailable
	}
	conflict, err := s.HasConflict(ctx, personID, date, start, end, exclude)
	if err != nil {
		return err
	}
	if conflict {
		return shared.ErrSlotUnavailable
	}
	return nil
}

// HasConflict reports whether [start, end) on the date collides with any
// scheduled appointment attributed to the person. An appointment ID in
// exclude is skipped, so reschedules do not conflict with themselves.
func (s *AvailabilityService) HasConflict(ctx context.Context, personID uuid.UUID, date string, start, end scheduling.TimeOfDay, exclude *uuid.UUID) (bool, error) {
	appointments, err := s.appointmentRepo.FindByDate(ctx, date)
	if err != nil {
		return false, err
	}
	for i := range appointments {
		if exclude != nil && appointments[i].ID == *exclude {
			continue
		}
		if appointments[i].Overlaps(date, personID, start, end) {
			return true, nil
		}
	}
	return false, nil
}
