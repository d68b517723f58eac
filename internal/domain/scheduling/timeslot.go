package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/OpianKyle/opianrer-sub001/internal/domain/shared"
)

// Bookable day runs 08:00 to 17:30 in fixed half-hour slots
const (
	dayStartMinutes = 8 * 60
	dayEndMinutes   = 17*60 + 30
	slotStepMinutes = 30
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Appointments store "HH:MM" strings; all comparisons happen in minutes.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, shared.NewDomainError("INVALID_TIME", "Time must be in HH:MM format")
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, shared.NewDomainError("INVALID_TIME", "Hour component out of range")
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, shared.NewDomainError("INVALID_TIME", "Minute component out of range")
	}
	return TimeOfDay(hours*60 + minutes), nil
}

// MustParseTimeOfDay parses an "HH:MM" string, panicking on malformed input.
// Reserved for literals in tests and the slot grid.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String formats the time as zero-padded "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add returns the time advanced by the given number of minutes.
// Minute overflow carries into the hour component.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// Before reports whether t is strictly earlier than other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// Within reports whether t falls in the half-open interval [start, end).
// A zero-length interval (start == end) contains nothing.
func (t TimeOfDay) Within(start, end TimeOfDay) bool {
	return t >= start && t < end
}

// SlotGrid returns the fixed half-hour booking slots for one day,
// 08:00 through 17:30 inclusive.
func SlotGrid() []TimeOfDay {
	slots := make([]TimeOfDay, 0, (dayEndMinutes-dayStartMinutes)/slotStepMinutes+1)
	for m := dayStartMinutes; m <= dayEndMinutes; m += slotStepMinutes {
		slots = append(slots, TimeOfDay(m))
	}
	return slots
}

// ParseDate parses a "YYYY-MM-DD" appointment date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// DateBeforeToday reports whether the date lies wholly before today.
// Dates compare in the server's local zone; no timezone normalization.
func DateBeforeToday(date time.Time, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return date.Before(today)
}
