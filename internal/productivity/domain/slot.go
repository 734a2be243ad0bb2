package productivity

import (
	"fmt"
	"time"
)

const (
	// SlotMinutes is the width of one time slot.
	SlotMinutes = 15
	// SlotsPerHour is the number of slots in one hour.
	SlotsPerHour = 60 / SlotMinutes
	// SlotsPerDay is the number of slots in one calendar day.
	SlotsPerDay = 24 * SlotsPerHour
)

// TimeSlot is a 15-minute bucket of the day, 0 (00:00) through 95 (23:45).
// Numeric order is chronological order.
type TimeSlot int

// NewTimeSlot builds the slot for an hour (0-23) and quarter (0-3).
func NewTimeSlot(hour, quarter int) (TimeSlot, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: hour %d", ErrInvalidSlot, hour)
	}
	if quarter < 0 || quarter >= SlotsPerHour {
		return 0, fmt.Errorf("%w: quarter %d", ErrInvalidSlot, quarter)
	}
	return TimeSlot(hour*SlotsPerHour + quarter), nil
}

// SlotOf returns the slot containing the wall-clock time of ts.
func SlotOf(ts time.Time) TimeSlot {
	return TimeSlot(ts.Hour()*SlotsPerHour + ts.Minute()/SlotMinutes)
}

// ParseTimeSlot parses an "HH:MM" label where MM is 00, 15, 30 or 45.
func ParseTimeSlot(label string) (TimeSlot, error) {
	parsed, err := time.Parse("15:04", label)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	if parsed.Minute()%SlotMinutes != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
	}
	return NewTimeSlot(parsed.Hour(), parsed.Minute()/SlotMinutes)
}

// Hour returns the hour of day (0-23).
func (s TimeSlot) Hour() int { return int(s) / SlotsPerHour }

// Quarter returns the quarter within the hour (0-3).
func (s TimeSlot) Quarter() int { return int(s) % SlotsPerHour }

// IsValid reports whether the slot lies within one day.
func (s TimeSlot) IsValid() bool { return s >= 0 && s < SlotsPerDay }

// String renders the slot as "HH:MM".
func (s TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour(), s.Quarter()*SlotMinutes)
}

// MarshalText renders the slot label for JSON keys and values.
func (s TimeSlot) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrInvalidSlot
	}
	return []byte(s.String()), nil
}

// AllSlots returns the 96 canonical slots of a day in order.
func AllSlots() []TimeSlot {
	slots := make([]TimeSlot, SlotsPerDay)
	for i := range slots {
		slots[i] = TimeSlot(i)
	}
	return slots
}
