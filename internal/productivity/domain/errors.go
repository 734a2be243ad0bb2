package productivity

import "errors"

var (
	// ErrInvalidSlot is returned when an hour, quarter or label is outside the day.
	ErrInvalidSlot = errors.New("productivity: invalid time slot")
	// ErrInvalidTimestamp marks an event whose timestamp cannot be bucketed.
	ErrInvalidTimestamp = errors.New("productivity: invalid timestamp")
	// ErrInvalidDay is returned when a report is requested for a zero day.
	ErrInvalidDay = errors.New("productivity: invalid day")
)
