package mailstats

import "errors"

var (
	// ErrInvalidBin is returned when a BIN number is not positive.
	ErrInvalidBin = errors.New("mailstats: invalid bin")
	// ErrEmptyCarrierName is returned when a configured carrier has no name.
	ErrEmptyCarrierName = errors.New("mailstats: empty carrier name")
	// ErrNoBins is returned when a lookup table lists no BINs.
	ErrNoBins = errors.New("mailstats: no bins configured")
	// ErrInvalidDay is returned when a query is issued for a zero day.
	ErrInvalidDay = errors.New("mailstats: invalid day")
)
