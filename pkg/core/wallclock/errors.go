package wallclock

import "fmt"

// InvalidTimeZoneError indicates that a configured timezone identifier could
// not be resolved against the IANA database. The converter fails closed on
// these: it never substitutes a default zone.
type InvalidTimeZoneError struct {
	ID  string
	Err error
}

func (e *InvalidTimeZoneError) Error() string {
	return fmt.Sprintf("invalid timezone %q: %v", e.ID, e.Err)
}

func (e *InvalidTimeZoneError) Unwrap() error {
	return e.Err
}

// MalformedDateOrTimeError indicates that a date or time value failed basic
// structural parsing or validation (bad format, month 13, minute 72, ...).
type MalformedDateOrTimeError struct {
	Input string
	Err   error
}

func (e *MalformedDateOrTimeError) Error() string {
	return fmt.Sprintf("malformed date or time %q: %v", e.Input, e.Err)
}

func (e *MalformedDateOrTimeError) Unwrap() error {
	return e.Err
}
