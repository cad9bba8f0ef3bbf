// Package wallclock converts between organization-local wall-clock dates and
// absolute instants, correctly across daylight-saving transitions.
//
// DST resolution policy, applied everywhere in this package: a local time
// that is skipped by a spring-forward transition resolves to the nearest
// valid later instant (the transition instant itself); a local time that
// occurs twice around a fall-back transition resolves to the earlier
// occurrence. Callers that care can inspect the returned Resolution.
package wallclock

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for wall-clock dates in records and config.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for wall-clock times of day.
const TimeLayout = "15:04"

// LocalDate is a wall-clock calendar date. It carries no timezone; it only
// denotes an instant once combined with a *time.Location.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// LocalTime is a wall-clock time of day, 24-hour.
type LocalTime struct {
	Hour   int
	Minute int
}

// Midnight is the zero LocalTime, start of the local day.
var Midnight = LocalTime{Hour: 0, Minute: 0}

// Resolution reports how a wall-clock value was mapped to an instant.
type Resolution int

const (
	// ResolutionExact means the requested local time exists exactly once.
	ResolutionExact Resolution = iota

	// ResolutionSkippedForward means the requested local time was skipped by
	// a spring-forward transition and the transition instant was returned.
	ResolutionSkippedForward

	// ResolutionAmbiguousEarlier means the requested local time occurs twice
	// and the earlier occurrence was returned.
	ResolutionAmbiguousEarlier
)

func (r Resolution) String() string {
	switch r {
	case ResolutionExact:
		return "exact"
	case ResolutionSkippedForward:
		return "skipped-forward"
	case ResolutionAmbiguousEarlier:
		return "ambiguous-earlier"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// LoadZone resolves an IANA timezone identifier. Unknown identifiers fail
// closed with an InvalidTimeZoneError; the empty string is rejected
// explicitly because time.LoadLocation would silently return UTC for it.
func LoadZone(id string) (*time.Location, error) {
	if id == "" {
		return nil, &InvalidTimeZoneError{ID: id, Err: fmt.Errorf("empty timezone identifier")}
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, &InvalidTimeZoneError{ID: id, Err: err}
	}
	return loc, nil
}

// ParseLocalDate parses a date in DateLayout form.
func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return LocalDate{}, &MalformedDateOrTimeError{Input: s, Err: err}
	}
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// ParseLocalTime parses a time of day in TimeLayout form.
func ParseLocalTime(s string) (LocalTime, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return LocalTime{}, &MalformedDateOrTimeError{Input: s, Err: err}
	}
	return LocalTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String formats the date in DateLayout form.
func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Validate checks that the date denotes a real calendar day.
func (d LocalDate) Validate() error {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 || d.Year < 1 {
		return &MalformedDateOrTimeError{Input: d.String(), Err: fmt.Errorf("date component out of range")}
	}
	// time.Date normalizes overflow (Feb 30 -> Mar 2); a changed day means
	// the input was not a real date.
	norm := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if norm.Year() != d.Year || norm.Month() != d.Month || norm.Day() != d.Day {
		return &MalformedDateOrTimeError{Input: d.String(), Err: fmt.Errorf("no such calendar day")}
	}
	return nil
}

// AddDays returns the date n calendar days after d (n may be negative).
func (d LocalDate) AddDays(n int) LocalDate {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String formats the time of day in TimeLayout form.
func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Validate checks hour and minute ranges.
func (t LocalTime) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return &MalformedDateOrTimeError{Input: t.String(), Err: fmt.Errorf("time component out of range")}
	}
	return nil
}

// DayOfWeek returns the weekday of a calendar date.
func DayOfWeek(d LocalDate) time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// ToInstant maps a local wall-clock date and time in loc to an absolute
// instant, applying the package DST policy. The returned Resolution reports
// whether the policy was invoked; it is informational, not an error.
func ToInstant(d LocalDate, t LocalTime, loc *time.Location) (time.Time, Resolution, error) {
	if loc == nil {
		return time.Time{}, ResolutionExact, &InvalidTimeZoneError{Err: fmt.Errorf("nil location")}
	}
	if err := d.Validate(); err != nil {
		return time.Time{}, ResolutionExact, err
	}
	if err := t.Validate(); err != nil {
		return time.Time{}, ResolutionExact, err
	}

	candidate := time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
	if !matchesWall(candidate, d, t, loc) {
		// The requested wall time was skipped. time.Date lands on an instant
		// that is correct in one of the two zones around the transition but
		// is not guaranteed which, so locate the transition instant itself:
		// the first valid local time at or after the request.
		return transitionNear(candidate, loc), ResolutionSkippedForward, nil
	}

	// The time exists. It may still be ambiguous: around a fall-back
	// transition two instants map to the same wall clock, one offset-delta
	// apart. Real-world DST deltas are 30 minutes, 1 hour, or 2 hours.
	for _, delta := range dstDeltas {
		if earlier := candidate.Add(-delta); matchesWall(earlier, d, t, loc) {
			return earlier, ResolutionAmbiguousEarlier, nil
		}
	}
	for _, delta := range dstDeltas {
		if matchesWall(candidate.Add(delta), d, t, loc) {
			// candidate is already the earlier occurrence
			return candidate, ResolutionAmbiguousEarlier, nil
		}
	}
	return candidate, ResolutionExact, nil
}

var dstDeltas = []time.Duration{30 * time.Minute, time.Hour, 2 * time.Hour}

// MidnightInstant returns the instant at which the given local date begins
// in loc. On dates whose midnight is skipped by a DST transition this is the
// first valid instant of the date, per the package policy.
func MidnightInstant(d LocalDate, loc *time.Location) (time.Time, Resolution, error) {
	return ToInstant(d, Midnight, loc)
}

// ToLocalDate returns the wall-clock date of an instant in loc.
func ToLocalDate(instant time.Time, loc *time.Location) LocalDate {
	y, m, day := instant.In(loc).Date()
	return LocalDate{Year: y, Month: m, Day: day}
}

// ToLocalTime returns the wall-clock time of day of an instant in loc.
func ToLocalTime(instant time.Time, loc *time.Location) LocalTime {
	h, min, _ := instant.In(loc).Clock()
	return LocalTime{Hour: h, Minute: min}
}

// IsSameLocalDate reports whether the instant falls on the given wall-clock
// date in loc.
func IsSameLocalDate(instant time.Time, d LocalDate, loc *time.Location) bool {
	return ToLocalDate(instant, loc) == d
}

// IsFutureOrToday reports whether the instant falls on now's local date in
// loc or any later one. now is an explicit parameter so callers and tests
// stay deterministic.
func IsFutureOrToday(instant time.Time, loc *time.Location, now time.Time) bool {
	a := ToLocalDate(instant, loc)
	b := ToLocalDate(now, loc)
	if a.Year != b.Year {
		return a.Year > b.Year
	}
	if a.Month != b.Month {
		return a.Month > b.Month
	}
	return a.Day >= b.Day
}

// WeekStartDate returns the most recent date on or before anchor whose
// weekday equals anchorWeekday.
func WeekStartDate(anchor LocalDate, anchorWeekday time.Weekday) LocalDate {
	back := (int(DayOfWeek(anchor)) - int(anchorWeekday) + 7) % 7
	return anchor.AddDays(-back)
}

// WeekBounds returns the instants bounding the 7-local-day week containing
// anchor, starting on anchorWeekday. The end bound is exclusive (the start
// of day 8), so weeks crossing a DST change still span exactly 7 local days
// even when they are not 168 hours long.
func WeekBounds(anchor LocalDate, loc *time.Location, anchorWeekday time.Weekday) (start, end time.Time, err error) {
	startDate := WeekStartDate(anchor, anchorWeekday)
	start, _, err = MidnightInstant(startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, _, err = MidnightInstant(startDate.AddDays(7), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// matchesWall reports whether the instant's wall clock in loc equals the
// requested date and time.
func matchesWall(instant time.Time, d LocalDate, t LocalTime, loc *time.Location) bool {
	local := instant.In(loc)
	y, m, day := local.Date()
	h, min, _ := local.Clock()
	return y == d.Year && m == d.Month && day == d.Day && h == t.Hour && min == t.Minute
}

// transitionNear locates the instant of the UTC-offset change closest to
// approx. approx is known to be within one DST gap (at most two hours) of
// the transition, so a six-hour window is guaranteed to bracket it; the
// boundary is then found by bisection on the offset, to the second.
func transitionNear(approx time.Time, loc *time.Location) time.Time {
	lo := approx.Add(-3 * time.Hour).Unix()
	hi := approx.Add(3 * time.Hour).Unix()
	offAt := func(u int64) int {
		_, off := time.Unix(u, 0).In(loc).Zone()
		return off
	}
	offLo := offAt(lo)
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if offAt(mid) == offLo {
			lo = mid
		} else {
			hi = mid
		}
	}
	return time.Unix(hi, 0).In(loc)
}
