// Package weekly aggregates a week of shifts and coverage assignments into
// a per-day, per-scope report of where gaps remain.
package weekly

import (
	"fmt"
	"time"

	"github.com/sarahbetts/fieldrota/pkg/core/model"
	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
)

// Input is the immutable snapshot a report is built from. The output
// depends only on this snapshot and the anchor date, never on wall-clock
// now.
type Input struct {
	// WeekAnchor is any date inside the week of interest.
	WeekAnchor wallclock.LocalDate

	// Zone is the organization's timezone; week bounds and record dates are
	// interpreted in it.
	Zone *time.Location

	// AnchorWeekday is the configured first day of the coverage week.
	AnchorWeekday time.Weekday

	// Counties and Zones are the known geographic scopes. Every county
	// needs a dispatcher and every zone a zone lead, every day.
	Counties []string
	Zones    []string

	Shifts        []model.Shift
	Dispatchers   []model.DispatcherAssignment
	RegionalLeads []model.RegionalLeadAssignment
}

// DayCoverage is one local day's coverage. Nil slot values mean the slot
// is unfilled.
type DayCoverage struct {
	Date                wallclock.LocalDate
	RegionalLead        *model.RegionalLeadAssignment
	DispatchersByCounty map[string]*model.DispatcherAssignment
	ZoneLeadsByZone     map[string]*model.ConfirmedAssignment
	ShiftCount          int
}

// Report is a full week's coverage. It is computed on demand and never
// persisted.
type Report struct {
	WeekStart time.Time
	WeekEnd   time.Time // exclusive, start of day 8
	Days      []DayCoverage

	TotalShifts     int
	PositionsNeeded int

	// SkippedRecords counts input records whose date failed to parse. A
	// single malformed record leaves its slot unfilled instead of aborting
	// the whole week.
	SkippedRecords int
}

// Aggregate builds the weekly coverage report for the week containing
// in.WeekAnchor.
func Aggregate(in Input) (*Report, error) {
	if in.Zone == nil {
		return nil, &wallclock.InvalidTimeZoneError{Err: fmt.Errorf("nil location")}
	}
	if err := in.WeekAnchor.Validate(); err != nil {
		return nil, err
	}

	start, end, err := wallclock.WeekBounds(in.WeekAnchor, in.Zone, in.AnchorWeekday)
	if err != nil {
		return nil, err
	}
	startDate := wallclock.WeekStartDate(in.WeekAnchor, in.AnchorWeekday)

	report := &Report{
		WeekStart: start,
		WeekEnd:   end,
		Days:      make([]DayCoverage, 0, 7),
	}

	// Index records by local date up front, dropping malformed ones. Input
	// order within a date is preserved so first-match rules below are
	// deterministic.
	leadsByDate := make(map[wallclock.LocalDate][]model.RegionalLeadAssignment)
	for _, lead := range in.RegionalLeads {
		date, err := wallclock.ParseLocalDate(lead.Date)
		if err != nil {
			report.SkippedRecords++
			continue
		}
		leadsByDate[date] = append(leadsByDate[date], lead)
	}

	dispatchersByDate := make(map[wallclock.LocalDate][]model.DispatcherAssignment)
	for _, d := range in.Dispatchers {
		date, err := wallclock.ParseLocalDate(d.Date)
		if err != nil {
			report.SkippedRecords++
			continue
		}
		dispatchersByDate[date] = append(dispatchersByDate[date], d)
	}

	shiftsByDate := make(map[wallclock.LocalDate][]model.Shift)
	for _, shift := range in.Shifts {
		date, err := wallclock.ParseLocalDate(shift.Date)
		if err != nil {
			report.SkippedRecords++
			continue
		}
		shiftsByDate[date] = append(shiftsByDate[date], shift)
	}

	for i := 0; i < 7; i++ {
		date := startDate.AddDays(i)
		day := DayCoverage{
			Date:                date,
			DispatchersByCounty: make(map[string]*model.DispatcherAssignment, len(in.Counties)),
			ZoneLeadsByZone:     make(map[string]*model.ConfirmedAssignment, len(in.Zones)),
		}

		day.RegionalLead = pickRegionalLead(leadsByDate[date])
		if day.RegionalLead == nil {
			report.PositionsNeeded++
		}

		for _, county := range in.Counties {
			day.DispatchersByCounty[county] = pickDispatcher(dispatchersByDate[date], county)
			if day.DispatchersByCounty[county] == nil {
				report.PositionsNeeded++
			}
		}

		dayShifts := shiftsByDate[date]
		day.ShiftCount = len(dayShifts)
		report.TotalShifts += len(dayShifts)

		for _, zone := range in.Zones {
			day.ZoneLeadsByZone[zone] = pickZoneLead(dayShifts, zone)
			if day.ZoneLeadsByZone[zone] == nil {
				report.PositionsNeeded++
			}
		}

		report.Days = append(report.Days, day)
	}

	return report, nil
}

// pickRegionalLead prefers a primary assignment; otherwise the first one.
func pickRegionalLead(leads []model.RegionalLeadAssignment) *model.RegionalLeadAssignment {
	for i := range leads {
		if leads[i].IsPrimary {
			return &leads[i]
		}
	}
	if len(leads) > 0 {
		return &leads[0]
	}
	return nil
}

// pickDispatcher returns the first non-backup assignment for the county.
func pickDispatcher(dispatchers []model.DispatcherAssignment, county string) *model.DispatcherAssignment {
	for i := range dispatchers {
		if dispatchers[i].County == county && !dispatchers[i].IsBackup {
			return &dispatchers[i]
		}
	}
	return nil
}

// pickZoneLead returns the first confirmed lead assignment on any of the
// zone's shifts.
func pickZoneLead(shifts []model.Shift, zone string) *model.ConfirmedAssignment {
	for i := range shifts {
		if shifts[i].Zone != zone {
			continue
		}
		for j := range shifts[i].Assignments {
			if shifts[i].Assignments[j].IsLead {
				return &shifts[i].Assignments[j]
			}
		}
	}
	return nil
}
