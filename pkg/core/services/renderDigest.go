package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
	"github.com/sarahbetts/fieldrota/pkg/core/weekly"
)

const unfilledMarker = "UNFILLED"

// RenderDigest renders a weekly coverage report as plain text suitable for
// the digest email body. Counties and zones are emitted in sorted order so
// identical reports render identically.
func RenderDigest(report *weekly.Report) string {
	var b strings.Builder

	weekStart := report.Days[0].Date
	fmt.Fprintf(&b, "Coverage digest for week of %s\n", weekStart)
	fmt.Fprintf(&b, "%d shifts scheduled, %d positions unfilled\n", report.TotalShifts, report.PositionsNeeded)
	if report.SkippedRecords > 0 {
		fmt.Fprintf(&b, "Warning: %d records could not be read and were skipped\n", report.SkippedRecords)
	}

	for _, day := range report.Days {
		fmt.Fprintf(&b, "\n%s %s (%d shifts)\n", wallclock.DayOfWeek(day.Date).String()[:3], day.Date, day.ShiftCount)

		if day.RegionalLead != nil {
			fmt.Fprintf(&b, "  Regional lead: %s\n", day.RegionalLead.VolunteerID)
		} else {
			fmt.Fprintf(&b, "  Regional lead: %s\n", unfilledMarker)
		}

		for _, county := range sortedKeys(day.DispatchersByCounty) {
			if d := day.DispatchersByCounty[county]; d != nil {
				fmt.Fprintf(&b, "  Dispatcher, %s: %s\n", county, d.VolunteerID)
			} else {
				fmt.Fprintf(&b, "  Dispatcher, %s: %s\n", county, unfilledMarker)
			}
		}

		for _, zone := range sortedKeys(day.ZoneLeadsByZone) {
			if lead := day.ZoneLeadsByZone[zone]; lead != nil {
				fmt.Fprintf(&b, "  Zone lead, %s: %s\n", zone, lead.VolunteerID)
			} else {
				fmt.Fprintf(&b, "  Zone lead, %s: %s\n", zone, unfilledMarker)
			}
		}
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
