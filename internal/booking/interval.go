// Package booking holds the pure parts of the booking-consistency core:
// interval overlap math shared by the availability check and its tests.
package booking

import "time"

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [cStart, cEnd) intersect. Touching endpoints (aEnd == cStart) do not
// overlap, so a return on Jan 5 never blocks a pickup on Jan 5.
func Overlaps(aStart, aEnd, cStart, cEnd time.Time) bool {
	return aStart.Before(cEnd) && cStart.Before(aEnd)
}

// OverlapsThreeClause is the legacy formulation the stored conflict queries
// use: start-in-range OR end-in-range OR fully-containing, with strict
// bounds. It is logically equivalent to Overlaps for well-formed ranges;
// the equivalence is pinned by property tests.
func OverlapsThreeClause(aStart, aEnd, cStart, cEnd time.Time) bool {
	startInRange := !cStart.Before(aStart) && cStart.Before(aEnd)
	endInRange := cEnd.After(aStart) && !cEnd.After(aEnd)
	containing := cStart.Before(aStart) && cEnd.After(aEnd)
	return startInRange || endInRange || containing
}

// OverlapWindow returns the intersection of two overlapping ranges. The
// zero times are returned when the ranges do not overlap.
func OverlapWindow(aStart, aEnd, cStart, cEnd time.Time) (time.Time, time.Time) {
	if !Overlaps(aStart, aEnd, cStart, cEnd) {
		return time.Time{}, time.Time{}
	}
	start := aStart
	if cStart.After(start) {
		start = cStart
	}
	end := aEnd
	if cEnd.Before(end) {
		end = cEnd
	}
	return start, end
}
