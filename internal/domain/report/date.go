// internal/domain/report/date.go
package report

import (
	"errors"
	"time"
)

// ErrNoCalendarDate indicates that a month/day pair has no valid calendar
// resolution within the ±1-year window around the reference date
// (e.g. 2/29 when none of the three candidate years is a leap year).
var ErrNoCalendarDate = errors.New("no valid calendar date within the resolution window")

// Direction tells whether a resolved date lies before or after the reference date.
type Direction int

const (
	DirectionPast   Direction = iota // strictly before the reference day
	DirectionFuture                  // the reference day itself, or later
)

// ResolvedDate is a month/day pair pinned to a concrete calendar year.
type ResolvedDate struct {
	Date      time.Time
	Weekday   int // Monday=0 .. Sunday=6
	Direction Direction
}

// ResolveDate picks the calendar year for a year-less month/day pair.
// Candidates are the reference year and its two neighbors; invalid calendar
// dates (2/30, 2/29 in a common year, month 13) are discarded. Among the
// valid candidates the one closest to the reference date wins; on a tie the
// earlier candidate is kept.
func ResolveDate(month, day int, reference time.Time) (ResolvedDate, error) {
	refDay := truncateToDay(reference)

	var best time.Time
	bestDist := -1
	for year := reference.Year() - 1; year <= reference.Year()+1; year++ {
		candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, reference.Location())
		// time.Date normalizes overflow (2/30 becomes 3/1), so a candidate
		// is valid only if it round-trips to the requested month/day.
		if int(candidate.Month()) != month || candidate.Day() != day {
			continue
		}
		dist := absDays(candidate.Sub(refDay))
		if bestDist < 0 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}
	if bestDist < 0 {
		return ResolvedDate{}, ErrNoCalendarDate
	}

	direction := DirectionFuture
	if best.Before(refDay) {
		direction = DirectionPast
	}

	return ResolvedDate{
		Date: best,
		// time.Weekday is Sunday-first; rotate to Monday=0.
		Weekday:   (int(best.Weekday()) + 6) % 7,
		Direction: direction,
	}, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func absDays(d time.Duration) int {
	days := int(d.Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}
