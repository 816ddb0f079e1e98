package schedule

import (
	"time"

	"github.com/samber/lo"
	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/internal/timeutil"
)

// Status is the display classification of a schedule at an instant.
type Status int

const (
	// StatusPending schedules have not fired yet
	StatusPending Status = iota
	// StatusActive schedules are being applied by the device right now
	StatusActive
	// StatusStale schedules are one-shots whose window has passed
	StatusStale
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusStale:
		return "stale"
	default:
		return "pending"
	}
}

// Classify determines whether a schedule is active, stale or pending at the
// given instant. Callers sample now themselves (the panel passes the current
// tick) so the result is re-derived on every refresh, never cached.
//
// A one-shot schedule is active inside its absolute [Start, End] window and
// permanently stale once End has passed. A recurring schedule is active
// inside its absolute window or on any listed weekday within its
// time-of-day window; it is never stale, however old its calendar dates are,
// because recurrence ignores the date component entirely. Day names outside
// the canonical weekday set simply never match today.
func Classify(sch models.Schedule, now time.Time) Status {

	if !sch.IsRecurring() {
		switch {
		case timeutil.IsWithinAbsoluteWindow(sch.Start, sch.End, now):
			return StatusActive
		case timeutil.IsPast(sch.End, now):
			return StatusStale
		default:
			return StatusPending
		}
	}

	if timeutil.IsWithinAbsoluteWindow(sch.Start, sch.End, now) {
		return StatusActive
	}

	today := now.Local().Weekday().String()
	if lo.Contains(sch.DaysActive, today) && timeutil.IsWithinTimeOfDayWindow(sch.Start, sch.End, now) {
		return StatusActive
	}

	return StatusPending
}
