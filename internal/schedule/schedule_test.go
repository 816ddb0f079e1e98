package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/internal/schedule"
)

func Test_Classify_OneShot(t *testing.T) {

	start := time.Date(2023, 6, 1, 9, 0, 0, 0, time.Local)
	sch := models.Schedule{
		Start: start.Unix(),
		End:   start.Unix() + 3600,
		Color: models.RGBColor{R: 255},
	}

	tests := []struct {
		name     string
		now      time.Time
		expected schedule.Status
	}{
		{name: "well before the window", now: start.Add(-24 * time.Hour), expected: schedule.StatusPending},
		{name: "one second before start", now: start.Add(-time.Second), expected: schedule.StatusPending},
		{name: "at start", now: start, expected: schedule.StatusActive},
		{name: "inside the window", now: start.Add(30 * time.Minute), expected: schedule.StatusActive},
		{name: "at end", now: start.Add(time.Hour), expected: schedule.StatusActive},
		{name: "one second after end", now: start.Add(time.Hour + time.Second), expected: schedule.StatusStale},
		{name: "long after the window", now: start.Add(400 * 24 * time.Hour), expected: schedule.StatusStale},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, schedule.Classify(sch, test.now))
		})
	}
}

func Test_Classify_Recurring(t *testing.T) {

	// calendar dates years before "now": only the 09:00-17:00 time of day
	// and the weekday list may influence the result
	sch := models.Schedule{
		Start:      time.Date(2020, 1, 6, 9, 0, 0, 0, time.Local).Unix(),
		End:        time.Date(2020, 1, 6, 17, 0, 0, 0, time.Local).Unix(),
		Color:      models.RGBColor{G: 255},
		DaysActive: []string{"Monday"},
	}

	// 2023-06-05 is a Monday, 2023-06-06 a Tuesday
	tests := []struct {
		name     string
		now      time.Time
		expected schedule.Status
	}{
		{name: "monday inside the time window", now: time.Date(2023, 6, 5, 12, 0, 0, 0, time.Local), expected: schedule.StatusActive},
		{name: "monday at window start", now: time.Date(2023, 6, 5, 9, 0, 0, 0, time.Local), expected: schedule.StatusActive},
		{name: "monday at window end", now: time.Date(2023, 6, 5, 17, 0, 0, 0, time.Local), expected: schedule.StatusActive},
		{name: "monday before the time window", now: time.Date(2023, 6, 5, 8, 59, 59, 0, time.Local), expected: schedule.StatusPending},
		{name: "monday after the time window", now: time.Date(2023, 6, 5, 17, 0, 1, 0, time.Local), expected: schedule.StatusPending},
		{name: "tuesday inside the time window", now: time.Date(2023, 6, 6, 12, 0, 0, 0, time.Local), expected: schedule.StatusPending},
		// never stale, no matter how far past the calendar dates are
		{name: "years later on a non-matching day", now: time.Date(2031, 6, 4, 12, 0, 0, 0, time.Local), expected: schedule.StatusPending},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, schedule.Classify(sch, test.now))
		})
	}

	t.Run("active inside the absolute window regardless of weekday", func(t *testing.T) {
		// 2020-01-06 was a Monday but the absolute window check fires first,
		// so any now inside [start, end] is active
		now := time.Date(2020, 1, 6, 10, 0, 0, 0, time.Local)
		assert.Equal(t, schedule.StatusActive, schedule.Classify(sch, now))
	})

	t.Run("unknown day names never match", func(t *testing.T) {
		bad := sch
		bad.DaysActive = []string{"Funday", "monday"} // names are case-sensitive
		now := time.Date(2023, 6, 5, 12, 0, 0, 0, time.Local)
		assert.Equal(t, schedule.StatusPending, schedule.Classify(bad, now))
	})
}

func Test_Classify_EveryDay(t *testing.T) {

	days := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days = append(days, d.String())
	}

	sch := models.Schedule{
		Start:      time.Date(2020, 1, 1, 22, 0, 0, 0, time.Local).Unix(),
		End:        time.Date(2020, 1, 1, 23, 0, 0, 0, time.Local).Unix(),
		DaysActive: days,
	}

	assert.Equal(t, schedule.StatusActive, schedule.Classify(sch, time.Date(2023, 6, 3, 22, 30, 0, 0, time.Local)))
	assert.Equal(t, schedule.StatusPending, schedule.Classify(sch, time.Date(2023, 6, 3, 12, 0, 0, 0, time.Local)))
}
