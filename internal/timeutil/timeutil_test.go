package timeutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wrenholt/autolight/internal/timeutil"
)

func Test_EpochLocalDateTimeRoundTrip(t *testing.T) {

	epochs := []int64{
		0,
		1000,
		1672531200, // 2023-01-01 00:00:00 UTC
		1672574400,
		1893456000,
		time.Now().Unix(),
	}

	for _, e := range epochs {
		editable := timeutil.EpochToLocalDateTime(e)
		back, err := timeutil.LocalDateTimeToEpoch(editable)
		assert.NoError(t, err)
		assert.Equal(t, e, back, "round trip through %q", editable)
	}
}

func Test_LocalDateTimeToEpoch(t *testing.T) {

	t.Run("accepts values without seconds", func(t *testing.T) {
		withSeconds, err := timeutil.LocalDateTimeToEpoch("2023-06-01T09:30:00")
		assert.NoError(t, err)
		withoutSeconds, err := timeutil.LocalDateTimeToEpoch("2023-06-01T09:30")
		assert.NoError(t, err)
		assert.Equal(t, withSeconds, withoutSeconds)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := timeutil.LocalDateTimeToEpoch("not a time")
		assert.Error(t, err)
	})
}

func Test_IsPast(t *testing.T) {

	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		epoch    int64
		expected bool
	}{
		{name: "one second earlier", epoch: now.Unix() - 1, expected: true},
		{name: "exactly now", epoch: now.Unix(), expected: false},
		{name: "one second later", epoch: now.Unix() + 1, expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, timeutil.IsPast(test.epoch, now))
		})
	}
}

func Test_IsWithinAbsoluteWindow(t *testing.T) {

	start := time.Date(2023, 6, 1, 9, 0, 0, 0, time.Local)
	end := start.Add(time.Hour)

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{name: "before window", now: start.Add(-time.Second), expected: false},
		{name: "window start", now: start, expected: true},
		{name: "inside window", now: start.Add(30 * time.Minute), expected: true},
		{name: "window end", now: end, expected: true},
		{name: "after window", now: end.Add(time.Second), expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, timeutil.IsWithinAbsoluteWindow(start.Unix(), end.Unix(), test.now))
		})
	}

	t.Run("end before start is an empty window", func(t *testing.T) {
		assert.False(t, timeutil.IsWithinAbsoluteWindow(end.Unix(), start.Unix(), start.Add(30*time.Minute)))
	})
}

func Test_IsWithinTimeOfDayWindow(t *testing.T) {

	// the calendar date of the window is years before "now" on purpose,
	// only the time of day may matter
	start := time.Date(2020, 1, 6, 9, 0, 0, 0, time.Local)
	end := time.Date(2020, 1, 6, 17, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{name: "before start of day window", now: time.Date(2023, 6, 1, 8, 59, 59, 0, time.Local), expected: false},
		{name: "at window start", now: time.Date(2023, 6, 1, 9, 0, 0, 0, time.Local), expected: true},
		{name: "middle of window", now: time.Date(2023, 6, 1, 13, 0, 0, 0, time.Local), expected: true},
		{name: "at window end", now: time.Date(2023, 6, 1, 17, 0, 0, 0, time.Local), expected: true},
		{name: "after window", now: time.Date(2023, 6, 1, 17, 0, 1, 0, time.Local), expected: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, timeutil.IsWithinTimeOfDayWindow(start.Unix(), end.Unix(), test.now))
		})
	}

	t.Run("window crossing midnight is never satisfied", func(t *testing.T) {
		lateStart := time.Date(2020, 1, 6, 23, 0, 0, 0, time.Local)
		earlyEnd := time.Date(2020, 1, 7, 1, 0, 0, 0, time.Local)
		assert.False(t, timeutil.IsWithinTimeOfDayWindow(lateStart.Unix(), earlyEnd.Unix(), time.Date(2023, 6, 1, 23, 30, 0, 0, time.Local)))
		assert.False(t, timeutil.IsWithinTimeOfDayWindow(lateStart.Unix(), earlyEnd.Unix(), time.Date(2023, 6, 1, 0, 30, 0, 0, time.Local)))
	})
}

func Test_FormatDuration(t *testing.T) {

	tests := []struct {
		seconds  int64
		expected string
	}{
		{seconds: 0, expected: "0 seconds"},
		{seconds: 1, expected: "1 second"},
		{seconds: 61, expected: "1 minute 1 second"},
		{seconds: 3600, expected: "1 hour 0 minutes 0 seconds"},
		{seconds: 90061, expected: "1 day 1 hour 1 minute 1 second"},
		{seconds: 172800, expected: "2 days 0 hours 0 minutes 0 seconds"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, timeutil.FormatDuration(test.seconds))
		})
	}
}
