package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// LocalDateTimeLayout is the editable representation of a timestamp,
// the same shape a datetime-local input produces.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// layout used when the seconds component has been omitted by an editor
const localDateTimeShortLayout = "2006-01-02T15:04"

// EpochToLocalDateTime renders device epoch seconds as an editable
// local date-time string.
func EpochToLocalDateTime(epoch int64) string {
	return time.Unix(epoch, 0).Local().Format(LocalDateTimeLayout)
}

// LocalDateTimeToEpoch is the inverse of EpochToLocalDateTime, truncating
// anything below one second. Round-tripping an epoch through the editable
// representation is lossless at second precision.
func LocalDateTimeToEpoch(s string) (int64, error) {
	t, err := time.ParseInLocation(LocalDateTimeLayout, s, time.Local)
	if err != nil {
		t, err = time.ParseInLocation(localDateTimeShortLayout, s, time.Local)
		if err != nil {
			return 0, fmt.Errorf("invalid local date-time %q: %w", s, err)
		}
	}
	return t.Unix(), nil
}

// IsPast reports whether the timestamp is strictly earlier than now.
// Callers pass a freshly sampled now, two calls either side of the
// boundary may disagree and that is accepted as timer jitter.
func IsPast(epoch int64, now time.Time) bool {
	return epoch < now.Unix()
}

// IsWithinAbsoluteWindow reports whether now falls inside [start, end].
// An end earlier than start is an empty window.
func IsWithinAbsoluteWindow(start, end int64, now time.Time) bool {
	n := now.Unix()
	return start <= n && n <= end
}

// SecondsOfDay projects a time onto seconds since local midnight.
func SecondsOfDay(t time.Time) int {
	local := t.Local()
	return local.Hour()*3600 + local.Minute()*60 + local.Second()
}

// IsWithinTimeOfDayWindow ignores the calendar dates of start and end and
// tests whether now's time of day falls between their times of day.
// A window that crosses local midnight (start 23:00, end 01:00) is never
// satisfied; the device behaves the same way so this is not corrected here.
func IsWithinTimeOfDayWindow(start, end int64, now time.Time) bool {
	startSecs := SecondsOfDay(time.Unix(start, 0))
	endSecs := SecondsOfDay(time.Unix(end, 0))
	nowSecs := SecondsOfDay(now)
	return startSecs <= nowSecs && nowSecs <= endSecs
}

// FormatDuration renders a duration in seconds as e.g. "1 day 2 hours 5 minutes".
// Leading zero units are dropped, units after the first are always shown.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var b strings.Builder
	if days > 0 {
		b.WriteString(pluralize(days, "day"))
	}
	if b.Len() > 0 || hours > 0 {
		b.WriteString(pluralize(hours, "hour"))
	}
	if b.Len() > 0 || minutes > 0 {
		b.WriteString(pluralize(minutes, "minute"))
	}
	b.WriteString(pluralize(secs, "second"))

	return strings.TrimSpace(b.String())
}

func pluralize(count int64, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s ", count, noun)
	}
	return fmt.Sprintf("%d %ss ", count, noun)
}
