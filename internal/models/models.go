package models

// RGBColor holds the intensity of each channel (0-255).
// Out of range values are a caller error, the panel never clamps them.
type RGBColor struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// RGBPins names the hardware pin driving each channel.
// Editing these is gated behind the admin flag in config.
type RGBPins struct {
	RPin int `json:"rPin"`
	GPin int `json:"gPin"`
	BPin int `json:"bPin"`
}

// Schedule is one scheduling rule as the device stores it.
// Start/End are epoch seconds on the device clock.
//
// An empty DaysActive means the schedule is one-shot: it fires once within
// its absolute [Start, End] window and never again. A non-empty DaysActive
// means it recurs on the listed weekdays within the time-of-day window
// derived from Start/End, the calendar date is ignored.
//
// A schedule has no identity on the wire, only its position in the list.
type Schedule struct {
	Start      int64    `json:"start"`
	End        int64    `json:"end"`
	Color      RGBColor `json:"color"`
	DaysActive []string `json:"daysActive"`
}

// IsRecurring reports whether the schedule recurs on at least one weekday.
func (s Schedule) IsRecurring() bool {
	return len(s.DaysActive) > 0
}

// LightState is the full aggregate synced with the device in one round trip.
type LightState struct {
	Pins      RGBPins    `json:"pins"`
	Color     RGBColor   `json:"color"`
	Schedules []Schedule `json:"schedules"`
}

// Clone returns a deep copy, the schedule slice is never shared.
func (l LightState) Clone() LightState {
	out := l
	out.Schedules = make([]Schedule, len(l.Schedules))
	copy(out.Schedules, l.Schedules)
	for i, s := range l.Schedules {
		if s.DaysActive != nil {
			days := make([]string, len(s.DaysActive))
			copy(days, s.DaysActive)
			out.Schedules[i].DaysActive = days
		}
	}
	return out
}

const (
	NTPStatusActive   = "ACTIVE"
	NTPStatusInactive = "INACTIVE"
)

// NTPStatus is the device's report of its time source.
type NTPStatus struct {
	Status    string `json:"status"`
	LocalTime string `json:"local_time"`
}

// TimeUpdate sets the device clock when NTP is unavailable.
type TimeUpdate struct {
	LocalTime string `json:"local_time"`
}
