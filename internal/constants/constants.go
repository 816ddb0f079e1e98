package constants

import "time"

// device REST endpoints
const (
	RGBLightStatePath = "/rest/rgbLightState"
	NTPStatusPath     = "/rest/ntpStatus"
	TimePath          = "/rest/time"
	EventsPath        = "/events"
)

// name of the SSE stream the simulator publishes state changes on
const StateEventStream = "state"

// how often the panel re-derives schedule activity for display
const ActivityRefreshInterval = time.Second

// how often the simulator evaluates schedules against its clock
const ScheduleApplyInterval = time.Second

const TimeSyncInterval = time.Minute

// device clock drift beyond this triggers an automatic time set
const TimeDriftTolerance = time.Minute
