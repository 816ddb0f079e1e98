package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/spf13/viper"
	"github.com/wrenholt/autolight/internal/models"
)

// SunWindow returns local sunrise and sunset for the configured geo
// location on the given date.
func SunWindow(baseDate time.Time) (time.Time, time.Time) {
	latLng := strings.Split(viper.GetString("geoLocation"), ",")
	var lat, lng float64
	if len(latLng) == 2 {
		lat, _ = strconv.ParseFloat(strings.TrimSpace(latLng[0]), 64)
		lng, _ = strconv.ParseFloat(strings.TrimSpace(latLng[1]), 64)
	}
	rise, set := sunrise.SunriseSunset(
		lat, lng,
		baseDate.Year(), baseDate.Month(), baseDate.Day(),
	)
	return rise.Local(), set.Local()
}

// EveningPreset builds a recurring schedule running every day from today's
// sunset until the end of the day, a common starting point for a new rule.
func EveningPreset(baseDate time.Time, color models.RGBColor) models.Schedule {
	_, set := SunWindow(baseDate)
	endOfDay := time.Date(baseDate.Year(), baseDate.Month(), baseDate.Day(), 23, 59, 59, 0, time.Local)

	days := make([]string, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days = append(days, d.String())
	}

	return models.Schedule{
		Start:      set.Unix(),
		End:        endOfDay.Unix(),
		Color:      color,
		DaysActive: days,
	}
}
