package ntp

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wrenholt/autolight/internal/constants"
	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/internal/timeutil"
)

type deviceAPI interface {
	GetNTPStatus() (models.NTPStatus, error)
	SetTime(localTime string) error
}

// TimeSyncService keeps the device clock roughly correct when the device
// has no NTP source. While the device reports NTP as active it does
// nothing; when NTP is inactive and the device clock has drifted more than
// a minute from the panel's clock, the panel's local time is pushed to the
// device. The draft is never involved.
type TimeSyncService struct {
	logger *log.Logger
	device deviceAPI
}

func NewTimeSyncService(logger *log.Logger, device deviceAPI) *TimeSyncService {
	return &TimeSyncService{logger: logger, device: device}
}

// Run checks periodically until the context is cancelled.
func (s *TimeSyncService) Run(ctx context.Context) {
	ticker := time.NewTicker(constants.TimeSyncInterval)
	defer ticker.Stop()

	// first check straight away
	if err := s.CheckOnce(time.Now()); err != nil {
		s.logger.Warn("time sync check failed", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("TimeSyncService.Run: stop signal received")
			return
		case t := <-ticker.C:
			if err := s.CheckOnce(t); err != nil {
				s.logger.Warn("time sync check failed", "err", err)
			}
		}
	}
}

// CheckOnce performs a single status read and, if needed, a time set.
func (s *TimeSyncService) CheckOnce(now time.Time) error {

	status, err := s.device.GetNTPStatus()
	if err != nil {
		return err
	}

	if status.Status != models.NTPStatusInactive {
		return nil
	}

	deviceEpoch, err := timeutil.LocalDateTimeToEpoch(status.LocalTime)
	if err != nil {
		// an unreadable clock is corrected rather than skipped
		s.logger.Warn("device reported an unreadable local time, correcting", "local_time", status.LocalTime)
		return s.setToPanelTime(now)
	}

	drift := now.Sub(time.Unix(deviceEpoch, 0))
	if drift < 0 {
		drift = -drift
	}
	if drift <= constants.TimeDriftTolerance {
		return nil
	}

	s.logger.Info("device clock drifted with NTP inactive, correcting", "drift", drift)
	return s.setToPanelTime(now)
}

func (s *TimeSyncService) setToPanelTime(now time.Time) error {
	return s.device.SetTime(timeutil.EpochToLocalDateTime(now.Unix()))
}
