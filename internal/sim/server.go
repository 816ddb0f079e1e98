package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/wrenholt/autolight/internal/constants"
	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/internal/schedule"
	"github.com/wrenholt/autolight/internal/timeutil"
)

// default pin assignments of the reference board
const (
	defaultRedPin   = 25
	defaultGreenPin = 26
	defaultBluePin  = 27
)

type stateRepo interface {
	Load() (models.LightState, bool, error)
	Save(state models.LightState) error
}

// Server simulates the light controller: it serves the firmware's REST
// surface, persists accepted state through the repo, executes schedules
// against its own clock and announces accepted updates on an SSE stream.
type Server struct {
	logger *log.Logger
	repo   stateRepo

	mu     sync.Mutex
	state  models.LightState
	output models.RGBColor

	// simulated device clock: real time plus the offset set via /rest/time
	clockOffset time.Duration
	ntpActive   bool

	events     *sse.Server
	httpServer *http.Server
}

func NewServer(logger *log.Logger, repo stateRepo) (*Server, error) {

	state, found, err := repo.Load()
	if err != nil {
		return nil, err
	}
	if !found {
		state = models.LightState{
			Pins:      models.RGBPins{RPin: defaultRedPin, GPin: defaultGreenPin, BPin: defaultBluePin},
			Schedules: []models.Schedule{},
		}
	}

	events := sse.New()
	events.AutoReplay = false
	events.CreateStream(constants.StateEventStream)

	return &Server{
		logger:    logger,
		repo:      repo,
		state:     state,
		output:    state.Color,
		ntpActive: viper.GetBool("sim.ntpActive"),
		events:    events,
	}, nil
}

// Handler returns the device's full HTTP surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+constants.RGBLightStatePath, s.handleGetState)
	mux.HandleFunc("POST "+constants.RGBLightStatePath, s.handleUpdateState)
	mux.HandleFunc("GET "+constants.NTPStatusPath, s.handleNTPStatus)
	mux.HandleFunc("POST "+constants.TimePath, s.handleSetTime)
	mux.HandleFunc("GET "+constants.EventsPath, s.events.ServeHTTP)

	return mux
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {

	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("simulator shutdown error", "err", err)
		}
	}()

	s.logger.Info("simulator listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// RunScheduler evaluates schedules once per second and drives the
// simulated PWM output, mirroring the firmware's main loop.
func (s *Server) RunScheduler(ctx context.Context) {
	ticker := time.NewTicker(constants.ScheduleApplyInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Server.RunScheduler: stop signal received")
			return
		case t := <-ticker.C:
			s.ApplyScheduleAt(t)
		}
	}
}

// Output returns the color the simulated PWM pins are currently driving.
func (s *Server) Output() models.RGBColor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// ApplyScheduleAt drives the output for a single instant: the first active
// schedule in array order wins, otherwise the base color applies.
func (s *Server) ApplyScheduleAt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deviceNow := t.Add(s.clockOffset)
	target := s.state.Color
	active, found := lo.Find(s.state.Schedules, func(sch models.Schedule) bool {
		return schedule.Classify(sch, deviceNow) == schedule.StatusActive
	})
	if found {
		target = active.Color
	}

	if target != s.output {
		s.output = target
		s.logger.Info("output changed",
			"r", target.R, "g", target.G, "b", target.B,
			"scheduled", found,
		)
	}
}

func (s *Server) handleGetState(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	state := s.state.Clone()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleUpdateState(w http.ResponseWriter, r *http.Request) {

	var next models.LightState
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed light state: %s", err))
		return
	}
	if next.Schedules == nil {
		next.Schedules = []models.Schedule{}
	}
	if err := validateState(next); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Save(next); err != nil {
		s.logger.Error("persisting light state failed", "err", err)
		writeError(w, http.StatusInternalServerError, "persistence failure")
		return
	}

	s.mu.Lock()
	s.state = next.Clone()
	persisted := s.state.Clone()
	s.mu.Unlock()

	s.publishStateChange(persisted)
	s.logger.Info("light state updated", "schedules", len(persisted.Schedules))

	// echo the state as persisted so the caller can confirm
	writeJSON(w, http.StatusOK, persisted)
}

func (s *Server) handleNTPStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	offset := s.clockOffset
	active := s.ntpActive
	s.mu.Unlock()

	status := models.NTPStatusInactive
	if active {
		status = models.NTPStatusActive
	}

	writeJSON(w, http.StatusOK, models.NTPStatus{
		Status:    status,
		LocalTime: timeutil.EpochToLocalDateTime(time.Now().Add(offset).Unix()),
	})
}

func (s *Server) handleSetTime(w http.ResponseWriter, r *http.Request) {

	var update models.TimeUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("malformed time update: %s", err))
		return
	}

	epoch, err := timeutil.LocalDateTimeToEpoch(update.LocalTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.clockOffset = time.Until(time.Unix(epoch, 0))
	s.mu.Unlock()

	s.logger.Info("device clock set", "local_time", update.LocalTime)
	writeJSON(w, http.StatusOK, models.TimeUpdate{LocalTime: update.LocalTime})
}

func (s *Server) publishStateChange(state models.LightState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("encoding state change event failed", "err", err)
		return
	}
	s.events.Publish(constants.StateEventStream, &sse.Event{Data: data})
}

func validateState(state models.LightState) error {
	if err := validateChannel("rPin", state.Pins.RPin); err != nil {
		return err
	}
	if err := validateChannel("gPin", state.Pins.GPin); err != nil {
		return err
	}
	if err := validateChannel("bPin", state.Pins.BPin); err != nil {
		return err
	}
	if err := validateColor(state.Color); err != nil {
		return err
	}
	for i, sch := range state.Schedules {
		if err := validateColor(sch.Color); err != nil {
			return fmt.Errorf("schedule %d: %w", i, err)
		}
	}
	return nil
}

func validateColor(c models.RGBColor) error {
	if err := validateChannel("r", c.R); err != nil {
		return err
	}
	if err := validateChannel("g", c.G); err != nil {
		return err
	}
	return validateChannel("b", c.B)
}

func validateChannel(name string, v int) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%s out of range: %d", name, v)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
