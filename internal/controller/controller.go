package controller

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"go.uber.org/atomic"

	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/internal/schedule"
)

var (
	// ErrNotLoaded is returned before the first successful Load
	ErrNotLoaded = errors.New("no light state loaded")
	// ErrLoadInFlight rejects a Load while one is outstanding
	ErrLoadInFlight = errors.New("load already in flight")
	// ErrSaveInFlight rejects a Save while one is outstanding, two concurrent
	// wire payloads must never interleave
	ErrSaveInFlight = errors.New("save already in flight")
)

type deviceAPI interface {
	GetLightState() (models.LightState, error)
	UpdateLightState(state models.LightState) (models.LightState, error)
}

// SyncController owns the in-memory draft of the device's light state.
// The draft is created wholesale by Load, mutated field-by-field by user
// actions and transmitted verbatim by Save. A failed network operation
// never touches the draft; retry is a user-initiated re-invocation.
type SyncController struct {
	logger *log.Logger
	device deviceAPI

	mu        sync.Mutex
	pins      models.RGBPins
	color     models.RGBColor
	schedules *schedule.List
	loaded    bool

	loading atomic.Bool
	saving  atomic.Bool
}

func NewSyncController(logger *log.Logger, device deviceAPI) *SyncController {
	return &SyncController{logger: logger, device: device}
}

// Load fetches the full aggregate and replaces the draft wholesale. The
// schedule list is re-adopted, so identifiers from a previous edit session
// do not survive a reload. On failure the existing draft is untouched.
func (c *SyncController) Load() error {
	if !c.loading.CompareAndSwap(false, true) {
		return ErrLoadInFlight
	}
	defer c.loading.Store(false)

	state, err := c.device.GetLightState()
	if err != nil {
		c.logger.Error("load failed", "err", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pins = state.Pins
	c.color = state.Color
	c.schedules = schedule.NewList(state.Schedules)
	c.loaded = true
	c.logger.Info("loaded light state", "schedules", c.schedules.Len())
	return nil
}

// Save transmits the current draft, identifier-stripped, and returns the
// state as the device persisted it. The draft is not adopted from the echo;
// it already equals the transmitted payload, and a subsequent Load remains
// the authoritative confirmation.
func (c *SyncController) Save() (models.LightState, error) {
	if !c.saving.CompareAndSwap(false, true) {
		return models.LightState{}, ErrSaveInFlight
	}
	defer c.saving.Store(false)

	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return models.LightState{}, ErrNotLoaded
	}
	payload := models.LightState{
		Pins:      c.pins,
		Color:     c.color,
		Schedules: c.schedules.Flatten(),
	}
	c.mu.Unlock()

	persisted, err := c.device.UpdateLightState(payload)
	if err != nil {
		c.logger.Error("save failed", "err", err)
		return models.LightState{}, err
	}
	c.logger.Info("saved light state", "schedules", len(persisted.Schedules))
	return persisted, nil
}

// Mutate applies a transformation to a copy of the whole draft and adopts
// the result. Schedule identifiers are reconciled positionally: entries at
// an existing index keep their identifier, appended entries are minted
// fresh ones. Typed mutations below are preferred, they address schedules
// by identifier. No-op before the first successful Load.
func (c *SyncController) Mutate(updater func(*models.LightState)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return false
	}

	state := models.LightState{
		Pins:      c.pins,
		Color:     c.color,
		Schedules: c.schedules.Flatten(),
	}.Clone()
	updater(&state)

	c.pins = state.Pins
	c.color = state.Color
	c.schedules.Reconcile(state.Schedules)
	return true
}

// SetColor updates the applied color.
func (c *SyncController) SetColor(color models.RGBColor) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return false
	}
	c.color = color
	return true
}

// SetPins updates the pin assignments. The admin capability check belongs
// to the caller; a non-admin surface simply never invokes this path.
func (c *SyncController) SetPins(pins models.RGBPins) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return false
	}
	c.pins = pins
	return true
}

// AddSchedule appends a schedule to the draft with a fresh identifier.
func (c *SyncController) AddSchedule(sch models.Schedule) (schedule.TrackedSchedule, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return schedule.TrackedSchedule{}, false
	}
	return c.schedules.Add(sch), true
}

// UpdateSchedule patches the schedule with the given identifier.
func (c *SyncController) UpdateSchedule(id string, patch func(*models.Schedule)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return false
	}
	return c.schedules.Update(id, patch)
}

// RemoveSchedule deletes the schedule with the given identifier.
func (c *SyncController) RemoveSchedule(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return false
	}
	return c.schedules.Remove(id)
}

// Draft returns a copy of the current draft in wire shape, or false when
// nothing has been loaded yet.
func (c *SyncController) Draft() (models.LightState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return models.LightState{}, false
	}
	return models.LightState{
		Pins:      c.pins,
		Color:     c.color,
		Schedules: c.schedules.Flatten(),
	}, true
}

// Schedules returns the tracked schedule entries in array order.
func (c *SyncController) Schedules() []schedule.TrackedSchedule {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return nil
	}
	return c.schedules.Entries()
}

// Loaded reports whether a draft exists.
func (c *SyncController) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
