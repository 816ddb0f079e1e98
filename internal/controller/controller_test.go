package controller_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wrenholt/autolight/internal/controller"
	"github.com/wrenholt/autolight/internal/models"
	"github.com/wrenholt/autolight/mocks"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
}

func remoteState() models.LightState {
	return models.LightState{
		Pins:  models.RGBPins{RPin: 25, GPin: 26, BPin: 27},
		Color: models.RGBColor{R: 10, G: 20, B: 30},
		Schedules: []models.Schedule{
			{Start: 1000, End: 2000, Color: models.RGBColor{R: 255}},
			{Start: 3000, End: 4000, Color: models.RGBColor{G: 255}, DaysActive: []string{"Friday"}},
		},
	}
}

func Test_Load(t *testing.T) {

	t.Run("replaces the draft wholesale", func(t *testing.T) {
		mockDevice := mocks.NewMockControllerDeviceAPI(t)
		mockDevice.On("GetLightState").Return(remoteState(), nil)

		c := controller.NewSyncController(quietLogger(), mockDevice)
		assert.False(t, c.Loaded())

		assert.NoError(t, c.Load())

		draft, ok := c.Draft()
		assert.True(t, ok)
		assert.Equal(t, remoteState(), draft)
	})

	t.Run("a failed load leaves the existing draft untouched", func(t *testing.T) {
		mockDevice := mocks.NewMockControllerDeviceAPI(t)
		mockDevice.On("GetLightState").Return(remoteState(), nil).Once()
		mockDevice.On("GetLightState").Return(models.LightState{}, errors.New("connection refused")).Once()

		c := controller.NewSyncController(quietLogger(), mockDevice)
		assert.NoError(t, c.Load())
		before, _ := c.Draft()

		assert.Error(t, c.Load())

		after, ok := c.Draft()
		assert.True(t, ok)
		assert.Equal(t, before, after)
	})

	t.Run("a reload re-adopts the schedule list with fresh identifiers", func(t *testing.T) {
		mockDevice := mocks.NewMockControllerDeviceAPI(t)
		mockDevice.On("GetLightState").Return(remoteState(), nil)

		c := controller.NewSyncController(quietLogger(), mockDevice)
		assert.NoError(t, c.Load())
		firstIDs := []string{c.Schedules()[0].ID, c.Schedules()[1].ID}

		assert.NoError(t, c.Load())
		assert.NotContains(t, firstIDs, c.Schedules()[0].ID)
		assert.NotContains(t, firstIDs, c.Schedules()[1].ID)
	})
}

func Test_MutationsBeforeLoad(t *testing.T) {

	mockDevice := mocks.NewMockControllerDeviceAPI(t)
	c := controller.NewSyncController(quietLogger(), mockDevice)

	assert.False(t, c.SetColor(models.RGBColor{R: 1}))
	assert.False(t, c.SetPins(models.RGBPins{RPin: 1}))
	_, ok := c.AddSchedule(models.Schedule{})
	assert.False(t, ok)
	assert.False(t, c.Mutate(func(*models.LightState) {}))

	_, err := c.Save()
	assert.ErrorIs(t, err, controller.ErrNotLoaded)
}

func Test_ScheduleMutations(t *testing.T) {

	mockDevice := mocks.NewMockControllerDeviceAPI(t)
	mockDevice.On("GetLightState").Return(remoteState(), nil)

	c := controller.NewSyncController(quietLogger(), mockDevice)
	assert.NoError(t, c.Load())

	added, ok := c.AddSchedule(models.Schedule{Start: 5000, End: 6000})
	assert.True(t, ok)
	assert.Len(t, c.Schedules(), 3)

	assert.True(t, c.UpdateSchedule(added.ID, func(s *models.Schedule) {
		s.Color = models.RGBColor{B: 128}
	}))
	entries := c.Schedules()
	assert.Equal(t, models.RGBColor{B: 128}, entries[2].Color)

	assert.True(t, c.RemoveSchedule(entries[0].ID))
	assert.Len(t, c.Schedules(), 2)
	// the surviving entries keep their identity
	assert.Equal(t, entries[1].ID, c.Schedules()[0].ID)
	assert.Equal(t, added.ID, c.Schedules()[1].ID)

	assert.False(t, c.UpdateSchedule("gone", func(*models.Schedule) {}))
}

func Test_Mutate(t *testing.T) {

	mockDevice := mocks.NewMockControllerDeviceAPI(t)
	mockDevice.On("GetLightState").Return(remoteState(), nil)

	c := controller.NewSyncController(quietLogger(), mockDevice)
	assert.NoError(t, c.Load())
	before := c.Schedules()

	assert.True(t, c.Mutate(func(state *models.LightState) {
		state.Color = models.RGBColor{R: 9}
		state.Schedules = append(state.Schedules, models.Schedule{Start: 7000, End: 8000})
	}))

	draft, _ := c.Draft()
	assert.Equal(t, models.RGBColor{R: 9}, draft.Color)
	after := c.Schedules()
	assert.Len(t, after, 3)
	// entries that kept their index keep their identifier
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[1].ID, after[1].ID)
}

func Test_Save(t *testing.T) {

	t.Run("transmits the identifier-stripped draft and returns the echo", func(t *testing.T) {
		mockDevice := mocks.NewMockControllerDeviceAPI(t)
		mockDevice.On("GetLightState").Return(remoteState(), nil)

		c := controller.NewSyncController(quietLogger(), mockDevice)
		assert.NoError(t, c.Load())
		c.SetColor(models.RGBColor{R: 200})

		expectedPayload := remoteState()
		expectedPayload.Color = models.RGBColor{R: 200}
		mockDevice.On("UpdateLightState", expectedPayload).Return(expectedPayload, nil)

		persisted, err := c.Save()
		assert.NoError(t, err)
		assert.Equal(t, expectedPayload, persisted)
	})

	t.Run("the draft after a failed save equals the draft before it", func(t *testing.T) {
		mockDevice := mocks.NewMockControllerDeviceAPI(t)
		mockDevice.On("GetLightState").Return(remoteState(), nil)
		mockDevice.On("UpdateLightState", mock.Anything).Return(models.LightState{}, errors.New("timeout"))

		c := controller.NewSyncController(quietLogger(), mockDevice)
		assert.NoError(t, c.Load())
		before, _ := c.Draft()

		_, err := c.Save()
		assert.Error(t, err)

		after, _ := c.Draft()
		assert.Equal(t, before, after)
	})

	t.Run("a second save while one is in flight is rejected", func(t *testing.T) {
		mockDevice := mocks.NewMockControllerDeviceAPI(t)
		mockDevice.On("GetLightState").Return(remoteState(), nil)

		entered := make(chan struct{})
		release := make(chan struct{})
		mockDevice.On("UpdateLightState", mock.Anything).
			Run(func(mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(remoteState(), nil).
			Once()

		c := controller.NewSyncController(quietLogger(), mockDevice)
		assert.NoError(t, c.Load())

		firstDone := make(chan error, 1)
		go func() {
			_, err := c.Save()
			firstDone <- err
		}()

		select {
		case <-entered:
		case <-time.After(5 * time.Second):
			t.Fatal("first save never reached the device")
		}

		_, err := c.Save()
		assert.ErrorIs(t, err, controller.ErrSaveInFlight)

		close(release)
		assert.NoError(t, <-firstDone)

		// the latch is released, saving works again
		mockDevice.On("UpdateLightState", mock.Anything).Return(remoteState(), nil).Once()
		_, err = c.Save()
		assert.NoError(t, err)
	})
}
