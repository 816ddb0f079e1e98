package device

import (
	"fmt"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/spf13/viper"
	"github.com/wrenholt/autolight/internal/constants"
)

// DeviceEventConsumer listens to the device's state change stream so the
// panel can hint that the draft is behind the device. It is display-only,
// a received event never mutates the draft.
type DeviceEventConsumer struct {
	Logger *log.Logger

	client       *sse.Client
	eventChannel chan *sse.Event
}

func NewDeviceEventConsumer(logger *log.Logger) *DeviceEventConsumer {
	return &DeviceEventConsumer{Logger: logger}
}

func (d *DeviceEventConsumer) Subscribe(eventChannel chan *sse.Event) {

	d.eventChannel = eventChannel
	d.client = sse.NewClient(fmt.Sprintf("http://%s%s", viper.GetString("deviceAddress"), constants.EventsPath))

	d.client.OnConnect(func(_ *sse.Client) {
		d.Logger.Info("Connected to device, listening for state changes...")
	})
	d.client.OnDisconnect(func(_ *sse.Client) {
		d.Logger.Info("Disconnected from device")
	})

	if err := d.client.SubscribeChan(constants.StateEventStream, d.eventChannel); err != nil {
		d.Logger.Errorf("error subscribing to device state changes: %s", err)
	}
}

func (d *DeviceEventConsumer) Unsubscribe() {
	d.Logger.Debug("Unsubscribe device events")
	if d.client != nil {
		d.client.Unsubscribe(d.eventChannel)
	}
}
