package device

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/wrenholt/autolight/internal/constants"
	"github.com/wrenholt/autolight/internal/models"
)

var (
	// ErrNetwork covers transport failures and timeouts
	ErrNetwork = errors.New("device unreachable")
	// ErrDecode covers malformed response bodies
	ErrDecode = errors.New("malformed device response")
	// ErrValidation means the device rejected the submitted state
	ErrValidation = errors.New("device rejected request")
)

// DeviceAPIService wraps the light controller's REST surface.
// The device address is read from config on every request so the panel
// follows a config change without a restart.
type DeviceAPIService struct {
	logger *log.Logger
	client *http.Client
}

func NewDeviceAPIService(logger *log.Logger) *DeviceAPIService {
	return &DeviceAPIService{
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetLightState reads the full light state aggregate from the device.
func (d *DeviceAPIService) GetLightState() (models.LightState, error) {
	var state models.LightState

	body, err := d.get(constants.RGBLightStatePath)
	if err != nil {
		return state, err
	}
	if err := json.Unmarshal(body, &state); err != nil {
		return state, fmt.Errorf("%w: %s", ErrDecode, err)
	}
	return state, nil
}

// UpdateLightState replaces the device's light state wholesale and returns
// the state as the device persisted it.
func (d *DeviceAPIService) UpdateLightState(state models.LightState) (models.LightState, error) {
	var persisted models.LightState

	payload, err := json.Marshal(state)
	if err != nil {
		return persisted, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	body, err := d.post(constants.RGBLightStatePath, payload)
	if err != nil {
		return persisted, err
	}
	if err := json.Unmarshal(body, &persisted); err != nil {
		return persisted, fmt.Errorf("%w: %s", ErrDecode, err)
	}
	return persisted, nil
}

// GetNTPStatus reads the device's time sync status.
func (d *DeviceAPIService) GetNTPStatus() (models.NTPStatus, error) {
	var status models.NTPStatus

	body, err := d.get(constants.NTPStatusPath)
	if err != nil {
		return status, err
	}
	if err := json.Unmarshal(body, &status); err != nil {
		return status, fmt.Errorf("%w: %s", ErrDecode, err)
	}
	return status, nil
}

// SetTime pushes a local date-time string onto the device clock, used when
// the device has no working NTP source.
func (d *DeviceAPIService) SetTime(localTime string) error {
	payload, err := json.Marshal(models.TimeUpdate{LocalTime: localTime})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	_, err = d.post(constants.TimePath, payload)
	return err
}

func (d *DeviceAPIService) get(path string) ([]byte, error) {
	return d.makeRequest(http.MethodGet, path, nil)
}

func (d *DeviceAPIService) post(path string, body []byte) ([]byte, error) {
	return d.makeRequest(http.MethodPost, path, body)
}

func (d *DeviceAPIService) makeRequest(verb string, path string, body []byte) ([]byte, error) {

	url := fmt.Sprintf("http://%s%s", viper.GetString("deviceAddress"), path)
	req, err := http.NewRequest(verb, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNetwork, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error("device request failed", "verb", verb, "path", path, "err", err)
		return nil, fmt.Errorf("%w: %s", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		responseBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNetwork, err)
		}
		return responseBody, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		d.logger.Error("device rejected request", "verb", verb, "path", path, "status", resp.Status)
		return nil, fmt.Errorf("%w: %s", ErrValidation, resp.Status)
	default:
		d.logger.Error("unexpected device response", "verb", verb, "path", path, "status", resp.Status)
		return nil, fmt.Errorf("%w: %s", ErrNetwork, resp.Status)
	}
}
