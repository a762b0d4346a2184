//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/leandrodaf/ump/sdk/contracts"
)

// ErrUnavailable is returned by every device operation of the dummy client.
var ErrUnavailable = errors.New("CoreMIDI is not available on this platform")

// DummyMIDIClient stands in for the CoreMIDI client on other systems.
type DummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient returns a client whose device operations fail with ErrUnavailable.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-macOS system")
	return &DummyMIDIClient{
		logger: options.Logger,
	}, nil
}

// ListDevices logs a warning and returns ErrUnavailable.
func (m *DummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, ErrUnavailable
}

// SelectDevice logs a warning and returns ErrUnavailable.
func (m *DummyMIDIClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy MIDI client", m.logger.Field().Int("deviceID", deviceID))
	return ErrUnavailable
}

// StartCapture logs a warning; no events are ever sent.
func (m *DummyMIDIClient) StartCapture(eventChannel chan contracts.Event) {
	m.logger.Warn("StartCapture called on dummy MIDI client")
}

// Stop logs a warning.
func (m *DummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI client")
	return nil
}
