//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/ump/internal/midi/pipeline"
	"github.com/leandrodaf/ump/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid captures CoreMIDI sources on macOS and emits UMP events.
type ClientMid struct {
	logger         contracts.Logger
	eventChannel   atomic.Value              // Holds the chan contracts.Event events are sent to.
	client         coremidi.Client           // CoreMIDI client instance for MIDI operations.
	inputPort      coremidi.InputPort        // Input port for receiving MIDI bytes.
	portConn       internalPortConnection    // Connection to the MIDI port.
	pipeline       *pipeline.Pipeline        // Byte stream to UMP conversion.
	coreMIDIConfig *contracts.CoreMIDIConfig // Configuration for MIDI client.
	mu             sync.Mutex                // Mutex for thread safety on shared resources.
	capturing      bool                      // Indicates if event capturing is currently active.
	wg             sync.WaitGroup            // WaitGroup for in-flight packet handlers.
	stopOnce       sync.Once                 // Ensures Stop() is executed only once.
}

// NewMIDIClient initializes a new ClientMid for handling MIDI events on macOS.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	p, err := pipeline.New(options)
	if err != nil {
		return nil, err
	}
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created",
		options.Logger.Field().String("protocol", options.Protocol.String()),
		options.Logger.Field().Uint8("group", uint8(options.Group)))

	return &ClientMid{
		logger:         options.Logger,
		client:         client,
		pipeline:       p,
		coreMIDIConfig: options.CoreMIDIConfig,
	}, nil
}

// ListDevices retrieves and returns available MIDI devices.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			ID:           i,
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI device by ID and connects to it.
// If a device is already connected, it disconnects first.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error(), m.logger.Field().Int("deviceID", deviceID))
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.pipeline.SetSource(source.Name())
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "UMP Input Port", m.handlePacket)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error(), m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return nil
}

// handlePacket converts the bytes of a CoreMIDI packet list entry. CoreMIDI
// may split a message across packets, so the pipeline keeps parser state.
func (m *ClientMid) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	eventChannel, _ := m.eventChannel.Load().(chan contracts.Event)
	if eventChannel == nil {
		m.logger.Debug("Packet received before capture started; ignoring")
		return
	}

	for _, event := range m.pipeline.Process(packet.Data, time.Now().UTC()) {
		select {
		case eventChannel <- event:
		default:
			m.logger.Warn("Event buffer full; dropping UMP event",
				m.logger.Field().String("packet", event.Packet.String()))
		}
	}
}

// StartCapture begins sending UMP events to eventChannel.
// Ensures any ongoing capture is stopped before starting a new one.
func (m *ClientMid) StartCapture(eventChannel chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}

	if m.capturing {
		m.logger.Warn("Capture already started; replacing event channel")
	}

	m.logger.Info("Starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
	m.capturing = true
}

// Stop halts capturing, disconnects from the device, waits for in-flight
// handlers and closes the capture file. Only the first call has an effect.
func (m *ClientMid) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.portConn != nil {
			m.portConn.Disconnect()
			m.portConn = nil
		}
		if m.capturing {
			m.capturing = false
			// Store an unbuffered channel nobody reads so late handlers drop events.
			m.eventChannel.Store(make(chan contracts.Event))
			m.wg.Wait()
			m.logger.Info("MIDI capture stopped")
		}
		err = m.pipeline.Close()
	})
	return err
}
