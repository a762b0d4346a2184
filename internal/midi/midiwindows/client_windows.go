//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/leandrodaf/ump/internal/midi/pipeline"
	"github.com/leandrodaf/ump/sdk/bytestream"
	"github.com/leandrodaf/ump/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_LONGDATA  = 0x3C4 // System exclusive buffer received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

var (
	ErrNoMIDIDevices  = errors.New("no MIDI devices found")
	ErrInvalidHandle  = errors.New("invalid MIDI device handle")
	ErrDeviceNotReady = errors.New("no MIDI device selected")
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid captures winmm MIDI input on Windows and emits UMP events.
type ClientMid struct {
	logger       contracts.Logger
	eventChannel atomic.Value
	handle       HMIDIIN
	portConn     bool
	mu           sync.Mutex
	callback     uintptr
	pipeline     *pipeline.Pipeline
	devices      []contracts.DeviceInfo
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	p, err := pipeline.New(options)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client created for Windows",
		options.Logger.Field().String("protocol", options.Protocol.String()),
		options.Logger.Field().Uint8("group", uint8(options.Group)))

	return &ClientMid{
		logger:   options.Logger,
		pipeline: p,
	}, nil
}

// ListDevices lists the available MIDI devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get MIDI device information", m.logger.Field().Uint32("device", i))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			ID:           int(i),
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}

	m.mu.Lock()
	m.devices = devices
	m.mu.Unlock()
	return devices, nil
}

// SelectDevice selects a MIDI device
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.portConn {
		if err := m.stopCapture(); err != nil {
			return fmt.Errorf("failed to stop previous MIDI capture: %w", err)
		}
	}

	name := fmt.Sprintf("winmm:%d", deviceID)
	if deviceID >= 0 && deviceID < len(m.devices) && m.devices[deviceID].Name != "" {
		name = m.devices[deviceID].Name
	}
	m.pipeline.SetSource(name)

	m.callback = windows.NewCallback(midiInCallback)
	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS

	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		m.callback,
		uintptr(unsafe.Pointer(m)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		m.logger.Error("Failed to open MIDI device",
			m.logger.Field().Int("deviceID", deviceID),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("failed to open MIDI device %d: %v", deviceID, err)
	}

	m.portConn = true
	m.logger.Info("MIDI device connected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", name))
	return nil
}

// StartCapture initializes MIDI event capture
func (m *ClientMid) StartCapture(eventChannel chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		m.logger.Error("Cannot start capture", m.logger.Field().Error("error", ErrDeviceNotReady))
		return
	}

	if ch, ok := m.eventChannel.Load().(chan contracts.Event); ok && ch != nil {
		m.logger.Warn("Capture already started")
		return
	}

	if m.handle == 0 {
		m.logger.Error(ErrInvalidHandle.Error())
		return
	}

	m.eventChannel.Store(eventChannel)

	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
		return
	}

	m.logger.Info("MIDI capture started")
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		m.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Info("MIDI device closed")
	case MIM_DATA, MIM_MOREDATA:
		msg, err := bytestream.Unpack(uint32(dwParam1))
		if err != nil {
			m.logger.Debug("Ignoring short message", m.logger.Field().Error("error", err))
			return 0
		}
		m.send(m.pipeline.ProcessMessage(msg, time.Now().UTC()))
	case MIM_LONGDATA:
		m.logger.Debug("SysEx buffers are not registered; ignoring MIM_LONGDATA")
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI error", m.logger.Field().Uint32("msg", wMsg))
	default:
		m.logger.Warn("Unknown MIDI message", m.logger.Field().Uint32("msg", wMsg))
	}

	return 0
}

func (m *ClientMid) send(events []contracts.Event) {
	ch, ok := m.eventChannel.Load().(chan contracts.Event)
	if !ok || ch == nil {
		return
	}
	for _, event := range events {
		select {
		case ch <- event:
		default:
			m.logger.Warn("MIDI event channel is full; event discarded",
				m.logger.Field().String("packet", event.Packet.String()))
		}
	}
}

// Stop terminates MIDI event capture, disconnects the device and closes the
// capture file.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.portConn {
		if err := m.stopCapture(); err != nil {
			return fmt.Errorf("failed to stop MIDI capture: %w", err)
		}
		m.logger.Info("MIDI capture stopped and device closed")
	} else {
		m.logger.Warn("No MIDI device is connected")
	}
	return m.pipeline.Close()
}

// stopCapture stops the capture and releases resources
func (m *ClientMid) stopCapture() error {
	if m.handle == 0 {
		return ErrInvalidHandle
	}

	r1, _, err := procMidiInStop.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to stop MIDI capture", m.logger.Field().Error("error", err))
		return err
	}

	r1, _, err = procMidiInClose.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to close MIDI device", m.logger.Field().Error("error", err))
		return err
	}

	m.portConn = false
	m.handle = 0
	m.eventChannel.Store(chan contracts.Event(nil))
	return nil
}
