package contracts

import "github.com/leandrodaf/ump/sdk/ump"

// Event is a message captured from a device, converted to a Universal MIDI Packet.
type Event struct {
	Timestamp uint64      // Timestamp indicates the time the bytes arrived (Unix nanoseconds).
	Source    string      // Source names the device the event came from.
	Packet    ump.Packet  // Packet holds the encoded words.
	Message   ump.Message // Message is the decoded form of Packet.
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	Stop() error                          // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)   // Lists all available MIDI devices.
	SelectDevice(deviceID int) error      // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan Event) // Starts capturing MIDI events and sends them to the specified channel.
}
