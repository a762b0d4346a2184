package contracts

// DeviceInfo describes a MIDI 1.0 input that can be captured as UMP.
type DeviceInfo struct {
	ID           int    // ID to pass to ClientMIDI.SelectDevice.
	Name         string // Device name, also used as the Source of its events.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity to which the device belongs.
}
