// Package translate converts Channel Voice messages between the MIDI 1.0
// and MIDI 2.0 protocols.
//
// Up-scaling is lossless: DownScale(UpScale(m)) == m for every MIDI 1.0
// Channel Voice message. Down-scaling keeps the top bits of each field and
// drops MIDI 2.0 only data such as per-note attributes and program banks.
package translate

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/ump/sdk/ump"
)

// ErrUnsupportedVariant is returned for messages that have no counterpart
// in the other protocol.
var ErrUnsupportedVariant = errors.New("message has no cross-protocol counterpart")

// UpScale converts a MIDI 1.0 Channel Voice message to its MIDI 2.0 form.
func UpScale(m ump.Message) (ump.Message, error) {
	switch m := m.(type) {
	case ump.MIDI1NoteOff:
		return ump.NewMIDI2NoteOff(m.Group(), m.Channel(), m.Note(), up16(m.Velocity()), ump.Attribute{})
	case ump.MIDI1NoteOn:
		// Velocity 0 stays 0 so the message can be down-scaled back to itself.
		return ump.NewMIDI2NoteOn(m.Group(), m.Channel(), m.Note(), up16(m.Velocity()), ump.Attribute{})
	case ump.MIDI1PolyPressure:
		return ump.NewMIDI2PolyPressure(m.Group(), m.Channel(), m.Note(), up32(m.Pressure()))
	case ump.MIDI1ControlChange:
		return ump.NewMIDI2ControlChange(m.Group(), m.Channel(), m.Index(), up32(m.Value()))
	case ump.MIDI1ProgramChange:
		return ump.NewMIDI2ProgramChange(m.Group(), m.Channel(), m.Program())
	case ump.MIDI1ChannelPressure:
		return ump.NewMIDI2ChannelPressure(m.Group(), m.Channel(), up32(m.Pressure()))
	case ump.MIDI1PitchBend:
		return ump.NewMIDI2PitchBend(m.Group(), m.Channel(), ScaleUp(uint32(m.Value()), 14, 32))
	default:
		return nil, unsupported(m)
	}
}

// DownScale converts a MIDI 2.0 Channel Voice message to its MIDI 1.0 form.
// A Note On whose velocity would truncate to 0 is sent with velocity 1, since
// a MIDI 1.0 Note On with velocity 0 means Note Off.
func DownScale(m ump.Message) (ump.Message, error) {
	switch m := m.(type) {
	case ump.MIDI2NoteOff:
		return ump.NewMIDI1NoteOff(m.Group(), m.Channel(), m.Note(), down16(m.Velocity()))
	case ump.MIDI2NoteOn:
		v := down16(m.Velocity())
		if v == 0 && m.Velocity() != 0 {
			v = 1
		}
		return ump.NewMIDI1NoteOn(m.Group(), m.Channel(), m.Note(), v)
	case ump.MIDI2PolyPressure:
		return ump.NewMIDI1PolyPressure(m.Group(), m.Channel(), m.Note(), down32(m.Pressure()))
	case ump.MIDI2ControlChange:
		return ump.NewMIDI1ControlChange(m.Group(), m.Channel(), m.Index(), down32(m.Value()))
	case ump.MIDI2ProgramChange:
		return ump.NewMIDI1ProgramChange(m.Group(), m.Channel(), m.Program())
	case ump.MIDI2ChannelPressure:
		return ump.NewMIDI1ChannelPressure(m.Group(), m.Channel(), down32(m.Pressure()))
	case ump.MIDI2PitchBend:
		return ump.NewMIDI1PitchBend(m.Group(), m.Channel(), uint16(ScaleDown(m.Value(), 32, 14)))
	default:
		return nil, unsupported(m)
	}
}

func unsupported(m ump.Message) error {
	if m == nil {
		return fmt.Errorf("%w: nil message", ErrUnsupportedVariant)
	}
	return fmt.Errorf("%w: %T (%s)", ErrUnsupportedVariant, m, m.MessageType())
}

func up16(v uint8) uint16   { return uint16(ScaleUp(uint32(v), 7, 16)) }
func up32(v uint8) uint32   { return ScaleUp(uint32(v), 7, 32) }
func down16(v uint16) uint8 { return uint8(ScaleDown(uint32(v), 16, 7)) }
func down32(v uint32) uint8 { return uint8(ScaleDown(v, 32, 7)) }
