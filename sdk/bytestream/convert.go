// Package bytestream converts between the MIDI 1.0 byte stream, as carried
// by gitlab.com/gomidi/midi/v2 messages, and Universal MIDI Packets.
package bytestream

import (
	"errors"
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/ump/sdk/ump"
)

// Error definitions for byte stream conversion.
var (
	ErrUnsupportedMessage = errors.New("message has no single UMP or MIDI 1.0 form")
	ErrMalformedMessage   = errors.New("malformed MIDI 1.0 message")
	ErrIncompleteSysEx    = errors.New("incomplete system exclusive")
)

// dataLen returns the number of data bytes following a status byte, or -1
// for status bytes that do not start a fixed-length message.
func dataLen(status byte) int {
	switch {
	case status >= 0x80 && status < 0xC0, status >= 0xE0 && status < 0xF0:
		return 2
	case status >= 0xC0 && status < 0xE0:
		return 1
	}
	switch status {
	case ump.StatusTimeCode, ump.StatusSongSelect:
		return 1
	case ump.StatusSongPosition:
		return 2
	case ump.StatusTuneRequest, ump.StatusTimingClock, ump.StatusStart,
		ump.StatusContinue, ump.StatusStop, ump.StatusActiveSensing, ump.StatusReset:
		return 0
	}
	return -1
}

// Unpack splits a short message packed little-endian into a word, status in
// the low byte, as delivered by the winmm MIM_DATA callback.
func Unpack(packed uint32) (midi.Message, error) {
	status := byte(packed)
	n := dataLen(status)
	if n < 0 {
		return nil, fmt.Errorf("%w: status 0x%02X", ErrUnsupportedMessage, status)
	}
	msg := midi.Message{status, byte(packed >> 8), byte(packed >> 16)}
	return msg[:n+1], nil
}

var realTimeKinds = map[byte]ump.SystemKind{
	ump.StatusTuneRequest:   ump.TuneRequest,
	ump.StatusTimingClock:   ump.TimingClock,
	ump.StatusStart:         ump.Start,
	ump.StatusContinue:      ump.Continue,
	ump.StatusStop:          ump.Stop,
	ump.StatusActiveSensing: ump.ActiveSensing,
	ump.StatusReset:         ump.Reset,
}

// ToUMP converts one complete MIDI 1.0 channel voice, system common or
// system real time message to a UMP message on group g. SysEx must go
// through SysExToUMP.
func ToUMP(g ump.Group, msg midi.Message) (ump.Message, error) {
	if len(msg) == 0 {
		return nil, fmt.Errorf("%w: empty message", ErrMalformedMessage)
	}
	status := msg[0]
	n := dataLen(status)
	if n < 0 {
		return nil, fmt.Errorf("%w: status 0x%02X", ErrUnsupportedMessage, status)
	}
	if len(msg) != n+1 {
		return nil, fmt.Errorf("%w: status 0x%02X needs %d data bytes, got %d", ErrMalformedMessage, status, n, len(msg)-1)
	}
	for _, b := range msg[1:] {
		if b > 0x7F {
			return nil, fmt.Errorf("%w: data byte 0x%02X", ErrMalformedMessage, b)
		}
	}

	if status < 0xF0 {
		return voiceToUMP(g, ump.Channel(status&0x0F), status&0xF0, msg[1:])
	}
	switch status {
	case ump.StatusTimeCode:
		return ump.NewTimeCode(g, msg[1]>>4, msg[1]&0x0F)
	case ump.StatusSongPosition:
		return ump.NewSongPosition(g, uint16(msg[1])|uint16(msg[2])<<7)
	case ump.StatusSongSelect:
		return ump.NewSongSelect(g, msg[1])
	default:
		return ump.NewSystemEvent(g, realTimeKinds[status])
	}
}

func voiceToUMP(g ump.Group, ch ump.Channel, kind byte, data []byte) (ump.Message, error) {
	switch kind {
	case 0x80:
		return ump.NewMIDI1NoteOff(g, ch, data[0], data[1])
	case 0x90:
		return ump.NewMIDI1NoteOn(g, ch, data[0], data[1])
	case 0xA0:
		return ump.NewMIDI1PolyPressure(g, ch, data[0], data[1])
	case 0xB0:
		return ump.NewMIDI1ControlChange(g, ch, data[0], data[1])
	case 0xC0:
		return ump.NewMIDI1ProgramChange(g, ch, data[0])
	case 0xD0:
		return ump.NewMIDI1ChannelPressure(g, ch, data[0])
	default:
		return ump.NewMIDI1PitchBend(g, ch, uint16(data[0])|uint16(data[1])<<7)
	}
}

// Convert is ToUMP extended to SysEx, which becomes one or more SysEx7 packets.
func Convert(g ump.Group, msg midi.Message) ([]ump.Message, error) {
	if len(msg) > 0 && msg[0] == 0xF0 {
		packets, err := SysExToUMP(g, msg)
		if err != nil {
			return nil, err
		}
		out := make([]ump.Message, len(packets))
		for i, p := range packets {
			out[i] = p
		}
		return out, nil
	}

	m, err := ToUMP(g, msg)
	if err != nil {
		return nil, err
	}
	return []ump.Message{m}, nil
}

// FromUMP converts a MIDI 1.0 Channel Voice or System message back to its
// byte form. MIDI 2.0 messages must be down-scaled first.
func FromUMP(m ump.Message) (midi.Message, error) {
	switch m := m.(type) {
	case ump.MIDI1NoteOff:
		return midi.NoteOffVelocity(uint8(m.Channel()), m.Note(), m.Velocity()), nil
	case ump.MIDI1NoteOn:
		return midi.NoteOn(uint8(m.Channel()), m.Note(), m.Velocity()), nil
	case ump.MIDI1PolyPressure:
		return midi.PolyAfterTouch(uint8(m.Channel()), m.Note(), m.Pressure()), nil
	case ump.MIDI1ControlChange:
		return midi.ControlChange(uint8(m.Channel()), m.Index(), m.Value()), nil
	case ump.MIDI1ProgramChange:
		return midi.ProgramChange(uint8(m.Channel()), m.Program()), nil
	case ump.MIDI1ChannelPressure:
		return midi.AfterTouch(uint8(m.Channel()), m.Pressure()), nil
	case ump.MIDI1PitchBend:
		return midi.Pitchbend(uint8(m.Channel()), int16(m.Value())-0x2000), nil
	case ump.TimeCode:
		return midi.MTC(m.FrameType()<<4 | m.Value()), nil
	case ump.SongPosition:
		// LSB first on the wire; midi.SPP writes the MSB first.
		p := m.Position()
		return midi.Message{ump.StatusSongPosition, byte(p & 0x7F), byte(p >> 7)}, nil
	case ump.SongSelect:
		return midi.SongSelect(m.Song()), nil
	case ump.SystemEvent:
		return systemEvent(m.Kind()), nil
	default:
		if m == nil {
			return nil, fmt.Errorf("%w: nil message", ErrUnsupportedMessage)
		}
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedMessage, m)
	}
}

func systemEvent(k ump.SystemKind) midi.Message {
	switch k {
	case ump.TuneRequest:
		return midi.Tune()
	case ump.TimingClock:
		return midi.TimingClock()
	case ump.Start:
		return midi.Start()
	case ump.Continue:
		return midi.Continue()
	case ump.Stop:
		return midi.Stop()
	case ump.ActiveSensing:
		return midi.Activesense()
	default:
		return midi.Reset()
	}
}
