package ump

// Channel Voice opcodes (bits 8..11). MIDI 1.0 Channel Voice uses 0x8..0xE.
const (
	opRegisteredPerNoteController = 0x0
	opAssignablePerNoteController = 0x1
	opRegisteredController        = 0x2
	opAssignableController        = 0x3
	opRelativeRegistered          = 0x4
	opRelativeAssignable          = 0x5
	opPerNotePitchBend            = 0x6
	opNoteOff                     = 0x8
	opNoteOn                      = 0x9
	opPolyPressure                = 0xA
	opControlChange               = 0xB
	opProgramChange               = 0xC
	opChannelPressure             = 0xD
	opPitchBend                   = 0xE
	opPerNoteManagement           = 0xF
)

// voice1 holds the fields shared by the MIDI 1.0 Channel Voice messages:
// two 7-bit data bytes at bits 17..23 and 25..31.
type voice1 struct {
	group   Group
	channel Channel
	data1   uint8
	data2   uint8
}

func newVoice1(g Group, ch Channel, name1 string, d1 uint8, name2 string, d2 uint8) (voice1, error) {
	if err := firstErr(checkGroupChannel(g, ch), check7(name1, d1), check7(name2, d2)); err != nil {
		return voice1{}, err
	}
	return voice1{group: g, channel: ch, data1: d1, data2: d2}, nil
}

func (v voice1) Group() Group     { return v.group }
func (v voice1) Channel() Channel { return v.channel }

func (voice1) MessageType() MessageType { return TypeMIDI1ChannelVoice }

func (v voice1) put(w []uint32, op uint32) {
	putGroup(w, v.group)
	set(w, 8, 4, op)
	set(w, 12, 4, uint32(v.channel))
	set(w, 17, 7, uint32(v.data1))
	set(w, 25, 7, uint32(v.data2))
}

// MIDI1NoteOff is a MIDI 1.0 Note Off.
type MIDI1NoteOff struct{ voice1 }

// NewMIDI1NoteOff returns a MIDI 1.0 Note Off; note and velocity are 7-bit.
func NewMIDI1NoteOff(g Group, ch Channel, note, velocity uint8) (MIDI1NoteOff, error) {
	v, err := newVoice1(g, ch, "note", note, "velocity", velocity)
	return MIDI1NoteOff{v}, err
}

func (m MIDI1NoteOff) Note() uint8     { return m.data1 }
func (m MIDI1NoteOff) Velocity() uint8 { return m.data2 }

func (m MIDI1NoteOff) encode(w []uint32) { m.put(w, opNoteOff) }

// MIDI1NoteOn is a MIDI 1.0 Note On. A velocity of 0 is a Note Off by convention.
type MIDI1NoteOn struct{ voice1 }

// NewMIDI1NoteOn returns a MIDI 1.0 Note On; note and velocity are 7-bit.
func NewMIDI1NoteOn(g Group, ch Channel, note, velocity uint8) (MIDI1NoteOn, error) {
	v, err := newVoice1(g, ch, "note", note, "velocity", velocity)
	return MIDI1NoteOn{v}, err
}

func (m MIDI1NoteOn) Note() uint8     { return m.data1 }
func (m MIDI1NoteOn) Velocity() uint8 { return m.data2 }

func (m MIDI1NoteOn) encode(w []uint32) { m.put(w, opNoteOn) }

// MIDI1PolyPressure is MIDI 1.0 polyphonic key pressure.
type MIDI1PolyPressure struct{ voice1 }

// NewMIDI1PolyPressure returns a MIDI 1.0 Poly Pressure; note and pressure are 7-bit.
func NewMIDI1PolyPressure(g Group, ch Channel, note, pressure uint8) (MIDI1PolyPressure, error) {
	v, err := newVoice1(g, ch, "note", note, "pressure", pressure)
	return MIDI1PolyPressure{v}, err
}

func (m MIDI1PolyPressure) Note() uint8     { return m.data1 }
func (m MIDI1PolyPressure) Pressure() uint8 { return m.data2 }

func (m MIDI1PolyPressure) encode(w []uint32) { m.put(w, opPolyPressure) }

// MIDI1ControlChange is a MIDI 1.0 Control Change.
type MIDI1ControlChange struct{ voice1 }

// NewMIDI1ControlChange returns a MIDI 1.0 Control Change; index and value are 7-bit.
func NewMIDI1ControlChange(g Group, ch Channel, index, value uint8) (MIDI1ControlChange, error) {
	v, err := newVoice1(g, ch, "index", index, "value", value)
	return MIDI1ControlChange{v}, err
}

func (m MIDI1ControlChange) Index() uint8 { return m.data1 }
func (m MIDI1ControlChange) Value() uint8 { return m.data2 }

func (m MIDI1ControlChange) encode(w []uint32) { m.put(w, opControlChange) }

// MIDI1ProgramChange is a MIDI 1.0 Program Change.
type MIDI1ProgramChange struct{ voice1 }

// NewMIDI1ProgramChange returns a MIDI 1.0 Program Change; program is 7-bit.
func NewMIDI1ProgramChange(g Group, ch Channel, program uint8) (MIDI1ProgramChange, error) {
	v, err := newVoice1(g, ch, "program", program, "data2", 0)
	return MIDI1ProgramChange{v}, err
}

func (m MIDI1ProgramChange) Program() uint8 { return m.data1 }

func (m MIDI1ProgramChange) encode(w []uint32) { m.put(w, opProgramChange) }

// MIDI1ChannelPressure is MIDI 1.0 channel pressure (aftertouch).
type MIDI1ChannelPressure struct{ voice1 }

// NewMIDI1ChannelPressure returns a MIDI 1.0 Channel Pressure; pressure is 7-bit.
func NewMIDI1ChannelPressure(g Group, ch Channel, pressure uint8) (MIDI1ChannelPressure, error) {
	v, err := newVoice1(g, ch, "pressure", pressure, "data2", 0)
	return MIDI1ChannelPressure{v}, err
}

func (m MIDI1ChannelPressure) Pressure() uint8 { return m.data1 }

func (m MIDI1ChannelPressure) encode(w []uint32) { m.put(w, opChannelPressure) }

// MIDI1PitchBend is a MIDI 1.0 Pitch Bend with a 14-bit value (center 0x2000).
type MIDI1PitchBend struct{ voice1 }

// NewMIDI1PitchBend returns a pitch bend; value must fit in 14 bits.
func NewMIDI1PitchBend(g Group, ch Channel, value uint16) (MIDI1PitchBend, error) {
	if err := fits("value", uint64(value), 14); err != nil {
		return MIDI1PitchBend{}, err
	}
	v, err := newVoice1(g, ch, "lsb", uint8(value&0x7F), "msb", uint8(value>>7))
	return MIDI1PitchBend{v}, err
}

// Value returns the 14-bit bend value.
func (m MIDI1PitchBend) Value() uint16 {
	return uint16(m.data1) | uint16(m.data2)<<7
}

func (m MIDI1PitchBend) encode(w []uint32) { m.put(w, opPitchBend) }

func decodeMIDI1(w []uint32) (Message, error) {
	if err := firstErr(reserved(w, 16, 1, "data1"), reserved(w, 24, 1, "data2")); err != nil {
		return nil, err
	}

	v := voice1{
		group:   groupOf(w),
		channel: Channel(get(w, 12, 4)),
		data1:   uint8(get(w, 17, 7)),
		data2:   uint8(get(w, 25, 7)),
	}

	switch op := get(w, 8, 4); op {
	case opNoteOff:
		return MIDI1NoteOff{v}, nil
	case opNoteOn:
		return MIDI1NoteOn{v}, nil
	case opPolyPressure:
		return MIDI1PolyPressure{v}, nil
	case opControlChange:
		return MIDI1ControlChange{v}, nil
	case opProgramChange, opChannelPressure:
		if v.data2 != 0 {
			return nil, &FieldError{Field: "data2", Value: uint64(v.data2), Err: ErrReservedBitsSet}
		}
		if op == opProgramChange {
			return MIDI1ProgramChange{v}, nil
		}
		return MIDI1ChannelPressure{v}, nil
	case opPitchBend:
		return MIDI1PitchBend{v}, nil
	default:
		return nil, outOfRange("opcode", op)
	}
}
