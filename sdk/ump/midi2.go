package ump

import "fmt"

// AttributeType is the per-note attribute type of MIDI 2.0 Note On/Off.
type AttributeType uint8

const (
	AttributeNone                 AttributeType = 0x00
	AttributeManufacturerSpecific AttributeType = 0x01
	AttributeProfileSpecific      AttributeType = 0x02
	AttributePitch7_9             AttributeType = 0x03 // 7.9 fixed point pitch in semitones
)

// String returns the attribute type name.
func (t AttributeType) String() string {
	switch t {
	case AttributeNone:
		return "NONE"
	case AttributeManufacturerSpecific:
		return "MANUFACTURER_SPECIFIC"
	case AttributeProfileSpecific:
		return "PROFILE_SPECIFIC"
	case AttributePitch7_9:
		return "PITCH_7_9"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(t))
	}
}

// Attribute is an optional per-note attribute. The zero value means no attribute.
type Attribute struct {
	Type AttributeType
	Data uint16
}

func (a Attribute) validate() error {
	if a.Type > AttributePitch7_9 {
		return &FieldError{Field: "attribute_type", Value: uint64(a.Type), Err: ErrFieldOutOfRange}
	}
	if a.Type == AttributeNone && a.Data != 0 {
		return &FieldError{Field: "attribute_data", Value: uint64(a.Data), Err: ErrFieldOutOfRange}
	}
	return nil
}

// voice2 holds the group and channel of a MIDI 2.0 Channel Voice message.
type voice2 struct {
	group   Group
	channel Channel
}

func (v voice2) Group() Group     { return v.group }
func (v voice2) Channel() Channel { return v.channel }

func (voice2) MessageType() MessageType { return TypeMIDI2ChannelVoice }

func (v voice2) put(w []uint32, op uint32) {
	putGroup(w, v.group)
	set(w, 8, 4, op)
	set(w, 12, 4, uint32(v.channel))
}

// note2 is shared by the Note On/Off layouts.
type note2 struct {
	voice2
	note      uint8
	velocity  uint16
	attribute Attribute
}

func newNote2(g Group, ch Channel, note uint8, velocity uint16, attr Attribute) (note2, error) {
	if err := firstErr(checkGroupChannel(g, ch), check7("note", note), attr.validate()); err != nil {
		return note2{}, err
	}
	return note2{voice2: voice2{g, ch}, note: note, velocity: velocity, attribute: attr}, nil
}

func (n note2) Note() uint8          { return n.note }
func (n note2) Velocity() uint16     { return n.velocity }
func (n note2) Attribute() Attribute { return n.attribute }

func (n note2) putNote(w []uint32, op uint32) {
	n.put(w, op)
	set(w, 17, 7, uint32(n.note))
	set(w, 24, 8, uint32(n.attribute.Type))
	set(w, 32, 16, uint32(n.velocity))
	set(w, 48, 16, uint32(n.attribute.Data))
}

// MIDI2NoteOff is a MIDI 2.0 Note Off with 16-bit velocity.
type MIDI2NoteOff struct{ note2 }

// NewMIDI2NoteOff returns a MIDI 2.0 Note Off; note is 7-bit.
func NewMIDI2NoteOff(g Group, ch Channel, note uint8, velocity uint16, attr Attribute) (MIDI2NoteOff, error) {
	n, err := newNote2(g, ch, note, velocity, attr)
	return MIDI2NoteOff{n}, err
}

func (m MIDI2NoteOff) encode(w []uint32) { m.putNote(w, opNoteOff) }

// MIDI2NoteOn is a MIDI 2.0 Note On with 16-bit velocity. Unlike MIDI 1.0,
// a velocity of 0 is not a Note Off.
type MIDI2NoteOn struct{ note2 }

// NewMIDI2NoteOn returns a MIDI 2.0 Note On; note is 7-bit.
func NewMIDI2NoteOn(g Group, ch Channel, note uint8, velocity uint16, attr Attribute) (MIDI2NoteOn, error) {
	n, err := newNote2(g, ch, note, velocity, attr)
	return MIDI2NoteOn{n}, err
}

func (m MIDI2NoteOn) encode(w []uint32) { m.putNote(w, opNoteOn) }

// MIDI2PolyPressure is polyphonic key pressure with 32-bit resolution.
type MIDI2PolyPressure struct {
	voice2
	note uint8
	data uint32
}

// NewMIDI2PolyPressure returns a MIDI 2.0 Poly Pressure; note is 7-bit.
func NewMIDI2PolyPressure(g Group, ch Channel, note uint8, pressure uint32) (MIDI2PolyPressure, error) {
	if err := firstErr(checkGroupChannel(g, ch), check7("note", note)); err != nil {
		return MIDI2PolyPressure{}, err
	}
	return MIDI2PolyPressure{voice2: voice2{g, ch}, note: note, data: pressure}, nil
}

func (m MIDI2PolyPressure) Note() uint8      { return m.note }
func (m MIDI2PolyPressure) Pressure() uint32 { return m.data }

func (m MIDI2PolyPressure) encode(w []uint32) {
	m.put(w, opPolyPressure)
	set(w, 17, 7, uint32(m.note))
	set(w, 32, 32, m.data)
}

// MIDI2ControlChange is a Control Change with 32-bit resolution.
type MIDI2ControlChange struct {
	voice2
	index uint8
	data  uint32
}

// NewMIDI2ControlChange returns a MIDI 2.0 Control Change; index is 7-bit.
func NewMIDI2ControlChange(g Group, ch Channel, index uint8, value uint32) (MIDI2ControlChange, error) {
	if err := firstErr(checkGroupChannel(g, ch), check7("index", index)); err != nil {
		return MIDI2ControlChange{}, err
	}
	return MIDI2ControlChange{voice2: voice2{g, ch}, index: index, data: value}, nil
}

func (m MIDI2ControlChange) Index() uint8  { return m.index }
func (m MIDI2ControlChange) Value() uint32 { return m.data }

func (m MIDI2ControlChange) encode(w []uint32) {
	m.put(w, opControlChange)
	set(w, 17, 7, uint32(m.index))
	set(w, 32, 32, m.data)
}

// MIDI2ProgramChange is a Program Change with an optional 14-bit bank.
type MIDI2ProgramChange struct {
	voice2
	program   uint8
	bank      uint16
	bankValid bool
}

// NewMIDI2ProgramChange returns a Program Change without a bank.
func NewMIDI2ProgramChange(g Group, ch Channel, program uint8) (MIDI2ProgramChange, error) {
	if err := firstErr(checkGroupChannel(g, ch), check7("program", program)); err != nil {
		return MIDI2ProgramChange{}, err
	}
	return MIDI2ProgramChange{voice2: voice2{g, ch}, program: program}, nil
}

// NewMIDI2ProgramChangeWithBank returns a Program Change selecting bank
// (MSB<<7 | LSB, 14 bits).
func NewMIDI2ProgramChangeWithBank(g Group, ch Channel, program uint8, bank uint16) (MIDI2ProgramChange, error) {
	m, err := NewMIDI2ProgramChange(g, ch, program)
	if err != nil {
		return m, err
	}
	if err := fits("bank", uint64(bank), 14); err != nil {
		return MIDI2ProgramChange{}, err
	}
	m.bank, m.bankValid = bank, true
	return m, nil
}

func (m MIDI2ProgramChange) Program() uint8 { return m.program }

// Bank returns the bank and whether the bank valid flag is set.
func (m MIDI2ProgramChange) Bank() (uint16, bool) { return m.bank, m.bankValid }

func (m MIDI2ProgramChange) encode(w []uint32) {
	m.put(w, opProgramChange)
	setBool(w, 31, m.bankValid)
	set(w, 33, 7, uint32(m.program))
	set(w, 49, 7, uint32(m.bank>>7))
	set(w, 57, 7, uint32(m.bank&0x7F))
}

// MIDI2ChannelPressure is channel pressure with 32-bit resolution.
type MIDI2ChannelPressure struct {
	voice2
	data uint32
}

// NewMIDI2ChannelPressure returns a MIDI 2.0 Channel Pressure.
func NewMIDI2ChannelPressure(g Group, ch Channel, pressure uint32) (MIDI2ChannelPressure, error) {
	if err := checkGroupChannel(g, ch); err != nil {
		return MIDI2ChannelPressure{}, err
	}
	return MIDI2ChannelPressure{voice2: voice2{g, ch}, data: pressure}, nil
}

func (m MIDI2ChannelPressure) Pressure() uint32 { return m.data }

func (m MIDI2ChannelPressure) encode(w []uint32) {
	m.put(w, opChannelPressure)
	set(w, 32, 32, m.data)
}

// MIDI2PitchBend is a pitch bend with 32-bit resolution (center 0x80000000).
type MIDI2PitchBend struct {
	voice2
	data uint32
}

// NewMIDI2PitchBend returns a MIDI 2.0 Pitch Bend; 0x80000000 is center.
func NewMIDI2PitchBend(g Group, ch Channel, value uint32) (MIDI2PitchBend, error) {
	if err := checkGroupChannel(g, ch); err != nil {
		return MIDI2PitchBend{}, err
	}
	return MIDI2PitchBend{voice2: voice2{g, ch}, data: value}, nil
}

func (m MIDI2PitchBend) Value() uint32 { return m.data }

func (m MIDI2PitchBend) encode(w []uint32) {
	m.put(w, opPitchBend)
	set(w, 32, 32, m.data)
}

// PerNoteKind selects registered or assignable per-note controllers.
type PerNoteKind uint8

const (
	PerNoteRegistered PerNoteKind = iota
	PerNoteAssignable
)

// PerNoteController is a Registered or Assignable Per-Note Controller.
type PerNoteController struct {
	voice2
	kind  PerNoteKind
	note  uint8
	index uint8
	data  uint32
}

// NewPerNoteController returns a registered or assignable per-note controller; note is 7-bit.
func NewPerNoteController(g Group, ch Channel, kind PerNoteKind, note, index uint8, value uint32) (PerNoteController, error) {
	if kind > PerNoteAssignable {
		return PerNoteController{}, &FieldError{Field: "kind", Value: uint64(kind), Err: ErrFieldOutOfRange}
	}
	if err := firstErr(checkGroupChannel(g, ch), check7("note", note)); err != nil {
		return PerNoteController{}, err
	}
	return PerNoteController{voice2: voice2{g, ch}, kind: kind, note: note, index: index, data: value}, nil
}

func (m PerNoteController) Kind() PerNoteKind { return m.kind }
func (m PerNoteController) Note() uint8       { return m.note }
func (m PerNoteController) Index() uint8      { return m.index }
func (m PerNoteController) Value() uint32     { return m.data }

func (m PerNoteController) encode(w []uint32) {
	m.put(w, opRegisteredPerNoteController+uint32(m.kind))
	set(w, 17, 7, uint32(m.note))
	set(w, 24, 8, uint32(m.index))
	set(w, 32, 32, m.data)
}

// ControllerKind selects one of the four bank/index controller messages.
type ControllerKind uint8

const (
	RegisteredController ControllerKind = iota // RPN
	AssignableController                       // NRPN
	RelativeRegisteredController
	RelativeAssignableController
)

// String returns the controller kind name.
func (k ControllerKind) String() string {
	switch k {
	case RegisteredController:
		return "REGISTERED"
	case AssignableController:
		return "ASSIGNABLE"
	case RelativeRegisteredController:
		return "RELATIVE_REGISTERED"
	case RelativeAssignableController:
		return "RELATIVE_ASSIGNABLE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// Controller is a Registered, Assignable or Relative controller addressed by
// a 7-bit bank and 7-bit index.
type Controller struct {
	voice2
	kind  ControllerKind
	bank  uint8
	index uint8
	data  uint32
}

// NewController returns an RPN or NRPN message, absolute or relative; bank and index are 7-bit.
func NewController(g Group, ch Channel, kind ControllerKind, bank, index uint8, value uint32) (Controller, error) {
	if kind > RelativeAssignableController {
		return Controller{}, &FieldError{Field: "kind", Value: uint64(kind), Err: ErrFieldOutOfRange}
	}
	if err := firstErr(checkGroupChannel(g, ch), check7("bank", bank), check7("index", index)); err != nil {
		return Controller{}, err
	}
	return Controller{voice2: voice2{g, ch}, kind: kind, bank: bank, index: index, data: value}, nil
}

func (m Controller) Kind() ControllerKind { return m.kind }
func (m Controller) Bank() uint8          { return m.bank }
func (m Controller) Index() uint8         { return m.index }
func (m Controller) Value() uint32        { return m.data }

// Delta returns the value as the signed change carried by relative controllers.
func (m Controller) Delta() int32 { return int32(m.data) }

func (m Controller) encode(w []uint32) {
	m.put(w, opRegisteredController+uint32(m.kind))
	set(w, 17, 7, uint32(m.bank))
	set(w, 25, 7, uint32(m.index))
	set(w, 32, 32, m.data)
}

// PerNotePitchBend bends a single note with 32-bit resolution.
type PerNotePitchBend struct {
	voice2
	note uint8
	data uint32
}

// NewPerNotePitchBend returns a per-note Pitch Bend; note is 7-bit.
func NewPerNotePitchBend(g Group, ch Channel, note uint8, value uint32) (PerNotePitchBend, error) {
	if err := firstErr(checkGroupChannel(g, ch), check7("note", note)); err != nil {
		return PerNotePitchBend{}, err
	}
	return PerNotePitchBend{voice2: voice2{g, ch}, note: note, data: value}, nil
}

func (m PerNotePitchBend) Note() uint8   { return m.note }
func (m PerNotePitchBend) Value() uint32 { return m.data }

func (m PerNotePitchBend) encode(w []uint32) {
	m.put(w, opPerNotePitchBend)
	set(w, 17, 7, uint32(m.note))
	set(w, 32, 32, m.data)
}

// PerNoteManagement detaches per-note controllers from a note or resets them.
type PerNoteManagement struct {
	voice2
	note   uint8
	detach bool
	reset  bool
}

// NewPerNoteManagement returns a per-note management message; note is 7-bit.
func NewPerNoteManagement(g Group, ch Channel, note uint8, detach, reset bool) (PerNoteManagement, error) {
	if err := firstErr(checkGroupChannel(g, ch), check7("note", note)); err != nil {
		return PerNoteManagement{}, err
	}
	return PerNoteManagement{voice2: voice2{g, ch}, note: note, detach: detach, reset: reset}, nil
}

func (m PerNoteManagement) Note() uint8  { return m.note }
func (m PerNoteManagement) Detach() bool { return m.detach }
func (m PerNoteManagement) Reset() bool  { return m.reset }

func (m PerNoteManagement) encode(w []uint32) {
	m.put(w, opPerNoteManagement)
	set(w, 17, 7, uint32(m.note))
	setBool(w, 30, m.detach)
	setBool(w, 31, m.reset)
}

func decodeMIDI2(w []uint32) (Message, error) {
	v := voice2{group: groupOf(w), channel: Channel(get(w, 12, 4))}
	op := get(w, 8, 4)

	switch op {
	case opChannelPressure, opPitchBend:
		if err := reserved(w, 16, 16, "index"); err != nil {
			return nil, err
		}
		if op == opChannelPressure {
			return MIDI2ChannelPressure{voice2: v, data: w[1]}, nil
		}
		return MIDI2PitchBend{voice2: v, data: w[1]}, nil
	case opProgramChange:
		return decodeProgramChange(w, v)
	case 0x7:
		return nil, outOfRange("opcode", op)
	}

	// Every remaining opcode carries a 7-bit note, index or bank in bits 17..23.
	if err := reserved(w, 16, 1, "index"); err != nil {
		return nil, err
	}
	b1 := uint8(get(w, 17, 7))
	b2 := uint8(get(w, 24, 8))

	switch op {
	case opRegisteredPerNoteController, opAssignablePerNoteController:
		return PerNoteController{voice2: v, kind: PerNoteKind(op - opRegisteredPerNoteController), note: b1, index: b2, data: w[1]}, nil
	case opRegisteredController, opAssignableController, opRelativeRegistered, opRelativeAssignable:
		if err := reserved(w, 24, 1, "index"); err != nil {
			return nil, err
		}
		return Controller{voice2: v, kind: ControllerKind(op - opRegisteredController), bank: b1, index: b2, data: w[1]}, nil
	case opNoteOff, opNoteOn:
		attr := Attribute{Type: AttributeType(b2), Data: uint16(get(w, 48, 16))}
		if attr.Type > AttributePitch7_9 {
			return nil, outOfRange("attribute_type", uint32(b2))
		}
		if attr.Type == AttributeNone {
			if err := reserved(w, 48, 16, "attribute_data"); err != nil {
				return nil, err
			}
		}
		n := note2{voice2: v, note: b1, velocity: uint16(get(w, 32, 16)), attribute: attr}
		if op == opNoteOff {
			return MIDI2NoteOff{n}, nil
		}
		return MIDI2NoteOn{n}, nil
	case opPerNoteManagement:
		if err := firstErr(reserved(w, 24, 6, "flags"), reserved(w, 32, 32, "data")); err != nil {
			return nil, err
		}
		return PerNoteManagement{voice2: v, note: b1, detach: boolBit(w, 30), reset: boolBit(w, 31)}, nil
	}

	// Poly pressure, control change and per-note pitch bend leave byte 3 reserved.
	if b2 != 0 {
		return nil, &FieldError{Field: "index", Value: uint64(b2), Err: ErrReservedBitsSet}
	}
	switch op {
	case opPolyPressure:
		return MIDI2PolyPressure{voice2: v, note: b1, data: w[1]}, nil
	case opControlChange:
		return MIDI2ControlChange{voice2: v, index: b1, data: w[1]}, nil
	default: // opPerNotePitchBend
		return PerNotePitchBend{voice2: v, note: b1, data: w[1]}, nil
	}
}

func decodeProgramChange(w []uint32, v voice2) (Message, error) {
	if err := firstErr(
		reserved(w, 16, 15, "flags"),
		reserved(w, 32, 1, "program"),
		reserved(w, 40, 8, "reserved"),
		reserved(w, 48, 1, "bank_msb"),
		reserved(w, 56, 1, "bank_lsb"),
	); err != nil {
		return nil, err
	}

	m := MIDI2ProgramChange{voice2: v, program: uint8(get(w, 33, 7)), bankValid: boolBit(w, 31)}
	bank := uint16(get(w, 49, 7))<<7 | uint16(get(w, 57, 7))
	if !m.bankValid && bank != 0 {
		return nil, &FieldError{Field: "bank", Value: uint64(bank), Err: ErrReservedBitsSet}
	}
	m.bank = bank
	return m, nil
}
