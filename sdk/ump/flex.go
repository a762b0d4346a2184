package ump

import (
	"bytes"
	"fmt"
)

// FlexAddress selects whether a Flex Data message targets a channel or the whole group.
type FlexAddress uint8

const (
	AddressChannel FlexAddress = 0x0
	AddressGroup   FlexAddress = 0x1
)

// Flex Data status banks and the statuses defined in the setup bank.
const (
	BankSetup           = 0x00
	BankMetadataText    = 0x01
	BankPerformanceText = 0x02

	StatusSetTempo         = 0x00
	StatusSetTimeSignature = 0x01
	StatusSetMetronome     = 0x02
	StatusSetKeySignature  = 0x05
	StatusSetChordName     = 0x06
)

// setupPayload is the number of payload bytes used by each setup-bank
// status; the remaining bytes are reserved.
var setupPayload = map[uint8]int{
	StatusSetTempo:         4,
	StatusSetTimeSignature: 3,
	StatusSetMetronome:     6,
	StatusSetKeySignature:  1,
	StatusSetChordName:     12,
}

// FlexData is a Flex Data message: a status bank and status followed by 12
// payload bytes. Multi-packet text uses Form to chain packets.
type FlexData struct {
	group   Group
	form    Form
	address FlexAddress
	channel Channel
	bank    uint8
	status  uint8
	payload [12]byte
}

// NewFlexData returns a Flex Data message with a raw payload of at most 12 bytes.
func NewFlexData(g Group, form Form, addr FlexAddress, ch Channel, bank, status uint8, payload []byte) (FlexData, error) {
	if err := firstErr(checkGroupChannel(g, ch), checkForm(form), checkBytes("payload", payload, 12, false)); err != nil {
		return FlexData{}, err
	}
	if addr > AddressGroup {
		return FlexData{}, &FieldError{Field: "address", Value: uint64(addr), Err: ErrFieldOutOfRange}
	}
	if addr == AddressGroup && ch != 0 {
		return FlexData{}, &FieldError{Field: "channel", Value: uint64(ch), Err: ErrFieldOutOfRange}
	}
	m := FlexData{group: g, form: form, address: addr, channel: ch, bank: bank, status: status}
	copy(m.payload[:], payload)
	if err := m.validateSetup(); err != nil {
		return FlexData{}, err
	}
	return m, nil
}

// NewSetTempo returns a group-wide Set Tempo in units of 10 nanoseconds per quarter note.
func NewSetTempo(g Group, tenNanosPerQuarter uint32) (FlexData, error) {
	var p [4]byte
	putUint32(p[:], tenNanosPerQuarter)
	return NewFlexData(g, FormComplete, AddressGroup, 0, BankSetup, StatusSetTempo, p[:])
}

// TimeSignature is the payload of Set Time Signature. Denominator is a
// negative power of two (2 means a quarter note).
type TimeSignature struct {
	Numerator     uint8
	Denominator   uint8
	ThirtySeconds uint8 // Number of 1/32 notes per MIDI quarter note.
}

// NewSetTimeSignature returns a group-addressed Set Time Signature message.
func NewSetTimeSignature(g Group, ts TimeSignature) (FlexData, error) {
	return NewFlexData(g, FormComplete, AddressGroup, 0, BankSetup, StatusSetTimeSignature,
		[]byte{ts.Numerator, ts.Denominator, ts.ThirtySeconds})
}

// Metronome is the payload of Set Metronome.
type Metronome struct {
	ClocksPerClick   uint8
	AccentParts      [3]uint8
	SubdivisionClick [2]uint8
}

// NewSetMetronome returns a group-addressed Set Metronome message.
func NewSetMetronome(g Group, m Metronome) (FlexData, error) {
	return NewFlexData(g, FormComplete, AddressGroup, 0, BankSetup, StatusSetMetronome, []byte{
		m.ClocksPerClick, m.AccentParts[0], m.AccentParts[1], m.AccentParts[2],
		m.SubdivisionClick[0], m.SubdivisionClick[1],
	})
}

// NewSetKeySignature returns a Set Key Signature. sharpsFlats is -8..7
// (negative for flats) and tonic is the 4-bit note name.
func NewSetKeySignature(g Group, addr FlexAddress, ch Channel, sharpsFlats int8, tonic uint8) (FlexData, error) {
	if sharpsFlats < -8 || sharpsFlats > 7 {
		return FlexData{}, &FieldError{Field: "sharps_flats", Value: uint64(uint8(sharpsFlats)), Err: ErrOverflow}
	}
	if err := fits("tonic", uint64(tonic), 4); err != nil {
		return FlexData{}, err
	}
	b := uint8(sharpsFlats)<<4 | tonic
	return NewFlexData(g, FormComplete, addr, ch, BankSetup, StatusSetKeySignature, []byte{b})
}

// NewFlexText returns one packet of a metadata or performance text message.
// Text longer than 12 bytes must be split across Start/Continue/End packets.
func NewFlexText(g Group, form Form, addr FlexAddress, ch Channel, bank, status uint8, text string) (FlexData, error) {
	if bank != BankMetadataText && bank != BankPerformanceText {
		return FlexData{}, &FieldError{Field: "status_bank", Value: uint64(bank), Err: ErrFieldOutOfRange}
	}
	return NewFlexData(g, form, addr, ch, bank, status, []byte(text))
}

func (m FlexData) Group() Group         { return m.group }
func (m FlexData) Form() Form           { return m.form }
func (m FlexData) Address() FlexAddress { return m.address }
func (m FlexData) Channel() Channel     { return m.channel }
func (m FlexData) StatusBank() uint8    { return m.bank }
func (m FlexData) Status() uint8        { return m.status }
func (m FlexData) Payload() []byte      { return append([]byte(nil), m.payload[:]...) }

func (m FlexData) is(bank, status uint8) bool {
	return m.bank == bank && m.status == status
}

// Tempo returns the Set Tempo value, if m is a Set Tempo message.
func (m FlexData) Tempo() (uint32, bool) {
	if !m.is(BankSetup, StatusSetTempo) {
		return 0, false
	}
	return uint32(m.payload[0])<<24 | uint32(m.payload[1])<<16 | uint32(m.payload[2])<<8 | uint32(m.payload[3]), true
}

// TimeSignature returns the Set Time Signature payload.
func (m FlexData) TimeSignature() (TimeSignature, bool) {
	if !m.is(BankSetup, StatusSetTimeSignature) {
		return TimeSignature{}, false
	}
	return TimeSignature{Numerator: m.payload[0], Denominator: m.payload[1], ThirtySeconds: m.payload[2]}, true
}

// Metronome returns the Set Metronome payload.
func (m FlexData) Metronome() (Metronome, bool) {
	if !m.is(BankSetup, StatusSetMetronome) {
		return Metronome{}, false
	}
	p := m.payload
	return Metronome{
		ClocksPerClick:   p[0],
		AccentParts:      [3]uint8{p[1], p[2], p[3]},
		SubdivisionClick: [2]uint8{p[4], p[5]},
	}, true
}

// KeySignature returns the Set Key Signature sharps/flats and tonic.
func (m FlexData) KeySignature() (sharpsFlats int8, tonic uint8, ok bool) {
	if !m.is(BankSetup, StatusSetKeySignature) {
		return 0, 0, false
	}
	return int8(m.payload[0]) >> 4, m.payload[0] & 0xF, true
}

// Text returns the text carried by a text bank message, without zero padding.
func (m FlexData) Text() (string, bool) {
	if m.bank != BankMetadataText && m.bank != BankPerformanceText {
		return "", false
	}
	if i := bytes.IndexByte(m.payload[:], 0); i >= 0 {
		return string(m.payload[:i]), true
	}
	return string(m.payload[:]), true
}

// String describes the message for logs.
func (m FlexData) String() string {
	return fmt.Sprintf("FlexData{group=%d form=%s bank=0x%02X status=0x%02X}", m.group, m.form, m.bank, m.status)
}

func (FlexData) MessageType() MessageType { return TypeFlexData }

func (m FlexData) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 2, uint32(m.form))
	set(w, 10, 2, uint32(m.address))
	set(w, 12, 4, uint32(m.channel))
	set(w, 16, 8, uint32(m.bank))
	set(w, 24, 8, uint32(m.status))
	putBytes(w, 32, m.payload[:])
}

// validateSetup enforces the setup-bank rules: a single complete packet
// with reserved payload bytes zero.
func (m FlexData) validateSetup() error {
	if m.bank != BankSetup {
		return nil
	}
	used, ok := setupPayload[m.status]
	if !ok {
		return nil
	}
	if m.form != FormComplete {
		return outOfRange("form", uint32(m.form))
	}
	for _, b := range m.payload[used:] {
		if b != 0 {
			return &FieldError{Field: "payload", Value: uint64(b), Err: ErrReservedBitsSet}
		}
	}
	return nil
}

func decodeFlexData(w []uint32) (Message, error) {
	addr := get(w, 10, 2)
	if addr > uint32(AddressGroup) {
		return nil, outOfRange("address", addr)
	}
	ch := get(w, 12, 4)
	if FlexAddress(addr) == AddressGroup && ch != 0 {
		return nil, &FieldError{Field: "channel", Value: uint64(ch), Err: ErrReservedBitsSet}
	}

	m := FlexData{
		group:   groupOf(w),
		form:    Form(get(w, 8, 2)),
		address: FlexAddress(addr),
		channel: Channel(ch),
		bank:    uint8(get(w, 16, 8)),
		status:  uint8(get(w, 24, 8)),
	}
	getBytes(w, 32, m.payload[:])
	if err := m.validateSetup(); err != nil {
		return nil, err
	}
	return m, nil
}

func putUint32(b []byte, v uint32) {
	b[0], b[1], b[2], b[3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
}
