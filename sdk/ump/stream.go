package ump

import (
	"bytes"
	"fmt"
)

// UMP Stream status values (bits 6..15).
const (
	StatusEndpointDiscovery      = 0x00
	StatusEndpointInfo           = 0x01
	StatusDeviceIdentity         = 0x02
	StatusEndpointName           = 0x03
	StatusProductInstanceID      = 0x04
	StatusStreamConfigRequest    = 0x05
	StatusStreamConfigNotify     = 0x06
	StatusFunctionBlockDiscovery = 0x10
	StatusFunctionBlockInfo      = 0x11
	StatusFunctionBlockName      = 0x12
	StatusStartOfClip            = 0x20
	StatusEndOfClip              = 0x21
)

// Endpoint Discovery filter bits.
const (
	FilterEndpointInfo      = 0x01
	FilterDeviceIdentity    = 0x02
	FilterEndpointName      = 0x04
	FilterProductInstanceID = 0x08
	FilterStreamConfig      = 0x10
)

// Function Block Discovery filter bits.
const (
	FilterFunctionBlockInfo = 0x01
	FilterFunctionBlockName = 0x02
)

// AllFunctionBlocks requests every function block in a Function Block Discovery.
const AllFunctionBlocks = 0xFF

func putStream(w []uint32, form Form, status uint32) {
	set(w, 4, 2, uint32(form))
	set(w, 6, 10, status)
}

// EndpointDiscovery asks an endpoint to report the information selected by Filter.
type EndpointDiscovery struct {
	versionMajor uint8
	versionMinor uint8
	filter       uint8
}

// NewEndpointDiscovery returns an Endpoint Discovery message; filter uses the 5 defined Filter bits.
func NewEndpointDiscovery(versionMajor, versionMinor, filter uint8) (EndpointDiscovery, error) {
	if err := fits("filter", uint64(filter), 5); err != nil {
		return EndpointDiscovery{}, err
	}
	return EndpointDiscovery{versionMajor: versionMajor, versionMinor: versionMinor, filter: filter}, nil
}

func (m EndpointDiscovery) Version() (major, minor uint8) { return m.versionMajor, m.versionMinor }
func (m EndpointDiscovery) Filter() uint8                 { return m.filter }

func (EndpointDiscovery) MessageType() MessageType { return TypeStream }

func (m EndpointDiscovery) encode(w []uint32) {
	putStream(w, FormComplete, StatusEndpointDiscovery)
	set(w, 16, 8, uint32(m.versionMajor))
	set(w, 24, 8, uint32(m.versionMinor))
	set(w, 56, 8, uint32(m.filter))
}

// EndpointInfo describes the UMP version and capabilities of an endpoint.
type EndpointInfo struct {
	versionMajor uint8
	versionMinor uint8
	static       bool
	blocks       uint8
	midi2        bool
	midi1        bool
	rxJR         bool
	txJR         bool
}

// EndpointCapabilities are the flags of an Endpoint Info Notification.
type EndpointCapabilities struct {
	StaticFunctionBlocks bool
	FunctionBlocks       uint8 // 0-32
	MIDI2                bool
	MIDI1                bool
	ReceiveJR            bool
	TransmitJR           bool
}

// NewEndpointInfo returns an Endpoint Info Notification.
func NewEndpointInfo(versionMajor, versionMinor uint8, c EndpointCapabilities) (EndpointInfo, error) {
	if c.FunctionBlocks > 32 {
		return EndpointInfo{}, &FieldError{Field: "function_blocks", Value: uint64(c.FunctionBlocks), Err: ErrOverflow}
	}
	return EndpointInfo{
		versionMajor: versionMajor,
		versionMinor: versionMinor,
		static:       c.StaticFunctionBlocks,
		blocks:       c.FunctionBlocks,
		midi2:        c.MIDI2,
		midi1:        c.MIDI1,
		rxJR:         c.ReceiveJR,
		txJR:         c.TransmitJR,
	}, nil
}

func (m EndpointInfo) Version() (major, minor uint8) { return m.versionMajor, m.versionMinor }

// Capabilities returns the endpoint flags.
func (m EndpointInfo) Capabilities() EndpointCapabilities {
	return EndpointCapabilities{
		StaticFunctionBlocks: m.static,
		FunctionBlocks:       m.blocks,
		MIDI2:                m.midi2,
		MIDI1:                m.midi1,
		ReceiveJR:            m.rxJR,
		TransmitJR:           m.txJR,
	}
}

func (EndpointInfo) MessageType() MessageType { return TypeStream }

func (m EndpointInfo) encode(w []uint32) {
	putStream(w, FormComplete, StatusEndpointInfo)
	set(w, 16, 8, uint32(m.versionMajor))
	set(w, 24, 8, uint32(m.versionMinor))
	setBool(w, 32, m.static)
	set(w, 33, 7, uint32(m.blocks))
	setBool(w, 54, m.midi2)
	setBool(w, 55, m.midi1)
	setBool(w, 62, m.rxJR)
	setBool(w, 63, m.txJR)
}

// DeviceIdentity reports the SysEx-style identity of a device. Every byte is 7-bit.
type DeviceIdentity struct {
	manufacturer [3]uint8
	family       uint16
	model        uint16
	revision     [4]uint8
}

// NewDeviceIdentity returns a Device Identity Notification. family and model are 14-bit.
func NewDeviceIdentity(manufacturer [3]uint8, family, model uint16, revision [4]uint8) (DeviceIdentity, error) {
	if err := firstErr(
		checkBytes("manufacturer", manufacturer[:], 3, true),
		fits("family", uint64(family), 14),
		fits("model", uint64(model), 14),
		checkBytes("revision", revision[:], 4, true),
	); err != nil {
		return DeviceIdentity{}, err
	}
	return DeviceIdentity{manufacturer: manufacturer, family: family, model: model, revision: revision}, nil
}

func (m DeviceIdentity) Manufacturer() [3]uint8 { return m.manufacturer }
func (m DeviceIdentity) Family() uint16         { return m.family }
func (m DeviceIdentity) Model() uint16          { return m.model }
func (m DeviceIdentity) Revision() [4]uint8     { return m.revision }

func (DeviceIdentity) MessageType() MessageType { return TypeStream }

func (m DeviceIdentity) encode(w []uint32) {
	putStream(w, FormComplete, StatusDeviceIdentity)
	for i, b := range m.manufacturer {
		set(w, 41+uint(i)*8, 7, uint32(b))
	}
	set(w, 65, 7, uint32(m.family&0x7F))
	set(w, 73, 7, uint32(m.family>>7))
	set(w, 81, 7, uint32(m.model&0x7F))
	set(w, 89, 7, uint32(m.model>>7))
	for i, b := range m.revision {
		set(w, 97+uint(i)*8, 7, uint32(b))
	}
}

// StreamTextKind selects which endpoint string a StreamText carries.
type StreamTextKind uint8

const (
	EndpointName StreamTextKind = iota
	ProductInstanceID
)

func (k StreamTextKind) String() string {
	if k == ProductInstanceID {
		return "PRODUCT_INSTANCE_ID"
	}
	return "ENDPOINT_NAME"
}

// StreamText is one packet of an Endpoint Name or Product Instance Id
// notification: up to 14 bytes, zero padded.
type StreamText struct {
	kind StreamTextKind
	form Form
	text [14]byte
}

// NewStreamText returns a StreamText packet. Text longer than 14 bytes must
// be split across Start/Continue/End packets.
func NewStreamText(kind StreamTextKind, form Form, text string) (StreamText, error) {
	if kind > ProductInstanceID {
		return StreamText{}, &FieldError{Field: "kind", Value: uint64(kind), Err: ErrFieldOutOfRange}
	}
	if err := firstErr(checkForm(form), checkBytes("text", []byte(text), 14, false)); err != nil {
		return StreamText{}, err
	}
	m := StreamText{kind: kind, form: form}
	copy(m.text[:], text)
	return m, nil
}

func (m StreamText) Kind() StreamTextKind { return m.kind }
func (m StreamText) Form() Form           { return m.form }

// Text returns the carried bytes without zero padding.
func (m StreamText) Text() string {
	if i := bytes.IndexByte(m.text[:], 0); i >= 0 {
		return string(m.text[:i])
	}
	return string(m.text[:])
}

func (StreamText) MessageType() MessageType { return TypeStream }

func (m StreamText) encode(w []uint32) {
	status := uint32(StatusEndpointName)
	if m.kind == ProductInstanceID {
		status = StatusProductInstanceID
	}
	putStream(w, m.form, status)
	putBytes(w, 16, m.text[:])
}

// Protocol is the MIDI protocol negotiated on a UMP stream.
type Protocol uint8

const (
	ProtocolUnset Protocol = 0x00
	ProtocolMIDI1 Protocol = 0x01
	ProtocolMIDI2 Protocol = 0x02
)

func (p Protocol) String() string {
	switch p {
	case ProtocolUnset:
		return "UNSET"
	case ProtocolMIDI1:
		return "MIDI1"
	case ProtocolMIDI2:
		return "MIDI2"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(p))
	}
}

// StreamConfig is a Stream Configuration Request, or the Notification that answers it.
type StreamConfig struct {
	notification bool
	protocol     Protocol
	rxJR         bool
	txJR         bool
}

// NewStreamConfig returns a Stream Configuration Request (notification false)
// or Notification (notification true).
func NewStreamConfig(notification bool, p Protocol, rxJR, txJR bool) (StreamConfig, error) {
	if p > ProtocolMIDI2 {
		return StreamConfig{}, &FieldError{Field: "protocol", Value: uint64(p), Err: ErrFieldOutOfRange}
	}
	return StreamConfig{notification: notification, protocol: p, rxJR: rxJR, txJR: txJR}, nil
}

func (m StreamConfig) Notification() bool { return m.notification }
func (m StreamConfig) Protocol() Protocol { return m.protocol }
func (m StreamConfig) ReceiveJR() bool    { return m.rxJR }
func (m StreamConfig) TransmitJR() bool   { return m.txJR }

func (StreamConfig) MessageType() MessageType { return TypeStream }

func (m StreamConfig) encode(w []uint32) {
	status := uint32(StatusStreamConfigRequest)
	if m.notification {
		status = StatusStreamConfigNotify
	}
	putStream(w, FormComplete, status)
	set(w, 16, 8, uint32(m.protocol))
	setBool(w, 30, m.rxJR)
	setBool(w, 31, m.txJR)
}

// FunctionBlockDiscovery asks for the info and/or name of one function block,
// or of all of them with AllFunctionBlocks.
type FunctionBlockDiscovery struct {
	block  uint8
	filter uint8
}

// NewFunctionBlockDiscovery asks for one function block, or AllFunctionBlocks.
func NewFunctionBlockDiscovery(block, filter uint8) (FunctionBlockDiscovery, error) {
	if block != AllFunctionBlocks && block > 31 {
		return FunctionBlockDiscovery{}, &FieldError{Field: "block", Value: uint64(block), Err: ErrOverflow}
	}
	if err := fits("filter", uint64(filter), 2); err != nil {
		return FunctionBlockDiscovery{}, err
	}
	return FunctionBlockDiscovery{block: block, filter: filter}, nil
}

func (m FunctionBlockDiscovery) Block() uint8  { return m.block }
func (m FunctionBlockDiscovery) Filter() uint8 { return m.filter }

func (FunctionBlockDiscovery) MessageType() MessageType { return TypeStream }

func (m FunctionBlockDiscovery) encode(w []uint32) {
	putStream(w, FormComplete, StatusFunctionBlockDiscovery)
	set(w, 16, 8, uint32(m.block))
	set(w, 24, 8, uint32(m.filter))
}

// FunctionBlock is the content of a Function Block Info Notification.
type FunctionBlock struct {
	Active        bool
	Number        uint8 // 0-31
	UIHint        uint8 // 2 bits: 1 receiver, 2 sender, 3 both
	MIDI1         uint8 // 2 bits
	Direction     uint8 // 2 bits: 1 input, 2 output, 3 bidirectional
	FirstGroup    uint8 // 0-15
	Groups        uint8
	CIVersion     uint8
	SysEx8Streams uint8
}

func (b FunctionBlock) validate() error {
	return firstErr(
		fits("block", uint64(b.Number), 5),
		fits("ui_hint", uint64(b.UIHint), 2),
		fits("midi1", uint64(b.MIDI1), 2),
		fits("direction", uint64(b.Direction), 2),
		fits("first_group", uint64(b.FirstGroup), 4),
	)
}

// FunctionBlockInfo is a Function Block Info Notification.
type FunctionBlockInfo struct {
	block FunctionBlock
}

// NewFunctionBlockInfo returns a Function Block Info Notification for b.
func NewFunctionBlockInfo(b FunctionBlock) (FunctionBlockInfo, error) {
	if err := b.validate(); err != nil {
		return FunctionBlockInfo{}, err
	}
	return FunctionBlockInfo{block: b}, nil
}

func (m FunctionBlockInfo) Block() FunctionBlock { return m.block }

func (FunctionBlockInfo) MessageType() MessageType { return TypeStream }

func (m FunctionBlockInfo) encode(w []uint32) {
	b := m.block
	putStream(w, FormComplete, StatusFunctionBlockInfo)
	setBool(w, 16, b.Active)
	set(w, 17, 7, uint32(b.Number))
	set(w, 26, 2, uint32(b.UIHint))
	set(w, 28, 2, uint32(b.MIDI1))
	set(w, 30, 2, uint32(b.Direction))
	set(w, 32, 8, uint32(b.FirstGroup))
	set(w, 40, 8, uint32(b.Groups))
	set(w, 48, 8, uint32(b.CIVersion))
	set(w, 56, 8, uint32(b.SysEx8Streams))
}

// FunctionBlockName is one packet of a function block name (up to 13 bytes).
type FunctionBlockName struct {
	form  Form
	block uint8
	name  [13]byte
}

// NewFunctionBlockName returns one packet of a function block name, at most 13 bytes.
func NewFunctionBlockName(form Form, block uint8, name string) (FunctionBlockName, error) {
	if err := firstErr(checkForm(form), fits("block", uint64(block), 5), checkBytes("name", []byte(name), 13, false)); err != nil {
		return FunctionBlockName{}, err
	}
	m := FunctionBlockName{form: form, block: block}
	copy(m.name[:], name)
	return m, nil
}

func (m FunctionBlockName) Form() Form   { return m.form }
func (m FunctionBlockName) Block() uint8 { return m.block }

// Name returns the carried bytes without zero padding.
func (m FunctionBlockName) Name() string {
	if i := bytes.IndexByte(m.name[:], 0); i >= 0 {
		return string(m.name[:i])
	}
	return string(m.name[:])
}

func (FunctionBlockName) MessageType() MessageType { return TypeStream }

func (m FunctionBlockName) encode(w []uint32) {
	putStream(w, m.form, StatusFunctionBlockName)
	set(w, 16, 8, uint32(m.block))
	putBytes(w, 24, m.name[:])
}

// Clip marks the start or end of a clip sequence.
type Clip struct {
	end bool
}

// NewClip returns Start of Clip, or End of Clip when end is true.
func NewClip(end bool) Clip { return Clip{end: end} }

func (m Clip) End() bool { return m.end }

func (Clip) MessageType() MessageType { return TypeStream }

func (m Clip) encode(w []uint32) {
	status := uint32(StatusStartOfClip)
	if m.end {
		status = StatusEndOfClip
	}
	putStream(w, FormComplete, status)
}

// streamReserved lists, per single-layout status, the bit ranges that must
// be zero.
var streamReserved = map[uint32][][2]uint{
	StatusEndpointDiscovery:      {{32, 24}, {64, 32}, {96, 32}},
	StatusEndpointInfo:           {{40, 14}, {56, 6}, {64, 32}, {96, 32}},
	StatusDeviceIdentity:         {{16, 16}, {32, 9}, {48, 1}, {56, 1}, {64, 1}, {72, 1}, {80, 1}, {88, 1}, {96, 1}, {104, 1}, {112, 1}, {120, 1}},
	StatusStreamConfigRequest:    {{24, 6}, {32, 32}, {64, 32}, {96, 32}},
	StatusStreamConfigNotify:     {{24, 6}, {32, 32}, {64, 32}, {96, 32}},
	StatusFunctionBlockDiscovery: {{32, 32}, {64, 32}, {96, 32}},
	StatusFunctionBlockInfo:      {{24, 2}, {64, 32}, {96, 32}},
	StatusStartOfClip:            {{16, 16}, {32, 32}, {64, 32}, {96, 32}},
	StatusEndOfClip:              {{16, 16}, {32, 32}, {64, 32}, {96, 32}},
}

func decodeStream(w []uint32) (Message, error) {
	form := Form(get(w, 4, 2))
	status := get(w, 6, 10)

	switch status {
	case StatusEndpointName, StatusProductInstanceID:
		kind := EndpointName
		if status == StatusProductInstanceID {
			kind = ProductInstanceID
		}
		m := StreamText{kind: kind, form: form}
		getBytes(w, 16, m.text[:])
		return m, nil
	case StatusFunctionBlockName:
		block := get(w, 16, 8)
		if block > 31 {
			return nil, outOfRange("block", block)
		}
		m := FunctionBlockName{form: form, block: uint8(block)}
		getBytes(w, 24, m.name[:])
		return m, nil
	}

	ranges, ok := streamReserved[status]
	if !ok {
		return nil, outOfRange("status", status)
	}
	if form != FormComplete {
		return nil, outOfRange("format", uint32(form))
	}
	for _, r := range ranges {
		if err := reserved(w, r[0], r[1], "reserved"); err != nil {
			return nil, err
		}
	}

	switch status {
	case StatusEndpointDiscovery:
		filter := get(w, 56, 8)
		if filter > 0x1F {
			return nil, &FieldError{Field: "filter", Value: uint64(filter), Err: ErrReservedBitsSet}
		}
		return EndpointDiscovery{
			versionMajor: uint8(get(w, 16, 8)),
			versionMinor: uint8(get(w, 24, 8)),
			filter:       uint8(filter),
		}, nil
	case StatusEndpointInfo:
		blocks := get(w, 33, 7)
		if blocks > 32 {
			return nil, outOfRange("function_blocks", blocks)
		}
		return EndpointInfo{
			versionMajor: uint8(get(w, 16, 8)),
			versionMinor: uint8(get(w, 24, 8)),
			static:       boolBit(w, 32),
			blocks:       uint8(blocks),
			midi2:        boolBit(w, 54),
			midi1:        boolBit(w, 55),
			rxJR:         boolBit(w, 62),
			txJR:         boolBit(w, 63),
		}, nil
	case StatusDeviceIdentity:
		var m DeviceIdentity
		for i := range m.manufacturer {
			m.manufacturer[i] = uint8(get(w, 41+uint(i)*8, 7))
		}
		m.family = uint16(get(w, 65, 7)) | uint16(get(w, 73, 7))<<7
		m.model = uint16(get(w, 81, 7)) | uint16(get(w, 89, 7))<<7
		for i := range m.revision {
			m.revision[i] = uint8(get(w, 97+uint(i)*8, 7))
		}
		return m, nil
	case StatusStreamConfigRequest, StatusStreamConfigNotify:
		p := get(w, 16, 8)
		if p > uint32(ProtocolMIDI2) {
			return nil, outOfRange("protocol", p)
		}
		return StreamConfig{
			notification: status == StatusStreamConfigNotify,
			protocol:     Protocol(p),
			rxJR:         boolBit(w, 30),
			txJR:         boolBit(w, 31),
		}, nil
	case StatusFunctionBlockDiscovery:
		block, filter := get(w, 16, 8), get(w, 24, 8)
		if block != AllFunctionBlocks && block > 31 {
			return nil, outOfRange("block", block)
		}
		if filter > 0x3 {
			return nil, &FieldError{Field: "filter", Value: uint64(filter), Err: ErrReservedBitsSet}
		}
		return FunctionBlockDiscovery{block: uint8(block), filter: uint8(filter)}, nil
	case StatusFunctionBlockInfo:
		b := FunctionBlock{
			Active:        boolBit(w, 16),
			Number:        uint8(get(w, 17, 7)),
			UIHint:        uint8(get(w, 26, 2)),
			MIDI1:         uint8(get(w, 28, 2)),
			Direction:     uint8(get(w, 30, 2)),
			FirstGroup:    uint8(get(w, 32, 8)),
			Groups:        uint8(get(w, 40, 8)),
			CIVersion:     uint8(get(w, 48, 8)),
			SysEx8Streams: uint8(get(w, 56, 8)),
		}
		if b.Number > 31 {
			return nil, outOfRange("block", uint32(b.Number))
		}
		if b.FirstGroup > 15 {
			return nil, outOfRange("first_group", uint32(b.FirstGroup))
		}
		return FunctionBlockInfo{block: b}, nil
	default:
		return Clip{end: status == StatusEndOfClip}, nil
	}
}
