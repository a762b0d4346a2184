package ump

import "fmt"

// System Common and System Real Time status bytes (bits 8..15).
const (
	StatusTimeCode      = 0xF1
	StatusSongPosition  = 0xF2
	StatusSongSelect    = 0xF3
	StatusTuneRequest   = 0xF6
	StatusTimingClock   = 0xF8
	StatusStart         = 0xFA
	StatusContinue      = 0xFB
	StatusStop          = 0xFC
	StatusActiveSensing = 0xFE
	StatusReset         = 0xFF
)

// TimeCode is the MIDI Time Code quarter frame message.
type TimeCode struct {
	group     Group
	frameType uint8
	value     uint8
}

// NewTimeCode returns a quarter frame message. frameType (0-7) selects the
// frame/seconds/minutes/hours nibble and value (0-15) is its content.
func NewTimeCode(g Group, frameType, value uint8) (TimeCode, error) {
	if err := firstErr(
		fits("group", uint64(g), 4),
		fits("frame_type", uint64(frameType), 3),
		fits("value", uint64(value), 4),
	); err != nil {
		return TimeCode{}, err
	}
	return TimeCode{group: g, frameType: frameType, value: value}, nil
}

func (m TimeCode) Group() Group     { return m.group }
func (m TimeCode) FrameType() uint8 { return m.frameType }
func (m TimeCode) Value() uint8     { return m.value }

func (TimeCode) MessageType() MessageType { return TypeSystem }

func (m TimeCode) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 8, StatusTimeCode)
	set(w, 17, 3, uint32(m.frameType))
	set(w, 20, 4, uint32(m.value))
}

// SongPosition is the Song Position Pointer message (14-bit MIDI beats).
type SongPosition struct {
	group    Group
	position uint16
}

// NewSongPosition returns a Song Position Pointer message.
func NewSongPosition(g Group, position uint16) (SongPosition, error) {
	if err := firstErr(fits("group", uint64(g), 4), fits("position", uint64(position), 14)); err != nil {
		return SongPosition{}, err
	}
	return SongPosition{group: g, position: position}, nil
}

func (m SongPosition) Group() Group     { return m.group }
func (m SongPosition) Position() uint16 { return m.position }

func (SongPosition) MessageType() MessageType { return TypeSystem }

func (m SongPosition) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 8, StatusSongPosition)
	set(w, 17, 7, uint32(m.position&0x7F))
	set(w, 25, 7, uint32(m.position>>7))
}

// SongSelect selects a song (0-127).
type SongSelect struct {
	group Group
	song  uint8
}

// NewSongSelect returns a Song Select message.
func NewSongSelect(g Group, song uint8) (SongSelect, error) {
	if err := firstErr(fits("group", uint64(g), 4), check7("song", song)); err != nil {
		return SongSelect{}, err
	}
	return SongSelect{group: g, song: song}, nil
}

func (m SongSelect) Group() Group { return m.group }
func (m SongSelect) Song() uint8  { return m.song }

func (SongSelect) MessageType() MessageType { return TypeSystem }

func (m SongSelect) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 8, StatusSongSelect)
	set(w, 17, 7, uint32(m.song))
}

// SystemKind identifies a System message that carries no data.
type SystemKind uint8

const (
	TuneRequest SystemKind = iota
	TimingClock
	Start
	Continue
	Stop
	ActiveSensing
	Reset
)

var systemKindStatus = [...]uint8{
	TuneRequest:   StatusTuneRequest,
	TimingClock:   StatusTimingClock,
	Start:         StatusStart,
	Continue:      StatusContinue,
	Stop:          StatusStop,
	ActiveSensing: StatusActiveSensing,
	Reset:         StatusReset,
}

// Status returns the status byte of the kind.
func (k SystemKind) Status() uint8 {
	if int(k) >= len(systemKindStatus) {
		return 0
	}
	return systemKindStatus[k]
}

// String returns the kind name.
func (k SystemKind) String() string {
	switch k {
	case TuneRequest:
		return "TUNE_REQUEST"
	case TimingClock:
		return "TIMING_CLOCK"
	case Start:
		return "START"
	case Continue:
		return "CONTINUE"
	case Stop:
		return "STOP"
	case ActiveSensing:
		return "ACTIVE_SENSING"
	case Reset:
		return "RESET"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// SystemEvent is Tune Request or one of the System Real Time messages.
type SystemEvent struct {
	group Group
	kind  SystemKind
}

// NewSystemEvent returns a data-less System message of the given kind.
func NewSystemEvent(g Group, kind SystemKind) (SystemEvent, error) {
	if err := fits("group", uint64(g), 4); err != nil {
		return SystemEvent{}, err
	}
	if int(kind) >= len(systemKindStatus) {
		return SystemEvent{}, &FieldError{Field: "kind", Value: uint64(kind), Err: ErrFieldOutOfRange}
	}
	return SystemEvent{group: g, kind: kind}, nil
}

func (m SystemEvent) Group() Group     { return m.group }
func (m SystemEvent) Kind() SystemKind { return m.kind }

func (SystemEvent) MessageType() MessageType { return TypeSystem }

func (m SystemEvent) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 8, uint32(m.kind.Status()))
}

func decodeSystem(w []uint32) (Message, error) {
	g := groupOf(w)
	status := get(w, 8, 8)

	switch status {
	case StatusTimeCode:
		if err := firstErr(reserved(w, 16, 1, "data1"), reserved(w, 24, 8, "data2")); err != nil {
			return nil, err
		}
		return TimeCode{group: g, frameType: uint8(get(w, 17, 3)), value: uint8(get(w, 20, 4))}, nil
	case StatusSongPosition:
		if err := firstErr(reserved(w, 16, 1, "data1"), reserved(w, 24, 1, "data2")); err != nil {
			return nil, err
		}
		pos := uint16(get(w, 17, 7)) | uint16(get(w, 25, 7))<<7
		return SongPosition{group: g, position: pos}, nil
	case StatusSongSelect:
		if err := firstErr(reserved(w, 16, 1, "data1"), reserved(w, 24, 8, "data2")); err != nil {
			return nil, err
		}
		return SongSelect{group: g, song: uint8(get(w, 17, 7))}, nil
	}

	for kind, s := range systemKindStatus {
		if uint32(s) == status {
			if err := reserved(w, 16, 16, "data"); err != nil {
				return nil, err
			}
			return SystemEvent{group: g, kind: SystemKind(kind)}, nil
		}
	}
	return nil, outOfRange("status", status)
}
