package ump

import "fmt"

// MessageType is the 4-bit message type in the high nibble of word 0.
type MessageType uint8

const (
	TypeUtility           MessageType = 0x0
	TypeSystem            MessageType = 0x1 // System Common and System Real Time
	TypeMIDI1ChannelVoice MessageType = 0x2
	TypeData64            MessageType = 0x3 // SysEx7
	TypeMIDI2ChannelVoice MessageType = 0x4
	TypeData128           MessageType = 0x5 // SysEx8 and Mixed Data Set
	TypeReserved6         MessageType = 0x6
	TypeReserved7         MessageType = 0x7
	TypeReserved8         MessageType = 0x8
	TypeReserved9         MessageType = 0x9
	TypeReservedA         MessageType = 0xA
	TypeReservedB         MessageType = 0xB
	TypeReservedC         MessageType = 0xC
	TypeFlexData          MessageType = 0xD
	TypeReservedE         MessageType = 0xE
	TypeStream            MessageType = 0xF
)

type typeInfo struct {
	name     string
	words    int
	group    bool
	reserved bool
}

// registry is indexed by the type nibble. Reserved types still have a fixed
// size so that packets of future types can be framed and skipped.
var registry = [16]typeInfo{
	TypeUtility:           {name: "Utility", words: 1},
	TypeSystem:            {name: "System", words: 1, group: true},
	TypeMIDI1ChannelVoice: {name: "MIDI1ChannelVoice", words: 1, group: true},
	TypeData64:            {name: "Data64", words: 2, group: true},
	TypeMIDI2ChannelVoice: {name: "MIDI2ChannelVoice", words: 2, group: true},
	TypeData128:           {name: "Data128", words: 4, group: true},
	TypeReserved6:         {name: "Reserved6", words: 1, group: true, reserved: true},
	TypeReserved7:         {name: "Reserved7", words: 1, group: true, reserved: true},
	TypeReserved8:         {name: "Reserved8", words: 2, group: true, reserved: true},
	TypeReserved9:         {name: "Reserved9", words: 2, group: true, reserved: true},
	TypeReservedA:         {name: "ReservedA", words: 2, group: true, reserved: true},
	TypeReservedB:         {name: "ReservedB", words: 3, group: true, reserved: true},
	TypeReservedC:         {name: "ReservedC", words: 3, group: true, reserved: true},
	TypeFlexData:          {name: "FlexData", words: 4, group: true},
	TypeReservedE:         {name: "ReservedE", words: 4, group: true, reserved: true},
	TypeStream:            {name: "Stream", words: 4},
}

func (t MessageType) info() (typeInfo, error) {
	if int(t) >= len(registry) {
		return typeInfo{}, fmt.Errorf("%w: 0x%X", ErrUnknownMessageType, uint8(t))
	}
	return registry[t], nil
}

// WordCount returns the number of 32-bit words in a packet of this type.
func (t MessageType) WordCount() (int, error) {
	info, err := t.info()
	if err != nil {
		return 0, err
	}
	return info.words, nil
}

// HasGroup reports whether bits 4..7 of word 0 carry a Group.
func (t MessageType) HasGroup() (bool, error) {
	info, err := t.info()
	if err != nil {
		return false, err
	}
	return info.group, nil
}

// Reserved reports whether the type is reserved for a future protocol revision.
func (t MessageType) Reserved() bool {
	info, err := t.info()
	return err != nil || info.reserved
}

// String returns the message type name.
func (t MessageType) String() string {
	info, err := t.info()
	if err != nil {
		return fmt.Sprintf("UNKNOWN(0x%X)", uint8(t))
	}
	return info.name
}
