package ump

import "fmt"

// Message is a decoded UMP message. The set of implementations is closed:
// every value comes from a constructor in this package or from Decode.
type Message interface {
	// MessageType returns the packet type the message encodes to.
	MessageType() MessageType

	// encode writes every field except the type nibble into zeroed words.
	encode(words []uint32)
}

// ChannelVoice is implemented by the MIDI 1.0 and MIDI 2.0 Channel Voice messages.
type ChannelVoice interface {
	Message
	Group() Group
	Channel() Channel
}

// Group is one of the 16 UMP groups (0-15).
type Group uint8

// NewGroup validates a group number.
func NewGroup(v uint8) (Group, error) {
	if err := fits("group", uint64(v), 4); err != nil {
		return 0, err
	}
	return Group(v), nil
}

// Channel is a MIDI channel within a group (0-15).
type Channel uint8

// NewChannel validates a channel number.
func NewChannel(v uint8) (Channel, error) {
	if err := fits("channel", uint64(v), 4); err != nil {
		return 0, err
	}
	return Channel(v), nil
}

// Form marks a message as complete or as part of a multi-packet sequence.
// It is the SysEx status of Data 64/128 and the format of Flex Data and
// UMP Stream messages.
type Form uint8

const (
	FormComplete Form = 0x0
	FormStart    Form = 0x1
	FormContinue Form = 0x2
	FormEnd      Form = 0x3
)

// String returns the form name.
func (f Form) String() string {
	switch f {
	case FormComplete:
		return "COMPLETE"
	case FormStart:
		return "START"
	case FormContinue:
		return "CONTINUE"
	case FormEnd:
		return "END"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(f))
	}
}

func checkForm(f Form) error {
	if f > FormEnd {
		return &FieldError{Field: "form", Value: uint64(f), Err: ErrOverflow}
	}
	return nil
}

func check7(field string, v uint8) error {
	return fits(field, uint64(v), 7)
}

func checkGroupChannel(g Group, ch Channel) error {
	return firstErr(fits("group", uint64(g), 4), fits("channel", uint64(ch), 4))
}

// checkBytes validates the length of a variable payload and, for 7-bit
// payloads, that no byte has its high bit set.
func checkBytes(field string, data []byte, max int, sevenBit bool) error {
	if len(data) > max {
		return &FieldError{Field: field, Value: uint64(len(data)), Err: ErrOverflow}
	}
	if sevenBit {
		for _, b := range data {
			if err := check7(field, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func putGroup(words []uint32, g Group) {
	set(words, 4, 4, uint32(g))
}

func groupOf(words []uint32) Group {
	return Group(get(words, 4, 4))
}

func putBytes(words []uint32, start uint, data []byte) {
	for i, b := range data {
		set(words, start+uint(i)*8, 8, uint32(b))
	}
}

func getBytes(words []uint32, start uint, out []byte) {
	for i := range out {
		out[i] = byte(get(words, start+uint(i)*8, 8))
	}
}

func boolBit(words []uint32, bit uint) bool {
	return get(words, bit, 1) == 1
}
