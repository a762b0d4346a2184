package ump

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Packet is an immutable Universal MIDI Packet of one to four words.
// Packets compare equal with == when their words are equal.
type Packet struct {
	words [4]uint32
	n     uint8
}

// NewPacket validates that len(words) matches the word count dictated by the
// message type nibble of words[0].
func NewPacket(words ...uint32) (Packet, error) {
	if len(words) == 0 {
		return Packet{}, fmt.Errorf("%w: empty packet", ErrWordCountMismatch)
	}
	mt := MessageType(words[0] >> 28)
	want := registry[mt].words
	if len(words) != want {
		return Packet{}, fmt.Errorf("%w: %s needs %d words, got %d", ErrWordCountMismatch, mt, want, len(words))
	}

	var p Packet
	p.n = uint8(copy(p.words[:], words))
	return p, nil
}

// PacketFromBytes builds a packet from big-endian encoded words.
func PacketFromBytes(b []byte) (Packet, error) {
	if len(b) == 0 || len(b)%4 != 0 || len(b) > 16 {
		return Packet{}, fmt.Errorf("%w: %d bytes is not 1 to 4 whole words", ErrWordCountMismatch, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return NewPacket(words...)
}

// SplitWords frames a contiguous word stream into packets.
func SplitWords(words []uint32) ([]Packet, error) {
	var packets []Packet
	for len(words) > 0 {
		n := registry[words[0]>>28].words
		if len(words) < n {
			return packets, fmt.Errorf("%w: truncated %s packet, %d of %d words",
				ErrWordCountMismatch, MessageType(words[0]>>28), len(words), n)
		}
		p, err := NewPacket(words[:n]...)
		if err != nil {
			return packets, err
		}
		packets = append(packets, p)
		words = words[n:]
	}
	return packets, nil
}

// MessageType returns the type encoded in the high nibble of word 0.
func (p Packet) MessageType() MessageType {
	return MessageType(p.words[0] >> 28)
}

// Group returns the packet's group, or false if its type has no group field.
func (p Packet) Group() (Group, bool) {
	if !registry[p.MessageType()].group {
		return 0, false
	}
	return Group(p.words[0] >> 24 & 0xF), true
}

// Len returns the number of words in the packet.
func (p Packet) Len() int {
	return int(p.n)
}

// Words returns a copy of the packet's words.
func (p Packet) Words() []uint32 {
	out := make([]uint32, p.n)
	copy(out, p.words[:p.n])
	return out
}

// Word returns word i, or 0 if i is outside the packet.
func (p Packet) Word(i int) uint32 {
	if i < 0 || i >= int(p.n) {
		return 0
	}
	return p.words[i]
}

// Bytes returns the packet as big-endian bytes, 4 per word.
func (p Packet) Bytes() []byte {
	out := make([]byte, 4*int(p.n))
	for i := 0; i < int(p.n); i++ {
		binary.BigEndian.PutUint32(out[i*4:], p.words[i])
	}
	return out
}

// String returns the words in hex, e.g. "[20913C60]".
func (p Packet) String() string {
	parts := make([]string, p.n)
	for i := range parts {
		parts[i] = fmt.Sprintf("%08X", p.words[i])
	}
	return "[" + strings.Join(parts, " ") + "]"
}
