package ump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	wantWords := []int{1, 1, 1, 2, 2, 4, 1, 1, 2, 2, 2, 3, 3, 4, 4, 4}
	for mt := MessageType(0); mt <= 0xF; mt++ {
		n, err := mt.WordCount()
		require.NoError(t, err)
		assert.Equal(t, wantWords[mt], n, mt.String())
	}

	for _, mt := range []MessageType{TypeUtility, TypeStream} {
		g, err := mt.HasGroup()
		require.NoError(t, err)
		assert.False(t, g, mt.String())
	}
	g, err := TypeMIDI2ChannelVoice.HasGroup()
	require.NoError(t, err)
	assert.True(t, g)

	assert.True(t, TypeReservedB.Reserved())
	assert.False(t, TypeFlexData.Reserved())

	_, err = MessageType(0x10).WordCount()
	assert.ErrorIs(t, err, ErrUnknownMessageType)
	_, err = MessageType(0x10).HasGroup()
	assert.ErrorIs(t, err, ErrUnknownMessageType)
	assert.Equal(t, "UNKNOWN(0x10)", MessageType(0x10).String())
}

func TestNewPacket(t *testing.T) {
	p, err := NewPacket(0x20913C60)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, TypeMIDI1ChannelVoice, p.MessageType())
	assert.Equal(t, []byte{0x20, 0x91, 0x3C, 0x60}, p.Bytes())
	assert.Equal(t, "[20913C60]", p.String())

	g, ok := p.Group()
	assert.True(t, ok)
	assert.Equal(t, Group(0), g)

	q, err := NewPacket(0x20913C60)
	require.NoError(t, err)
	assert.True(t, p == q)
}

func TestNewPacketWordCountMismatch(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
	}{
		{"empty", nil},
		{"midi2 with one word", []uint32{0x40903C00}},
		{"midi1 with two words", []uint32{0x20913C60, 0}},
		{"stream with three words", []uint32{0xF0000000, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPacket(tt.words...)
			assert.ErrorIs(t, err, ErrWordCountMismatch)
		})
	}
}

func TestPacketWordsAreCopied(t *testing.T) {
	p, err := NewPacket(0x40903C00, 0xFFFF0000)
	require.NoError(t, err)

	words := p.Words()
	words[1] = 0
	assert.Equal(t, uint32(0xFFFF0000), p.Word(1))
	assert.Equal(t, uint32(0), p.Word(2))
}

func TestStreamPacketHasNoGroup(t *testing.T) {
	p, err := NewPacket(0xF3000000, 0, 0, 0)
	require.NoError(t, err)
	_, ok := p.Group()
	assert.False(t, ok)
}

func TestPacketFromBytes(t *testing.T) {
	p, err := PacketFromBytes([]byte{0x40, 0x90, 0x3C, 0x00, 0xFF, 0xFF, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x40903C00, 0xFFFF0000}, p.Words())

	_, err = PacketFromBytes([]byte{0x20, 0x91, 0x3C})
	assert.ErrorIs(t, err, ErrWordCountMismatch)

	_, err = PacketFromBytes(make([]byte, 20))
	assert.ErrorIs(t, err, ErrWordCountMismatch)
}

func TestSplitWords(t *testing.T) {
	packets, err := SplitWords([]uint32{0x20913C60, 0x40903C00, 0xC0000000, 0x10F80000})
	require.NoError(t, err)
	require.Len(t, packets, 3)
	assert.Equal(t, TypeMIDI1ChannelVoice, packets[0].MessageType())
	assert.Equal(t, 2, packets[1].Len())
	assert.Equal(t, TypeSystem, packets[2].MessageType())

	packets, err = SplitWords([]uint32{0x10F80000, 0x40000000})
	assert.ErrorIs(t, err, ErrWordCountMismatch)
	assert.Len(t, packets, 1)
}
