package ump

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func TestDecodeMIDI1NoteOn(t *testing.T) {
	p, err := PacketFromBytes([]byte{0x20, 0x91, 0x3C, 0x60})
	require.NoError(t, err)

	m, err := Decode(p)
	require.NoError(t, err)

	on, ok := m.(MIDI1NoteOn)
	require.True(t, ok, "got %T", m)
	assert.Equal(t, Group(0), on.Group())
	assert.Equal(t, Channel(1), on.Channel())
	assert.Equal(t, uint8(60), on.Note())
	assert.Equal(t, uint8(96), on.Velocity())

	assert.Equal(t, p, Encode(m))
	assert.Equal(t, []byte{0x20, 0x91, 0x3C, 0x60}, Encode(m).Bytes())
}

func TestDecodeEveryChannel(t *testing.T) {
	for ch := uint32(0); ch < 16; ch++ {
		m, err := DecodeWords(0x20903C60 | ch<<16)
		require.NoError(t, err)
		assert.Equal(t, Channel(ch), m.(ChannelVoice).Channel())
	}
}

func TestEncodeLayouts(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want []uint32
	}{
		{"noop", NoOp{}, []uint32{0x00000000}},
		{"jr timestamp", NewJRTimestamp(0x1234), []uint32{0x00201234}},
		{"timing clock", must(NewSystemEvent(3, TimingClock)), []uint32{0x13F80000}},
		{"song position", must(NewSongPosition(0, 0x2000)), []uint32{0x10F20040}},
		{"midi1 pitch bend", must(NewMIDI1PitchBend(0, 2, 0x2000)), []uint32{0x20E20040}},
		{"midi2 note on", must(NewMIDI2NoteOn(0, 0, 60, 0xFFFF, Attribute{})), []uint32{0x40903C00, 0xFFFF0000}},
		{"midi2 program change with bank", must(NewMIDI2ProgramChangeWithBank(1, 0, 5, 0x81)), []uint32{0x41C00001, 0x05000101}},
		{"sysex7", must(NewSysEx7(0, FormComplete, []byte{0x7E, 0x7F, 0x06, 0x01})), []uint32{0x30047E7F, 0x06010000}},
		{"sysex8", must(NewSysEx8(0, FormComplete, 0, []byte{0x01, 0x02})), []uint32{0x50030001, 0x02000000, 0, 0}},
		{"set tempo", must(NewSetTempo(0, 500000)), []uint32{0xD0100000, 0x0007A120, 0, 0}},
		{"endpoint discovery", must(NewEndpointDiscovery(1, 1, 0x1F)), []uint32{0xF0000101, 0x0000001F, 0, 0}},
		{"end of clip", NewClip(true), []uint32{0xF0210000, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.msg).Words())
		})
	}
}

func roundTripMessages() []Message {
	return []Message{
		NoOp{},
		NewJRClock(0xFFFF),
		NewJRTimestamp(0x0001),
		NewDeltaClockstampTPQN(480),
		must(NewDeltaClockstamp(0xFFFFF)),

		must(NewTimeCode(2, 7, 15)),
		must(NewSongPosition(15, 0x3FFF)),
		must(NewSongSelect(1, 127)),
		must(NewSystemEvent(0, TuneRequest)),
		must(NewSystemEvent(9, Reset)),

		must(NewMIDI1NoteOff(4, 15, 127, 0)),
		must(NewMIDI1NoteOn(0, 0, 0, 127)),
		must(NewMIDI1PolyPressure(1, 2, 64, 33)),
		must(NewMIDI1ControlChange(3, 4, 7, 100)),
		must(NewMIDI1ProgramChange(5, 6, 42)),
		must(NewMIDI1ChannelPressure(7, 8, 90)),
		must(NewMIDI1PitchBend(9, 10, 0x3FFF)),

		must(NewMIDI2NoteOff(0, 1, 60, 0x8000, Attribute{})),
		must(NewMIDI2NoteOn(15, 15, 127, 0xFFFF, Attribute{Type: AttributePitch7_9, Data: 0x7880})),
		must(NewMIDI2PolyPressure(1, 1, 1, 0xFFFFFFFF)),
		must(NewMIDI2ControlChange(2, 2, 74, 0x80000000)),
		must(NewMIDI2ProgramChange(3, 3, 0)),
		must(NewMIDI2ProgramChangeWithBank(3, 3, 127, 0x3FFF)),
		must(NewMIDI2ChannelPressure(4, 4, 12345)),
		must(NewMIDI2PitchBend(5, 5, 0x80000000)),
		must(NewPerNoteController(6, 6, PerNoteAssignable, 60, 255, 1)),
		must(NewController(7, 7, RelativeAssignableController, 127, 127, 0xFFFFFFFF)),
		must(NewPerNotePitchBend(8, 8, 61, 0x7FFFFFFF)),
		must(NewPerNoteManagement(9, 9, 62, true, true)),

		must(NewSysEx7(0, FormStart, []byte{0x7E, 0x7F, 0x06, 0x01, 0x00, 0x7F})),
		must(NewSysEx7(0, FormEnd, nil)),
		must(NewSysEx8(2, FormContinue, 0xAA, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 0xFF})),
		must(NewMixedDataSetHeader(1, 15, MixedDataSetInfo{ValidBytes: 14, ChunkCount: 2, ChunkNumber: 1, ManufacturerID: 0x7D})),
		must(NewMixedDataSetPayload(1, 15, []byte("abcdefghijklmn"))),

		must(NewSetTempo(0, 500000)),
		must(NewSetTimeSignature(0, TimeSignature{Numerator: 6, Denominator: 3, ThirtySeconds: 8})),
		must(NewSetMetronome(0, Metronome{ClocksPerClick: 24, AccentParts: [3]uint8{3, 0, 0}})),
		must(NewSetKeySignature(0, AddressChannel, 3, -3, 1)),
		must(NewFlexText(2, FormStart, AddressGroup, 0, BankMetadataText, 0x01, "Project name")),

		must(NewEndpointDiscovery(1, 1, FilterEndpointInfo|FilterStreamConfig)),
		must(NewEndpointInfo(1, 1, EndpointCapabilities{StaticFunctionBlocks: true, FunctionBlocks: 32, MIDI2: true, MIDI1: true, TransmitJR: true})),
		must(NewDeviceIdentity([3]uint8{0x00, 0x21, 0x09}, 0x3FFF, 0x0102, [4]uint8{1, 2, 3, 0x7F})),
		must(NewStreamText(EndpointName, FormComplete, "ump endpoint")),
		must(NewStreamText(ProductInstanceID, FormEnd, "SN-0001")),
		must(NewStreamConfig(true, ProtocolMIDI2, true, false)),
		must(NewFunctionBlockDiscovery(AllFunctionBlocks, FilterFunctionBlockInfo|FilterFunctionBlockName)),
		must(NewFunctionBlockInfo(FunctionBlock{Active: true, Number: 31, UIHint: 3, Direction: 3, FirstGroup: 15, Groups: 1, CIVersion: 2, SysEx8Streams: 255})),
		must(NewFunctionBlockName(FormContinue, 2, "Synth block 1")),
		NewClip(false),
	}
}

func TestMessageRoundTrip(t *testing.T) {
	for _, m := range roundTripMessages() {
		p := Encode(m)
		got, err := Decode(p)
		require.NoError(t, err, "%T %s", m, p)
		assert.Equal(t, m, got, "%T", m)
		assert.Equal(t, p, Encode(got))
	}
}

func TestZeroValueMessagesRoundTrip(t *testing.T) {
	zeros := []Message{
		NoOp{}, JRClock{}, JRTimestamp{}, DeltaClockstampTPQN{}, DeltaClockstamp{},
		TimeCode{}, SongPosition{}, SongSelect{}, SystemEvent{},
		MIDI1NoteOff{}, MIDI1NoteOn{}, MIDI1PolyPressure{}, MIDI1ControlChange{},
		MIDI1ProgramChange{}, MIDI1ChannelPressure{}, MIDI1PitchBend{},
		MIDI2NoteOff{}, MIDI2NoteOn{}, MIDI2PolyPressure{}, MIDI2ControlChange{},
		MIDI2ProgramChange{}, MIDI2ChannelPressure{}, MIDI2PitchBend{},
		PerNoteController{}, Controller{}, PerNotePitchBend{}, PerNoteManagement{},
		SysEx7{}, SysEx8{}, MixedDataSetHeader{}, MixedDataSetPayload{},
		FlexData{},
		EndpointDiscovery{}, EndpointInfo{}, DeviceIdentity{}, StreamText{}, StreamConfig{},
		FunctionBlockDiscovery{}, FunctionBlockInfo{}, FunctionBlockName{}, Clip{},
	}
	for _, m := range zeros {
		got, err := Decode(Encode(m))
		require.NoError(t, err, "%T", m)
		assert.Equal(t, m, got)
	}
}

func TestPacketRoundTrip(t *testing.T) {
	packets := [][]uint32{
		{0x00000000},
		{0x00401234},
		{0x1AF17300},
		{0x20913C60},
		{0x2FEF7F7F},
		{0x30147E7F, 0x06010000},
		{0x40903C03, 0xFFFF7880},
		{0x4123417F, 0xDEADBEEF},
		{0x40C00001, 0x05000101},
		{0x4F0F7B03, 0x00000000},
		{0x512E1001, 0x02030405, 0x06070809, 0x0A0B0C0D},
		{0xD0100000, 0x0007A120, 0x00000000, 0x00000000},
		{0xD8030106, 0x50726F6A, 0x65637400, 0x00000000},
		{0xF0010101, 0xA0000303, 0x00000000, 0x00000000},
		{0xF0060200, 0x00000000, 0x00000000, 0x00000000},
		{0xF0118B2B, 0x00010201, 0x00000000, 0x00000000},
	}
	for _, words := range packets {
		p, err := NewPacket(words...)
		require.NoError(t, err)

		m, err := Decode(p)
		require.NoError(t, err, p.String())
		assert.Equal(t, p, Encode(m), "%T", m)
	}
}

func TestDecodeStrictness(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		want  error
	}{
		{"midi1 data1 high bit", []uint32{0x20918060}, ErrReservedBitsSet},
		{"midi1 program change data2", []uint32{0x20C00501}, ErrReservedBitsSet},
		{"midi1 undefined opcode", []uint32{0x20700000}, ErrFieldOutOfRange},
		{"utility group nibble", []uint32{0x01000000}, ErrReservedBitsSet},
		{"utility undefined status", []uint32{0x00500000}, ErrFieldOutOfRange},
		{"system undefined status", []uint32{0x10F40000}, ErrFieldOutOfRange},
		{"timing clock with data", []uint32{0x10F80100}, ErrReservedBitsSet},
		{"sysex7 count above 6", []uint32{0x30070000, 0}, ErrFieldOutOfRange},
		{"sysex7 undefined status", []uint32{0x30400000, 0}, ErrFieldOutOfRange},
		{"sysex7 unused byte set", []uint32{0x30010102, 0}, ErrReservedBitsSet},
		{"midi2 undefined opcode", []uint32{0x40700000, 0}, ErrFieldOutOfRange},
		{"midi2 undefined attribute", []uint32{0x40903C04, 0}, ErrFieldOutOfRange},
		{"midi2 attribute data without type", []uint32{0x40903C00, 0x80000001}, ErrReservedBitsSet},
		{"midi2 control change reserved byte", []uint32{0x40B00701, 0}, ErrReservedBitsSet},
		{"midi2 bank without valid flag", []uint32{0x40C00000, 0x05000001}, ErrReservedBitsSet},
		{"data128 undefined status", []uint32{0x50400000, 0, 0, 0}, ErrFieldOutOfRange},
		{"sysex8 zero count", []uint32{0x50000000, 0, 0, 0}, ErrFieldOutOfRange},
		{"flex undefined address", []uint32{0xD0200000, 0, 0, 0}, ErrFieldOutOfRange},
		{"flex setup not complete", []uint32{0xD0500000, 0, 0, 0}, ErrFieldOutOfRange},
		{"flex tempo reserved payload", []uint32{0xD0100000, 0x0007A120, 1, 0}, ErrReservedBitsSet},
		{"stream undefined status", []uint32{0xF0070000, 0, 0, 0}, ErrFieldOutOfRange},
		{"stream single packet with format", []uint32{0xF4000000, 0, 0, 0}, ErrFieldOutOfRange},
		{"stream config reserved word", []uint32{0xF0050200, 0, 1, 0}, ErrReservedBitsSet},
		{"reserved message type", []uint32{0x60000000}, ErrUnknownMessageType},
		{"reserved 96-bit type", []uint32{0xB0000000, 0, 0}, ErrUnknownMessageType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPacket(tt.words...)
			require.NoError(t, err)

			m, err := Decode(p)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, p.MessageType(), de.Type)
		})
	}
}

func TestDecodeFieldError(t *testing.T) {
	_, err := DecodeWords(0x20918060)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "data1", fe.Field)
	assert.ErrorIs(t, fe, ErrReservedBitsSet)
}

func TestDecodeZeroPacket(t *testing.T) {
	_, err := Decode(Packet{})
	assert.ErrorIs(t, err, ErrWordCountMismatch)
}
