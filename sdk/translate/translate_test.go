package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/ump/sdk/ump"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func TestScaleUp(t *testing.T) {
	tests := []struct {
		v        uint32
		src, dst uint
		want     uint32
	}{
		{0, 7, 16, 0},
		{1, 7, 16, 0x0200},
		{64, 7, 16, 0x8000},
		{100, 7, 16, 0xC924},
		{127, 7, 16, 0xFFFF},
		{0, 7, 32, 0},
		{64, 7, 32, 0x80000000},
		{127, 7, 32, 0xFFFFFFFF},
		{0x2000, 14, 32, 0x80000000},
		{0x3FFF, 14, 32, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScaleUp(tt.v, tt.src, tt.dst), "ScaleUp(%d, %d, %d)", tt.v, tt.src, tt.dst)
	}
}

func TestScaleUpIsMonotonicAndReversible(t *testing.T) {
	prev := uint32(0)
	for v := uint32(0); v < 128; v++ {
		up := ScaleUp(v, 7, 16)
		if v > 0 {
			assert.Greater(t, up, prev)
		}
		assert.Equal(t, v, ScaleDown(up, 16, 7))
		assert.Equal(t, v, ScaleDown(ScaleUp(v, 7, 32), 32, 7))
		prev = up
	}
	for v := uint32(0); v < 1<<14; v += 7 {
		assert.Equal(t, v, ScaleDown(ScaleUp(v, 14, 32), 32, 14))
	}
}

func TestUpScale(t *testing.T) {
	m, err := UpScale(must(ump.NewMIDI1NoteOn(2, 9, 60, 127)))
	require.NoError(t, err)
	on, ok := m.(ump.MIDI2NoteOn)
	require.True(t, ok, "got %T", m)
	assert.Equal(t, ump.Group(2), on.Group())
	assert.Equal(t, ump.Channel(9), on.Channel())
	assert.Equal(t, uint8(60), on.Note())
	assert.Equal(t, uint16(0xFFFF), on.Velocity())
	assert.Equal(t, ump.Attribute{}, on.Attribute())

	m, err = UpScale(must(ump.NewMIDI1PitchBend(0, 0, 0x2000)))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80000000), m.(ump.MIDI2PitchBend).Value())

	m, err = UpScale(must(ump.NewMIDI1ProgramChange(0, 3, 12)))
	require.NoError(t, err)
	pc := m.(ump.MIDI2ProgramChange)
	assert.Equal(t, uint8(12), pc.Program())
	_, bankValid := pc.Bank()
	assert.False(t, bankValid)
}

func TestDownScale(t *testing.T) {
	attr := ump.Attribute{Type: ump.AttributePitch7_9, Data: 0x3C00}
	m, err := DownScale(must(ump.NewMIDI2NoteOn(1, 1, 64, 0x8000, attr)))
	require.NoError(t, err)
	assert.Equal(t, must(ump.NewMIDI1NoteOn(1, 1, 64, 64)), m)

	m, err = DownScale(must(ump.NewMIDI2ProgramChangeWithBank(0, 0, 5, 0x1234)))
	require.NoError(t, err)
	assert.Equal(t, must(ump.NewMIDI1ProgramChange(0, 0, 5)), m)

	m, err = DownScale(must(ump.NewMIDI2PitchBend(0, 4, 0xFFFFFFFF)))
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3FFF), m.(ump.MIDI1PitchBend).Value())
}

func TestDownScaleKeepsQuietNoteOn(t *testing.T) {
	m, err := DownScale(must(ump.NewMIDI2NoteOn(0, 0, 60, 1, ump.Attribute{})))
	require.NoError(t, err)
	assert.Equal(t, uint8(1), m.(ump.MIDI1NoteOn).Velocity())

	m, err = DownScale(must(ump.NewMIDI2NoteOn(0, 0, 60, 0, ump.Attribute{})))
	require.NoError(t, err)
	assert.Equal(t, uint8(0), m.(ump.MIDI1NoteOn).Velocity())

	m, err = DownScale(must(ump.NewMIDI2NoteOff(0, 0, 60, 1, ump.Attribute{})))
	require.NoError(t, err)
	assert.Equal(t, uint8(0), m.(ump.MIDI1NoteOff).Velocity())
}

func TestRoundTripEveryValue(t *testing.T) {
	for v := uint8(0); v < 128; v++ {
		msgs := []ump.Message{
			must(ump.NewMIDI1NoteOff(3, 5, v, v)),
			must(ump.NewMIDI1NoteOn(3, 5, v, v)),
			must(ump.NewMIDI1PolyPressure(3, 5, 127-v, v)),
			must(ump.NewMIDI1ControlChange(3, 5, 74, v)),
			must(ump.NewMIDI1ProgramChange(3, 5, v)),
			must(ump.NewMIDI1ChannelPressure(3, 5, v)),
			must(ump.NewMIDI1PitchBend(3, 5, uint16(v)<<7|uint16(v))),
		}
		for _, m := range msgs {
			up, err := UpScale(m)
			require.NoError(t, err)
			down, err := DownScale(up)
			require.NoError(t, err)
			assert.Equal(t, m, down, "%T v=%d", m, v)
		}
	}
}

func TestUnsupportedVariant(t *testing.T) {
	for _, m := range []ump.Message{
		ump.NoOp{},
		must(ump.NewSystemEvent(0, ump.TimingClock)),
		must(ump.NewStreamConfig(false, ump.ProtocolMIDI2, false, false)),
		must(ump.NewMIDI2NoteOn(0, 0, 60, 100, ump.Attribute{})),
		nil,
	} {
		_, err := UpScale(m)
		assert.ErrorIs(t, err, ErrUnsupportedVariant)
	}

	for _, m := range []ump.Message{
		must(ump.NewPerNoteManagement(0, 0, 60, true, false)),
		must(ump.NewController(0, 0, ump.RegisteredController, 0, 0, 1)),
		must(ump.NewMIDI1NoteOn(0, 0, 60, 100)),
	} {
		_, err := DownScale(m)
		assert.ErrorIs(t, err, ErrUnsupportedVariant)
	}
}
