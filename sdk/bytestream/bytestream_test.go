package bytestream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/ump/sdk/ump"
)

func TestToUMPNoteOn(t *testing.T) {
	m, err := ToUMP(0, midi.NoteOn(1, 60, 96))
	require.NoError(t, err)

	on, ok := m.(ump.MIDI1NoteOn)
	require.True(t, ok, "got %T", m)
	assert.Equal(t, ump.Channel(1), on.Channel())
	assert.Equal(t, uint8(60), on.Note())
	assert.Equal(t, uint8(96), on.Velocity())
	assert.Equal(t, []uint32{0x20913C60}, ump.Encode(m).Words())
}

func TestByteRoundTrip(t *testing.T) {
	msgs := []midi.Message{
		midi.NoteOn(0, 60, 100),
		midi.NoteOffVelocity(15, 127, 64),
		midi.PolyAfterTouch(3, 40, 20),
		midi.ControlChange(2, 7, 127),
		midi.ProgramChange(9, 0),
		midi.AfterTouch(4, 99),
		midi.Pitchbend(0, 0),
		midi.Pitchbend(5, -8192),
		midi.Pitchbend(5, 8191),
		midi.TimingClock(),
		midi.Start(),
		midi.Continue(),
		midi.Stop(),
		midi.Activesense(),
		midi.Reset(),
		{0xF6},
		{0xF1, 0x35},
		{0xF2, 0x10, 0x20},
		{0xF3, 0x05},
	}
	for _, msg := range msgs {
		m, err := ToUMP(3, msg)
		require.NoError(t, err, "% X", []byte(msg))

		g, ok := ump.Encode(m).Group()
		assert.True(t, ok)
		assert.Equal(t, ump.Group(3), g)

		back, err := FromUMP(m)
		require.NoError(t, err)
		assert.Equal(t, []byte(msg), []byte(back))
	}
}

func TestPitchbendCenter(t *testing.T) {
	m, err := ToUMP(0, midi.Pitchbend(0, 0))
	require.NoError(t, err)
	assert.Equal(t, uint16(0x2000), m.(ump.MIDI1PitchBend).Value())
}

func TestToUMPErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  midi.Message
		want error
	}{
		{"empty", nil, ErrMalformedMessage},
		{"short note on", midi.Message{0x90, 0x3C}, ErrMalformedMessage},
		{"data byte with high bit", midi.Message{0xB0, 0x07, 0x80}, ErrMalformedMessage},
		{"undefined system common", midi.Message{0xF4}, ErrUnsupportedMessage},
		{"sysex", midi.SysEx([]byte{0x7E}), ErrUnsupportedMessage},
		{"running status data", midi.Message{0x3C, 0x64}, ErrUnsupportedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToUMP(0, tt.msg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFromUMPRejectsMIDI2(t *testing.T) {
	m, err := ump.NewMIDI2NoteOn(0, 0, 60, 0xFFFF, ump.Attribute{})
	require.NoError(t, err)
	_, err = FromUMP(m)
	assert.ErrorIs(t, err, ErrUnsupportedMessage)

	_, err = FromUMP(nil)
	assert.ErrorIs(t, err, ErrUnsupportedMessage)
}

func TestConvertSysEx(t *testing.T) {
	msgs, err := Convert(1, midi.SysEx([]byte{0x7E, 0x7F, 0x06, 0x01}))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, []uint32{0x31047E7F, 0x06010000}, ump.Encode(msgs[0]).Words())

	msgs, err = Convert(1, midi.ControlChange(0, 1, 2))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.IsType(t, ump.MIDI1ControlChange{}, msgs[0])
}

func TestSysExChunking(t *testing.T) {
	payload := []byte{0x43, 0x10, 0x4C, 0x00, 0x00, 0x7E, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}
	framed := midi.SysEx(payload)

	packets, err := SysExToUMP(0, framed)
	require.NoError(t, err)
	require.Len(t, packets, 3)
	assert.Equal(t, ump.FormStart, packets[0].Status())
	assert.Equal(t, ump.FormContinue, packets[1].Status())
	assert.Equal(t, ump.FormEnd, packets[2].Status())
	assert.Equal(t, 6, packets[0].Len())
	assert.Equal(t, 2, packets[2].Len())

	back, err := SysExFromUMP(packets)
	require.NoError(t, err)
	assert.Equal(t, []byte(framed), []byte(back))

	single, err := SysExToUMP(0, payload[:6])
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, ump.FormComplete, single[0].Status())

	empty, err := SysExToUMP(0, []byte{0xF0, 0xF7})
	require.NoError(t, err)
	require.Len(t, empty, 1)
	assert.Equal(t, 0, empty[0].Len())

	_, err = SysExToUMP(0, []byte{0xF0, 0x80, 0xF7})
	assert.ErrorIs(t, err, ump.ErrOverflow)
}

func TestSysExFromUMPIncomplete(t *testing.T) {
	start, err := ump.NewSysEx7(0, ump.FormStart, []byte{1})
	require.NoError(t, err)
	cont, err := ump.NewSysEx7(0, ump.FormContinue, []byte{2})
	require.NoError(t, err)
	end, err := ump.NewSysEx7(0, ump.FormEnd, []byte{3})
	require.NoError(t, err)
	complete, err := ump.NewSysEx7(0, ump.FormComplete, []byte{4})
	require.NoError(t, err)

	for name, seq := range map[string][]ump.SysEx7{
		"empty":             nil,
		"start only":        {start},
		"missing start":     {cont, end},
		"complete twice":    {complete, complete},
		"end in the middle": {start, end, end},
	} {
		_, err := SysExFromUMP(seq)
		assert.ErrorIs(t, err, ErrIncompleteSysEx, name)
	}

	msg, err := SysExFromUMP([]ump.SysEx7{start, cont, end})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 1, 2, 3, 0xF7}, []byte(msg))
}

func TestParserRunningStatus(t *testing.T) {
	p := NewParser()
	got := p.Feed([]byte{0x90, 60, 100, 62, 100, 0xF8, 64, 0})
	assert.Equal(t, []midi.Message{
		{0x90, 60, 100},
		{0x90, 62, 100},
		{0xF8},
		{0x90, 64, 0},
	}, got)
	assert.Zero(t, p.Dropped())
}

func TestParserSplitAcrossFeeds(t *testing.T) {
	p := NewParser()
	assert.Empty(t, p.Feed([]byte{0xB0, 0x07}))
	assert.Equal(t, []midi.Message{{0xB0, 0x07, 0x64}}, p.Feed([]byte{0x64}))
	assert.Equal(t, []midi.Message{{0xB0, 0x0A, 0x40}}, p.Feed([]byte{0x0A, 0x40}))
}

func TestParserSysEx(t *testing.T) {
	p := NewParser()
	got := p.Feed([]byte{0xF0, 0x7E, 0xF8, 0x7F, 0x09, 0xF7, 0xC0, 0x05})
	assert.Equal(t, []midi.Message{
		{0xF8},
		{0xF0, 0x7E, 0x7F, 0x09, 0xF7},
		{0xC0, 0x05},
	}, got)
}

func TestParserDropsInvalidBytes(t *testing.T) {
	p := NewParser()

	assert.Empty(t, p.Feed([]byte{0x3C, 0xF7, 0xF9}))
	assert.Equal(t, 3, p.Dropped())

	got := p.Feed([]byte{0x90, 0x3C, 0xB0, 0x07, 0x64})
	assert.Equal(t, []midi.Message{{0xB0, 0x07, 0x64}}, got)
	assert.Equal(t, 5, p.Dropped())

	// System common clears running status.
	got = p.Feed([]byte{0xF6, 0x07, 0x64})
	assert.Equal(t, []midi.Message{{0xF6}}, got)
	assert.Equal(t, 7, p.Dropped())

	p.Reset()
	assert.Empty(t, p.Feed([]byte{0x40}))
}

func TestUnpack(t *testing.T) {
	msg, err := Unpack(0x00643C90)
	require.NoError(t, err)
	assert.Equal(t, midi.Message{0x90, 0x3C, 0x64}, msg)

	msg, err = Unpack(0xFFFF05C2)
	require.NoError(t, err)
	assert.Equal(t, midi.Message{0xC2, 0x05}, msg)

	msg, err = Unpack(0x000000F8)
	require.NoError(t, err)
	assert.Equal(t, midi.Message{0xF8}, msg)

	_, err = Unpack(0x00000040)
	assert.ErrorIs(t, err, ErrUnsupportedMessage)
	_, err = Unpack(0x000000F0)
	assert.ErrorIs(t, err, ErrUnsupportedMessage)
}

func TestSongPositionByteOrder(t *testing.T) {
	for _, pos := range []uint16{1, 0x0081, 0x3FFF} {
		m, err := ump.NewSongPosition(0, pos)
		require.NoError(t, err)

		msg, err := FromUMP(m)
		require.NoError(t, err)
		assert.Equal(t, midi.Message{0xF2, byte(pos & 0x7F), byte(pos >> 7)}, msg)

		back, err := ToUMP(0, msg)
		require.NoError(t, err)
		assert.Equal(t, pos, back.(ump.SongPosition).Position())
	}
}

func TestParserStrayEndOfExclusive(t *testing.T) {
	p := NewParser()

	// F7 outside SysEx drops the partial message and clears running status.
	assert.Empty(t, p.Feed([]byte{0x90, 0x3C, 0xF7, 0x40}))
	assert.Equal(t, 4, p.Dropped())

	assert.Equal(t, []midi.Message{{0x80, 0x3C, 0x40}}, p.Feed([]byte{0x80, 0x3C, 0x40}))
}

func TestParserSysExLimit(t *testing.T) {
	p := NewParser()

	long := make([]byte, MaxSysExLen+10)
	long[0] = 0xF0
	assert.Empty(t, p.Feed(long))
	assert.Empty(t, p.Feed([]byte{0xF7}))
	assert.Equal(t, MaxSysExLen+11, p.Dropped())

	got := p.Feed([]byte{0xF0, 0x7E, 0xF7})
	assert.Equal(t, []midi.Message{{0xF0, 0x7E, 0xF7}}, got)
}
