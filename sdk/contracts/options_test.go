package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/ump/sdk/ump"
)

func TestMIDIEventFilterAllows(t *testing.T) {
	voice, err := ump.NewPacket(0x21913C60)
	require.NoError(t, err)
	clock, err := ump.NewPacket(0x10F80000)
	require.NoError(t, err)
	noop, err := ump.NewPacket(0x00000000)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter *MIDIEventFilter
		packet ump.Packet
		want   bool
	}{
		{"nil filter", nil, voice, true},
		{"empty filter", &MIDIEventFilter{}, noop, true},
		{"type match", &MIDIEventFilter{Types: []ump.MessageType{ump.TypeMIDI1ChannelVoice}}, voice, true},
		{"type miss", &MIDIEventFilter{Types: []ump.MessageType{ump.TypeMIDI1ChannelVoice}}, clock, false},
		{"group match", &MIDIEventFilter{Groups: []ump.Group{1}}, voice, true},
		{"group miss", &MIDIEventFilter{Groups: []ump.Group{1}}, clock, false},
		{"groupless with groups", &MIDIEventFilter{Groups: []ump.Group{0}}, noop, false},
		{"type and group", &MIDIEventFilter{Types: []ump.MessageType{ump.TypeSystem}, Groups: []ump.Group{0}}, clock, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Allows(tt.packet))
		})
	}
}

func TestOptions(t *testing.T) {
	opts := &ClientOptions{}
	for _, opt := range []Option{
		WithLogLevel(DebugLevel),
		WithLogFile("/tmp/ump.log"),
		WithMIDIEventFilter(MIDIEventFilter{Groups: []ump.Group{2}}),
		WithCoreMIDIConfig(CoreMIDIConfig{ClientName: "test"}),
		WithGroup(2),
		WithProtocol(ump.ProtocolMIDI2),
		WithCaptureFile("session.ump"),
	} {
		opt(opts)
	}

	assert.Equal(t, DebugLevel, opts.LogLevel)
	assert.Equal(t, "/tmp/ump.log", opts.LogFilePath)
	require.NotNil(t, opts.MIDIEventFilter)
	assert.Equal(t, []ump.Group{2}, opts.MIDIEventFilter.Groups)
	assert.Equal(t, "test", opts.CoreMIDIConfig.ClientName)
	assert.Equal(t, ump.Group(2), opts.Group)
	assert.Equal(t, ump.ProtocolMIDI2, opts.Protocol)
	assert.Equal(t, "session.ump", opts.CaptureFile)
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "info", InfoLevel.String())
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "warn", WarnLevel.String())
	assert.Equal(t, "error", ErrorLevel.String())
	assert.Equal(t, "fatal", FatalLevel.String())
	assert.Equal(t, "unknown", LogLevel(9).String())
}
