package contracts

import (
	"slices"

	"github.com/leandrodaf/ump/sdk/ump"
)

// MIDIEventFilter allows users to specify which packets to capture.
// Empty lists match everything.
type MIDIEventFilter struct {
	Types  []ump.MessageType // Message types to keep.
	Groups []ump.Group       // Groups to keep. Groupless packets pass only when Groups is empty.
}

// Allows reports whether p passes the filter.
func (f *MIDIEventFilter) Allows(p ump.Packet) bool {
	if f == nil {
		return true
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, p.MessageType()) {
		return false
	}
	if len(f.Groups) > 0 {
		g, ok := p.Group()
		return ok && slices.Contains(f.Groups, g)
	}
	return true
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for the MIDI client.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	Group           ump.Group        // Group assigned to packets converted from the device byte stream.
	Protocol        ump.Protocol     // Protocol of emitted channel voice messages.
	CaptureFile     string           // Optional capture file receiving every emitted packet.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger for the MIDI client.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the MIDI client.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to path.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithGroup sets the group of packets converted from the device.
func WithGroup(g ump.Group) Option {
	return func(opts *ClientOptions) {
		opts.Group = g
	}
}

// WithProtocol selects MIDI 1.0 or MIDI 2.0 channel voice output.
// With ump.ProtocolMIDI2, channel voice messages are up-scaled.
func WithProtocol(p ump.Protocol) Option {
	return func(opts *ClientOptions) {
		opts.Protocol = p
	}
}

// WithCaptureFile records every emitted packet to a capture file at path.
func WithCaptureFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.CaptureFile = path
	}
}
