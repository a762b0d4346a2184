// Package pipeline turns raw MIDI 1.0 bytes from a device into UMP events.
// It is shared by the platform capture clients.
package pipeline

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/ump/sdk/bytestream"
	"github.com/leandrodaf/ump/sdk/capture"
	"github.com/leandrodaf/ump/sdk/contracts"
	"github.com/leandrodaf/ump/sdk/translate"
	"github.com/leandrodaf/ump/sdk/ump"
)

// defaultReleaseVelocity is the Note Off velocity for a device without
// release velocity.
const defaultReleaseVelocity = 0x40

// Pipeline converts one device's byte stream. It is safe for concurrent use,
// but bytes from different devices must go through different pipelines.
type Pipeline struct {
	logger   contracts.Logger
	filter   *contracts.MIDIEventFilter
	group    ump.Group
	protocol ump.Protocol
	capture  *capture.FileWriter

	mu      sync.Mutex
	parser  *bytestream.Parser
	source  string
	dropped int
}

// New creates a pipeline configured from options. When options name a
// capture file it is opened here and closed by Close.
func New(options *contracts.ClientOptions) (*Pipeline, error) {
	if options.Group > 15 {
		return nil, fmt.Errorf("invalid group %d", options.Group)
	}
	if options.Protocol > ump.ProtocolMIDI2 {
		return nil, fmt.Errorf("invalid protocol %d", options.Protocol)
	}

	p := &Pipeline{
		logger:   options.Logger,
		filter:   options.MIDIEventFilter,
		group:    options.Group,
		protocol: options.Protocol,
		parser:   bytestream.NewParser(),
	}
	if options.CaptureFile != "" {
		w, err := capture.NewFileWriter(options.CaptureFile)
		if err != nil {
			return nil, fmt.Errorf("open capture file: %w", err)
		}
		p.capture = w
		p.logger.Info("Capturing packets to file",
			p.logger.Field().String("path", options.CaptureFile),
			p.logger.Field().String("session", w.SessionID()))
	}
	return p, nil
}

// SetSource names the device feeding the pipeline and discards any partial
// message from the previous device.
func (p *Pipeline) SetSource(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.source = name
	p.parser.Reset()
}

// Process parses data and returns the resulting events stamped with at.
func (p *Pipeline) Process(data []byte, at time.Time) []contracts.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.parser.Feed(data)
	if d := p.parser.Dropped(); d > p.dropped {
		p.logger.Warn("Dropped invalid MIDI bytes",
			p.logger.Field().Int("count", d-p.dropped),
			p.logger.Field().String("source", p.source))
		p.dropped = d
	}
	return p.convert(msgs, at)
}

// ProcessMessage converts one complete message, bypassing the parser.
func (p *Pipeline) ProcessMessage(msg midi.Message, at time.Time) []contracts.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.convert([]midi.Message{msg}, at)
}

func (p *Pipeline) convert(msgs []midi.Message, at time.Time) []contracts.Event {
	var events []contracts.Event
	for _, msg := range msgs {
		converted, err := bytestream.Convert(p.group, msg)
		if err != nil {
			p.logger.Warn("Skipping MIDI message",
				p.logger.Field().String("message", msg.String()),
				p.logger.Field().Error("error", err))
			continue
		}
		for _, m := range converted {
			if ev, ok := p.event(m, at); ok {
				events = append(events, ev)
			}
		}
	}
	return events
}

func (p *Pipeline) event(m ump.Message, at time.Time) (contracts.Event, bool) {
	if p.protocol == ump.ProtocolMIDI2 {
		// A MIDI 2.0 Note On with velocity 0 sounds, so the MIDI 1.0
		// running-status note off becomes a real Note Off first.
		if on, ok := m.(ump.MIDI1NoteOn); ok && on.Velocity() == 0 {
			off, err := ump.NewMIDI1NoteOff(on.Group(), on.Channel(), on.Note(), defaultReleaseVelocity)
			if err != nil {
				p.logger.Error("Note Off conversion failed", p.logger.Field().Error("error", err))
				return contracts.Event{}, false
			}
			m = off
		}
		up, err := translate.UpScale(m)
		switch {
		case err == nil:
			m = up
		case !errors.Is(err, translate.ErrUnsupportedVariant):
			p.logger.Error("Up-scaling failed", p.logger.Field().Error("error", err))
			return contracts.Event{}, false
		}
	}

	pkt := ump.Encode(m)
	if !p.filter.Allows(pkt) {
		return contracts.Event{}, false
	}

	if p.capture != nil {
		rec := capture.NewRecord(pkt, capture.DirectionIn, p.source)
		rec.Timestamp = at
		if err := p.capture.Write(rec); err != nil {
			p.logger.Error("Failed to write capture record", p.logger.Field().Error("error", err))
		}
	}

	p.logger.Debug("UMP packet",
		p.logger.Field().String("packet", pkt.String()),
		p.logger.Field().String("source", p.source))

	return contracts.Event{
		Timestamp: uint64(at.UnixNano()),
		Source:    p.source,
		Packet:    pkt,
		Message:   m,
	}, true
}

// Close closes the capture file, if any.
func (p *Pipeline) Close() error {
	if p.capture == nil {
		return nil
	}
	return p.capture.Close()
}
