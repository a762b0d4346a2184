package bytestream

import "gitlab.com/gomidi/midi/v2"

// MaxSysExLen bounds a buffered SysEx message, F0 included. Longer messages
// are dropped along with the rest of their bytes.
const MaxSysExLen = 4096

// Parser splits a raw MIDI 1.0 byte stream into complete messages. It
// handles running status, real time bytes interleaved anywhere (including
// inside SysEx) and SysEx accumulation.
//
// A Parser keeps state between calls to Feed and must not be shared
// between connections or goroutines.
type Parser struct {
	running byte
	buf     []byte
	need    int
	sysex   []byte
	inSysEx bool
	dropped int
}

// NewParser returns a Parser with no running status.
func NewParser() *Parser {
	return &Parser{buf: make([]byte, 0, 3)}
}

// Feed consumes data and returns the messages it completes. Bytes that
// cannot belong to any message are counted by Dropped.
func (p *Parser) Feed(data []byte) []midi.Message {
	var out []midi.Message
	for _, b := range data {
		if m := p.feed(b); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (p *Parser) feed(b byte) midi.Message {
	switch {
	case b >= 0xF8:
		if dataLen(b) < 0 {
			p.dropped++
			return nil
		}
		return midi.Message{b}
	case b == 0xF0:
		p.abortSysEx()
		p.dropIncomplete()
		p.running = 0
		p.inSysEx = true
		p.sysex = append(p.sysex[:0], b)
		return nil
	case b == 0xF7:
		if !p.inSysEx {
			p.dropIncomplete()
			p.running = 0
			p.dropped++
			return nil
		}
		p.inSysEx = false
		return midi.Message(append(append([]byte(nil), p.sysex...), b))
	case b >= 0x80:
		p.abortSysEx()
		p.dropIncomplete()
		n := dataLen(b)
		if n < 0 {
			p.running = 0
			p.dropped++
			return nil
		}
		if b < 0xF0 {
			p.running = b
		} else {
			p.running = 0
		}
		p.buf = append(p.buf, b)
		p.need = n
		return p.complete()
	}

	if p.inSysEx {
		if len(p.sysex) >= MaxSysExLen {
			p.abortSysEx()
			p.dropped++
			return nil
		}
		p.sysex = append(p.sysex, b)
		return nil
	}
	if len(p.buf) == 0 {
		if p.running == 0 {
			p.dropped++
			return nil
		}
		p.buf = append(p.buf, p.running)
		p.need = dataLen(p.running)
	}
	p.buf = append(p.buf, b)
	return p.complete()
}

func (p *Parser) complete() midi.Message {
	if len(p.buf)-1 < p.need {
		return nil
	}
	m := midi.Message(append([]byte(nil), p.buf...))
	p.buf = p.buf[:0]
	return m
}

func (p *Parser) abortSysEx() {
	if p.inSysEx {
		p.dropped += len(p.sysex)
		p.inSysEx = false
	}
}

func (p *Parser) dropIncomplete() {
	p.dropped += len(p.buf)
	p.buf = p.buf[:0]
}

// Dropped returns the number of bytes discarded so far: stray data bytes,
// undefined status bytes and interrupted messages.
func (p *Parser) Dropped() int {
	return p.dropped
}

// Reset clears running status and any partial message.
func (p *Parser) Reset() {
	p.running, p.need = 0, 0
	p.buf = p.buf[:0]
	p.sysex = p.sysex[:0]
	p.inSysEx = false
}
