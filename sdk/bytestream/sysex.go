package bytestream

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"

	"github.com/leandrodaf/ump/sdk/ump"
)

const sysex7Chunk = 6

// SysExToUMP splits a System Exclusive payload into SysEx7 packets on group g.
// A leading 0xF0 and trailing 0xF7 are stripped if present.
func SysExToUMP(g ump.Group, payload []byte) ([]ump.SysEx7, error) {
	if len(payload) > 0 && payload[0] == 0xF0 {
		payload = payload[1:]
	}
	if len(payload) > 0 && payload[len(payload)-1] == 0xF7 {
		payload = payload[:len(payload)-1]
	}

	if len(payload) <= sysex7Chunk {
		p, err := ump.NewSysEx7(g, ump.FormComplete, payload)
		if err != nil {
			return nil, err
		}
		return []ump.SysEx7{p}, nil
	}

	packets := make([]ump.SysEx7, 0, (len(payload)+sysex7Chunk-1)/sysex7Chunk)
	for off := 0; off < len(payload); off += sysex7Chunk {
		end := min(off+sysex7Chunk, len(payload))
		form := ump.FormContinue
		switch {
		case off == 0:
			form = ump.FormStart
		case end == len(payload):
			form = ump.FormEnd
		}
		p, err := ump.NewSysEx7(g, form, payload[off:end])
		if err != nil {
			return nil, err
		}
		packets = append(packets, p)
	}
	return packets, nil
}

// SysExFromUMP reassembles one complete SysEx from its packets and returns
// it framed with 0xF0 and 0xF7.
func SysExFromUMP(packets []ump.SysEx7) (midi.Message, error) {
	if len(packets) == 0 {
		return nil, fmt.Errorf("%w: no packets", ErrIncompleteSysEx)
	}

	first, last := packets[0].Status(), packets[len(packets)-1].Status()
	switch {
	case len(packets) == 1 && first == ump.FormComplete:
	case len(packets) > 1 && first == ump.FormStart && last == ump.FormEnd:
		for i, p := range packets[1 : len(packets)-1] {
			if p.Status() != ump.FormContinue {
				return nil, fmt.Errorf("%w: packet %d is %s", ErrIncompleteSysEx, i+1, p.Status())
			}
		}
	default:
		return nil, fmt.Errorf("%w: sequence %s..%s of %d packets", ErrIncompleteSysEx, first, last, len(packets))
	}

	var data []byte
	for _, p := range packets {
		data = append(data, p.Data()...)
	}
	return midi.SysEx(data), nil
}
