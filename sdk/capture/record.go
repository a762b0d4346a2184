// Package capture records Universal MIDI Packets to CBOR files and reads
// them back, optionally filtered.
//
// A capture file is a plain sequence of CBOR-encoded Records. Files are
// opened for append, so several sessions may share one file; each writer
// stamps its records with its own session ID.
package capture

import (
	"time"

	"github.com/leandrodaf/ump/sdk/ump"
)

// Record is one captured packet.
// CBOR encoding uses integer keys for compactness.
type Record struct {
	// Timestamp when the packet was captured (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the writer that produced the record (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction of the packet relative to the capturing process.
	Direction Direction `cbor:"3,keyasint"`

	// Source names the device or port the packet came from.
	Source string `cbor:"4,keyasint,omitempty"`

	// Words are the raw packet words.
	Words []uint32 `cbor:"5,keyasint"`
}

// Direction indicates the direction of packet flow.
type Direction uint8

const (
	// DirectionIn is a packet received from a device.
	DirectionIn Direction = 0
	// DirectionOut is a packet sent to a device.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// NewRecord returns a record of p captured now.
func NewRecord(p ump.Packet, dir Direction, source string) Record {
	return Record{
		Timestamp: time.Now(),
		Direction: dir,
		Source:    source,
		Words:     p.Words(),
	}
}

// Packet revalidates the captured words as a packet.
func (r Record) Packet() (ump.Packet, error) {
	return ump.NewPacket(r.Words...)
}

// Message decodes the captured packet.
func (r Record) Message() (ump.Message, error) {
	p, err := r.Packet()
	if err != nil {
		return nil, err
	}
	return ump.Decode(p)
}
