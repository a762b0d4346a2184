package ump

// Utility message status values (bits 8..11).
const (
	statusNoOp                = 0x0
	statusJRClock             = 0x1
	statusJRTimestamp         = 0x2
	statusDeltaClockstampTPQN = 0x3
	statusDeltaClockstamp     = 0x4
)

// NoOp is the Utility NOOP message.
type NoOp struct{}

func (NoOp) MessageType() MessageType { return TypeUtility }

func (NoOp) encode([]uint32) {}

// JRClock carries the sender's 16-bit jitter reduction clock time
// (1/31250 second units).
type JRClock struct {
	time uint16
}

// NewJRClock returns a JR Clock message.
func NewJRClock(senderTime uint16) JRClock {
	return JRClock{time: senderTime}
}

// Time returns the sender clock time.
func (m JRClock) Time() uint16 { return m.time }

func (JRClock) MessageType() MessageType { return TypeUtility }

func (m JRClock) encode(w []uint32) {
	set(w, 8, 4, statusJRClock)
	set(w, 16, 16, uint32(m.time))
}

// JRTimestamp carries the 16-bit jitter reduction timestamp of the next message.
type JRTimestamp struct {
	timestamp uint16
}

// NewJRTimestamp returns a JR Timestamp message.
func NewJRTimestamp(timestamp uint16) JRTimestamp {
	return JRTimestamp{timestamp: timestamp}
}

// Timestamp returns the sender timestamp.
func (m JRTimestamp) Timestamp() uint16 { return m.timestamp }

func (JRTimestamp) MessageType() MessageType { return TypeUtility }

func (m JRTimestamp) encode(w []uint32) {
	set(w, 8, 4, statusJRTimestamp)
	set(w, 16, 16, uint32(m.timestamp))
}

// DeltaClockstampTPQN declares the number of delta clockstamp ticks per quarter note.
type DeltaClockstampTPQN struct {
	ticks uint16
}

// NewDeltaClockstampTPQN returns a Delta Clockstamp Ticks Per Quarter Note message.
func NewDeltaClockstampTPQN(ticks uint16) DeltaClockstampTPQN {
	return DeltaClockstampTPQN{ticks: ticks}
}

// Ticks returns the ticks per quarter note.
func (m DeltaClockstampTPQN) Ticks() uint16 { return m.ticks }

func (DeltaClockstampTPQN) MessageType() MessageType { return TypeUtility }

func (m DeltaClockstampTPQN) encode(w []uint32) {
	set(w, 8, 4, statusDeltaClockstampTPQN)
	set(w, 16, 16, uint32(m.ticks))
}

// DeltaClockstamp carries the 20-bit tick count since the last event.
type DeltaClockstamp struct {
	ticks uint32
}

// NewDeltaClockstamp returns a Delta Clockstamp message; ticks must fit in 20 bits.
func NewDeltaClockstamp(ticks uint32) (DeltaClockstamp, error) {
	if err := fits("ticks", uint64(ticks), 20); err != nil {
		return DeltaClockstamp{}, err
	}
	return DeltaClockstamp{ticks: ticks}, nil
}

// Ticks returns the ticks since the last event.
func (m DeltaClockstamp) Ticks() uint32 { return m.ticks }

func (DeltaClockstamp) MessageType() MessageType { return TypeUtility }

func (m DeltaClockstamp) encode(w []uint32) {
	set(w, 8, 4, statusDeltaClockstamp)
	set(w, 12, 20, m.ticks)
}

func decodeUtility(w []uint32) (Message, error) {
	// Utility messages are groupless; the nibble is reserved.
	if err := reserved(w, 4, 4, "group"); err != nil {
		return nil, err
	}

	switch status := get(w, 8, 4); status {
	case statusNoOp:
		if err := reserved(w, 12, 20, "data"); err != nil {
			return nil, err
		}
		return NoOp{}, nil
	case statusJRClock, statusJRTimestamp, statusDeltaClockstampTPQN:
		if err := reserved(w, 12, 4, "reserved"); err != nil {
			return nil, err
		}
		v := uint16(get(w, 16, 16))
		switch status {
		case statusJRClock:
			return JRClock{time: v}, nil
		case statusJRTimestamp:
			return JRTimestamp{timestamp: v}, nil
		default:
			return DeltaClockstampTPQN{ticks: v}, nil
		}
	case statusDeltaClockstamp:
		return DeltaClockstamp{ticks: get(w, 12, 20)}, nil
	default:
		return nil, outOfRange("status", status)
	}
}
