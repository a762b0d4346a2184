package ump

// Data 128 status values (bits 8..11). SysEx8 uses the Form values 0x0..0x3.
const (
	statusMixedDataSetHeader  = 0x8
	statusMixedDataSetPayload = 0x9
)

// SysEx7 is one packet of a 7-bit System Exclusive message (Data 64).
// A complete SysEx is split into Start, Continue... End packets, or sent as
// a single Complete packet, each carrying up to 6 bytes without F0/F7.
type SysEx7 struct {
	group  Group
	status Form
	n      uint8
	data   [6]byte
}

// NewSysEx7 returns a SysEx7 packet; data holds at most 6 7-bit bytes.
func NewSysEx7(g Group, status Form, data []byte) (SysEx7, error) {
	if err := firstErr(fits("group", uint64(g), 4), checkForm(status), checkBytes("data", data, 6, true)); err != nil {
		return SysEx7{}, err
	}
	m := SysEx7{group: g, status: status, n: uint8(len(data))}
	copy(m.data[:], data)
	return m, nil
}

func (m SysEx7) Group() Group { return m.group }
func (m SysEx7) Status() Form { return m.status }
func (m SysEx7) Len() int     { return int(m.n) }
func (m SysEx7) Data() []byte { return append([]byte(nil), m.data[:m.n]...) }

func (SysEx7) MessageType() MessageType { return TypeData64 }

func (m SysEx7) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 4, uint32(m.status))
	set(w, 12, 4, uint32(m.n))
	putBytes(w, 16, m.data[:m.n])
}

func decodeData64(w []uint32) (Message, error) {
	status := get(w, 8, 4)
	if status > uint32(FormEnd) {
		return nil, outOfRange("status", status)
	}
	n := get(w, 12, 4)
	if n > 6 {
		return nil, outOfRange("count", n)
	}

	m := SysEx7{group: groupOf(w), status: Form(status), n: uint8(n)}
	getBytes(w, 16, m.data[:])
	for i, b := range m.data {
		if (i < int(n) && b > 0x7F) || (i >= int(n) && b != 0) {
			return nil, &FieldError{Field: "data", Value: uint64(b), Err: ErrReservedBitsSet}
		}
	}
	return m, nil
}

// SysEx8 is one packet of an 8-bit System Exclusive message (Data 128),
// carrying a stream ID and up to 13 data bytes.
type SysEx8 struct {
	group  Group
	status Form
	stream uint8
	n      uint8
	data   [13]byte
}

// NewSysEx8 returns a SysEx8 packet; data holds at most 13 bytes.
func NewSysEx8(g Group, status Form, streamID uint8, data []byte) (SysEx8, error) {
	if err := firstErr(fits("group", uint64(g), 4), checkForm(status), checkBytes("data", data, 13, false)); err != nil {
		return SysEx8{}, err
	}
	m := SysEx8{group: g, status: status, stream: streamID, n: uint8(len(data))}
	copy(m.data[:], data)
	return m, nil
}

func (m SysEx8) Group() Group    { return m.group }
func (m SysEx8) Status() Form    { return m.status }
func (m SysEx8) StreamID() uint8 { return m.stream }
func (m SysEx8) Len() int        { return int(m.n) }
func (m SysEx8) Data() []byte    { return append([]byte(nil), m.data[:m.n]...) }

func (SysEx8) MessageType() MessageType { return TypeData128 }

func (m SysEx8) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 4, uint32(m.status))
	// The byte count includes the stream ID.
	set(w, 12, 4, uint32(m.n)+1)
	set(w, 16, 8, uint32(m.stream))
	putBytes(w, 24, m.data[:m.n])
}

// MixedDataSetHeader describes the chunks of a Mixed Data Set.
type MixedDataSetHeader struct {
	group  Group
	id     uint8
	header MixedDataSetInfo
}

// MixedDataSetInfo holds the header fields of a Mixed Data Set.
type MixedDataSetInfo struct {
	ValidBytes     uint16 // Number of valid bytes in this chunk.
	ChunkCount     uint16
	ChunkNumber    uint16
	ManufacturerID uint16
	DeviceID       uint16
	SubID1         uint16
	SubID2         uint16
}

// NewMixedDataSetHeader returns a header for the 4-bit Mixed Data Set id.
func NewMixedDataSetHeader(g Group, id uint8, info MixedDataSetInfo) (MixedDataSetHeader, error) {
	if err := firstErr(fits("group", uint64(g), 4), fits("mds_id", uint64(id), 4)); err != nil {
		return MixedDataSetHeader{}, err
	}
	return MixedDataSetHeader{group: g, id: id, header: info}, nil
}

func (m MixedDataSetHeader) Group() Group           { return m.group }
func (m MixedDataSetHeader) ID() uint8              { return m.id }
func (m MixedDataSetHeader) Info() MixedDataSetInfo { return m.header }

func (MixedDataSetHeader) MessageType() MessageType { return TypeData128 }

func (m MixedDataSetHeader) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 4, statusMixedDataSetHeader)
	set(w, 12, 4, uint32(m.id))
	for i, v := range m.header.fields() {
		set(w, 16+uint(i)*16, 16, uint32(v))
	}
}

func (h MixedDataSetInfo) fields() [7]uint16 {
	return [7]uint16{h.ValidBytes, h.ChunkCount, h.ChunkNumber, h.ManufacturerID, h.DeviceID, h.SubID1, h.SubID2}
}

// MixedDataSetPayload carries 14 bytes of a Mixed Data Set chunk.
type MixedDataSetPayload struct {
	group   Group
	id      uint8
	payload [14]byte
}

// NewMixedDataSetPayload returns a payload packet; shorter payloads are zero padded.
func NewMixedDataSetPayload(g Group, id uint8, payload []byte) (MixedDataSetPayload, error) {
	if err := firstErr(fits("group", uint64(g), 4), fits("mds_id", uint64(id), 4), checkBytes("payload", payload, 14, false)); err != nil {
		return MixedDataSetPayload{}, err
	}
	m := MixedDataSetPayload{group: g, id: id}
	copy(m.payload[:], payload)
	return m, nil
}

func (m MixedDataSetPayload) Group() Group    { return m.group }
func (m MixedDataSetPayload) ID() uint8       { return m.id }
func (m MixedDataSetPayload) Payload() []byte { return append([]byte(nil), m.payload[:]...) }

func (MixedDataSetPayload) MessageType() MessageType { return TypeData128 }

func (m MixedDataSetPayload) encode(w []uint32) {
	putGroup(w, m.group)
	set(w, 8, 4, statusMixedDataSetPayload)
	set(w, 12, 4, uint32(m.id))
	putBytes(w, 16, m.payload[:])
}

func decodeData128(w []uint32) (Message, error) {
	g := groupOf(w)

	switch status := get(w, 8, 4); {
	case status <= uint32(FormEnd):
		n := get(w, 12, 4)
		if n == 0 || n > 14 {
			return nil, outOfRange("count", n)
		}
		m := SysEx8{group: g, status: Form(status), stream: uint8(get(w, 16, 8)), n: uint8(n - 1)}
		getBytes(w, 24, m.data[:m.n])
		if err := reservedBytes(w, 24, int(m.n), len(m.data), "data"); err != nil {
			return nil, err
		}
		return m, nil
	case status == statusMixedDataSetHeader:
		var f [7]uint16
		for i := range f {
			f[i] = uint16(get(w, 16+uint(i)*16, 16))
		}
		return MixedDataSetHeader{group: g, id: uint8(get(w, 12, 4)), header: MixedDataSetInfo{
			ValidBytes: f[0], ChunkCount: f[1], ChunkNumber: f[2],
			ManufacturerID: f[3], DeviceID: f[4], SubID1: f[5], SubID2: f[6],
		}}, nil
	case status == statusMixedDataSetPayload:
		m := MixedDataSetPayload{group: g, id: uint8(get(w, 12, 4))}
		getBytes(w, 16, m.payload[:])
		return m, nil
	default:
		return nil, outOfRange("status", status)
	}
}
