package ump

import "fmt"

// Decode validates the payload of p and returns the message it carries.
// Failures are reported as a *DecodeError wrapping either a *FieldError
// or ErrUnknownMessageType.
func Decode(p Packet) (Message, error) {
	mt := p.MessageType()
	if p.n == 0 {
		return nil, &DecodeError{Type: mt, Err: fmt.Errorf("%w: empty packet", ErrWordCountMismatch)}
	}
	w := p.words[:p.n]

	var (
		m   Message
		err error
	)
	switch mt {
	case TypeUtility:
		m, err = decodeUtility(w)
	case TypeSystem:
		m, err = decodeSystem(w)
	case TypeMIDI1ChannelVoice:
		m, err = decodeMIDI1(w)
	case TypeData64:
		m, err = decodeData64(w)
	case TypeMIDI2ChannelVoice:
		m, err = decodeMIDI2(w)
	case TypeData128:
		m, err = decodeData128(w)
	case TypeFlexData:
		m, err = decodeFlexData(w)
	case TypeStream:
		m, err = decodeStream(w)
	case TypeReserved6, TypeReserved7, TypeReserved8, TypeReserved9,
		TypeReservedA, TypeReservedB, TypeReservedC, TypeReservedE:
		err = fmt.Errorf("%w: reserved type 0x%X", ErrUnknownMessageType, uint8(mt))
	default:
		err = fmt.Errorf("%w: 0x%X", ErrUnknownMessageType, uint8(mt))
	}
	if err != nil {
		return nil, &DecodeError{Type: mt, Err: err}
	}
	return m, nil
}

// DecodeWords builds a packet from words and decodes it.
func DecodeWords(words ...uint32) (Message, error) {
	p, err := NewPacket(words...)
	if err != nil {
		return nil, err
	}
	return Decode(p)
}

// Encode lays m out into a packet of its type's word count. Every field and
// the type nibble are written into zeroed words, so reserved bits are zero.
func Encode(m Message) Packet {
	mt := m.MessageType()
	p := Packet{n: uint8(registry[mt].words)}
	w := p.words[:p.n]
	set(w, 0, 4, uint32(mt))
	m.encode(w)
	return p
}
