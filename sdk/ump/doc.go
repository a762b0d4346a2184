// Package ump implements the MIDI 2.0 Universal MIDI Packet (UMP) format.
//
// A UMP is one to four 32-bit words. The high nibble of the first word is the
// message type, which fixes the packet size and the layout of every field in
// it. This package provides:
//   - Extract and Insert: MSB-first bit field access over word arrays
//   - MessageType: the 16-entry registry of word counts and group presence
//   - Packet: an immutable, size-checked container for raw words
//   - Message: the typed variants (Utility, System, MIDI 1.0 and MIDI 2.0
//     Channel Voice, Data 64/128, Flex Data, UMP Stream)
//   - Decode and Encode: strict, bit-exact conversion between the two
//
// # Bit Order
//
// Field offsets count from the most significant bit of word 0. Offset 0 is
// bit 31 of word 0 and offset 32 is bit 31 of word 1, so a Group field is
// written as (4, 4) and a MIDI 2.0 velocity as (32, 16).
//
// # Strictness
//
// Decode rejects reserved bits that are set and values the protocol does
// not define, so Encode(Decode(p)) always reproduces p. Every message value
// is immutable and can only be built through a validating constructor or by
// decoding, which makes Encode total.
//
// All functions are pure and safe for concurrent use.
package ump
