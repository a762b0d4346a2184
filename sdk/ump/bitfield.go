package ump

import "fmt"

// Extract reads width bits starting at the MSB-first offset start.
// Fields may span two adjacent words.
func Extract(words []uint32, start, width uint) (uint32, error) {
	if err := checkRange(len(words), start, width); err != nil {
		return 0, err
	}
	pair, off := wordPair(words, start)
	return uint32((pair << off) >> (64 - width)), nil
}

// Insert writes value into width bits starting at the MSB-first offset start,
// leaving every other bit of words untouched.
func Insert(words []uint32, start, width uint, value uint32) error {
	if err := checkRange(len(words), start, width); err != nil {
		return err
	}
	if uint64(value) >= 1<<width {
		return fmt.Errorf("%w: %d in %d bits", ErrOverflow, value, width)
	}

	idx := start / 32
	pair, off := wordPair(words, start)
	shift := 64 - off - width
	mask := (uint64(1)<<width - 1) << shift
	pair = pair&^mask | uint64(value)<<shift

	words[idx] = uint32(pair >> 32)
	if int(idx)+1 < len(words) {
		words[idx+1] = uint32(pair)
	}
	return nil
}

func checkRange(n int, start, width uint) error {
	if width == 0 || width > 32 || start+width > uint(n)*32 {
		return fmt.Errorf("%w: offset %d width %d in %d words", ErrRange, start, width, n)
	}
	return nil
}

// wordPair loads the word holding start and its successor (zero past the end)
// as one 64-bit value, plus the bit offset of start inside it.
func wordPair(words []uint32, start uint) (uint64, uint) {
	idx := start / 32
	pair := uint64(words[idx]) << 32
	if int(idx)+1 < len(words) {
		pair |= uint64(words[idx+1])
	}
	return pair, start % 32
}

// get and set are used with the fixed layouts of this package, which are
// always inside the packet, so a failure is a programming error.
func get(words []uint32, start, width uint) uint32 {
	v, err := Extract(words, start, width)
	if err != nil {
		panic(fmt.Sprintf("ump: layout error: %v", err))
	}
	return v
}

func set(words []uint32, start, width uint, value uint32) {
	if err := Insert(words, start, width, value); err != nil {
		panic(fmt.Sprintf("ump: layout error: %v", err))
	}
}

func setBool(words []uint32, bit uint, v bool) {
	if v {
		set(words, bit, 1, 1)
	}
}

// reserved fails with ErrReservedBitsSet if any of the width bits at start is set.
func reserved(words []uint32, start, width uint, field string) error {
	if v := get(words, start, width); v != 0 {
		return &FieldError{Field: field, Value: uint64(v), Err: ErrReservedBitsSet}
	}
	return nil
}

// reservedBytes checks every byte at offsets start+8*i for i in [from, to).
func reservedBytes(words []uint32, start uint, from, to int, field string) error {
	for i := from; i < to; i++ {
		if err := reserved(words, start+uint(i)*8, 8, field); err != nil {
			return err
		}
	}
	return nil
}
