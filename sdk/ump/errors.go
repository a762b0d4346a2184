package ump

import (
	"errors"
	"fmt"
)

// Error definitions for packet construction, bit access and decoding.
var (
	ErrRange              = errors.New("bit range outside packet")
	ErrOverflow           = errors.New("value does not fit in field")
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrWordCountMismatch  = errors.New("word count does not match message type")
	ErrFieldOutOfRange    = errors.New("field out of range")
	ErrReservedBitsSet    = errors.New("reserved bits set")
)

// FieldError reports which field of a message failed validation.
type FieldError struct {
	Field string // Field name, e.g. "channel" or "velocity".
	Value uint64 // Offending value as read or supplied.
	Err   error  // One of ErrOverflow, ErrFieldOutOfRange or ErrReservedBitsSet.
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v (0x%X)", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// DecodeError wraps a decoding failure with the message type being decoded.
type DecodeError struct {
	Type MessageType
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func outOfRange(field string, v uint32) error {
	return &FieldError{Field: field, Value: uint64(v), Err: ErrFieldOutOfRange}
}

// fits reports an overflow if v needs more than width bits.
func fits(field string, v uint64, width uint) error {
	if v >= 1<<width {
		return &FieldError{Field: field, Value: v, Err: ErrOverflow}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
