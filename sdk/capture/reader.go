package capture

import (
	"errors"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/leandrodaf/ump/sdk/ump"
)

// Filter specifies criteria for filtering records.
// Empty/nil fields match all records for that criterion.
type Filter struct {
	// SessionID filters by exact session ID match.
	SessionID string

	// Direction filters by packet direction.
	Direction *Direction

	// Source filters by exact source name.
	Source string

	// Types keeps only packets of the listed message types.
	Types []ump.MessageType

	// Group keeps only packets on this group. Groupless packets never match.
	Group *ump.Group

	// TimeStart filters records at or after this time.
	TimeStart *time.Time

	// TimeEnd filters records before this time.
	TimeEnd *time.Time
}

func (f *Filter) matches(r Record) bool {
	if f.SessionID != "" && r.SessionID != f.SessionID {
		return false
	}
	if f.Direction != nil && r.Direction != *f.Direction {
		return false
	}
	if f.Source != "" && r.Source != f.Source {
		return false
	}
	if f.TimeStart != nil && r.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !r.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	if len(f.Types) == 0 && f.Group == nil {
		return true
	}

	p, err := r.Packet()
	if err != nil {
		return false
	}
	if len(f.Types) > 0 && !slices.Contains(f.Types, p.MessageType()) {
		return false
	}
	if f.Group != nil {
		g, ok := p.Group()
		if !ok || g != *f.Group {
			return false
		}
	}
	return true
}

// Reader reads records from a capture file.
// It provides an iterator interface for streaming large files.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader creates a Reader that reads every record in path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads records matching the filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{
		file:    f,
		decoder: newDecoder(f),
		filter:  filter,
	}, nil
}

// Next returns the next record that matches the filter.
// Returns io.EOF when no more records are available.
func (r *Reader) Next() (Record, error) {
	for {
		var rec Record
		if err := r.decoder.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, io.EOF
			}
			return Record{}, err
		}

		if r.filter.matches(rec) {
			return rec, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
