package capture

import (
	"errors"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/leandrodaf/ump/sdk/ump"
)

// ErrClosed is returned when writing to a closed FileWriter.
var ErrClosed = errors.New("capture file closed")

// FileWriter appends records to a capture file.
// It is safe for concurrent use from multiple goroutines.
type FileWriter struct {
	file    *os.File
	encoder *cbor.Encoder
	session string
	mu      sync.Mutex
	closed  bool
}

// NewFileWriter opens path for append, creating it with permissions 0644 if
// needed, and starts a new session.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileWriter{
		file:    f,
		encoder: newEncoder(f),
		session: uuid.New().String(),
	}, nil
}

// SessionID returns the ID stamped on every record this writer writes.
func (w *FileWriter) SessionID() string {
	return w.session
}

// Write appends r, setting its SessionID.
func (w *FileWriter) Write(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	r.SessionID = w.session
	return w.encoder.Encode(r)
}

// WritePacket records p as captured now.
func (w *FileWriter) WritePacket(p ump.Packet, dir Direction, source string) error {
	return w.Write(NewRecord(p, dir, source))
}

// Close closes the capture file.
// It is safe to call Close multiple times.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}
