package midi

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/leandrodaf/ump/internal/midi/mididarwin"
	"github.com/leandrodaf/ump/internal/midi/midiwindows"
	"github.com/leandrodaf/ump/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no capture client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

type clientInitializer func(*contracts.ClientOptions) (contracts.ClientMIDI, error)

// clientInitializers maps GOOS values to the platform capture client.
var clientInitializers = map[string]clientInitializer{
	"darwin":  mididarwin.NewMIDIClient,  // CoreMIDI
	"windows": midiwindows.NewMIDIClient, // winmm
}

// SupportedOS returns the GOOS values that have a capture client, sorted.
func SupportedOS() []string {
	out := make([]string, 0, len(clientInitializers))
	for goos := range clientInitializers {
		out = append(out, goos)
	}
	slices.Sort(out)
	return out
}

// NewClient initializes the capture client for the current operating system.
// Options are used as given; NewMIDIClient applies defaults first.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	initializer, ok := clientInitializers[runtime.GOOS]
	if !ok {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedOS, runtime.GOOS, strings.Join(SupportedOS(), ", "))
	}
	client, err := initializer(opts)
	if err != nil {
		return nil, fmt.Errorf("create %s MIDI client: %w", runtime.GOOS, err)
	}
	return client, nil
}
