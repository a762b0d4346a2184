package midi

import (
	"github.com/leandrodaf/ump/sdk/contracts"
)

// NewMIDIClient creates a new MIDI client with the specified options.
// It applies default options and initializes the client.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error, if any occurred during the creation of the client.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(&options)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// NewMIDIClientFromConfig creates a client from a YAML configuration file.
// Options in opts are applied after the file and take precedence.
func NewMIDIClientFromConfig(path string, opts ...contracts.Option) (contracts.ClientMIDI, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	fileOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return NewMIDIClient(append(fileOpts, opts...)...)
}
