package midi

import (
	"fmt"

	"github.com/leandrodaf/ump/internal/logger"
	"github.com/leandrodaf/ump/sdk/contracts"
	"github.com/leandrodaf/ump/sdk/ump"
)

// DefaultClientName is the CoreMIDI client name used when none is configured.
const DefaultClientName = "GO UMP Client"

// applyDefaultOptions sets default values for ClientOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if an option holds an invalid group or protocol.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if _, err := ump.NewGroup(uint8(options.Group)); err != nil {
		return contracts.ClientOptions{}, err
	}
	switch options.Protocol {
	case ump.ProtocolUnset:
		options.Protocol = ump.ProtocolMIDI1
	case ump.ProtocolMIDI1, ump.ProtocolMIDI2:
	default:
		return contracts.ClientOptions{}, fmt.Errorf("unsupported protocol %s", options.Protocol)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: DefaultClientName}
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options, nil
}
