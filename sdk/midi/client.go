package midi

import (
	"github.com/leandrodaf/tonesynth/internal/options"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// NewMIDIClient creates a new MIDI input client for the current platform.
// It applies default options and initializes the client.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error wrapping contracts.ErrMIDIInit if the platform driver could not start.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	resolved := options.Apply(opts...)
	return NewClient(&resolved)
}
