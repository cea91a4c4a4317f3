package midi

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/leandrodaf/tonesynth/internal/midi/mididarwin"
	"github.com/leandrodaf/tonesynth/internal/midi/midilinux"
	"github.com/leandrodaf/tonesynth/internal/midi/midiwindows"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system is not supported by the MIDI client.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// clientInitializers maps OS names to corresponding MIDI client initializers.
var clientInitializers = map[string]func(*contracts.ClientOptions) (contracts.ClientMIDI, error){
	"darwin":  mididarwin.NewMIDIClient,  // CoreMIDI
	"windows": midiwindows.NewMIDIClient, // winmm midiIn
	"linux":   midilinux.NewMIDIClient,   // ALSA through rtmidi
}

// NewClient initializes a MIDI client based on the current operating system.
//
// opts *contracts.ClientOptions: Configuration options for the MIDI client.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: contracts.ErrMIDIInit wrapping ErrUnsupportedOS or the driver failure.
func NewClient(opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	return newClientFor(runtime.GOOS, opts)
}

func newClientFor(goos string, opts *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	initializer, exists := clientInitializers[goos]
	if !exists {
		return nil, fmt.Errorf("%w: %w: %s", contracts.ErrMIDIInit, ErrUnsupportedOS, goos)
	}
	client, err := initializer(opts)
	if err != nil {
		if errors.Is(err, contracts.ErrMIDIInit) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", contracts.ErrMIDIInit, err)
	}
	return client, nil
}
