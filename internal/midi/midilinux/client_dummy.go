//go:build !linux || !cgo
// +build !linux !cgo

package midilinux

import (
	"fmt"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// NewMIDIClient reports that rtmidi input is unavailable in this build.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Warn("rtmidi requested without Linux cgo support")
	return nil, fmt.Errorf("%w: rtmidi requires Linux with cgo enabled", contracts.ErrMIDIInit)
}
