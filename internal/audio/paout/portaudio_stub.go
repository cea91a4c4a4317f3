//go:build !portaudio
// +build !portaudio

package paout

import (
	"fmt"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// NewOutput reports that PortAudio support was not compiled in.
func NewOutput(options *contracts.ClientOptions) (contracts.AudioOutput, error) {
	return nil, fmt.Errorf("%w: PortAudio support not enabled (build with -tags portaudio)", contracts.ErrUnsupportedBackend)
}
