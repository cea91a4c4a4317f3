//go:build !windows
// +build !windows

package waveout

import (
	"fmt"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// NewOutput reports that waveOut is unavailable on this platform.
func NewOutput(options *contracts.ClientOptions) (contracts.AudioOutput, error) {
	options.Logger.Warn("winmm waveOut requested on a non-Windows system")
	return nil, fmt.Errorf("%w: winmm is only available on Windows", contracts.ErrUnsupportedBackend)
}
