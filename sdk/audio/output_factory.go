// Package audio selects the audio output backend for the running platform.
package audio

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/leandrodaf/tonesynth/internal/audio/otoout"
	"github.com/leandrodaf/tonesynth/internal/audio/paout"
	"github.com/leandrodaf/tonesynth/internal/audio/waveout"
	"github.com/leandrodaf/tonesynth/internal/options"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// Backend names accepted by contracts.WithAudioBackend.
const (
	BackendWinMM     = "winmm"
	BackendOto       = "oto"
	BackendPortAudio = "portaudio"
)

// backendInitializers maps backend names to output initializers.
var backendInitializers = map[string]func(*contracts.ClientOptions) (contracts.AudioOutput, error){
	BackendWinMM:     waveout.NewOutput,
	BackendOto:       otoout.NewOutput,
	BackendPortAudio: paout.NewOutput,
}

// Backends lists the registered backend names.
func Backends() []string {
	names := make([]string, 0, len(backendInitializers))
	for name := range backendInitializers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBackend returns the backend used when none is configured.
func DefaultBackend(goos string) string {
	if goos == "windows" {
		return BackendWinMM
	}
	return BackendOto
}

// NewOutput creates the configured audio output with defaults applied.
func NewOutput(opts ...contracts.Option) (contracts.AudioOutput, error) {
	resolved := options.Apply(opts...)
	return NewOutputFor(&resolved)
}

// NewOutputFor creates the audio output named by opts.AudioBackend, or the OS default.
func NewOutputFor(opts *contracts.ClientOptions) (contracts.AudioOutput, error) {
	name := opts.AudioBackend
	if name == "" {
		name = DefaultBackend(runtime.GOOS)
	}
	initializer, ok := backendInitializers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", contracts.ErrUnsupportedBackend, name)
	}
	out, err := initializer(opts)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("audio backend selected", opts.Logger.Field().String("backend", name))
	return out, nil
}
