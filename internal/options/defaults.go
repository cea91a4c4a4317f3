// Package options resolves functional options into a fully defaulted configuration.
package options

import (
	"github.com/leandrodaf/tonesynth/internal/logger"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// Apply sets default values for ClientOptions that were not explicitly provided.
func Apply(opts ...contracts.Option) contracts.ClientOptions {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: contracts.DefaultCoreMIDIClient}
	}
	if options.SampleRate <= 0 {
		options.SampleRate = contracts.DefaultSampleRate
	}
	if options.ToneFrequency <= 0 {
		options.ToneFrequency = contracts.DefaultToneFrequency
	}
	if options.ToneDuration <= 0 {
		options.ToneDuration = contracts.DefaultToneDuration
	}
	if options.NoteBufferSamples <= 0 {
		options.NoteBufferSamples = contracts.DefaultNoteBufferSamples
	}
	if options.EventBufferSize <= 0 {
		options.EventBufferSize = contracts.DefaultEventBufferSize
	}

	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}
	return *options
}

// CloseOnStop resolves the close-on-stop flag against a per-player default.
func CloseOnStop(options contracts.ClientOptions, def bool) bool {
	if options.CloseOnStop == nil {
		return def
	}
	return *options.CloseOnStop
}
