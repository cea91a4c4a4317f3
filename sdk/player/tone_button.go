package player

import (
	"github.com/leandrodaf/tonesynth/internal/options"
	"github.com/leandrodaf/tonesynth/sdk/audio"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// ToneButtonPlayer plays one fixed tone per Play and silences it on Stop. By default the
// device is closed on every Stop and reopened by the next Play.
type ToneButtonPlayer struct {
	session *Session
	request contracts.ToneRequest
	logger  contracts.Logger
}

// NewToneButtonPlayer creates a player on the configured audio backend.
func NewToneButtonPlayer(opts ...contracts.Option) (*ToneButtonPlayer, error) {
	resolved := options.Apply(opts...)
	output, err := audio.NewOutputFor(&resolved)
	if err != nil {
		return nil, err
	}
	return newToneButtonPlayer(output, resolved), nil
}

// NewToneButtonPlayerWithOutput creates a player on an existing audio output.
func NewToneButtonPlayerWithOutput(output contracts.AudioOutput, opts ...contracts.Option) *ToneButtonPlayer {
	return newToneButtonPlayer(output, options.Apply(opts...))
}

func newToneButtonPlayer(output contracts.AudioOutput, opts contracts.ClientOptions) *ToneButtonPlayer {
	return &ToneButtonPlayer{
		session: NewSession(output, contracts.MonoPCM16(opts.SampleRate), opts.Logger, options.CloseOnStop(opts, true)),
		request: contracts.ToneRequest{
			FrequencyHz:     opts.ToneFrequency,
			DurationSeconds: opts.ToneDuration.Seconds(),
			SampleRateHz:    opts.SampleRate,
		},
		logger: opts.Logger,
	}
}

// Play starts the tone, restarting it if it is already playing.
func (p *ToneButtonPlayer) Play() error {
	p.logger.Debug("play pressed")
	return p.session.Start(p.request)
}

// Stop silences the tone. It is a no-op when nothing is playing.
func (p *ToneButtonPlayer) Stop() error {
	p.logger.Debug("stop pressed")
	return p.session.Stop()
}

// State returns the playback state.
func (p *ToneButtonPlayer) State() State {
	return p.session.State()
}

// Tone returns the request rendered on every Play.
func (p *ToneButtonPlayer) Tone() contracts.ToneRequest {
	return p.request
}

// Close stops playback and releases the device.
func (p *ToneButtonPlayer) Close() error {
	return p.session.Close()
}
