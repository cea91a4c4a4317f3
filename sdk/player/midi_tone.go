package player

import (
	"errors"
	"fmt"
	"sync"

	"github.com/leandrodaf/tonesynth/internal/options"
	"github.com/leandrodaf/tonesynth/sdk/audio"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"github.com/leandrodaf/tonesynth/sdk/midi"
	"github.com/leandrodaf/tonesynth/sdk/synth"
)

// ErrAlreadyConnected is returned by Connect when a port is already being captured.
var ErrAlreadyConnected = errors.New("MIDI tone player already connected")

// MidiTonePlayer plays a short sine buffer for every Note On and silences it on Note Off.
// The MIDI driver pushes events into a channel; a single goroutine owned by the player
// drains it and drives the session.
type MidiTonePlayer struct {
	client  contracts.ClientMIDI
	session *Session
	logger  contracts.Logger
	opts    contracts.ClientOptions

	mu        sync.Mutex
	events    chan contracts.MIDI
	done      chan struct{}
	connected bool
}

// NewMidiTonePlayer creates a player using the platform MIDI driver and audio backend.
// Unless a filter is given, only Note On and Note Off are captured.
func NewMidiTonePlayer(opts ...contracts.Option) (*MidiTonePlayer, error) {
	resolved := options.Apply(append(defaultMidiOptions(), opts...)...)

	client, err := midi.NewClient(&resolved)
	if err != nil {
		resolved.Logger.Error("MIDI initialization failed", resolved.Logger.Field().Error("error", err))
		return nil, err
	}
	output, err := audio.NewOutputFor(&resolved)
	if err != nil {
		_ = client.Stop()
		return nil, err
	}
	return newMidiTonePlayer(client, output, resolved), nil
}

// NewMidiTonePlayerWith creates a player on an existing MIDI client and audio output.
func NewMidiTonePlayerWith(client contracts.ClientMIDI, output contracts.AudioOutput, opts ...contracts.Option) *MidiTonePlayer {
	return newMidiTonePlayer(client, output, options.Apply(append(defaultMidiOptions(), opts...)...))
}

func defaultMidiOptions() []contracts.Option {
	return []contracts.Option{
		contracts.WithMIDIEventFilter(contracts.MIDIEventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	}
}

func newMidiTonePlayer(client contracts.ClientMIDI, output contracts.AudioOutput, opts contracts.ClientOptions) *MidiTonePlayer {
	return &MidiTonePlayer{
		client:  client,
		session: NewSession(output, contracts.MonoPCM16(opts.SampleRate), opts.Logger, options.CloseOnStop(opts, false)),
		logger:  opts.Logger,
		opts:    opts,
	}
}

// Ports lists the MIDI input ports.
func (p *MidiTonePlayer) Ports() ([]contracts.PortInfo, error) {
	return p.client.ListDevices()
}

// Connect opens the audio device, then the MIDI port at portIndex, and starts consuming
// note events. A negative index means no port was selected. On failure nothing is left
// capturing.
func (p *MidiTonePlayer) Connect(portIndex int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.connected {
		return ErrAlreadyConnected
	}
	if portIndex < 0 {
		p.logger.Error("no MIDI port selected")
		return contracts.ErrNoPortSelected
	}

	if err := p.session.Open(); err != nil {
		return err
	}

	if err := p.client.SelectDevice(portIndex); err != nil {
		p.logger.Error("failed to open MIDI port",
			p.logger.Field().Int("port", portIndex),
			p.logger.Field().Error("error", err))
		if errors.Is(err, contracts.ErrMIDIPortOpen) || errors.Is(err, contracts.ErrNoPortSelected) {
			return err
		}
		return fmt.Errorf("%w: %v", contracts.ErrMIDIPortOpen, err)
	}

	events := make(chan contracts.MIDI, p.opts.EventBufferSize)
	done := make(chan struct{})
	go p.consume(events, done)

	p.client.StartCapture(events)
	if reporter, ok := p.client.(contracts.CaptureReporter); ok {
		if err := reporter.CaptureErr(); err != nil {
			p.logger.Error("failed to start MIDI capture",
				p.logger.Field().Int("port", portIndex),
				p.logger.Field().Error("error", err))
			if serr := p.client.Stop(); serr != nil {
				// The port may still deliver; the consumer keeps the channel drained.
				p.logger.Warn("failed to release MIDI port", p.logger.Field().Error("error", serr))
			} else {
				close(events)
				<-done
			}
			return fmt.Errorf("%w: %v", contracts.ErrMIDIPortOpen, err)
		}
	}

	p.events, p.done = events, done
	p.connected = true
	p.logger.Info("MIDI tone player connected", p.logger.Field().Int("port", portIndex))
	return nil
}

func (p *MidiTonePlayer) consume(events <-chan contracts.MIDI, done chan<- struct{}) {
	defer close(done)
	for event := range events {
		if err := p.HandleEvent(event); err != nil {
			p.report(err)
		}
	}
}

// HandleEvent applies one note event to the session: Note On with velocity starts a tone,
// Note Off or Note On with zero velocity stops it, anything else is ignored.
func (p *MidiTonePlayer) HandleEvent(event contracts.MIDI) error {
	switch {
	case event.IsNoteOn():
		p.logger.Debug("note on",
			p.logger.Field().Uint8("channel", event.Channel+1),
			p.logger.Field().Uint8("note", event.Note),
			p.logger.Field().Uint8("velocity", event.Velocity))
		return p.session.Start(synth.NoteRequest(int(event.Note), p.opts.NoteBufferSamples, p.opts.SampleRate))
	case event.IsNoteOff():
		p.logger.Debug("note off",
			p.logger.Field().Uint8("channel", event.Channel+1),
			p.logger.Field().Uint8("note", event.Note))
		return p.session.Stop()
	}
	return nil
}

func (p *MidiTonePlayer) report(err error) {
	p.logger.Error("note playback failed", p.logger.Field().Error("error", err))
	if p.opts.ErrorHandler != nil {
		p.opts.ErrorHandler(err)
	}
}

// State returns the playback state.
func (p *MidiTonePlayer) State() State {
	return p.session.State()
}

// Connected reports whether a port is being captured.
func (p *MidiTonePlayer) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Close stops the MIDI client, drains pending events, then releases the audio device.
// The audio device is released even when the client fails to stop.
func (p *MidiTonePlayer) Close() error {
	p.mu.Lock()
	events, done, connected := p.events, p.done, p.connected
	p.connected = false
	p.events, p.done = nil, nil
	p.mu.Unlock()

	// The client delivers nothing once Stop succeeds, so only then can the channel be
	// closed. After a failed stop the consumer keeps draining against the closed session.
	err := p.client.Stop()
	if connected {
		if err == nil {
			close(events)
			<-done
		} else {
			p.logger.Warn("MIDI client did not stop; event channel left open",
				p.logger.Field().Error("error", err))
		}
	}
	if serr := p.session.Close(); err == nil {
		err = serr
	}
	return err
}
