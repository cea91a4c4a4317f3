package contracts

import "time"

// MIDICommand represents the types of MIDI commands for event filtering.
type MIDICommand byte

const (
	// NoteOn is the MIDI command for a Note On event (0x90).
	NoteOn MIDICommand = 0x90
	// NoteOff is the MIDI command for a Note Off event (0x80).
	NoteOff MIDICommand = 0x80
)

// Defaults applied when an option is not set.
const (
	DefaultSampleRate        = 44100
	DefaultToneFrequency     = 440.0
	DefaultToneDuration      = 2 * time.Second
	DefaultNoteBufferSamples = 4096
	DefaultEventBufferSize   = 100
	DefaultCoreMIDIClient    = "GO Tone Synth"
)

// MIDIEventFilter allows users to specify which MIDI commands to capture.
type MIDIEventFilter struct {
	Commands []MIDICommand // List of MIDI commands to filter.
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration shared by MIDI clients, audio outputs and players.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for MIDI events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.

	AudioBackend      string        // Output backend name; empty selects the OS default.
	SampleRate        int           // Output sample rate in Hz.
	ToneFrequency     float64       // Frequency of the button tone in Hz.
	ToneDuration      time.Duration // Length of the button tone.
	NoteBufferSamples int           // Length of the buffer synthesized per MIDI note.
	EventBufferSize   int           // Capacity of the MIDI event channel.
	CloseOnStop       *bool         // Close the device on every stop instead of at shutdown.
	ErrorHandler      func(error)   // Receives errors raised outside a synchronous call.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithLogFile directs log output to the given file.
func WithLogFile(path string) Option {
	return func(opts *ClientOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIEventFilter sets the MIDI event filter for the MIDI client.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration for the MIDI client.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithAudioBackend selects the audio output backend ("winmm", "oto", "portaudio").
func WithAudioBackend(name string) Option {
	return func(opts *ClientOptions) {
		opts.AudioBackend = name
	}
}

// WithSampleRate sets the output sample rate.
func WithSampleRate(hz int) Option {
	return func(opts *ClientOptions) {
		opts.SampleRate = hz
	}
}

// WithTone sets the frequency and length of the button tone.
func WithTone(frequencyHz float64, duration time.Duration) Option {
	return func(opts *ClientOptions) {
		opts.ToneFrequency = frequencyHz
		opts.ToneDuration = duration
	}
}

// WithNoteBufferSamples sets how many samples are synthesized per MIDI note.
func WithNoteBufferSamples(n int) Option {
	return func(opts *ClientOptions) {
		opts.NoteBufferSamples = n
	}
}

// WithEventBufferSize sets the capacity of the MIDI event channel.
func WithEventBufferSize(n int) Option {
	return func(opts *ClientOptions) {
		opts.EventBufferSize = n
	}
}

// WithCloseOnStop controls whether a stop also closes the audio device.
func WithCloseOnStop(v bool) Option {
	return func(opts *ClientOptions) {
		opts.CloseOnStop = &v
	}
}

// WithErrorHandler registers a receiver for errors raised by MIDI-driven transitions.
func WithErrorHandler(fn func(error)) Option {
	return func(opts *ClientOptions) {
		opts.ErrorHandler = fn
	}
}
