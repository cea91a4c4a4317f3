package contracts

import "errors"

// Errors reported by players and platform drivers. Callers match them with errors.Is.
var (
	ErrDeviceOpen         = errors.New("failed to open audio output device")
	ErrDeviceSubmit       = errors.New("failed to submit buffer to audio output device")
	ErrMIDIInit           = errors.New("failed to initialize MIDI input")
	ErrMIDIPortOpen       = errors.New("failed to open MIDI port")
	ErrNoPortSelected     = errors.New("no MIDI port selected")
	ErrUnsupportedFormat  = errors.New("unsupported audio format")
	ErrUnsupportedBackend = errors.New("unsupported audio backend")
	ErrSessionClosed      = errors.New("playback session closed")
)
