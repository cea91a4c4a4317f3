package player

import (
	"fmt"
	"sync"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"github.com/leandrodaf/tonesynth/sdk/synth"
)

// State is the playback state of a Session.
type State int

const (
	// Idle means no buffer is in flight.
	Idle State = iota
	// Playing means one buffer has been submitted and not yet reset.
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "idle"
}

// Session owns one audio device handle and at most one in-flight buffer. All methods are
// safe for concurrent use; calls against the device are serialized.
type Session struct {
	mu          sync.Mutex
	output      contracts.AudioOutput
	format      contracts.AudioFormat
	logger      contracts.Logger
	closeOnStop bool

	handle contracts.DeviceHandle
	buffer contracts.PcmBuffer
	state  State
	closed bool
}

// NewSession creates an idle session. The device is opened lazily on the first Start or Open.
func NewSession(output contracts.AudioOutput, format contracts.AudioFormat, logger contracts.Logger, closeOnStop bool) *Session {
	return &Session{
		output:      output,
		format:      format,
		logger:      logger,
		closeOnStop: closeOnStop,
	}
}

// State returns the current playback state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Open opens the audio device if it is not open yet.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return contracts.ErrSessionClosed
	}
	return s.openLocked()
}

// Start synthesizes req and submits it. A session that is already playing is reset first.
// On failure the session is left Idle.
func (s *Session) Start(req contracts.ToneRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return contracts.ErrSessionClosed
	}
	if s.state == Playing {
		s.logger.Debug("retrigger while playing; resetting previous buffer")
		s.resetLocked()
	}

	if err := s.openLocked(); err != nil {
		return err
	}

	req.SampleRateHz = s.format.SampleRate
	buf := synth.Synthesize(req)
	if len(buf) == 0 {
		s.logger.Warn("tone request produced no samples",
			s.logger.Field().Float64("frequency", req.FrequencyHz),
			s.logger.Field().Float64("duration", req.DurationSeconds))
		return nil
	}

	if err := s.handle.Submit(buf); err != nil {
		s.logger.Error("failed to submit buffer", s.logger.Field().Error("error", err))
		if rerr := s.handle.Reset(); rerr != nil {
			s.logger.Warn("audio output reset failed", s.logger.Field().Error("error", rerr))
		}
		return fmt.Errorf("%w: %v", contracts.ErrDeviceSubmit, err)
	}

	s.buffer = buf
	s.state = Playing
	s.logger.Debug("playback started",
		s.logger.Field().Float64("frequency", req.FrequencyHz),
		s.logger.Field().Int("samples", len(buf)))
	return nil
}

// Stop halts playback and drops the current buffer. Stopping an idle session is a no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Playing {
		return nil
	}
	err := s.resetLocked()
	if s.closeOnStop {
		if cerr := s.closeHandleLocked(); err == nil {
			err = cerr
		}
	}
	s.logger.Debug("playback stopped")
	return err
}

// Close stops playback and releases the device. The session cannot be restarted.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.state == Playing {
		err = s.resetLocked()
	}
	if cerr := s.closeHandleLocked(); err == nil {
		err = cerr
	}
	return err
}

func (s *Session) openLocked() error {
	if s.handle != nil {
		return nil
	}
	handle, err := s.output.Open(s.format)
	if err != nil {
		s.logger.Error("failed to open audio output",
			s.logger.Field().Int("sampleRate", s.format.SampleRate),
			s.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", contracts.ErrDeviceOpen, err)
	}
	s.handle = handle
	s.logger.Info("audio output opened",
		s.logger.Field().Int("sampleRate", s.format.SampleRate),
		s.logger.Field().Int("channels", s.format.Channels),
		s.logger.Field().Int("bitsPerSample", s.format.BitsPerSample))
	return nil
}

// resetLocked flushes the device and releases the buffer. The buffer is dropped only after
// the device has let go of it.
func (s *Session) resetLocked() error {
	var err error
	if s.handle != nil {
		if err = s.handle.Reset(); err != nil {
			s.logger.Warn("audio output reset failed", s.logger.Field().Error("error", err))
		}
	}
	s.buffer = nil
	s.state = Idle
	return err
}

func (s *Session) closeHandleLocked() error {
	if s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle = nil
	if err != nil {
		s.logger.Warn("audio output close failed", s.logger.Field().Error("error", err))
		return err
	}
	s.logger.Info("audio output closed")
	return nil
}
