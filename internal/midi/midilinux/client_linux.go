//go:build linux && cgo
// +build linux,cgo

package midilinux

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

var (
	// ErrNoMIDIDevices is returned when rtmidi reports no input ports.
	ErrNoMIDIDevices = errors.New("no MIDI devices found")
	// ErrClientStopped is returned after Stop closed the driver.
	ErrClientStopped = errors.New("MIDI client stopped")
)

// ClientMid manages MIDI input on Linux through rtmidi (ALSA sequencer).
type ClientMid struct {
	logger          contracts.Logger
	driver          *rtmididrv.Driver
	inPort          drivers.In
	stopListen      func()
	midiEventFilter *contracts.MIDIEventFilter
	mu              sync.Mutex

	chMu         sync.RWMutex        // Held for reading by the listener while it sends.
	eventChannel chan contracts.MIDI // A nil channel drops events.
}

// NewMIDIClient opens the rtmidi driver.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMIDIInit, err)
	}
	options.Logger.Info("MIDI client created for Linux")

	return &ClientMid{
		logger:          options.Logger,
		driver:          driver,
		midiEventFilter: options.MIDIEventFilter,
	}, nil
}

// ListDevices lists the available MIDI input ports.
func (m *ClientMid) ListDevices() ([]contracts.PortInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.driver == nil {
		return nil, ErrClientStopped
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI inputs: %w", err)
	}
	if len(ins) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.PortInfo, len(ins))
	for i, in := range ins {
		devices[i] = contracts.PortInfo{
			Index:      i,
			Name:       in.String(),
			EntityName: in.String(),
		}
	}
	return devices, nil
}

// SelectDevice opens the input at deviceID and starts listening, closing any previous one.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if deviceID < 0 {
		return contracts.ErrNoPortSelected
	}

	if m.driver == nil {
		return fmt.Errorf("%w: %w", contracts.ErrMIDIPortOpen, ErrClientStopped)
	}
	ins, err := m.driver.Ins()
	if err != nil {
		return fmt.Errorf("%w: %v", contracts.ErrMIDIPortOpen, err)
	}
	if deviceID >= len(ins) {
		return fmt.Errorf("%w: no input with index %d", contracts.ErrMIDIPortOpen, deviceID)
	}

	m.closePort()

	in := ins[deviceID]
	if err := in.Open(); err != nil {
		m.logger.Error("Failed to open MIDI port",
			m.logger.Field().String("deviceName", in.String()),
			m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", contracts.ErrMIDIPortOpen, err)
	}

	stop, err := midi.ListenTo(in, m.handleMessage)
	if err != nil {
		_ = in.Close()
		m.logger.Error("Failed to start MIDI listener", m.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", contracts.ErrMIDIPortOpen, err)
	}

	m.inPort = in
	m.stopListen = stop
	m.logger.Info("MIDI device connected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", in.String()))
	return nil
}

// handleMessage runs on the rtmidi thread and forwards note data without blocking.
func (m *ClientMid) handleMessage(msg midi.Message, timestampms int32) {
	event, ok := contracts.ParseMIDI(msg, uint64(time.Now().UTC().UnixNano()))
	if !ok {
		return
	}
	if !contracts.IsCommandAllowed(event.Command, m.midiEventFilter) {
		return
	}

	m.chMu.RLock()
	defer m.chMu.RUnlock()
	if m.eventChannel == nil {
		return
	}
	select {
	case m.eventChannel <- event:
	default:
		m.logger.Warn("MIDI event channel is full; event discarded")
	}
}

// StartCapture begins forwarding MIDI events to eventChannel.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if m.inPort == nil {
		m.logger.Error("Cannot start capture: No MIDI device selected")
		return
	}
	m.setChannel(eventChannel)
	m.logger.Info("MIDI capture started")
}

// Stop closes the port and the driver. No event is delivered after it returns and the
// client cannot be reused.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closePort()
	if m.driver == nil {
		return nil
	}
	err := m.driver.Close()
	m.driver = nil
	if err != nil {
		return fmt.Errorf("failed to close rtmidi driver: %w", err)
	}
	return nil
}

// setChannel waits for any listener call still sending on the previous channel.
func (m *ClientMid) setChannel(ch chan contracts.MIDI) {
	m.chMu.Lock()
	m.eventChannel = ch
	m.chMu.Unlock()
}

func (m *ClientMid) closePort() {
	m.setChannel(nil)
	if m.stopListen != nil {
		m.stopListen()
		m.stopListen = nil
	}
	if m.inPort != nil {
		if err := m.inPort.Close(); err != nil {
			m.logger.Warn("Failed to close MIDI port", m.logger.Field().Error("error", err))
		}
		m.inPort = nil
		m.logger.Info("MIDI capture stopped")
	}
}
