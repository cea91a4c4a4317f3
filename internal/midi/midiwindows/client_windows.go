//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"golang.org/x/sys/windows"
)

// HMIDIIN is a handle for a MIDI input device.
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// ErrNoMIDIDevices is returned when winmm reports no input ports.
var ErrNoMIDIDevices = errors.New("no MIDI devices found")

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid manages MIDI input on Windows through winmm.
type ClientMid struct {
	logger          contracts.Logger
	handle          HMIDIIN
	portConn        bool
	captureErr      error
	mu              sync.Mutex
	midiEventFilter *contracts.MIDIEventFilter

	// chMu is held for reading by the winmm callback while it sends.
	chMu         sync.RWMutex
	eventChannel chan contracts.MIDI
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")

	// Callbacks are a finite resource; one is shared by every client.
	midiInCallbackPtr = windows.NewCallback(midiInCallback)
)

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	if err := winmm.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrMIDIInit, err)
	}
	options.Logger.Info("MIDI client created for Windows")

	return &ClientMid{
		logger:          options.Logger,
		midiEventFilter: options.MIDIEventFilter,
	}, nil
}

// ListDevices lists the available MIDI input ports
func (m *ClientMid) ListDevices() ([]contracts.PortInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn("No MIDI devices found")
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.PortInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get information for MIDI device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.PortInfo{
			Index:        int(i),
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// SelectDevice opens a MIDI input port, closing any previously opened one.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if deviceID < 0 {
		return contracts.ErrNoPortSelected
	}

	if m.portConn {
		if err := m.stopCapture(); err != nil {
			return fmt.Errorf("failed to stop previous MIDI capture: %w", err)
		}
	}

	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		midiInCallbackPtr,
		uintptr(unsafe.Pointer(m)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		m.logger.Error("Failed to open MIDI device",
			m.logger.Field().Int("deviceID", deviceID),
			m.logger.Field().Int64("mmresult", int64(r1)))
		return fmt.Errorf("%w: device %d: mmresult %d: %v", contracts.ErrMIDIPortOpen, deviceID, r1, err)
	}

	m.portConn = true
	m.logger.Info("MIDI device connected", m.logger.Field().Int("deviceID", deviceID))
	return nil
}

// StartCapture starts winmm input and stores the event channel. A failure is reported
// by CaptureErr.
func (m *ClientMid) StartCapture(eventChannel chan contracts.MIDI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.captureErr = nil
	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		m.captureErr = errors.New("nil event channel")
		return
	}
	if !m.portConn || m.handle == 0 {
		m.logger.Error("Cannot start capture: No MIDI device selected")
		m.captureErr = contracts.ErrNoPortSelected
		return
	}
	if m.channel() != nil {
		m.logger.Warn("Capture already started")
		return
	}

	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", err))
		m.captureErr = fmt.Errorf("midiInStart: mmresult %d: %v", r1, err)
		return
	}
	m.setChannel(eventChannel)

	m.logger.Info("MIDI capture started")
}

// CaptureErr returns the failure of the last StartCapture, or nil.
func (m *ClientMid) CaptureErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captureErr
}

func (m *ClientMid) channel() chan contracts.MIDI {
	m.chMu.RLock()
	defer m.chMu.RUnlock()
	return m.eventChannel
}

// setChannel waits for any callback still sending on the previous channel.
func (m *ClientMid) setChannel(ch chan contracts.MIDI) {
	m.chMu.Lock()
	m.eventChannel = ch
	m.chMu.Unlock()
}

// midiInCallback runs on a winmm thread. It must not block.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*ClientMid)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		m.logger.Debug("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Debug("MIDI device closed")
	case MIM_DATA:
		m.dispatch([]byte{
			byte(dwParam1 & 0xFF),
			byte((dwParam1 >> 8) & 0xFF),
			byte((dwParam1 >> 16) & 0xFF),
		})
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error(fmt.Sprintf("MIDI error: msg=0x%X", wMsg))
	case MIM_MOREDATA:
		m.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		m.logger.Warn(fmt.Sprintf("Unknown MIDI message: 0x%X", wMsg))
	}

	return 0
}

func (m *ClientMid) dispatch(data []byte) {
	event, ok := contracts.ParseMIDI(data, uint64(time.Now().UTC().UnixNano()))
	if !ok {
		return
	}
	if !contracts.IsCommandAllowed(event.Command, m.midiEventFilter) {
		m.logger.Debug(fmt.Sprintf("MIDI command 0x%X filtered out", event.Command))
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

// Stop terminates MIDI event capture and closes the port. No event is delivered after it
// returns, whether or not winmm released the port.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.portConn {
		return nil
	}

	if err := m.stopCapture(); err != nil {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// stopCapture stops the capture and releases resources. The event channel is detached
// first, so nothing is sent on it after this returns even if winmm fails.
func (m *ClientMid) stopCapture() error {
	m.setChannel(nil)
	if m.handle == 0 {
		return fmt.Errorf("invalid MIDI device handle")
	}

	r1, _, err := procMidiInStop.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to stop MIDI capture", m.logger.Field().Error("error", err))
		return err
	}

	// midiInClose waits for in-flight callbacks.
	r1, _, err = procMidiInClose.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("Failed to close MIDI device", m.logger.Field().Error("error", err))
		return err
	}

	m.portConn = false
	m.handle = 0
	return nil
}
