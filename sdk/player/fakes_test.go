package player

import (
	"sync"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// fakeOutput records every device call in order.
type fakeOutput struct {
	mu        sync.Mutex
	calls     []string
	submitted []contracts.PcmBuffer
	formats   []contracts.AudioFormat
	openErr   error
	submitErr error
	resetErr  error
}

var (
	_ contracts.AudioOutput     = (*fakeOutput)(nil)
	_ contracts.DeviceHandle    = (*fakeHandle)(nil)
	_ contracts.ClientMIDI      = (*fakeClient)(nil)
	_ contracts.CaptureReporter = (*fakeClient)(nil)
)

func (f *fakeOutput) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeOutput) Open(format contracts.AudioFormat) (contracts.DeviceHandle, error) {
	f.record("open")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formats = append(f.formats, format)
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakeHandle{out: f}, nil
}

func (f *fakeOutput) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeOutput) Count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeOutput) Submitted() []contracts.PcmBuffer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]contracts.PcmBuffer(nil), f.submitted...)
}

func (f *fakeOutput) SetSubmitErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitErr = err
}

type fakeHandle struct {
	out *fakeOutput
}

func (h *fakeHandle) Submit(buf contracts.PcmBuffer) error {
	h.out.record("submit")
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	if h.out.submitErr != nil {
		return h.out.submitErr
	}
	h.out.submitted = append(h.out.submitted, buf)
	return nil
}

func (h *fakeHandle) Reset() error {
	h.out.record("reset")
	h.out.mu.Lock()
	defer h.out.mu.Unlock()
	return h.out.resetErr
}

func (h *fakeHandle) Close() error {
	h.out.record("close")
	return nil
}

// fakeClient is a MIDI source whose events are injected by the test.
type fakeClient struct {
	mu         sync.Mutex
	ports      []contracts.PortInfo
	selectErr  error
	selected   []int
	events     chan contracts.MIDI
	stopped    int
	stopErr    error
	captureErr error
}

func (c *fakeClient) ListDevices() ([]contracts.PortInfo, error) {
	return c.ports, nil
}

func (c *fakeClient) SelectDevice(deviceID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = append(c.selected, deviceID)
	return c.selectErr
}

func (c *fakeClient) StartCapture(eventChannel chan contracts.MIDI) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.captureErr != nil {
		return
	}
	c.events = eventChannel
}

func (c *fakeClient) CaptureErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captureErr
}

func (c *fakeClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped++
	if c.stopErr != nil {
		// A failed stop leaves the port delivering.
		return c.stopErr
	}
	c.events = nil
	return nil
}

// emit delivers raw bytes the way a platform driver does.
func (c *fakeClient) emit(data ...byte) {
	event, ok := contracts.ParseMIDI(data, 0)
	if !ok {
		return
	}
	c.mu.Lock()
	ch := c.events
	c.mu.Unlock()
	if ch != nil {
		ch <- event
	}
}

func (c *fakeClient) Selected() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.selected...)
}
