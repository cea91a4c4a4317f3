//go:build portaudio
// +build portaudio

// Package paout plays PCM buffers through a PortAudio callback stream.
package paout

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// Output opens the default PortAudio output device.
type Output struct {
	logger contracts.Logger
}

// NewOutput creates a PortAudio output.
func NewOutput(options *contracts.ClientOptions) (contracts.AudioOutput, error) {
	return &Output{logger: options.Logger}, nil
}

// Open initializes PortAudio and starts a stream that plays silence until a buffer is submitted.
func (o *Output) Open(format contracts.AudioFormat) (contracts.DeviceHandle, error) {
	if format.BitsPerSample != 16 || format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: portaudio output needs 16-bit PCM, got %+v", contracts.ErrUnsupportedFormat, format)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	h := &handle{}
	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), 0, h.process)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("failed to start stream: %w", err)
	}
	h.stream = stream
	o.logger.Info("portaudio stream started", o.logger.Field().Int("sampleRate", format.SampleRate))
	return h, nil
}

type handle struct {
	stream *portaudio.Stream

	mu  sync.Mutex
	buf contracts.PcmBuffer
	pos int
}

// process runs on the PortAudio thread.
func (h *handle) process(out []int16) {
	h.mu.Lock()
	n := copy(out, h.buf[h.pos:])
	h.pos += n
	h.mu.Unlock()
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

func (h *handle) Submit(buf contracts.PcmBuffer) error {
	if h.stream == nil {
		return fmt.Errorf("portaudio stream closed")
	}
	h.mu.Lock()
	h.buf, h.pos = buf, 0
	h.mu.Unlock()
	return nil
}

func (h *handle) Reset() error {
	h.mu.Lock()
	h.buf, h.pos = nil, 0
	h.mu.Unlock()
	return nil
}

func (h *handle) Close() error {
	if h.stream == nil {
		return nil
	}
	h.Reset()
	err := h.stream.Stop()
	if cerr := h.stream.Close(); err == nil {
		err = cerr
	}
	h.stream = nil
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
