//go:build windows
// +build windows

package waveout

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// Output opens the system default wave device through winmm.
type Output struct {
	logger contracts.Logger
}

// NewOutput creates a winmm waveOut output.
func NewOutput(options *contracts.ClientOptions) (contracts.AudioOutput, error) {
	if err := winmm.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrUnsupportedBackend, err)
	}
	return &Output{logger: options.Logger}, nil
}

// Open opens WAVE_MAPPER with a PCM format.
func (o *Output) Open(format contracts.AudioFormat) (contracts.DeviceHandle, error) {
	if format.BitsPerSample != 16 || format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %+v", contracts.ErrUnsupportedFormat, format)
	}

	wf := WAVEFORMATEX{
		WFormatTag:     WAVE_FORMAT_PCM,
		NChannels:      uint16(format.Channels),
		NSamplesPerSec: uint32(format.SampleRate),
		WBitsPerSample: uint16(format.BitsPerSample),
		NBlockAlign:    uint16(format.BlockAlign()),
	}
	wf.NAvgBytesPerSec = wf.NSamplesPerSec * uint32(wf.NBlockAlign)

	h := &handle{logger: o.logger}
	r1, _, _ := procWaveOutOpen.Call(
		uintptr(unsafe.Pointer(&h.hwo)),
		uintptr(WAVE_MAPPER),
		uintptr(unsafe.Pointer(&wf)),
		0,
		0,
		uintptr(CALLBACK_NULL),
	)
	if r1 != MMSYSERR_NOERROR {
		return nil, fmt.Errorf("waveOutOpen: mmresult %d", r1)
	}
	return h, nil
}

// handle owns one HWAVEOUT and the header of the buffer in flight. hdr and buf must
// stay reachable while the device plays from them.
type handle struct {
	logger   contracts.Logger
	hwo      HWAVEOUT
	hdr      WAVEHDR
	buf      contracts.PcmBuffer
	prepared bool
}

func (h *handle) Submit(buf contracts.PcmBuffer) error {
	if h.hwo == 0 {
		return errors.New("waveOut device closed")
	}
	if len(buf) == 0 {
		return errors.New("empty buffer")
	}
	if h.prepared {
		if err := h.Reset(); err != nil {
			return err
		}
	}

	h.buf = buf
	h.hdr = WAVEHDR{
		LpData:         uintptr(unsafe.Pointer(&buf[0])),
		DwBufferLength: uint32(len(buf) * 2),
	}
	if r1, _, _ := procWaveOutPrepareHeader.Call(uintptr(h.hwo), uintptr(unsafe.Pointer(&h.hdr)), unsafe.Sizeof(h.hdr)); r1 != MMSYSERR_NOERROR {
		h.buf = nil
		return fmt.Errorf("waveOutPrepareHeader: mmresult %d", r1)
	}
	h.prepared = true

	if r1, _, _ := procWaveOutWrite.Call(uintptr(h.hwo), uintptr(unsafe.Pointer(&h.hdr)), unsafe.Sizeof(h.hdr)); r1 != MMSYSERR_NOERROR {
		h.unprepare()
		return fmt.Errorf("waveOutWrite: mmresult %d", r1)
	}
	return nil
}

func (h *handle) Reset() error {
	if h.hwo == 0 {
		return nil
	}
	r1, _, _ := procWaveOutReset.Call(uintptr(h.hwo))
	h.unprepare()
	if r1 != MMSYSERR_NOERROR {
		return fmt.Errorf("waveOutReset: mmresult %d", r1)
	}
	return nil
}

// unprepare releases the header once the device has returned it; only then is buf dropped.
func (h *handle) unprepare() {
	if h.prepared {
		if r1, _, _ := procWaveOutUnprepareHeader.Call(uintptr(h.hwo), uintptr(unsafe.Pointer(&h.hdr)), unsafe.Sizeof(h.hdr)); r1 != MMSYSERR_NOERROR {
			h.logger.Warn("waveOutUnprepareHeader failed", h.logger.Field().Int64("mmresult", int64(r1)))
			return
		}
		h.prepared = false
	}
	h.hdr = WAVEHDR{}
	h.buf = nil
}

func (h *handle) Close() error {
	if h.hwo == 0 {
		return nil
	}
	err := h.Reset()
	r1, _, _ := procWaveOutClose.Call(uintptr(h.hwo))
	h.hwo = 0
	if r1 != MMSYSERR_NOERROR {
		return fmt.Errorf("waveOutClose: mmresult %d", r1)
	}
	return err
}
