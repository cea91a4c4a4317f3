//go:build windows
// +build windows

package waveout

import (
	"golang.org/x/sys/windows"
)

const (
	// WAVE_FORMAT_PCM specifies PCM wave format
	WAVE_FORMAT_PCM = uint16(0x0001)

	// WAVE_MAPPER specifies the system default configured wave device
	WAVE_MAPPER = uint32(0xFFFFFFFF)

	// CALLBACK_NULL opens the device without completion notifications
	CALLBACK_NULL = uint32(0)

	// MMSYSERR_NOERROR is the success code of every waveOut call
	MMSYSERR_NOERROR = uintptr(0)
)

// HWAVEOUT is a handle for a WAVEOUT device
type HWAVEOUT windows.Handle

// WAVEHDR describes one buffer handed to waveOutWrite
type WAVEHDR struct {
	LpData          uintptr
	DwBufferLength  uint32
	DwBytesRecorded uint32
	DwUser          uintptr
	DwFlags         uint32
	DwLoops         uint32
	LpNext          uintptr
	Reserved        uintptr
}

// WAVEFORMATEX is a structure containing data about a wave format
type WAVEFORMATEX struct {
	WFormatTag      uint16
	NChannels       uint16
	NSamplesPerSec  uint32
	NAvgBytesPerSec uint32
	NBlockAlign     uint16
	WBitsPerSample  uint16
	CbSize          uint16
}

var (
	winmm                      = windows.NewLazySystemDLL("winmm.dll")
	procWaveOutOpen            = winmm.NewProc("waveOutOpen")
	procWaveOutPrepareHeader   = winmm.NewProc("waveOutPrepareHeader")
	procWaveOutWrite           = winmm.NewProc("waveOutWrite")
	procWaveOutReset           = winmm.NewProc("waveOutReset")
	procWaveOutUnprepareHeader = winmm.NewProc("waveOutUnprepareHeader")
	procWaveOutClose           = winmm.NewProc("waveOutClose")
)
