package contracts

import (
	"encoding/binary"
	"math"
)

// ToneRequest describes one tone to synthesize.
type ToneRequest struct {
	FrequencyHz     float64
	DurationSeconds float64
	SampleRateHz    int
}

// SampleCount is round(DurationSeconds * SampleRateHz), never negative.
func (r ToneRequest) SampleCount() int {
	n := math.Round(r.DurationSeconds * float64(r.SampleRateHz))
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// PcmBuffer holds mono 16-bit signed samples.
type PcmBuffer []int16

// Bytes encodes the buffer as little-endian PCM.
func (b PcmBuffer) Bytes() []byte {
	out := make([]byte, len(b)*2)
	for i, s := range b {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}
