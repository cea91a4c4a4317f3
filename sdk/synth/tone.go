// Package synth turns tone requests into 16-bit PCM.
package synth

import (
	"math"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

// Amplitude is the peak sample value of a synthesized tone.
const Amplitude = 32767

// A4 reference pitch for equal temperament.
const (
	A4Frequency = 440.0
	A4Note      = 69
)

// SynthesizeSine returns round(durationSeconds*sampleRateHz) samples of a full-scale sine wave.
// Non-positive or non-finite inputs yield an empty buffer.
func SynthesizeSine(frequencyHz, durationSeconds float64, sampleRateHz int) contracts.PcmBuffer {
	return Synthesize(contracts.ToneRequest{
		FrequencyHz:     frequencyHz,
		DurationSeconds: durationSeconds,
		SampleRateHz:    sampleRateHz,
	})
}

// Synthesize renders req as a sine wave.
func Synthesize(req contracts.ToneRequest) contracts.PcmBuffer {
	if req.SampleRateHz <= 0 || math.IsInf(req.DurationSeconds, 0) {
		return contracts.PcmBuffer{}
	}
	return SineSamples(req.FrequencyHz, req.SampleCount(), req.SampleRateHz)
}

// SineSamples renders exactly n samples of a sine wave at frequencyHz.
func SineSamples(frequencyHz float64, n, sampleRateHz int) contracts.PcmBuffer {
	if n <= 0 || sampleRateHz <= 0 {
		return contracts.PcmBuffer{}
	}
	buf := make(contracts.PcmBuffer, n)
	if math.IsNaN(frequencyHz) || math.IsInf(frequencyHz, 0) {
		return buf
	}
	rate := float64(sampleRateHz)
	for i := range buf {
		buf[i] = int16(math.Round(Amplitude * math.Sin(2*math.Pi*frequencyHz*float64(i)/rate)))
	}
	return buf
}

// NoteFrequency maps a MIDI note number to its 12-TET frequency with A4 (note 69) at 440 Hz.
func NoteFrequency(note int) float64 {
	return A4Frequency * math.Pow(2, float64(note-A4Note)/12)
}

// NoteRequest builds the request for a MIDI note rendered into a fixed number of samples.
func NoteRequest(note, samples, sampleRateHz int) contracts.ToneRequest {
	return contracts.ToneRequest{
		FrequencyHz:     NoteFrequency(note),
		DurationSeconds: float64(samples) / float64(sampleRateHz),
		SampleRateHz:    sampleRateHz,
	}
}
