package contracts

// AudioFormat describes the PCM layout a device is opened with.
type AudioFormat struct {
	SampleRate    int // Samples per second per channel.
	Channels      int // Interleaved channel count.
	BitsPerSample int // Sample width; only 16 is produced by this module.
}

// MonoPCM16 returns the mono, 16-bit signed format at the given rate.
func MonoPCM16(sampleRate int) AudioFormat {
	return AudioFormat{SampleRate: sampleRate, Channels: 1, BitsPerSample: 16}
}

// BlockAlign is the size in bytes of one frame.
func (f AudioFormat) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

// AudioOutput opens playback devices.
type AudioOutput interface {
	// Open configures the system output for the given format.
	Open(format AudioFormat) (DeviceHandle, error)
}

// DeviceHandle is an open audio output device. Implementations are not safe for
// concurrent use; callers serialize access.
type DeviceHandle interface {
	// Submit queues buf for asynchronous playback and returns once it is queued.
	// The device keeps a reference to buf until Reset or Close.
	Submit(buf PcmBuffer) error
	// Reset stops playback and releases the device's reference to the current buffer.
	Reset() error
	// Close resets the device and releases it.
	Close() error
}
