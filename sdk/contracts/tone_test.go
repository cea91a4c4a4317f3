package contracts

import (
	"bytes"
	"testing"
)

func TestToneRequestSampleCount(t *testing.T) {
	tests := []struct {
		req  ToneRequest
		want int
	}{
		{ToneRequest{DurationSeconds: 2, SampleRateHz: 44100}, 88200},
		{ToneRequest{DurationSeconds: 0.5, SampleRateHz: 3}, 2},
		{ToneRequest{DurationSeconds: -1, SampleRateHz: 44100}, 0},
		{ToneRequest{DurationSeconds: 1, SampleRateHz: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.req.SampleCount(); got != tt.want {
			t.Errorf("%+v SampleCount = %d, want %d", tt.req, got, tt.want)
		}
	}
}

func TestPcmBufferBytes(t *testing.T) {
	buf := PcmBuffer{0, 1, -1, 32767, -32768}
	want := []byte{0x00, 0x00, 0x01, 0x00, 0xFF, 0xFF, 0xFF, 0x7F, 0x00, 0x80}
	if got := buf.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Bytes() = % x, want % x", got, want)
	}
}

func TestAudioFormat(t *testing.T) {
	f := MonoPCM16(44100)
	if f.Channels != 1 || f.BitsPerSample != 16 || f.SampleRate != 44100 {
		t.Errorf("MonoPCM16 = %+v", f)
	}
	if f.BlockAlign() != 2 {
		t.Errorf("BlockAlign = %d, want 2", f.BlockAlign())
	}
}

func TestPortInfoString(t *testing.T) {
	if got := (PortInfo{Index: 2}).String(); got != "port 2" {
		t.Errorf("String() = %q, want %q", got, "port 2")
	}
	if got := (PortInfo{Index: 0, Name: "Keystation 49"}).String(); got != "Keystation 49" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	for name, want := range map[string]LogLevel{"debug": DebugLevel, "INFO": InfoLevel, "warning": WarnLevel, "error": ErrorLevel} {
		got, err := ParseLogLevel(name)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
