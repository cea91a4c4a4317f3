package player

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/leandrodaf/tonesynth/internal/logger"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"github.com/leandrodaf/tonesynth/sdk/synth"
)

func TestToneButtonDefaults(t *testing.T) {
	out := &fakeOutput{}
	p := NewToneButtonPlayerWithOutput(out, contracts.WithLogger(logger.NewNopLogger()))

	want := contracts.ToneRequest{FrequencyHz: 440, DurationSeconds: 2, SampleRateHz: 44100}
	if p.Tone() != want {
		t.Errorf("Tone() = %+v, want %+v", p.Tone(), want)
	}

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	sub := out.Submitted()
	if len(sub) != 1 || len(sub[0]) != 88200 {
		t.Fatalf("expected one 88200-sample buffer, got %d", len(sub))
	}
	if !reflect.DeepEqual(sub[0][:64], synth.SineSamples(440, 64, 44100)) {
		t.Error("submitted buffer is not a 440 Hz sine")
	}
}

func TestToneButtonPlayStop(t *testing.T) {
	out := &fakeOutput{}
	p := NewToneButtonPlayerWithOutput(out,
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithTone(1000, 10*time.Millisecond),
	)

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop while idle: %v", err)
	}
	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if p.State() != Playing {
		t.Errorf("state = %v, want playing", p.State())
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if p.State() != Idle {
		t.Errorf("state = %v, want idle", p.State())
	}

	want := []string{"open", "submit", "reset", "close"}
	if !reflect.DeepEqual(out.Calls(), want) {
		t.Errorf("calls = %v, want %v", out.Calls(), want)
	}
}

func TestToneButtonDoublePlay(t *testing.T) {
	out := &fakeOutput{}
	p := NewToneButtonPlayerWithOutput(out, contracts.WithLogger(logger.NewNopLogger()))

	_ = p.Play()
	_ = p.Play()

	want := []string{"open", "submit", "reset", "submit"}
	if !reflect.DeepEqual(out.Calls(), want) {
		t.Errorf("calls = %v, want %v", out.Calls(), want)
	}
}

func TestToneButtonDeviceOpenFailure(t *testing.T) {
	out := &fakeOutput{openErr: errors.New("waveOutOpen: mmresult 2")}
	p := NewToneButtonPlayerWithOutput(out, contracts.WithLogger(logger.NewNopLogger()))

	if err := p.Play(); !errors.Is(err, contracts.ErrDeviceOpen) {
		t.Fatalf("Play error %v does not wrap ErrDeviceOpen", err)
	}
	if p.State() != Idle {
		t.Errorf("state = %v, want idle", p.State())
	}
}

func TestToneButtonClose(t *testing.T) {
	out := &fakeOutput{}
	p := NewToneButtonPlayerWithOutput(out,
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithCloseOnStop(false),
	)

	_ = p.Play()
	_ = p.Stop()
	if n := out.Count("close"); n != 0 {
		t.Fatalf("device closed on stop despite WithCloseOnStop(false)")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := out.Count("close"); n != 1 {
		t.Errorf("close called %d times, want 1", n)
	}
}
