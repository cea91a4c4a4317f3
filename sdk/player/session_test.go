package player

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/leandrodaf/tonesynth/internal/logger"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"go.uber.org/zap/zaptest"
)

var tone = contracts.ToneRequest{FrequencyHz: 440, DurationSeconds: 0.1, SampleRateHz: 44100}

func newTestSession(out *fakeOutput, closeOnStop bool) *Session {
	return NewSession(out, contracts.MonoPCM16(44100), logger.NewNopLogger(), closeOnStop)
}

func TestSessionStartFromIdle(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, false)

	if s.State() != Idle {
		t.Fatalf("initial state = %v, want idle", s.State())
	}
	if err := s.Start(tone); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if s.State() != Playing {
		t.Errorf("state = %v, want playing", s.State())
	}
	if want := []string{"open", "submit"}; !reflect.DeepEqual(out.Calls(), want) {
		t.Errorf("calls = %v, want %v", out.Calls(), want)
	}
	if sub := out.Submitted(); len(sub) != 1 || len(sub[0]) != 4410 {
		t.Errorf("expected one 4410-sample buffer, got %d buffers", len(sub))
	}
	if got := out.formats[0]; got != (contracts.AudioFormat{SampleRate: 44100, Channels: 1, BitsPerSample: 16}) {
		t.Errorf("device opened with %+v", got)
	}
}

func TestSessionStop(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, false)

	if err := s.Start(tone); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if n := out.Count("reset"); n != 1 {
		t.Errorf("reset called %d times, want 1", n)
	}
	if n := out.Count("close"); n != 0 {
		t.Errorf("close called %d times, want 0 when device stays open", n)
	}
}

func TestSessionStopWhileIdleIsNoop(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, true)

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if calls := out.Calls(); len(calls) != 0 {
		t.Errorf("idle stop made device calls: %v", calls)
	}

	// Still a no-op once the device has been used.
	_ = s.Start(tone)
	_ = s.Stop()
	before := len(out.Calls())
	_ = s.Stop()
	if len(out.Calls()) != before {
		t.Errorf("second stop made device calls: %v", out.Calls()[before:])
	}
}

func TestSessionRetriggerResetsFirst(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, false)

	for i := 0; i < 3; i++ {
		if err := s.Start(tone); err != nil {
			t.Fatalf("Start %d: %v", i, err)
		}
	}

	want := []string{"open", "submit", "reset", "submit", "reset", "submit"}
	if !reflect.DeepEqual(out.Calls(), want) {
		t.Errorf("calls = %v, want %v", out.Calls(), want)
	}
	if s.State() != Playing {
		t.Errorf("state = %v, want playing", s.State())
	}
}

func TestSessionNeverSubmitsTwiceWithoutReset(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, true)

	ops := []func() error{
		func() error { return s.Start(tone) },
		func() error { return s.Start(tone) },
		s.Stop,
		s.Stop,
		func() error { return s.Start(tone) },
		func() error { return s.Start(tone) },
		s.Stop,
	}
	for i, op := range ops {
		if err := op(); err != nil {
			t.Fatalf("op %d: %v", i, err)
		}
	}

	inFlight := false
	for i, c := range out.Calls() {
		switch c {
		case "submit":
			if inFlight {
				t.Fatalf("call %d: submit without intervening reset: %v", i, out.Calls())
			}
			inFlight = true
		case "reset":
			inFlight = false
		}
	}
}

func TestSessionOpenFailure(t *testing.T) {
	out := &fakeOutput{openErr: errors.New("no device")}
	s := newTestSession(out, false)

	err := s.Start(tone)
	if !errors.Is(err, contracts.ErrDeviceOpen) {
		t.Fatalf("error %v does not wrap ErrDeviceOpen", err)
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
	if n := out.Count("submit"); n != 0 {
		t.Errorf("submit called %d times after failed open", n)
	}

	// The failure is not sticky: the next start retries the open.
	out.openErr = nil
	if err := s.Start(tone); err != nil {
		t.Fatalf("Start after recovery: %v", err)
	}
	if n := out.Count("open"); n != 2 {
		t.Errorf("open called %d times, want 2", n)
	}
}

func TestSessionSubmitFailure(t *testing.T) {
	out := &fakeOutput{submitErr: errors.New("device busy")}
	s := newTestSession(out, false)

	err := s.Start(tone)
	if !errors.Is(err, contracts.ErrDeviceSubmit) {
		t.Fatalf("error %v does not wrap ErrDeviceSubmit", err)
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want idle", s.State())
	}
}

func TestSessionSubmitFailureLogsResetError(t *testing.T) {
	buf := &zaptest.Buffer{}
	out := &fakeOutput{submitErr: errors.New("device busy"), resetErr: errors.New("reset refused")}
	s := NewSession(out, contracts.MonoPCM16(44100), logger.New(buf), false)

	if err := s.Start(tone); !errors.Is(err, contracts.ErrDeviceSubmit) {
		t.Fatalf("error %v does not wrap ErrDeviceSubmit", err)
	}
	want := []string{"open", "submit", "reset"}
	if !reflect.DeepEqual(out.Calls(), want) {
		t.Errorf("calls = %v, want %v", out.Calls(), want)
	}

	var found bool
	for _, line := range buf.Lines() {
		if strings.Contains(line, `"level":"warn"`) && strings.Contains(line, "reset refused") {
			found = true
		}
	}
	if !found {
		t.Errorf("reset failure not logged at warn: %v", buf.Lines())
	}
}

func TestSessionCloseOnStop(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, true)

	_ = s.Start(tone)
	_ = s.Stop()
	_ = s.Start(tone)

	want := []string{"open", "submit", "reset", "close", "open", "submit"}
	if !reflect.DeepEqual(out.Calls(), want) {
		t.Errorf("calls = %v, want %v", out.Calls(), want)
	}
}

func TestSessionClose(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, false)

	_ = s.Start(tone)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	want := []string{"open", "submit", "reset", "close"}
	if !reflect.DeepEqual(out.Calls(), want) {
		t.Errorf("calls = %v, want %v", out.Calls(), want)
	}
	if err := s.Start(tone); !errors.Is(err, contracts.ErrSessionClosed) {
		t.Errorf("Start after Close: error %v, want ErrSessionClosed", err)
	}
	if err := s.Open(); !errors.Is(err, contracts.ErrSessionClosed) {
		t.Errorf("Open after Close: error %v, want ErrSessionClosed", err)
	}
}

func TestSessionEmptyRequest(t *testing.T) {
	out := &fakeOutput{}
	s := newTestSession(out, false)

	if err := s.Start(contracts.ToneRequest{FrequencyHz: 440}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != Idle {
		t.Errorf("state = %v, want idle for an empty buffer", s.State())
	}
	if n := out.Count("submit"); n != 0 {
		t.Errorf("submit called %d times for an empty buffer", n)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Playing.String() != "playing" {
		t.Errorf("unexpected state names %q %q", Idle, Playing)
	}
}
