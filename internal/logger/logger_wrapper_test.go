package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"go.uber.org/zap/zaptest"
)

var _ contracts.Logger = (*ZapLogger)(nil)

func TestLevelFiltering(t *testing.T) {
	buf := &zaptest.Buffer{}
	l := New(buf)

	l.Debug("hidden")
	l.Info("shown")
	l.SetLevel(contracts.DebugLevel)
	l.Debug("now shown")
	l.SetLevel(contracts.ErrorLevel)
	l.Warn("hidden again")
	l.Error("error shown")

	lines := buf.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %v", len(lines), lines)
	}
	for i, want := range []string{"shown", "now shown", "error shown"} {
		if !strings.Contains(lines[i], `"msg":"`+want+`"`) {
			t.Errorf("line %d = %s, want msg %q", i, lines[i], want)
		}
	}
}

func TestFieldsAreEncoded(t *testing.T) {
	buf := &zaptest.Buffer{}
	l := New(buf)

	l.Info("note",
		l.Field().Int("note", 69),
		l.Field().Float64("frequency", 440),
		l.Field().Uint8("velocity", 100),
		l.Field().Bool("on", true),
		l.Field().Error("error", errors.New("boom")),
	)

	line := buf.Stripped()
	for _, want := range []string{`"note":69`, `"frequency":440`, `"velocity":100`, `"on":true`, `"error":"boom"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %s missing %s", line, want)
		}
	}
}

func TestCallerPointsAtCallSite(t *testing.T) {
	buf := &zaptest.Buffer{}
	l := New(buf)

	l.Info("where")

	if !strings.Contains(buf.Stripped(), "logger_wrapper_test.go") {
		t.Errorf("expected caller to be the test file, got %s", buf.Stripped())
	}
}

func TestSetDestinationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synth.log")
	l := New(&zaptest.Buffer{})

	l.SetDestination(contracts.FileLog, path)
	l.Info("to file")
	if err := l.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file does not contain entry: %s", data)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored", l.Field().String("k", "v"))
	l.SetLevel(contracts.DebugLevel)
	l.Debug("ignored")
}
