package midi

import (
	"errors"
	"testing"

	"github.com/leandrodaf/tonesynth/internal/logger"
	"github.com/leandrodaf/tonesynth/internal/options"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

func TestNewClientUnsupportedOS(t *testing.T) {
	opts := options.Apply(contracts.WithLogger(logger.NewNopLogger()))

	client, err := newClientFor("plan9", &opts)
	if client != nil {
		t.Fatal("expected no client for unsupported OS")
	}
	if !errors.Is(err, contracts.ErrMIDIInit) {
		t.Errorf("error %v does not wrap ErrMIDIInit", err)
	}
	if !errors.Is(err, ErrUnsupportedOS) {
		t.Errorf("error %v does not wrap ErrUnsupportedOS", err)
	}
}

func TestNewClientWrapsDriverFailure(t *testing.T) {
	clientInitializers["test-os"] = func(*contracts.ClientOptions) (contracts.ClientMIDI, error) {
		return nil, errors.New("driver exploded")
	}
	defer delete(clientInitializers, "test-os")

	opts := options.Apply(contracts.WithLogger(logger.NewNopLogger()))
	_, err := newClientFor("test-os", &opts)
	if !errors.Is(err, contracts.ErrMIDIInit) {
		t.Errorf("error %v does not wrap ErrMIDIInit", err)
	}
}
