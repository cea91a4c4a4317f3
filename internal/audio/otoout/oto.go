// Package otoout plays PCM buffers through oto, which supports one context per process.
package otoout

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
)

var (
	ctxMu     sync.Mutex
	sharedCtx *oto.Context
	ctxFormat contracts.AudioFormat
	openCount int
)

// Output opens handles on the process-wide oto context.
type Output struct {
	logger contracts.Logger
}

// NewOutput creates an oto output.
func NewOutput(options *contracts.ClientOptions) (contracts.AudioOutput, error) {
	return &Output{logger: options.Logger}, nil
}

// Open returns a handle on the shared context, creating it on first use. Once created the
// context cannot change format.
func (o *Output) Open(format contracts.AudioFormat) (contracts.DeviceHandle, error) {
	if format.BitsPerSample != 16 || format.Channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: oto output needs 16-bit PCM, got %+v", contracts.ErrUnsupportedFormat, format)
	}

	ctxMu.Lock()
	defer ctxMu.Unlock()

	if sharedCtx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-ready
		sharedCtx = ctx
		ctxFormat = format
		o.logger.Info("oto context initialized",
			o.logger.Field().Int("sampleRate", format.SampleRate),
			o.logger.Field().Int("channels", format.Channels))
	} else if ctxFormat != format {
		return nil, fmt.Errorf("%w: oto context already running at %dHz %dch",
			contracts.ErrUnsupportedFormat, ctxFormat.SampleRate, ctxFormat.Channels)
	} else if openCount == 0 {
		if err := sharedCtx.Resume(); err != nil {
			return nil, fmt.Errorf("failed to resume oto context: %w", err)
		}
	}

	openCount++
	return &handle{ctx: sharedCtx, logger: o.logger}, nil
}

type handle struct {
	ctx    *oto.Context
	logger contracts.Logger
	player *oto.Player
	buf    contracts.PcmBuffer
	closed bool
}

func (h *handle) Submit(buf contracts.PcmBuffer) error {
	if h.closed {
		return errors.New("oto handle closed")
	}
	if h.player != nil {
		if err := h.Reset(); err != nil {
			return err
		}
	}
	if err := h.ctx.Err(); err != nil {
		return fmt.Errorf("oto context failed: %w", err)
	}

	h.buf = buf
	h.player = h.ctx.NewPlayer(bytes.NewReader(buf.Bytes()))
	h.player.Play()
	return nil
}

func (h *handle) Reset() error {
	if h.player == nil {
		return nil
	}
	h.player.Pause()
	err := h.player.Close()
	h.player = nil
	h.buf = nil
	if err != nil {
		return fmt.Errorf("failed to close oto player: %w", err)
	}
	return nil
}

func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	err := h.Reset()
	h.closed = true

	ctxMu.Lock()
	defer ctxMu.Unlock()
	openCount--
	if openCount == 0 {
		if serr := h.ctx.Suspend(); serr != nil && err == nil {
			err = fmt.Errorf("failed to suspend oto context: %w", serr)
		}
	}
	return err
}
