package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/leandrodaf/tonesynth/internal/logger"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"github.com/leandrodaf/tonesynth/sdk/player"
	"github.com/spf13/cobra"
)

var errNoMIDIPorts = errors.New("no MIDI input ports available")

type config struct {
	port       int
	list       bool
	backend    string
	logLevel   string
	logFile    string
	sampleRate int
	samples    int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config{}
	cmd := &cobra.Command{
		Use:          "miditone",
		Short:        "Play a sine tone for every MIDI note",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.port, "port", "p", -1, "index of the MIDI input port")
	flags.BoolVarP(&cfg.list, "list", "l", false, "list MIDI input ports and exit")
	flags.StringVar(&cfg.backend, "backend", "", "audio backend (winmm, oto, portaudio); empty picks the OS default")
	flags.StringVar(&cfg.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&cfg.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.IntVar(&cfg.sampleRate, "sample-rate", contracts.DefaultSampleRate, "output sample rate in Hz")
	flags.IntVar(&cfg.samples, "note-samples", contracts.DefaultNoteBufferSamples, "samples synthesized per note")
	return cmd
}

func run(ctx context.Context, cfg config) error {
	level, err := contracts.ParseLogLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	log := logger.NewZapLogger()

	p, err := player.NewMidiTonePlayer(
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithLogFile(cfg.logFile),
		contracts.WithAudioBackend(cfg.backend),
		contracts.WithSampleRate(cfg.sampleRate),
		contracts.WithNoteBufferSamples(cfg.samples),
		contracts.WithErrorHandler(func(err error) {
			fmt.Fprintln(os.Stderr, "playback error:", err)
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI tone player", log.Field().Error("error", err))
		return err
	}
	defer p.Close()

	ports, err := p.Ports()
	if err := printPorts(os.Stdout, ports, err); err != nil {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		return err
	}
	if cfg.list {
		return nil
	}

	if err := p.Connect(cfg.port); err != nil {
		log.Error("Failed to connect MIDI tone player", log.Field().Error("error", err))
		if errors.Is(err, contracts.ErrNoPortSelected) {
			return fmt.Errorf("%w: pick one of the ports above with --port", err)
		}
		return err
	}

	fmt.Println("MIDI connected. Play some keys... Press Ctrl+C to exit.")
	<-ctx.Done()
	return nil
}

func printPorts(w io.Writer, ports []contracts.PortInfo, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %v", errNoMIDIPorts, err)
	}
	if len(ports) == 0 {
		return errNoMIDIPorts
	}
	for _, port := range ports {
		fmt.Fprintf(w, "%2d: %s\n", port.Index, port)
	}
	return nil
}
