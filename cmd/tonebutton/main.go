package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrodaf/tonesynth/internal/logger"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"github.com/leandrodaf/tonesynth/sdk/player"
)

func main() {
	// The terminal belongs to the UI; logs go to a file.
	log := logger.NewZapLogger()
	p, err := player.NewToneButtonPlayer(
		contracts.WithLogger(log),
		contracts.WithLogFile("tonebutton.log"),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "audio output unavailable:", err)
		os.Exit(1)
	}
	defer p.Close()

	if _, err := tea.NewProgram(newModel(p)).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
