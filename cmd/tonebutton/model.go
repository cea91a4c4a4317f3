package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leandrodaf/tonesynth/sdk/contracts"
	"github.com/leandrodaf/tonesynth/sdk/player"
)

// tonePlayer is the part of player.ToneButtonPlayer the UI drives.
type tonePlayer interface {
	Play() error
	Stop() error
	State() player.State
	Tone() contracts.ToneRequest
}

type model struct {
	player tonePlayer
	state  player.State
	err    error
}

func newModel(p tonePlayer) model {
	return model{player: p, state: p.State()}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "p", "enter", " ":
		m.err = m.player.Play()
	case "s", "esc":
		m.err = m.player.Stop()
	case "q", "ctrl+c":
		_ = m.player.Stop()
		m.state = m.player.State()
		return m, tea.Quit
	}
	m.state = m.player.State()
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	tone := m.player.Tone()

	fmt.Fprintf(&b, "Tone: %.0f Hz for %.1f s\n\n", tone.FrequencyHz, tone.DurationSeconds)
	if m.state == player.Playing {
		b.WriteString("  [ Play ]  ( Stop )\n\n")
	} else {
		b.WriteString("  ( Play )  [ Stop ]\n\n")
	}
	fmt.Fprintf(&b, "State: %s\n", m.state)
	if m.err != nil {
		fmt.Fprintf(&b, "Error: %v\n", m.err)
	}
	b.WriteString("\np/enter: play  s/esc: stop  q: quit\n")
	return b.String()
}
