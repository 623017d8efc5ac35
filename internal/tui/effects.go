package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenwm/lumen/internal/ipc"
)

// EffectsTab lists effect presets and lets the user switch them.
type EffectsTab struct {
	ipcClient *ipc.Client

	presets  []string
	current  string
	selected int
	enabled  bool
	feedback string

	width  int
	height int
}

// NewEffectsTab creates the effects tab.
func NewEffectsTab(client *ipc.Client) EffectsTab {
	return EffectsTab{ipcClient: client, enabled: true}
}

// Refresh re-fetches the preset list and pipeline state.
func (t *EffectsTab) Refresh() {
	data, err := t.ipcClient.ListPresets()
	if err != nil {
		t.presets = nil
		t.current = ""
		return
	}
	t.presets = data.Presets
	t.current = data.CurrentPreset
	if t.selected >= len(t.presets) {
		t.selected = 0
	}
}

// Update implements the sub-model contract.
func (t EffectsTab) Update(msg tea.Msg) (EffectsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			t.move(-1)
		case "down", "j":
			t.move(1)
		case "enter":
			if t.selected < len(t.presets) {
				name := t.presets[t.selected]
				if err := t.ipcClient.ApplyPreset(name); err != nil {
					t.feedback = err.Error()
				} else {
					t.feedback = fmt.Sprintf("applied preset %q", name)
					t.Refresh()
				}
			}
		case "e":
			t.enabled = !t.enabled
			if err := t.ipcClient.SetEffectsEnabled(t.enabled); err != nil {
				t.feedback = err.Error()
				t.enabled = !t.enabled
			} else if t.enabled {
				t.feedback = "effects enabled"
			} else {
				t.feedback = "effects disabled"
			}
		}
	}
	return t, nil
}

func (t *EffectsTab) move(delta int) {
	if len(t.presets) == 0 {
		return
	}
	t.selected += delta
	if t.selected < 0 {
		t.selected = len(t.presets) - 1
	} else if t.selected >= len(t.presets) {
		t.selected = 0
	}
}

// View implements the sub-model contract.
func (t EffectsTab) View() string {
	if len(t.presets) == 0 {
		return lipgloss.NewStyle().
			Width(t.width).
			Height(t.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("no presets")
	}

	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62"))
	currentMark := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")

	state := "effects: on"
	if !t.enabled {
		state = "effects: off"
	}
	rows := []string{dimStyle.Render(state + "  (enter: apply preset, e: toggle)"), ""}

	for i, name := range t.presets {
		mark := " "
		if name == t.current {
			mark = currentMark
		}
		line := fmt.Sprintf("  %s %s", mark, name)
		if i == t.selected {
			line = selectedStyle.Render("▸" + line[1:])
		}
		rows = append(rows, line)
	}

	if t.feedback != "" {
		rows = append(rows, "", dimStyle.Render(t.feedback))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Width(t.width).
		Height(t.height).
		Padding(1, 2).
		Render(body)
}
