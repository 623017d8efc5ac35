package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenwm/lumen/internal/ipc"
)

// WindowsTab lists the compositor's windows and lets the user move focus.
type WindowsTab struct {
	ipcClient *ipc.Client

	windows  []ipc.WindowInfo
	selected int
	feedback string

	width  int
	height int
}

// NewWindowsTab creates the windows tab.
func NewWindowsTab(client *ipc.Client) WindowsTab {
	return WindowsTab{ipcClient: client}
}

// Refresh re-fetches the window list, preserving the selection when the
// selected window still exists.
func (t *WindowsTab) Refresh() {
	data, err := t.ipcClient.GetWindows()
	if err != nil {
		t.windows = nil
		t.selected = 0
		return
	}

	var prevID uint64
	if t.selected < len(t.windows) {
		prevID = t.windows[t.selected].ID
	}

	t.windows = data.Windows
	t.selected = 0
	for i, w := range t.windows {
		if w.ID == prevID {
			t.selected = i
			break
		}
	}
}

// Update implements the sub-model contract.
func (t WindowsTab) Update(msg tea.Msg) (WindowsTab, tea.Cmd) {
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
			if t.selected < len(t.windows) {
				w := t.windows[t.selected]
				if err := t.ipcClient.FocusWindow(w.ID); err != nil {
					t.feedback = err.Error()
				} else {
					t.feedback = fmt.Sprintf("focused %q", w.Title)
					t.Refresh()
				}
			}
		}
	}
	return t, nil
}

func (t *WindowsTab) move(delta int) {
	if len(t.windows) == 0 {
		return
	}
	t.selected += delta
	if t.selected < 0 {
		t.selected = len(t.windows) - 1
	} else if t.selected >= len(t.windows) {
		t.selected = 0
	}
}

// View implements the sub-model contract.
func (t WindowsTab) View() string {
	if len(t.windows) == 0 {
		return lipgloss.NewStyle().
			Width(t.width).
			Height(t.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("no windows")
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62"))

	rows := []string{headerStyle.Render(
		fmt.Sprintf("  %-6s %-24s %-18s %-14s %s", "ID", "TITLE", "GEOMETRY", "STATE", "OPACITY"))}

	for i, w := range t.windows {
		geo := fmt.Sprintf("%dx%d+%d+%d", w.Width, w.Height, w.X, w.Y)
		state := windowState(w)
		line := fmt.Sprintf("  %-6d %-24s %-18s %-14s %.2f", w.ID, truncate(w.Title, 24), geo, state, w.Opacity)
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

func windowState(w ipc.WindowInfo) string {
	switch {
	case w.Fullscreen:
		return "fullscreen"
	case w.Maximized:
		return "maximized"
	case w.Minimized:
		return "minimized"
	case !w.Visible:
		return "hidden"
	case w.Focused:
		return "focused"
	}
	return "normal"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
