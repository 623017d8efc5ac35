package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumenwm/lumen/internal/ipc"
)

// Tab identifies an inspector tab.
type Tab int

const (
	TabOverview Tab = iota
	TabWindows
	TabOutputs
	TabEffects
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabWindows:
		return "Windows"
	case TabOutputs:
		return "Outputs"
	case TabEffects:
		return "Effects"
	default:
		return "?"
	}
}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Background(lipgloss.Color("236")).
				Padding(0, 2)

	tabBarStyle = lipgloss.NewStyle().
			MarginBottom(1)

	tabGap = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		SetString(" ")

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// renderTabBar renders the tab bar with the given active tab and width.
func renderTabBar(active Tab, width int) string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		label := fmt.Sprintf("%d:%s", int(i)+1, i.String())
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, intersperse(tabs, tabGap.Render())...)
	return tabBarStyle.Width(width).Render(row)
}

// intersperse inserts sep between each element of items.
func intersperse(items []string, sep string) []string {
	if len(items) <= 1 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// renderPlaceholder renders placeholder content for a tab.
func renderPlaceholder(tab Tab, width, height int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(tab.String())
}

// renderStatusBar renders the daemon connection status bar.
func renderStatusBar(connected bool, status *ipc.StatusData, width int) string {
	var line string
	if connected && status != nil {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{
			dot + " daemon connected",
			fmt.Sprintf("windows:%d", status.WindowCount),
			fmt.Sprintf("fps:%.1f", status.FPS),
			fmt.Sprintf("preset:%s", status.EffectsPreset),
		}
		line = strings.Join(parts, "  ")
	} else {
		dot := dimStyle.Render("●")
		line = dot + " daemon not running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(line)
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int) string {
	help := "tab/shift-tab: switch tabs  1-4: jump to tab  r: refresh  q/ctrl-c: quit"
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}

// renderOverview renders the daemon summary panel.
func renderOverview(status *ipc.StatusData, lastError string, width, height int) string {
	if status == nil {
		msg := "daemon unreachable"
		if lastError != "" {
			msg = lastError
		}
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Foreground(lipgloss.Color("203")).
			Align(lipgloss.Center, lipgloss.Center).
			Render(msg)
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	rows := []string{
		labelStyle.Render("Windows") + fmt.Sprintf("%d", status.WindowCount),
		labelStyle.Render("Outputs") + fmt.Sprintf("%d", status.OutputCount),
		labelStyle.Render("Active window") + fmt.Sprintf("%d", status.ActiveWindow),
		labelStyle.Render("FPS") + fmt.Sprintf("%.1f", status.FPS),
		labelStyle.Render("Frames") + fmt.Sprintf("%d", status.FrameCount),
		labelStyle.Render("Active effects") + fmt.Sprintf("%d", status.ActiveEffects),
		labelStyle.Render("Effects preset") + status.EffectsPreset,
		labelStyle.Render("Uptime") + fmt.Sprintf("%ds", status.UptimeSeconds),
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(body)
}

// renderOutputs renders the outputs table.
func renderOutputs(outputs []ipc.OutputInfo, width, height int) string {
	if len(outputs) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("no outputs")
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	rows := []string{headerStyle.Render(fmt.Sprintf("%-12s %-18s %-8s %-8s %s", "NAME", "MODE", "SCALE", "PRIMARY", "STATE"))}
	for _, o := range outputs {
		mode := fmt.Sprintf("%dx%d@%.0fHz", o.Width, o.Height, o.RefreshRate)
		primary := ""
		if o.Primary {
			primary = "yes"
		}
		state := "enabled"
		if !o.Enabled {
			state = "disabled"
		}
		rows = append(rows, fmt.Sprintf("%-12s %-18s %-8.2f %-8s %s", o.Name, mode, o.ScaleFactor, primary, state))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(body)
}
