package tui

import (
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenwm/lumen/internal/ipc"
)

// pollInterval is how often the inspector refreshes daemon state.
const pollInterval = time.Second

// tickMsg triggers a daemon poll.
type tickMsg time.Time

// model is the root bubbletea model for the inspector.
type model struct {
	ipcClient *ipc.Client

	// Tab navigation
	activeTab Tab

	// Sub-models
	windowsTab WindowsTab
	effectsTab EffectsTab

	// Daemon state
	daemonConnected bool
	status          *ipc.StatusData
	outputs         []ipc.OutputInfo
	lastError       string

	// Terminal dimensions
	width  int
	height int
}

func newModel() model {
	m := model{
		ipcClient: ipc.NewClient(),
		activeTab: TabOverview,
	}
	m.windowsTab = NewWindowsTab(m.ipcClient)
	m.effectsTab = NewEffectsTab(m.ipcClient)
	m.refresh()
	return m
}

// refresh polls the daemon and updates every tab's data.
func (m *model) refresh() {
	status, err := m.ipcClient.GetStatus()
	if err != nil {
		m.daemonConnected = false
		m.status = nil
		m.lastError = err.Error()
		return
	}
	m.daemonConnected = true
	m.status = status
	m.lastError = ""

	if outputs, err := m.ipcClient.GetOutputs(); err == nil {
		m.outputs = outputs.Outputs
	}
	m.windowsTab.Refresh()
	m.effectsTab.Refresh()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil

		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil

		case "r":
			m.refresh()
			return m, nil

		case "1":
			m.activeTab = TabOverview
			return m, nil
		case "2":
			m.activeTab = TabWindows
			return m, nil
		case "3":
			m.activeTab = TabOutputs
			return m, nil
		case "4":
			m.activeTab = TabEffects
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.windowsTab, _ = m.windowsTab.Update(subMsg)
		m.effectsTab, _ = m.effectsTab.Update(subMsg)
		return m, nil
	}

	// Delegate to active tab's sub-model
	switch m.activeTab {
	case TabWindows:
		var cmd tea.Cmd
		m.windowsTab, cmd = m.windowsTab.Update(msg)
		return m, cmd
	case TabEffects:
		var cmd tea.Cmd
		m.effectsTab, cmd = m.effectsTab.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, m.status, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.activeTab {
	case TabOverview:
		content = renderOverview(m.status, m.lastError, m.width, contentHeight)
	case TabWindows:
		content = m.windowsTab.View()
	case TabOutputs:
		content = renderOutputs(m.outputs, m.width, contentHeight)
	case TabEffects:
		content = m.effectsTab.View()
	default:
		content = renderPlaceholder(m.activeTab, m.width, contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}

// Run starts the inspector.
func Run() error {
	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
