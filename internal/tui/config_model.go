package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/chatshell/internal/api"
	"github.com/diogo/chatshell/internal/config"
	"github.com/diogo/chatshell/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain   configView = iota
	viewChoice            // pick one value from a list
	viewEdit              // free text entry
)

// Menu item indices for main view
const (
	menuEndpoint = iota
	menuGreeting
	menuTimeout
	menuConversation
	menuVerbose
	menuCopyToClipboard
	menuTheme    // Markdown theme
	menuTUITheme // TUI color theme
	menuExit
	menuItemCount
)

var menuLabels = [menuItemCount]string{
	menuEndpoint:        "Endpoint",
	menuGreeting:        "Greeting",
	menuTimeout:         "Request Timeout",
	menuConversation:    "Conversation ID",
	menuVerbose:         "Verbose Logging",
	menuCopyToClipboard: "Copy to Clipboard",
	menuTheme:           "Markdown Theme",
	menuTUITheme:        "TUI Theme",
	menuExit:            "Exit",
}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error

	// Navigation
	view         configView
	cursor       int
	choices      []string
	choiceCursor int
	input        textinput.Model

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a config menu for cfg; changes are persisted with config.SaveConfig
func NewConfigModel(cfg config.Config) ConfigModel {
	configPath, _ := config.GetConfigPath()

	if render.SetTUITheme(cfg.TUITheme) {
		UpdateTheme()
	}

	ti := textinput.New()
	ti.CharLimit = 512
	ti.PromptStyle = inputLabelStyle

	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            config.SaveConfig,
		view:            viewMain,
		input:           ti,
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the current (possibly edited) configuration
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 16
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		if m.view == viewEdit {
			return m.updateEdit(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			if m.view == viewMain {
				m.cursor = wrap(m.cursor-1, menuItemCount)
			} else {
				m.choiceCursor = wrap(m.choiceCursor-1, len(m.choices))
			}

		case "down", "j":
			if m.view == viewMain {
				m.cursor = wrap(m.cursor+1, menuItemCount)
			} else {
				m.choiceCursor = wrap(m.choiceCursor+1, len(m.choices))
			}

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	if m.view == viewChoice {
		return m.applyChoice(m.choices[m.choiceCursor])
	}

	switch m.cursor {
	case menuEndpoint:
		return m.startEdit("url › ", m.config.Endpoint)
	case menuGreeting:
		return m.startEdit("text › ", m.config.Greeting)

	case menuTimeout:
		var opts []string
		for _, s := range config.TimeoutPresets() {
			opts = append(opts, formatTimeout(s))
		}
		return m.openChoice(opts, formatTimeout(m.config.TimeoutSeconds)), nil
	case menuTheme:
		return m.openChoice(render.StyleNames(), m.markdownStyle()), nil
	case menuTUITheme:
		return m.openChoice(render.TUIThemeNames(), m.tuiTheme()), nil

	case menuConversation:
		m.config.SendConversationID = !m.config.SendConversationID
		return m.persist(fmt.Sprintf("Conversation ID %s", stateWord(m.config.SendConversationID)))
	case menuVerbose:
		m.config.Verbose = !m.config.Verbose
		return m.persist(fmt.Sprintf("Verbose logging %s", stateWord(m.config.Verbose)))
	case menuCopyToClipboard:
		m.config.CopyToClipboard = !m.config.CopyToClipboard
		return m.persist(fmt.Sprintf("Copy to clipboard %s", stateWord(m.config.CopyToClipboard)))

	case menuExit:
		return m, tea.Quit
	}
	return m, nil
}

func (m ConfigModel) openChoice(choices []string, current string) ConfigModel {
	m.view = viewChoice
	m.choices = choices
	m.choiceCursor = 0
	for i, c := range choices {
		if c == current {
			m.choiceCursor = i
			break
		}
	}
	return m
}

func (m ConfigModel) applyChoice(choice string) (tea.Model, tea.Cmd) {
	m.view = viewMain
	switch m.cursor {
	case menuTimeout:
		m.config.TimeoutSeconds = parseTimeout(choice)
		return m.persist("Request timeout set to " + choice)
	case menuTheme:
		m.config.Markdown.Style = choice
		return m.persist("Markdown theme set to " + choice)
	case menuTUITheme:
		m.config.TUITheme = choice
		render.SetTUITheme(choice)
		UpdateTheme()
		return m.persist("TUI theme set to " + choice)
	}
	return m, nil
}

func (m ConfigModel) startEdit(prompt, value string) (tea.Model, tea.Cmd) {
	m.view = viewEdit
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m ConfigModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = viewMain
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		switch m.cursor {
		case menuEndpoint:
			if err := api.ValidateEndpoint(value); err != nil {
				m.feedback = err.Error()
				return m, clearFeedback(m.feedbackTimeout)
			}
			m.config.Endpoint = value
		case menuGreeting:
			m.config.Greeting = value
		}
		m.view = viewMain
		m.input.Blur()
		return m.persist(menuLabels[m.cursor] + " updated")
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// persist saves the configuration and reports the outcome
func (m ConfigModel) persist(success string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = success
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func stateWord(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func formatTimeout(seconds int) string {
	if seconds <= 0 {
		return "none"
	}
	return strconv.Itoa(seconds) + "s"
}

func parseTimeout(label string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(label, "s"))
	if err != nil {
		return 0
	}
	return n
}

func (m ConfigModel) markdownStyle() string {
	if m.config.Markdown.Style == "" {
		return render.StyleDark
	}
	return m.config.Markdown.Style
}

func (m ConfigModel) tuiTheme() string {
	if m.config.TUITheme == "" {
		return render.CurrentTUITheme().Name
	}
	return m.config.TUITheme
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := configHeaderStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ Configuration"))
	sections = append(sections, header)

	paths := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Paths"),
		fmt.Sprintf("   Config: %s", configPathStyle.Render(m.configPath)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(paths))

	var settings string
	switch m.view {
	case viewMain:
		settings = m.renderMainMenu()
	case viewChoice:
		settings = m.renderChoices()
	case viewEdit:
		settings = lipgloss.JoinVertical(lipgloss.Left,
			configSectionTitleStyle.Render("Edit "+menuLabels[m.cursor]),
			"",
			m.input.View(),
		)
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settings))

	if m.feedback != "" {
		sections = append(sections, configFeedbackStyle.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// value renders the current setting for a menu item
func (m ConfigModel) value(item int) string {
	switch item {
	case menuEndpoint:
		return configValueStyle.Render(m.config.Endpoint)
	case menuGreeting:
		if m.config.Greeting == "" {
			return configDisabledStyle.Render("(none)")
		}
		return configValueStyle.Render(m.config.Greeting)
	case menuTimeout:
		return configValueStyle.Render(formatTimeout(m.config.TimeoutSeconds))
	case menuConversation:
		return m.renderBoolValue(m.config.SendConversationID)
	case menuVerbose:
		return m.renderBoolValue(m.config.Verbose)
	case menuCopyToClipboard:
		return m.renderBoolValue(m.config.CopyToClipboard)
	case menuTheme:
		return configValueStyle.Render(m.markdownStyle())
	case menuTUITheme:
		return configValueStyle.Render(m.tuiTheme())
	}
	return ""
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	items := []string{configSectionTitleStyle.Render("⚙ Settings"), ""}

	for i := 0; i < menuItemCount; i++ {
		cursor := "  "
		style := configMenuItemStyle
		if m.cursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}
		if i == menuExit {
			items = append(items, "", cursor+style.Render(menuLabels[i]))
			continue
		}
		label := fmt.Sprintf("%-20s", menuLabels[i])
		items = append(items, cursor+style.Render(label)+m.value(i))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderChoices renders the option list for the selected menu item
func (m ConfigModel) renderChoices() string {
	items := []string{configSectionTitleStyle.Render("Select " + menuLabels[m.cursor]), ""}

	current := ""
	switch m.cursor {
	case menuTimeout:
		current = formatTimeout(m.config.TimeoutSeconds)
	case menuTheme:
		current = m.markdownStyle()
	case menuTUITheme:
		current = m.tuiTheme()
	}

	for i, choice := range m.choices {
		cursor := "  "
		style := configMenuItemStyle
		if m.choiceCursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}
		mark := ""
		if choice == current {
			mark = configStatusOkStyle.Render(" (current)")
		}
		items = append(items, cursor+style.Render(choice)+mark)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", "Exit"},
	}
	switch m.view {
	case viewChoice:
		shortcuts[2].desc = "Back"
	case viewEdit:
		shortcuts[0] = struct {
			key  string
			desc string
		}{"Type", "Edit"}
		shortcuts[1].desc = "Save"
		shortcuts[2].desc = "Cancel"
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		))
	}

	bar := strings.Join(items, "  │  ")
	return configStatusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunConfig starts the config TUI
func RunConfig(cfg config.Config) error {
	p := tea.NewProgram(NewConfigModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
