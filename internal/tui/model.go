package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/chatshell/internal/chat"
	apierrors "github.com/diogo/chatshell/internal/errors"
	"github.com/diogo/chatshell/internal/models"
	"github.com/diogo/chatshell/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	responseMsg struct {
		resp *models.ChatResponse
	}
	// errMsg carries the endpoint captured when the message was submitted
	errMsg struct {
		err      error
		endpoint string
	}
	statusMsg struct {
		status   *models.APIStatus
		err      error
		endpoint string
	}
)

// ChatSessionInterface defines the session operations needed by the TUI
type ChatSessionInterface interface {
	SendMessage(prompt string) (*models.ChatResponse, error)
	CheckStatus() (*models.APIStatus, error)
	Endpoint() string
	SetEndpoint(endpoint string) error
	StatusEndpoint() string
	ConversationID() string
}

// ChatOptions configures a chat model
type ChatOptions struct {
	Greeting    string
	Markdown    render.Options
	CopyReplies bool
	Logger      *zap.Logger
	// Clipboard replaces the system clipboard writer
	Clipboard func(string) error
}

// Model represents the TUI state
type Model struct {
	session ChatSessionInterface
	logger  *zap.Logger

	// UI components
	viewport      viewport.Model
	textarea      textarea.Model
	spinner       spinner.Model
	endpointInput textinput.Model

	// State
	transcript      *chat.Transcript
	failed          map[int]bool
	loading         bool
	editingEndpoint bool
	ready           bool
	feedback        string
	animationFrame  int

	markdown    render.Options
	copyReplies bool
	copyFn      func(string) error

	// Dimensions
	width  int
	height int
}

// newlineKey inserts a line break; plain enter submits
var newlineKey = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

// NewChatModel creates a new chat TUI model
func NewChatModel(session ChatSessionInterface, opts ChatOptions) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 8000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline = newlineKey
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	ti := textinput.New()
	ti.Prompt = "endpoint › "
	ti.CharLimit = 512
	ti.PromptStyle = inputLabelStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	md := opts.Markdown
	if md == (render.Options{}) {
		md = render.DefaultOptions()
	}

	return Model{
		session:       session,
		logger:        logger,
		textarea:      ta,
		spinner:       s,
		endpointInput: ti,
		transcript:    chat.NewTranscript(opts.Greeting),
		failed:        make(map[int]bool),
		markdown:      md,
		copyReplies:   opts.CopyReplies,
		copyFn:        copyFn,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 2 // Status bar and feedback line
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.viewport.KeyMap = scrollKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.endpointInput.Width = contentWidth - 16
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		if m.editingEndpoint {
			return m.updateEndpointEditor(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// An outstanding request cannot be cancelled, only waited for
			if m.loading {
				m.feedback = "Waiting for the current reply..."
				return m, nil
			}
			return m, tea.Quit

		case "ctrl+e":
			return m.startEndpointEditor()

		case "ctrl+y":
			return m.copyLastReply()

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case "enter":
			return m.submit()
		}

		if !m.loading {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case responseMsg:
		m.loading = false
		m.transcript.Append(models.NewAssistantMessage(msg.resp.Response))
		m.logger.Debug("reply received",
			zap.Int("length", len(msg.resp.Response)),
			zap.String("conversation_id", msg.resp.ConversationID),
		)
		if m.copyReplies {
			if err := m.copyFn(msg.resp.Response); err != nil {
				m.logger.Warn("copy reply failed", zap.Error(err))
			}
		}
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case errMsg:
		m.loading = false
		m.failed[m.transcript.Len()] = true
		m.transcript.Append(chat.FailureMessage(msg.err, msg.endpoint))
		m.logger.Warn("request failed",
			zap.String("endpoint", msg.endpoint),
			zap.Int("status", apierrors.GetHTTPStatus(msg.err)),
			zap.Error(msg.err),
		)
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, nil

	case statusMsg:
		if msg.err != nil {
			m.feedback = fmt.Sprintf("Backend unreachable at %s: %v", msg.endpoint, msg.err)
		} else if msg.status.Online() {
			m.feedback = fmt.Sprintf("Backend online at %s (%s)", msg.endpoint, msg.status.Version)
		} else {
			m.feedback = fmt.Sprintf("Backend at %s reports status %q", msg.endpoint, msg.status.Status)
		}
		return m, clearFeedback(6 * time.Second)

	case feedbackClearMsg:
		m.feedback = ""
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			return m, animationTick()
		}
		return m, nil
	}

	// Mouse wheel scrolling and other component messages
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	if m.editingEndpoint {
		m.endpointInput, cmd = m.endpointInput.Update(msg)
	} else {
		m.textarea, cmd = m.textarea.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit sends the textarea contents unless the gate is closed or the input is blank
func (m Model) submit() (tea.Model, tea.Cmd) {
	text, ok := chat.PrepareSubmission(m.textarea.Value(), m.loading)
	if !ok {
		return m, nil
	}

	if cmd, ok := parseSlashCommand(text); ok {
		m.textarea.Reset()
		return m.runCommand(cmd)
	}

	m.transcript.Append(models.NewUserMessage(text))
	m.textarea.Reset()
	m.loading = true
	m.animationFrame = 0
	m.feedback = ""
	m.updateViewport()
	m.viewport.GotoBottom()

	endpoint := m.session.Endpoint()
	m.logger.Info("message submitted",
		zap.String("endpoint", endpoint),
		zap.Int("length", len(text)),
	)

	return m, tea.Batch(
		m.sendMessage(text, endpoint),
		m.spinner.Tick,
		animationTick(),
	)
}

// sendMessage creates a command to send a message to the backend
func (m Model) sendMessage(prompt, endpoint string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		resp, err := session.SendMessage(prompt)
		if err != nil {
			return errMsg{err: err, endpoint: endpoint}
		}
		return responseMsg{resp: resp}
	}
}

// checkStatus probes the backend status endpoint
func (m Model) checkStatus() tea.Cmd {
	session := m.session
	endpoint := session.StatusEndpoint()
	return func() tea.Msg {
		status, err := session.CheckStatus()
		return statusMsg{status: status, err: err, endpoint: endpoint}
	}
}

func (m Model) startEndpointEditor() (tea.Model, tea.Cmd) {
	m.editingEndpoint = true
	m.endpointInput.SetValue(m.session.Endpoint())
	m.endpointInput.CursorEnd()
	m.textarea.Blur()
	return m, m.endpointInput.Focus()
}

func (m Model) updateEndpointEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.editingEndpoint = false
		m.endpointInput.Blur()
		return m, m.textarea.Focus()
	case "enter":
		m = m.applyEndpoint(m.endpointInput.Value())
		if m.editingEndpoint {
			return m, nil
		}
		m.endpointInput.Blur()
		return m, tea.Batch(m.textarea.Focus(), clearFeedback(4*time.Second))
	}

	var cmd tea.Cmd
	m.endpointInput, cmd = m.endpointInput.Update(msg)
	return m, cmd
}

// applyEndpoint switches the session endpoint; the editor stays open on failure
func (m Model) applyEndpoint(raw string) Model {
	if err := m.session.SetEndpoint(raw); err != nil {
		m.feedback = err.Error()
		return m
	}
	m.editingEndpoint = false
	m.feedback = "Endpoint set to " + m.session.Endpoint()
	m.logger.Info("endpoint changed", zap.String("endpoint", m.session.Endpoint()))
	return m
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	last, ok := m.transcript.LastAssistant()
	if !ok {
		m.feedback = apierrors.ErrClipboardMissing.Error()
		return m, clearFeedback(3 * time.Second)
	}
	if err := m.copyFn(last.Content); err != nil {
		m.feedback = "Copy failed: " + err.Error()
	} else {
		m.feedback = "Copied last reply"
	}
	return m, clearFeedback(3 * time.Second)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ chatshell"),
		hintStyle.Render("  •  "),
	}
	if m.editingEndpoint {
		headerParts = append(headerParts, m.endpointInput.View())
	} else {
		headerParts = append(headerParts, subtitleStyle.Render(m.session.Endpoint()))
		if id := m.session.ConversationID(); id != "" {
			headerParts = append(headerParts,
				hintStyle.Render("  •  "),
				hintStyle.Render(shortID(id)),
			)
		}
	}
	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, headerParts...),
	)
	sections = append(sections, header)

	// Messages
	var messagesContent string
	if m.transcript.Len() == 0 && !m.loading {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}
	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))
	if m.feedback != "" {
		sections = append(sections, feedbackStyle.Render("  "+m.feedback))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("chatshell"),
		"",
		welcomeStyle.Width(width).Render("Start a conversation by typing a message below"),
		"",
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}
	frame := m.animationFrame

	spin := lipgloss.NewStyle().
		Foreground(gradientColors[frame%len(gradientColors)]).
		Bold(true).
		Render(chars[frame%len(chars)])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)
		bar.WriteString(lipgloss.NewStyle().Foreground(gradientColors[colorIdx]).Render(barChars[charIdx]))
	}

	text := loadingStyle.Render("Waiting for reply")
	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, m.spinner.View())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Ctrl+E", "Endpoint"},
		{"Ctrl+Y", "Copy"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	}
	if m.editingEndpoint {
		shortcuts = shortcuts[:0]
		shortcuts = append(shortcuts,
			struct{ key, desc string }{"Enter", "Apply"},
			struct{ key, desc string }{"Esc", "Cancel"},
		)
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
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	for i, msg := range m.transcript.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ Assistant")
			var bubble string
			if m.failed[i] {
				bubble = errorBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			} else {
				rendered := render.Reply(msg.Content, m.markdown.WithWidth(bubbleWidth-4))
				bubble = assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			}
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	if m.loading {
		content.WriteString("\n" + assistantLabelStyle.Render("✦ Assistant") + "\n")
		content.WriteString(assistantBubbleStyle.Render(loadingStyle.Render("● ● ●")))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// scrollKeyMap limits viewport keys so typing never scrolls the transcript
func scrollKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Loading reports whether a request is outstanding
func (m Model) Loading() bool {
	return m.loading
}

// Messages returns a copy of the transcript
func (m Model) Messages() []models.Message {
	return m.transcript.Messages()
}

// RunChat starts the chat TUI
func RunChat(session ChatSessionInterface, opts ChatOptions) error {
	m := NewChatModel(session, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
