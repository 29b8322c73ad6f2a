// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openfxt/chatfxt-tui/internal/model"
	"github.com/openfxt/chatfxt-tui/internal/remote"
	"github.com/openfxt/chatfxt-tui/internal/session"
	"github.com/openfxt/chatfxt-tui/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultMaxInput is the input character limit.
	DefaultMaxInput = 512

	// IdlePlaceholder is shown in the empty input while idle.
	IdlePlaceholder = "Question (Maximum waiting time 10s)..."

	// BusyPlaceholder is shown while a reply is pending.
	BusyPlaceholder = "Waiting..."

	inputLines   = 3
	headerHeight = 1
	footerHeight = 1
	minWidth     = 20
)

// =============================================================================
// MODEL
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Session holds transcript and busy state. Required.
	Session *session.Session

	// Sender delivers prompts. Required.
	Sender remote.Sender

	// Pinger fires the startup analytics request. Nil disables it.
	Pinger remote.Pinger

	// Theme defaults to styles.NewTheme().
	Theme *styles.Theme

	// MarkdownStyle is a glamour standard style name or "auto".
	// Empty uses Theme.MarkdownStyle().
	MarkdownStyle string

	// MaxInput is the textarea character limit. Zero uses DefaultMaxInput.
	MaxInput int

	// OnPair is called after every settled reply once a history pair exists.
	OnPair func(model.HistoryPair)

	// Links are the header and footer targets. Empty URLs render as plain
	// labels.
	Links Links

	Logger *slog.Logger
}

// Links holds the URLs behind the header and footer labels.
type Links struct {
	Home    string
	APIDocs string
	GitHub  string
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	session *session.Session
	sender  remote.Sender
	pinger  remote.Pinger
	onPair  func(model.HistoryPair)
	logger  *slog.Logger

	theme    *styles.Theme
	markdown *markdownRenderer
	links    Links

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	width    int
	height   int
	ready    bool
	maxInput int
}

// New creates a chat Model.
func New(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}

	mdStyle := opts.MarkdownStyle
	if mdStyle == "" {
		mdStyle = theme.MarkdownStyle()
	}

	maxInput := opts.MaxInput
	if maxInput <= 0 {
		maxInput = DefaultMaxInput
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New(session.Options{Logger: logger})
	}

	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = IdlePlaceholder
	ta.CharLimit = maxInput
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(inputLines)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Spinner),
	)

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return Model{
		session:  sess,
		sender:   opts.Sender,
		pinger:   opts.Pinger,
		onPair:   opts.OnPair,
		logger:   logger.With("component", "chat"),
		theme:    theme,
		markdown: newMarkdownRenderer(mdStyle),
		links:    opts.Links,
		viewport: vp,
		input:    ta,
		spinner:  sp,
		help:     help.New(),
		keys:     keys,
		maxInput: maxInput,
	}
}

// Init starts cursor blink and the analytics ping.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, PingCmd(m.pinger))
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg)

	case PingDoneMsg:
		if msg.Err != nil {
			m.logger.Warn("analytics ping failed", "error", msg.Err)
		} else {
			m.logger.Debug("analytics ping sent")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd
	}

	// Cursor blink and anything else the textarea understands.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize lays out the viewport and input for the new window size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = max(msg.Width, minWidth)
	m.height = msg.Height

	boxStyle := m.theme.InputBox
	m.input.SetWidth(m.width - boxStyle.GetHorizontalFrameSize())
	m.help.Width = m.width

	vpHeight := m.height - headerHeight - footerHeight - m.inputHeight()
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight
	m.ready = true

	m.updateViewport()
	return m, nil
}

// inputHeight is the box plus the character count line.
func (m Model) inputHeight() int {
	return inputLines + m.theme.InputBox.GetVerticalFrameSize() + 1
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		// Enter never reaches the textarea, so it cannot insert a newline.
		return m.submit()
	}

	if m.session.Busy() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

// submit begins a submission and hands the network call to SubmitCmd.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.session.Busy() {
		m.session.SetInput(m.input.Value())
	}

	text, err := m.session.Begin()
	if err != nil {
		return m, nil
	}

	m.input.Blur()
	m.input.Placeholder = BusyPlaceholder
	m.updateViewport()

	return m, tea.Batch(SubmitCmd(m.sender, text), m.spinner.Tick)
}

// handleReply settles the pending submission.
func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if !m.session.Settle(msg.Text, msg.Err) {
		return m, nil
	}

	m.input.Reset()
	m.input.Placeholder = IdlePlaceholder
	cmd := m.input.Focus()
	m.updateViewport()

	if m.onPair != nil {
		if pair, ok := m.session.Pair(); ok {
			m.onPair(pair)
		}
	}

	return m, cmd
}

// updateViewport re-renders the transcript and pins the view to the bottom.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Session returns the underlying session.
func (m Model) Session() *session.Session {
	return m.session
}

// InputValue returns the current textarea contents.
func (m Model) InputValue() string {
	return m.input.Value()
}

// InputFocused reports whether the input accepts keystrokes.
func (m Model) InputFocused() bool {
	return m.input.Focused()
}
