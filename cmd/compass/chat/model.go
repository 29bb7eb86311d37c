// Package chat provides the interactive TUI for Campus Compass. The package
// is split across files:
//   - model.go: model construction and Init
//   - update.go: the Update loop and input handling
//   - view.go: rendering
package chat

import (
	"github.com/Sahilkukreja30/campus-compass/cmd/compass/ui"
	"github.com/Sahilkukreja30/campus-compass/internal/conversation"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// Vertical space reserved around the viewport: header, composer, footer.
	chromeHeight = 10
)

// Messages for tea updates.
type (
	// answerMsg carries a successful backend reply.
	answerMsg string
	// answerFailedMsg carries the error of a failed turn.
	answerFailedMsg struct{ err error }
)

// Model is the bubbletea model for the chat interface.
type Model struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	// Interaction loop; owns all conversation mutations.
	loop *conversation.Loop

	width     int
	height    int
	ready     bool
	turnCount int
}

// New builds the chat model around an interaction loop.
func New(loop *conversation.Loop, styles ui.Styles) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything... (Enter to send, Shift+Enter for newline, Ctrl+C to exit)"
	ta.Focus()
	ta.Prompt = "│ "
	ta.CharLimit = 4096
	ta.SetWidth(defaultWidth)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(defaultWidth, defaultHeight-chromeHeight)
	vp.SetContent("")

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(defaultWidth-4),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(defaultWidth-4),
		)
	}

	return Model{
		textarea: ta,
		viewport: vp,
		spinner:  sp,
		styles:   styles,
		renderer: renderer,
		loop:     loop,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Conversation exposes the underlying state, mainly for tests.
func (m Model) Conversation() *conversation.Conversation {
	return m.loop.Conversation()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// refreshViewport re-renders the thread and pins the scrollback to the
// newest entry.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}
