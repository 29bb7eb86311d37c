package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Some terminals report Shift+Enter distinctly; it always means
		// a literal newline, never a send.
		if !msg.Paste && msg.String() == "shift+enter" {
			m.textarea.InsertString("\n")
			m.syncDraft()
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			// Alt+Enter and bracketed paste insert newlines; let the
			// textarea handle them.
			if msg.Alt || msg.Paste {
				break
			}
			return m.handleSubmit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.textarea.SetWidth(max(msg.Width-6, 20))

		// Re-wrap markdown for the new width.
		if m.renderer != nil {
			m.renderer, _ = newRenderer(m.styles.Theme.IsDark, msg.Width-8)
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if m.loop.Conversation().Loading() {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}
		return m, nil

	case answerMsg:
		m.loop.Finish(string(msg), nil)
		m.turnCount++
		m.refreshViewport()
		return m, nil

	case answerFailedMsg:
		m.loop.Finish("", msg.err)
		m.turnCount++
		m.refreshViewport()
		return m, nil
	}

	m.textarea, taCmd = m.textarea.Update(msg)
	m.syncDraft()
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(taCmd, vpCmd)
}

// syncDraft mirrors the composer text into the conversation state, which is
// the authoritative holder of the draft.
func (m *Model) syncDraft() {
	m.loop.Conversation().SetDraft(m.textarea.Value())
}

// handleSubmit starts a turn from the current draft. The loop enforces the
// whitespace-only and in-flight no-ops, so a submit while loading or with an
// empty composer changes nothing.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	query, ok := m.loop.Begin(m.textarea.Value())
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.refreshViewport()

	return m, tea.Batch(
		m.spinner.Tick,
		m.ask(query),
	)
}

// ask performs the backend call off the event loop and reports back as a
// message. The in-flight request is never cancelled; the loading guard keeps
// a second one from starting.
func (m Model) ask(query string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.loop.Ask(context.Background(), query)
		if err != nil {
			return answerFailedMsg{err: err}
		}
		return answerMsg(answer)
	}
}
