// Package chat test utilities: a scripted backend and model fixtures.
package chat

import (
	"context"

	"github.com/Sahilkukreja30/campus-compass/cmd/compass/ui"
	"github.com/Sahilkukreja30/campus-compass/internal/conversation"

	tea "github.com/charmbracelet/bubbletea"
)

// scriptedAnswerer plays the QA backend with a canned reply.
type scriptedAnswerer struct {
	answer string
	err    error
	calls  int
}

func (s *scriptedAnswerer) Ask(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.answer, s.err
}

// TestOption mutates a freshly built test model.
type TestOption func(*Model, *scriptedAnswerer)

// WithAnswer scripts the backend reply.
func WithAnswer(answer string) TestOption {
	return func(_ *Model, s *scriptedAnswerer) { s.answer = answer }
}

// WithAskError scripts a backend failure.
func WithAskError(err error) TestOption {
	return func(_ *Model, s *scriptedAnswerer) { s.err = err }
}

// WithLoading marks a request as in flight.
func WithLoading(v bool) TestOption {
	return func(m *Model, _ *scriptedAnswerer) { m.loop.Conversation().SetLoading(v) }
}

// WithThread seeds the conversation.
func WithThread(msgs ...conversation.Message) TestOption {
	return func(m *Model, _ *scriptedAnswerer) {
		conv := m.loop.Conversation()
		for _, msg := range msgs {
			switch msg.Role {
			case conversation.RoleUser:
				conv.AppendUser(msg.Text)
			default:
				conv.AppendBot(msg.Text)
			}
		}
	}
}

// NewTestModel builds a ready model wired to a scripted backend.
func NewTestModel(opts ...TestOption) Model {
	stub := &scriptedAnswerer{answer: "ok"}
	loop := conversation.NewLoop(conversation.New(), stub)

	m := New(loop, ui.NewStyles(ui.LightTheme()))
	m.ready = true

	for _, opt := range opts {
		opt(&m, stub)
	}
	m.refreshViewport()
	return m
}

// pressEnter submits the current composer content.
func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// typeText feeds runes into the composer one key at a time.
func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}
