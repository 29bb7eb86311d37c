package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sahilkukreja30/campus-compass/internal/conversation"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// newRenderer builds a markdown renderer for the current theme and width.
func newRenderer(dark bool, wrap int) (*glamour.TermRenderer, error) {
	if wrap < 20 {
		wrap = 20
	}
	if dark {
		return glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	}
	return glamour.NewTermRenderer(
		glamour.WithStylePath("light"),
		glamour.WithWordWrap(wrap),
	)
}

func (m Model) renderHistory() string {
	var sb strings.Builder

	for _, msg := range m.loop.Conversation().Messages() {
		switch msg.Role {
		case conversation.RoleUser:
			userStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Primary).
				MarginTop(1)
			sb.WriteString(userStyle.Render("You") + "\n")
			sb.WriteString(m.styles.UserInput.Render(msg.Text))
			sb.WriteString("\n\n")

		default: // bot
			botStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Accent).
				MarginTop(1)
			sb.WriteString(botStyle.Render("Compass") + "\n")
			sb.WriteString(m.safeRenderMarkdown(msg.Text))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			// If glamour panics, fall back to plain text.
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	chatView := m.styles.Content.Render(m.viewport.View())

	// Transient typing indicator: derived from the loading flag, never a
	// member of the thread.
	sections := []string{header, chatView}
	if m.loop.Conversation().Loading() {
		sections = append(sections, m.renderTypingIndicator())
	}
	if errText := m.loop.Conversation().Error(); errText != "" {
		sections = append(sections, m.renderErrorBanner(errText))
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	sections = append(sections, inputStyle.Render(m.textarea.View()))

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTypingIndicator() string {
	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(m.spinner.View() + m.styles.Muted.Render(" Compass is typing..."))
}

// renderErrorBanner shows the turn failure inline under the thread. There is
// no dismiss action; the next submission clears it.
func (m Model) renderErrorBanner(errText string) string {
	banner := m.styles.Error.Render("! ") + m.styles.Body.Render(errText)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Border).
		Padding(0, 1).
		Render(banner)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" Campus Compass ")
	version := m.styles.Badge.Render("v1.0")

	var status string
	if m.loop.Conversation().Loading() {
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Badge.Render("Thinking..."))
	} else {
		status = m.styles.Success.Render("Ready")
	}

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		title,
		" ",
		version,
		"  ",
		status,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		m.styles.RenderDivider(m.width),
	)
}

func (m Model) renderFooter() string {
	timestamp := time.Now().Format("15:04")
	help := m.styles.Muted.Render(fmt.Sprintf(
		"Turns: %d | %s | Enter: send | Shift+Enter: newline | Ctrl+C: quit",
		m.turnCount, timestamp,
	))
	return lipgloss.NewStyle().
		MarginTop(1).
		Render(help)
}
