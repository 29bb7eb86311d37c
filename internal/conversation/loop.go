package conversation

import (
	"context"
	"strings"
)

// FailureMessage is the single user-facing error for any failed turn:
// connectivity, server errors, and malformed responses all map to it.
const FailureMessage = "Sorry, something went wrong. Please try again."

// PlaceholderAnswer stands in when the backend responds without an answer.
const PlaceholderAnswer = "…"

// Answerer is the outbound side of a turn. Implemented by qa.Client; tests
// substitute a mock.
type Answerer interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Loop orchestrates one send/receive cycle against a conversation. The
// re-entry guard lives here rather than in the presentation layer, so a
// disabled send button is a courtesy, not the actual concurrency control.
type Loop struct {
	conv *Conversation
	qa   Answerer
}

// NewLoop binds an interaction loop to a conversation and a backend.
func NewLoop(conv *Conversation, qa Answerer) *Loop {
	return &Loop{conv: conv, qa: qa}
}

// Conversation returns the state the loop mutates.
func (l *Loop) Conversation() *Conversation { return l.conv }

// Ask forwards a query to the backend. Used by callers that split a turn
// across Begin/Finish so the network call can run off the event loop.
func (l *Loop) Ask(ctx context.Context, query string) (string, error) {
	return l.qa.Ask(ctx, query)
}

// Begin starts a turn: clears any prior error, appends the user message built
// from the trimmed draft, clears the draft, and marks loading. It reports the
// trimmed query and whether a turn actually started. Whitespace-only drafts
// and re-entry while a request is outstanding are no-ops.
func (l *Loop) Begin(draft string) (string, bool) {
	query := strings.TrimSpace(draft)
	if query == "" || l.conv.Loading() {
		return "", false
	}

	l.conv.ClearError()
	l.conv.AppendUser(query)
	l.conv.SetDraft("")
	l.conv.SetLoading(true)
	return query, true
}

// Finish settles a turn: on success appends the bot message (placeholder when
// the answer is empty), on failure records the fixed error string without
// touching the thread. Loading always clears.
func (l *Loop) Finish(answer string, err error) {
	l.conv.SetLoading(false)
	if err != nil {
		l.conv.SetError(FailureMessage)
		return
	}
	if answer == "" {
		answer = PlaceholderAnswer
	}
	l.conv.AppendBot(answer)
}

// Send runs one full turn synchronously: Begin, one network call, Finish.
// The headless path for the ask subcommand and for tests; the TUI drives
// Begin/Finish itself so the call can run off the render loop.
func (l *Loop) Send(ctx context.Context, draft string) bool {
	query, ok := l.Begin(draft)
	if !ok {
		return false
	}
	answer, err := l.qa.Ask(ctx, query)
	l.Finish(answer, err)
	return true
}
