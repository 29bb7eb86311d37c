// Package conversation holds the state for a single chat with the campus
// assistant: the ordered message thread, the composer draft, and the
// loading/error flags the UI renders from. State lives for the lifetime of
// the conversation only; nothing is persisted.
package conversation

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is a single entry in the thread. Messages are immutable once
// appended; display order is append order.
type Message struct {
	ID   int
	Role Role
	Text string
	Time time.Time
}

// Conversation owns the message thread and the composer state. It is mutated
// only by the interaction loop, from a single goroutine (the UI event loop or
// a synchronous Send call); no locking.
type Conversation struct {
	messages []Message
	draft    string
	loading  bool
	errText  string
	nextID   int
}

// New returns an empty conversation.
func New() *Conversation {
	return &Conversation{}
}

// Messages returns the thread in display order. The returned slice is a copy;
// callers cannot mutate conversation state through it.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages in the thread.
func (c *Conversation) Len() int { return len(c.messages) }

// Draft returns the not-yet-sent composer text.
func (c *Conversation) Draft() string { return c.draft }

// SetDraft replaces the composer text.
func (c *Conversation) SetDraft(s string) { c.draft = s }

// Loading reports whether a request is in flight.
func (c *Conversation) Loading() bool { return c.loading }

// SetLoading flips the in-flight flag.
func (c *Conversation) SetLoading(v bool) { c.loading = v }

// Error returns the current user-facing error text, empty when none.
func (c *Conversation) Error() string { return c.errText }

// SetError records a user-facing error.
func (c *Conversation) SetError(s string) { c.errText = s }

// ClearError resets the error text.
func (c *Conversation) ClearError() { c.errText = "" }

// AppendUser appends a user message and returns it.
func (c *Conversation) AppendUser(text string) Message {
	return c.append(RoleUser, text)
}

// AppendBot appends a bot message and returns it.
func (c *Conversation) AppendBot(text string) Message {
	return c.append(RoleBot, text)
}

func (c *Conversation) append(role Role, text string) Message {
	msg := Message{
		ID:   c.nextID,
		Role: role,
		Text: text,
		Time: time.Now(),
	}
	c.nextID++
	c.messages = append(c.messages, msg)
	return msg
}
