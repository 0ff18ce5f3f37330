// Package chat holds the conversation model shared by providers and the REPL.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cberlack/himmybot/pkg/persona"
)

// Role is the role for a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one the conversation model accepts.
func (r Role) Valid() bool {
	return r == RoleSystem || r == RoleUser || r == RoleAssistant
}

// Message is the provider-agnostic chat message DTO.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ErrEmptyInput reports a blank user turn. Callers re-prompt; it is not a
// failure of the session.
var ErrEmptyInput = errors.New("empty input")

// Completer is the external generation collaborator. It receives the full
// conversation (system entry first) and returns one assistant reply.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// History is the ordered conversation record. Entry 0 is always the system
// persona message; user/assistant entries are appended in submission order.
type History struct {
	messages []Message
}

// NewHistory creates a history seeded with the persona system message.
func NewHistory(def persona.Definition) *History {
	return &History{messages: []Message{{Role: RoleSystem, Content: def.SystemPrompt}}}
}

// Append adds a message to the end of the history.
func (h *History) Append(role Role, content string) {
	h.messages = append(h.messages, Message{Role: role, Content: content})
}

// Messages returns a copy of the history in submission order.
func (h *History) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of entries including the system message.
func (h *History) Len() int {
	return len(h.messages)
}

// Reset drops every entry except the system message.
func (h *History) Reset() {
	h.messages = h.messages[:1]
}

// Restore appends previously saved turns after the system entry. System
// messages in the saved turns are skipped so the persona entry stays unique.
func (h *History) Restore(msgs []Message) {
	for _, m := range msgs {
		if m.Role == RoleSystem {
			continue
		}
		h.messages = append(h.messages, m)
	}
}

// Session drives one conversation against a completer.
type Session struct {
	history   *History
	completer Completer
}

// NewSession builds a session over the given persona and completer.
func NewSession(def persona.Definition, completer Completer) *Session {
	return &Session{history: NewHistory(def), completer: completer}
}

// History exposes the session's conversation record.
func (s *Session) History() *History {
	return s.history
}

// Send submits one user turn and returns the assistant reply. On completer
// failure the history is rolled back to its pre-call state so the same turn
// can be retried.
func (s *Session) Send(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}

	previousLen := s.history.Len()
	s.history.Append(RoleUser, input)

	reply, err := s.completer.Complete(ctx, s.history.Messages())
	if err != nil {
		s.history.messages = s.history.messages[:previousLen]
		return "", fmt.Errorf("generation request: %w", err)
	}

	s.history.Append(RoleAssistant, reply)
	return reply, nil
}

// Reset clears conversation state back to just the persona entry.
func (s *Session) Reset() {
	s.history.Reset()
}
