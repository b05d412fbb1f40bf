package chat

import (
	"context"
	"crypto/sha256"
	"errors"

	"portfolio-server/pkg/content"
	"portfolio-server/pkg/llm"
)

// SessionState tracks the conversation session lifecycle.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateSeeding
	StateReady
	StateSending
	StateFailed
)

// ErrNotSeeded is returned by Send when EnsureSeeded has not succeeded yet.
var ErrNotSeeded = errors.New("conversation session is not seeded")

// probeMessage is the synthetic connectivity check sent once per widget at
// startup. Its reply is discarded and it never appears in the conversation.
const probeMessage = "ping"

// Session owns one LLM conversation: the seeded context, the turn history and
// the provider error handling. It is NOT safe for concurrent use; the widget
// serializes access (at most one in-flight send per widget).
type Session struct {
	model     llm.ChatModel
	primary   string
	secondary string
	status    *StatusTracker

	state       SessionState
	fingerprint [sha256.Size]byte
	history     []llm.Message
}

func NewSession(model llm.ChatModel, primaryModel, secondaryModel string, status *StatusTracker) *Session {
	return &Session{
		model:     model,
		primary:   primaryModel,
		secondary: secondaryModel,
		status:    status,
		state:     StateUninitialized,
	}
}

// EnsureSeeded makes sure a session exists for the given snapshot. A session
// is valid only for the snapshot it was seeded with: if the formatted context
// differs from the remembered fingerprint the old session is discarded and a
// new one is seeded. Seeding with an unchanged snapshot is a no-op.
func (s *Session) EnsureSeeded(snap content.Snapshot) {
	text := FormatContext(snap)
	fp := sha256.Sum256([]byte(text))
	if s.state != StateUninitialized && s.state != StateFailed && fp == s.fingerprint {
		return
	}
	s.state = StateSeeding
	// The seed exchange primes the model without a visible conversation turn:
	// the context as a user message and a fixed acknowledgment as the reply.
	s.history = []llm.Message{
		{Role: llm.RoleUser, Content: text},
		{Role: llm.RoleAssistant, Content: seedAcknowledgment},
	}
	s.fingerprint = fp
	s.state = StateReady
}

// Send forwards a user message through the provider session and returns the
// assistant reply. On success the turn is committed to the history; on any
// provider failure the session enters Failed and the next EnsureSeeded
// re-seeds it.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if s.state != StateReady {
		return "", ErrNotSeeded
	}
	s.state = StateSending
	attempt := append(append([]llm.Message{}, s.history...), llm.Message{Role: llm.RoleUser, Content: text})
	reply, err := s.call(ctx, attempt)
	if err != nil {
		s.state = StateFailed
		return "", err
	}
	s.history = append(s.history,
		llm.Message{Role: llm.RoleUser, Content: text},
		llm.Message{Role: llm.RoleAssistant, Content: reply},
	)
	s.state = StateReady
	return reply, nil
}

// Probe runs the synthetic connectivity message outside the conversation
// history, purely for its availability side effects.
func (s *Session) Probe(ctx context.Context) {
	_, _ = s.call(ctx, []llm.Message{{Role: llm.RoleUser, Content: probeMessage}})
}

// call invokes the provider with the model fallback policy: a single retry
// against the secondary model name when the primary is not recognized, and
// nothing else. It also drives the availability flag: success marks the
// provider available; configuration errors and an exhausted model fallback
// mark it unavailable; other errors leave the flag unchanged.
func (s *Session) call(ctx context.Context, history []llm.Message) (string, error) {
	reply, err := s.model.Chat(ctx, s.primary, history)
	if llm.IsModelUnavailable(err) && s.secondary != "" && s.secondary != s.primary {
		reply, err = s.model.Chat(ctx, s.secondary, history)
	}
	if err == nil {
		s.status.MarkAvailable()
		return reply, nil
	}
	if llm.IsConfiguration(err) || llm.IsModelUnavailable(err) {
		s.status.MarkUnavailable()
	}
	return "", err
}
