// Package chat holds the conversation transcript and the two send
// paths, typed text and recorded audio. Both append a user turn and an
// assistant turn and notify the refresh hub on success, because the
// assistant creates and modifies tasks server-side.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"performate/internal/refresh"
	"performate/internal/service"
)

// ErrEmptyMessage is returned when a text turn has no content after
// trimming. No request is sent.
var ErrEmptyMessage = errors.New("empty message")

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one transcript entry.
type Turn struct {
	ID   string
	Role Role
	Text string
	At   time.Time
}

// Backend is the slice of the service the chat consumes.
type Backend interface {
	SendText(ctx context.Context, message string) (service.AssistantReply, error)
	SendAudio(ctx context.Context, wav []byte) (service.AssistantReply, error)
}

// Session is one conversation. Turns only ever grow. Safe for
// concurrent use: the interactive interface sends on worker goroutines
// while its render loop reads the transcript.
type Session struct {
	backend Backend
	hub     *refresh.Hub

	mu    sync.Mutex
	turns []Turn
}

// NewSession creates an empty conversation wired to the given hub.
func NewSession(backend Backend, hub *refresh.Hub) *Session {
	return &Session{backend: backend, hub: hub}
}

// Turns returns a snapshot of the transcript in order.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// SendText submits a typed turn. The user turn is appended before the
// request goes out; on success exactly one assistant turn follows and
// the hub is notified exactly once. On failure the user turn stays and
// the error is returned for the caller to surface.
func (s *Session) SendText(ctx context.Context, input string) (service.AssistantReply, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return service.AssistantReply{}, ErrEmptyMessage
	}

	s.append(RoleUser, input)
	reply, err := s.backend.SendText(ctx, input)
	if err != nil {
		return service.AssistantReply{}, err
	}
	s.append(RoleAssistant, reply.Response)
	s.hub.Notify(ctx)
	return reply, nil
}

// SendAudio submits a recorded turn. The recognized transcript becomes
// the user turn; the assistant turn and the notify follow on success.
// The decoded reply audio is returned for playback.
func (s *Session) SendAudio(ctx context.Context, wav []byte) (service.AssistantReply, error) {
	if len(wav) == 0 {
		return service.AssistantReply{}, ErrEmptyMessage
	}

	reply, err := s.backend.SendAudio(ctx, wav)
	if err != nil {
		return service.AssistantReply{}, err
	}

	transcript := reply.Transcript
	if transcript == "" {
		transcript = "(voice message)"
	}
	s.append(RoleUser, transcript)
	s.append(RoleAssistant, reply.Response)
	s.hub.Notify(ctx)
	return reply, nil
}

func (s *Session) append(role Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{
		ID:   uuid.NewString(),
		Role: role,
		Text: text,
		At:   time.Now(),
	})
}
