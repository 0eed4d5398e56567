// Package service defines the backend-agnostic interface for PerforMate
// operations.
package service

import (
	"context"

	"performate/internal/voice"
)

// Service defines the interface for backend operations. All REST calls
// go through this interface; views and commands never build requests
// directly.
type Service interface {
	// Tasks returns the full task list. No incremental diff: every load
	// is a complete refetch.
	Tasks(ctx context.Context) ([]Task, error)

	// UpdateTask patches a task or subtask field set. Callers refetch
	// the list after a successful update.
	UpdateTask(ctx context.Context, upd TaskUpdate) error

	// SendText submits a typed chat turn.
	SendText(ctx context.Context, message string) (AssistantReply, error)

	// SendAudio submits a recorded chat turn as a wav blob. The reply
	// carries the recognized transcript and decoded reply audio.
	SendAudio(ctx context.Context, wav []byte) (AssistantReply, error)

	// Notifications returns all notifications, newest first as the
	// backend orders them.
	Notifications(ctx context.Context) ([]Notification, error)

	// MarkNotificationRead sets the read flag. Idempotent.
	MarkNotificationRead(ctx context.Context, id int) error

	// QueryVoices, VoiceSettings, VoiceConfig and SaveVoiceConfig make
	// every Service a voice.Backend.
	QueryVoices(ctx context.Context, f voice.Filter) ([]voice.Voice, error)
	VoiceSettings(ctx context.Context, voiceID string) (voice.Settings, error)
	VoiceConfig(ctx context.Context) (*voice.Config, error)
	SaveVoiceConfig(ctx context.Context, cfg voice.Config) error
}
