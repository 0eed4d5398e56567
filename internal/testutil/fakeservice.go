// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"performate/internal/service"
	"performate/internal/voice"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for
// testing. Call counters track how often each operation ran; Err fields
// inject failures.
type FakeService struct {
	mu       sync.RWMutex
	tasks    []service.Task
	notifs   []service.Notification
	voices   []voice.Voice
	settings map[string]voice.Settings
	config   *voice.Config

	// ReplyText is the assistant response for both send paths.
	ReplyText string
	// ReplyAudio is attached to voice replies.
	ReplyAudio []byte
	// Transcript is the recognized speech for voice turns.
	Transcript string

	// Error injection for testing
	TasksErr         error
	UpdateTaskErr    error
	SendTextErr      error
	SendAudioErr     error
	NotificationsErr error
	MarkReadErr      error
	QueryVoicesErr   error
	VoiceSettingsErr error
	VoiceConfigErr   error
	SaveConfigErr    error

	// Call counters
	TasksCalls      int
	UpdateCalls     int
	SendTextCalls   int
	SendAudioCalls  int
	NotifCalls      int
	MarkReadCalls   int
	QueryCalls      int
	SettingsCalls   int
	ConfigGetCalls  int
	ConfigSaveCalls int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		settings:  make(map[string]voice.Settings),
		ReplyText: "done",
	}
}

// AddTask seeds a task.
func (f *FakeService) AddTask(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
}

// AddNotification seeds a notification.
func (f *FakeService) AddNotification(n service.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifs = append(f.notifs, n)
}

// AddVoice seeds a catalog entry returned by QueryVoices.
func (f *FakeService) AddVoice(v voice.Voice) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voices = append(f.voices, v)
}

// SetSettings seeds default synthesis settings for a voice id.
func (f *FakeService) SetSettings(voiceID string, s voice.Settings) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings[voiceID] = s
}

// Notification returns a seeded notification by id.
func (f *FakeService) Notification(id int) (service.Notification, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, n := range f.notifs {
		if n.ID == id {
			return n, true
		}
	}
	return service.Notification{}, false
}

// SavedConfig returns the last saved voice configuration.
func (f *FakeService) SavedConfig() *voice.Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.config
}

// Tasks implements service.Service.
func (f *FakeService) Tasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.TasksCalls++
	f.mu.Unlock()
	if f.TasksErr != nil {
		return nil, f.TasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, upd service.TaskUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}

	switch upd.TaskType {
	case service.TypeTask:
		for i := range f.tasks {
			if f.tasks[i].ID == upd.TaskID {
				applyTask(&f.tasks[i], upd)
				return nil
			}
		}
	case service.TypeSubtask:
		for i := range f.tasks {
			for j := range f.tasks[i].Subtasks {
				if f.tasks[i].Subtasks[j].ID == upd.TaskID {
					applySubtask(&f.tasks[i].Subtasks[j], upd)
					return nil
				}
			}
		}
	}
	return ErrNotFound
}

func applyTask(t *service.Task, upd service.TaskUpdate) {
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.IsCompleted != nil {
		t.IsCompleted = *upd.IsCompleted
	}
}

func applySubtask(st *service.Subtask, upd service.TaskUpdate) {
	if upd.Title != nil {
		st.Title = *upd.Title
	}
	if upd.IsCompleted != nil {
		st.IsCompleted = *upd.IsCompleted
	}
}

// SendText implements service.Service.
func (f *FakeService) SendText(ctx context.Context, message string) (service.AssistantReply, error) {
	f.mu.Lock()
	f.SendTextCalls++
	f.mu.Unlock()
	if f.SendTextErr != nil {
		return service.AssistantReply{}, f.SendTextErr
	}
	return service.AssistantReply{Response: f.ReplyText}, nil
}

// SendAudio implements service.Service.
func (f *FakeService) SendAudio(ctx context.Context, wav []byte) (service.AssistantReply, error) {
	f.mu.Lock()
	f.SendAudioCalls++
	f.mu.Unlock()
	if f.SendAudioErr != nil {
		return service.AssistantReply{}, f.SendAudioErr
	}
	return service.AssistantReply{
		Transcript: f.Transcript,
		Response:   f.ReplyText,
		Audio:      f.ReplyAudio,
	}, nil
}

// Notifications implements service.Service.
func (f *FakeService) Notifications(ctx context.Context) ([]service.Notification, error) {
	f.mu.Lock()
	f.NotifCalls++
	f.mu.Unlock()
	if f.NotificationsErr != nil {
		return nil, f.NotificationsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Notification, len(f.notifs))
	copy(out, f.notifs)
	return out, nil
}

// MarkNotificationRead implements service.Service. Marking an
// already-read notification again is a no-op, not an error.
func (f *FakeService) MarkNotificationRead(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MarkReadCalls++
	if f.MarkReadErr != nil {
		return f.MarkReadErr
	}
	for i := range f.notifs {
		if f.notifs[i].ID == id {
			f.notifs[i].IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

// QueryVoices implements service.Service. Only entries matching every
// selected facet are returned.
func (f *FakeService) QueryVoices(ctx context.Context, filter voice.Filter) ([]voice.Voice, error) {
	f.mu.Lock()
	f.QueryCalls++
	f.mu.Unlock()
	if f.QueryVoicesErr != nil {
		return nil, f.QueryVoicesErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []voice.Voice
	for _, v := range f.voices {
		if matches(v, filter) {
			out = append(out, v)
		}
	}
	return out, nil
}

func matches(v voice.Voice, f voice.Filter) bool {
	if f.Accent != "" && v.Accent != f.Accent {
		return false
	}
	if f.Gender != "" && v.Gender != f.Gender {
		return false
	}
	if f.Age != "" && v.Age != f.Age {
		return false
	}
	if f.Desc != "" && v.Desc != f.Desc {
		return false
	}
	if f.UseCase != "" && v.UseCase != f.UseCase {
		return false
	}
	return true
}

// VoiceSettings implements service.Service.
func (f *FakeService) VoiceSettings(ctx context.Context, voiceID string) (voice.Settings, error) {
	f.mu.Lock()
	f.SettingsCalls++
	f.mu.Unlock()
	if f.VoiceSettingsErr != nil {
		return voice.Settings{}, f.VoiceSettingsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if s, ok := f.settings[voiceID]; ok {
		return s, nil
	}
	return voice.DefaultSettings(), nil
}

// VoiceConfig implements service.Service.
func (f *FakeService) VoiceConfig(ctx context.Context) (*voice.Config, error) {
	f.mu.Lock()
	f.ConfigGetCalls++
	f.mu.Unlock()
	if f.VoiceConfigErr != nil {
		return nil, f.VoiceConfigErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.config == nil {
		return nil, nil
	}
	cfg := *f.config
	return &cfg, nil
}

// SaveVoiceConfig implements service.Service.
func (f *FakeService) SaveVoiceConfig(ctx context.Context, cfg voice.Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ConfigSaveCalls++
	if f.SaveConfigErr != nil {
		return f.SaveConfigErr
	}
	f.config = &cfg
	return nil
}
