package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/audio"
	"performate/internal/service"
	"performate/internal/voice"
)

// Messages delivered back into the update loop. Every backend call runs
// as a tea.Cmd and reports through one of these.
type (
	tasksLoadedMsg  struct{ tasks []service.Task }
	notifsLoadedMsg struct{ notifs []service.Notification }
	chatReplyMsg    struct{ reply service.AssistantReply }
	voicesLoadedMsg struct{ voices []voice.Voice }
	voiceChosenMsg  struct{ err error }
	configLoadedMsg struct{}
	configSavedMsg  struct{}
	audioDoneMsg    struct{}
	recordedMsg     struct{ wav []byte }

	// refreshRequestMsg is the hub bridge: a subscriber pushed into the
	// refresh channel and the views should refetch.
	refreshRequestMsg struct{}

	toastMsg      struct{ text string }
	toastClearMsg struct{}
	errMsg        struct{ err error }
)

const toastTTL = 3 * time.Second

func toast(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text} }
}

func clearToastAfter() tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastClearMsg{} })
}

func (a *App) loadTasksCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := a.svc.Tasks(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (a *App) loadNotifsCmd() tea.Cmd {
	return func() tea.Msg {
		notifs, err := a.svc.Notifications(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return notifsLoadedMsg{notifs: notifs}
	}
}

func (a *App) toggleTaskCmd(upd service.TaskUpdate) tea.Cmd {
	return func() tea.Msg {
		if err := a.svc.UpdateTask(context.Background(), upd); err != nil {
			return errMsg{err}
		}
		// Server copy is authoritative; refetch instead of flipping locally.
		tasks, err := a.svc.Tasks(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (a *App) markReadCmd(id int) tea.Cmd {
	return func() tea.Msg {
		if err := a.svc.MarkNotificationRead(context.Background(), id); err != nil {
			return errMsg{err}
		}
		notifs, err := a.svc.Notifications(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return notifsLoadedMsg{notifs: notifs}
	}
}

func (a *App) sendTextCmd(input string) tea.Cmd {
	return func() tea.Msg {
		reply, err := a.session.SendText(context.Background(), input)
		if err != nil {
			return errMsg{err}
		}
		return chatReplyMsg{reply: reply}
	}
}

func (a *App) sendAudioCmd(wav []byte) tea.Cmd {
	return func() tea.Msg {
		reply, err := a.session.SendAudio(context.Background(), wav)
		if err != nil {
			return errMsg{err}
		}
		return chatReplyMsg{reply: reply}
	}
}

func (a *App) stopRecordingCmd() tea.Cmd {
	return func() tea.Msg {
		wav, err := a.recorder.Stop()
		if err != nil {
			return errMsg{err}
		}
		return recordedMsg{wav: wav}
	}
}

// playTakeCmd plays the captured take back locally so the user hears
// what is being sent.
func (a *App) playTakeCmd(wav []byte) tea.Cmd {
	return func() tea.Msg {
		if err := a.player.Play(wav, audio.FormatWAV); err != nil {
			return errMsg{err}
		}
		return audioDoneMsg{}
	}
}

func (a *App) playReplyCmd(data []byte) tea.Cmd {
	return func() tea.Msg {
		if a.player == nil {
			return audioDoneMsg{}
		}
		if err := a.player.Play(data, audio.FormatMP3); err != nil {
			return errMsg{err}
		}
		return audioDoneMsg{}
	}
}

func (a *App) preloadConfigCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.wizard.Preload(context.Background()); err != nil {
			return errMsg{err}
		}
		return configLoadedMsg{}
	}
}

func (a *App) loadVoicesCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.wizard.LoadVoices(context.Background()); err != nil {
			return errMsg{err}
		}
		return voicesLoadedMsg{voices: a.wizard.Voices()}
	}
}

func (a *App) selectVoiceCmd(v voice.Voice) tea.Cmd {
	return func() tea.Msg {
		// The selection stands even if the settings fetch fails.
		return voiceChosenMsg{err: a.wizard.Select(context.Background(), v)}
	}
}

func (a *App) saveConfigCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.wizard.Save(context.Background()); err != nil {
			return errMsg{err}
		}
		return configSavedMsg{}
	}
}

// waitForRefreshCmd blocks on the hub bridge channel and converts a
// notification into a message. Re-armed after each delivery.
func (a *App) waitForRefreshCmd() tea.Cmd {
	return func() tea.Msg {
		<-a.refreshc
		return refreshRequestMsg{}
	}
}
