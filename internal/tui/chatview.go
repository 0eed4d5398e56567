package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/chat"
)

func (a *App) updateChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if a.waiting || a.recording {
			return a, nil
		}
		input := a.input.Value()
		if strings.TrimSpace(input) == "" {
			return a, nil
		}
		a.input.Reset()
		a.waiting = true
		return a, a.sendTextCmd(input)

	case "ctrl+r":
		// Toggle: first press starts capture, second stops and sends.
		if a.waiting {
			return a, nil
		}
		if a.recorder == nil {
			a.errText = "no microphone available"
			return a, nil
		}
		if a.recording {
			return a, a.stopRecordingCmd()
		}
		if err := a.recorder.Start(); err != nil {
			a.errText = err.Error()
			return a, nil
		}
		a.recording = true
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) renderChat() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Assistant"))
	b.WriteString("\n")

	turns := a.session.Turns()
	if len(turns) == 0 {
		b.WriteString(assistantTurnStyle.Render("No messages yet. Tasks you ask for show up in the Tasks view."))
		b.WriteString("\n")
	}
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			b.WriteString(userTurnStyle.Render("you: ") + turn.Text)
		case chat.RoleAssistant:
			b.WriteString(assistantTurnStyle.Render(turn.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if a.recording {
		b.WriteString(recordingStyle.Render("● recording") + "\n")
	} else if a.waiting {
		b.WriteString(assistantTurnStyle.Render("thinking...") + "\n")
	}
	b.WriteString(a.input.View())
	return b.String()
}
