// Package tui is the interactive interface: a tabbed terminal
// front-end over the same service the one-shot commands use. One
// update loop owns all state; backend calls run as commands and report
// back as messages.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"performate/internal/audio"
	"performate/internal/chat"
	"performate/internal/refresh"
	"performate/internal/service"
	"performate/internal/voice"
)

type tab int

const (
	tabChat tab = iota
	tabTasks
	tabCalendar
	tabNotifs
	tabVoice
)

var tabNames = []string{"Chat", "Tasks", "Calendar", "Notifications", "Voice"}

// Options configures the interface. Recorder and Player are optional;
// without them voice turns are unavailable but everything else works.
type Options struct {
	Service     service.Service
	DisplayName string
	Log         zerolog.Logger
	Recorder    audio.Recorder
	Player      audio.Player
}

// App is the root model.
type App struct {
	svc      service.Service
	log      zerolog.Logger
	hub      *refresh.Hub
	session  *chat.Session
	wizard   *voice.Wizard
	recorder audio.Recorder
	player   audio.Player

	// Hub bridge. Subscribers push here; waitForRefreshCmd drains.
	refreshc chan struct{}

	displayName string
	active      tab
	width       int
	height      int

	// chat
	input     textinput.Model
	waiting   bool
	recording bool

	// tasks
	tasks      []service.Task
	taskCursor int
	showAll    bool

	// calendar
	calOffset int

	// notifications
	notifs      []service.Notification
	notifCursor int

	// voice wizard
	facetCursor  int
	voiceCursor  int
	formCursor   int
	personaInput textinput.Model
	editingText  bool

	toast            string
	switchAfterToast bool
	errText          string
}

// New builds the app and wires the view refetchers into the refresh
// hub, so assistant-driven task mutations reload the task views.
func New(opts Options) *App {
	hub := refresh.NewHub(opts.Log)

	input := textinput.New()
	input.Placeholder = "Ask the assistant..."
	input.CharLimit = 500
	input.Focus()

	personaInput := textinput.New()
	personaInput.CharLimit = 200

	a := &App{
		svc:          opts.Service,
		log:          opts.Log,
		hub:          hub,
		session:      chat.NewSession(opts.Service, hub),
		wizard:       voice.NewWizard(opts.Service),
		recorder:     opts.Recorder,
		player:       opts.Player,
		refreshc:     make(chan struct{}, 1),
		displayName:  opts.DisplayName,
		input:        input,
		personaInput: personaInput,
	}

	// The subscriber runs on the session's goroutine; it only nudges the
	// channel and the update loop does the actual refetch. A pending
	// nudge coalesces with the next one.
	hub.Subscribe("task views", func(context.Context) error {
		select {
		case a.refreshc <- struct{}{}:
		default:
		}
		return nil
	})

	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadTasksCmd(),
		a.loadNotifsCmd(),
		a.preloadConfigCmd(),
		a.waitForRefreshCmd(),
		textinput.Blink,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case tasksLoadedMsg:
		a.tasks = msg.tasks
		if a.taskCursor >= len(a.visibleTasks()) {
			a.taskCursor = 0
		}
		return a, nil

	case notifsLoadedMsg:
		a.notifs = msg.notifs
		if a.notifCursor >= len(a.notifs) {
			a.notifCursor = 0
		}
		return a, nil

	case chatReplyMsg:
		a.waiting = false
		a.errText = ""
		if len(msg.reply.Audio) > 0 && a.player != nil {
			return a, a.playReplyCmd(msg.reply.Audio)
		}
		return a, nil

	case recordedMsg:
		a.recording = false
		a.waiting = true
		if a.player != nil {
			// Confirmation playback runs alongside the upload.
			return a, tea.Batch(a.playTakeCmd(msg.wav), a.sendAudioCmd(msg.wav))
		}
		return a, a.sendAudioCmd(msg.wav)

	case audioDoneMsg:
		return a, nil

	case refreshRequestMsg:
		// A chat turn changed tasks server-side; reload and re-arm.
		return a, tea.Batch(a.loadTasksCmd(), a.loadNotifsCmd(), a.waitForRefreshCmd())

	case configLoadedMsg:
		return a, nil

	case voicesLoadedMsg:
		a.voiceCursor = 0
		a.errText = ""
		return a, nil

	case voiceChosenMsg:
		a.formCursor = 0
		if msg.err != nil {
			// Selection stands; only the settings fetch failed.
			a.errText = msg.err.Error()
		} else {
			a.errText = ""
		}
		return a, nil

	case configSavedMsg:
		a.switchAfterToast = true
		return a, tea.Batch(toast("Voice configuration saved"), clearToastAfter())

	case toastMsg:
		a.toast = msg.text
		a.errText = ""
		return a, nil

	case toastClearMsg:
		a.toast = ""
		if a.switchAfterToast {
			a.switchAfterToast = false
			a.active = tabChat
			a.input.Focus()
		}
		return a, nil

	case errMsg:
		a.waiting = false
		a.errText = msg.err.Error()
		return a, nil
	}

	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys. Text editing captures everything else.
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab":
		if !a.editingText {
			a.active = (a.active + 1) % tab(len(tabNames))
			a.errText = ""
			return a, a.focusForTab()
		}
	case "shift+tab":
		if !a.editingText {
			a.active = (a.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
			a.errText = ""
			return a, a.focusForTab()
		}
	}

	switch a.active {
	case tabChat:
		return a.updateChatKey(msg)
	case tabTasks:
		return a.updateTasksKey(msg)
	case tabCalendar:
		return a.updateCalendarKey(msg)
	case tabNotifs:
		return a.updateNotifsKey(msg)
	case tabVoice:
		return a.updateVoiceKey(msg)
	}
	return a, nil
}

func (a *App) focusForTab() tea.Cmd {
	a.editingText = false
	a.personaInput.Blur()
	if a.active == tabChat {
		a.input.Focus()
		return textinput.Blink
	}
	a.input.Blur()
	return nil
}

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")

	switch a.active {
	case tabChat:
		b.WriteString(a.renderChat())
	case tabTasks:
		b.WriteString(a.renderTasks())
	case tabCalendar:
		b.WriteString(a.renderCalendar())
	case tabNotifs:
		b.WriteString(a.renderNotifs())
	case tabVoice:
		b.WriteString(a.renderVoice())
	}

	if a.toast != "" {
		b.WriteString("\n" + toastStyle.Render(a.toast))
	}
	if a.errText != "" {
		b.WriteString("\n" + errStyle.Render("error: "+a.errText))
	}
	b.WriteString("\n" + helpStyle.Render(a.helpLine()))
	return b.String()
}

func (a *App) renderTabs() string {
	parts := make([]string, 0, len(tabNames)+1)
	for i, name := range tabNames {
		label := name
		if tab(i) == tabNotifs {
			if n := a.unreadCount(); n > 0 {
				label = name + " (" + strconv.Itoa(n) + ")"
			}
		}
		if tab(i) == a.active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	header := strings.Join(parts, "|")
	if a.displayName != "" {
		header += tabStyle.Render("  " + a.displayName)
	}
	return header
}

func (a *App) unreadCount() int {
	n := 0
	for _, notif := range a.notifs {
		if !notif.IsRead {
			n++
		}
	}
	return n
}

func (a *App) helpLine() string {
	switch a.active {
	case tabChat:
		if a.recording {
			return "ctrl+r stop recording and send - ctrl+c quit"
		}
		return "enter send - ctrl+r record - tab next view - ctrl+c quit"
	case tabTasks:
		return "up/down move - enter toggle done - s toggle subtask - a show completed - tab next view"
	case tabCalendar:
		return "left/right change month - tab next view"
	case tabNotifs:
		return "up/down move - enter mark read - tab next view"
	case tabVoice:
		return a.voiceHelpLine()
	}
	return ""
}
