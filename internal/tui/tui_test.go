package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/audio"
	"performate/internal/calendar"
	"performate/internal/logging"
	"performate/internal/service"
	"performate/internal/testutil"
	"performate/internal/voice"
)

func newTestApp(svc *testutil.FakeService) *App {
	return New(Options{Service: svc, DisplayName: "Ada", Log: logging.Discard()})
}

type playedBlob struct {
	data   []byte
	format audio.Format
}

type fakePlayer struct {
	mu    sync.Mutex
	plays []playedBlob
}

func (p *fakePlayer) Play(data []byte, format audio.Format) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays = append(p.plays, playedBlob{data: data, format: format})
	return nil
}

func (p *fakePlayer) Plays() []playedBlob {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]playedBlob, len(p.plays))
	copy(out, p.plays)
	return out
}

// drain runs a command tree to completion, flattening batches.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTasksLoaded_RendersList(t *testing.T) {
	app := newTestApp(testutil.NewFakeService())
	app.active = tabTasks

	due := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	app.Update(tasksLoadedMsg{tasks: []service.Task{
		{ID: 1, Title: "Buy milk", DueDate: &due},
		{ID: 2, Title: "Stretch", IsCompleted: true},
	}})

	view := app.View()
	if !strings.Contains(view, "Buy milk") {
		t.Errorf("open task missing from view:\n%s", view)
	}
	if strings.Contains(view, "Stretch") {
		t.Errorf("completed task should be hidden by default:\n%s", view)
	}
}

func TestTasksView_ShowAllToggle(t *testing.T) {
	app := newTestApp(testutil.NewFakeService())
	app.active = tabTasks
	app.Update(tasksLoadedMsg{tasks: []service.Task{
		{ID: 2, Title: "Stretch", IsCompleted: true},
	}})

	app.Update(key("a"))
	if !strings.Contains(app.View(), "Stretch") {
		t.Error("show-all should reveal completed tasks")
	}
}

func TestTabKey_CyclesViews(t *testing.T) {
	app := newTestApp(testutil.NewFakeService())
	if app.active != tabChat {
		t.Fatalf("start tab = %v", app.active)
	}
	app.Update(key("tab"))
	if app.active != tabTasks {
		t.Errorf("after tab = %v, want tasks", app.active)
	}
}

func TestToggleTask_RoundTripsThroughBackend(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(service.Task{ID: 1, Title: "Buy milk"})
	app := newTestApp(svc)
	app.active = tabTasks
	app.Update(tasksLoadedMsg{tasks: []service.Task{{ID: 1, Title: "Buy milk"}}})

	_, cmd := app.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter on a task should produce a command")
	}
	msg := cmd()
	if _, ok := msg.(tasksLoadedMsg); !ok {
		t.Fatalf("msg = %T, want tasksLoadedMsg from the refetch", msg)
	}
	if svc.UpdateCalls != 1 || svc.TasksCalls != 1 {
		t.Errorf("update calls = %d, tasks calls = %d", svc.UpdateCalls, svc.TasksCalls)
	}
}

func TestHubNotify_ArrivesAsRefreshRequest(t *testing.T) {
	svc := testutil.NewFakeService()
	app := newTestApp(svc)

	// A chat turn notifies the hub, which nudges the bridge channel.
	if _, err := app.session.SendText(context.Background(), "add buy milk"); err != nil {
		t.Fatalf("send: %v", err)
	}

	msg := app.waitForRefreshCmd()()
	if _, ok := msg.(refreshRequestMsg); !ok {
		t.Fatalf("msg = %T, want refreshRequestMsg", msg)
	}

	// The refresh request fans out into reloads plus a re-armed wait.
	_, cmd := app.Update(refreshRequestMsg{})
	if cmd == nil {
		t.Fatal("refresh request should produce reload commands")
	}
}

func TestErrMsg_SurfacesInView(t *testing.T) {
	app := newTestApp(testutil.NewFakeService())
	app.Update(errMsg{err: testutil.ErrNotFound})
	if !strings.Contains(app.View(), "error: not found") {
		t.Error("error text missing from view")
	}
}

func TestUnreadCount_ShowsInTabHeader(t *testing.T) {
	app := newTestApp(testutil.NewFakeService())
	app.Update(notifsLoadedMsg{notifs: []service.Notification{
		{ID: 1}, {ID: 2, IsRead: true}, {ID: 3},
	}})
	if !strings.Contains(app.View(), "Notifications (2)") {
		t.Errorf("unread badge missing:\n%s", app.renderTabs())
	}
}

func TestRecordedTake_PlaysBackBeforeUploadCompletes(t *testing.T) {
	svc := testutil.NewFakeService()
	player := &fakePlayer{}
	app := New(Options{Service: svc, Log: logging.Discard(), Player: player})

	take := []byte("RIFFxxxxWAVE")
	_, cmd := app.Update(recordedMsg{wav: take})
	if cmd == nil {
		t.Fatal("a recorded take should produce commands")
	}

	var gotReply bool
	for _, msg := range drain(cmd) {
		if _, ok := msg.(chatReplyMsg); ok {
			gotReply = true
		}
	}
	if !gotReply {
		t.Error("the take should still be uploaded")
	}
	if svc.SendAudioCalls != 1 {
		t.Errorf("send audio calls = %d, want 1", svc.SendAudioCalls)
	}

	plays := player.Plays()
	if len(plays) != 1 {
		t.Fatalf("plays = %d, want the confirmation playback", len(plays))
	}
	if string(plays[0].data) != string(take) || plays[0].format != audio.FormatWAV {
		t.Errorf("played %q as %s, want the wav take", plays[0].data, plays[0].format)
	}
}

func TestNotifsView_EnterOnReadEntryIsNoOp(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddNotification(service.Notification{ID: 1, TaskTitle: "Buy milk", IsRead: true})
	app := newTestApp(svc)
	app.active = tabNotifs
	app.Update(notifsLoadedMsg{notifs: []service.Notification{
		{ID: 1, TaskTitle: "Buy milk", IsRead: true},
	}})

	_, cmd := app.Update(key("enter"))
	if cmd != nil {
		t.Error("re-marking a read notification should send nothing")
	}
	if svc.MarkReadCalls != 0 {
		t.Errorf("mark read calls = %d, want 0", svc.MarkReadCalls)
	}
}

func TestCalendarView_ShowsTwoConsecutiveMonths(t *testing.T) {
	app := newTestApp(testutil.NewFakeService())
	app.active = tabCalendar

	view := app.View()
	now := time.Now()
	for _, offset := range []int{0, 1} {
		title := calendar.MonthGrid(now, offset).Title()
		if !strings.Contains(view, title) {
			t.Errorf("view missing month %q:\n%s", title, view)
		}
	}
}

func TestVoiceWizard_FilterSelectSaveFlow(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddVoice(voice.Voice{VoiceID: "v1", Name: "Aria", Accent: "american", Gender: "female", Age: "young", Desc: "calm", UseCase: "meditation"})
	app := newTestApp(svc)
	app.active = tabVoice

	// Load the catalog for the unfiltered selection.
	_, cmd := app.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter at the filter stage should load voices")
	}
	app.Update(cmd())
	if app.wizard.Stage() != voice.StageCatalogLoaded {
		t.Fatalf("stage = %v", app.wizard.Stage())
	}

	// Pick the first voice.
	_, cmd = app.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter on a voice should select it")
	}
	app.Update(cmd())
	if app.wizard.Stage() != voice.StageVoiceSelected {
		t.Fatalf("stage = %v", app.wizard.Stage())
	}

	// Jump to the save row and save.
	app.formCursor = app.formRowCount() - 1
	_, cmd = app.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter on the save row should save")
	}
	msg := cmd()
	if _, ok := msg.(configSavedMsg); !ok {
		t.Fatalf("msg = %T, want configSavedMsg", msg)
	}
	if svc.SavedConfig() == nil {
		t.Fatal("config should be saved")
	}

	// Saved toast, then the view switches back to chat.
	app.Update(msg)
	app.Update(toastMsg{text: "saved"})
	app.Update(toastClearMsg{})
	if app.active != tabChat {
		t.Errorf("active = %v, want chat after the saved toast clears", app.active)
	}
}

func TestVoiceWizard_CycleFacetResetsDownstream(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddVoice(voice.Voice{VoiceID: "v1", Name: "Aria", Accent: "american", Gender: "female", Age: "young", Desc: "calm", UseCase: "meditation"})
	app := newTestApp(svc)
	app.active = tabVoice

	_, cmd := app.Update(key("enter"))
	app.Update(cmd())

	// Back at the filter stage, stepping a facet drops the loaded list.
	app.Update(key("esc"))
	if app.wizard.Stage() != voice.StageFiltering {
		t.Fatalf("stage = %v, want filtering", app.wizard.Stage())
	}
	app.Update(key("right"))
	if got := app.wizard.Filter().Get(voice.FacetAccent); got == "" {
		t.Error("right should select the first accent option")
	}
	if len(app.wizard.Voices()) != 0 {
		t.Error("loaded voices should be dropped after refiltering")
	}
}
