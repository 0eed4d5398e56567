package voice_test

import (
	"context"
	"sync"
	"testing"

	"performate/internal/testutil"
	"performate/internal/voice"
)

func seededService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddVoice(voice.Voice{
		VoiceID: "v1", Name: "Aria",
		Accent: "american", Gender: "female", Age: "young",
		Desc: "calm", UseCase: "meditation",
	})
	svc.AddVoice(voice.Voice{
		VoiceID: "v2", Name: "Brian",
		Accent: "british", Gender: "male", Age: "middle aged",
		Desc: "deep", UseCase: "narration",
	})
	svc.SetSettings("v1", voice.Settings{Stability: 0.7, SimilarityBoost: 0.9, Style: 0.1, UseSpeakerBoost: false})
	return svc
}

func TestWizard_StartsWithDefaults(t *testing.T) {
	w := voice.NewWizard(seededService())
	if w.Stage() != voice.StageFiltering {
		t.Errorf("stage = %v, want filtering", w.Stage())
	}
	if w.Settings() != voice.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", w.Settings())
	}
}

func TestWizard_PreloadMissingConfigKeepsDefaults(t *testing.T) {
	w := voice.NewWizard(seededService())
	if err := w.Preload(context.Background()); err != nil {
		t.Fatalf("preload: %v", err)
	}
	if w.Settings() != voice.DefaultSettings() {
		t.Errorf("settings changed without a saved config: %+v", w.Settings())
	}
}

func TestWizard_PreloadResumesSavedValues(t *testing.T) {
	svc := seededService()
	svc.SaveVoiceConfig(context.Background(), voice.Config{
		VoiceID: "v1", VoiceName: "Coach",
		Stability: 0.6, SimilarityBoost: 0.7, Style: 0.2, UseSpeakerBoost: true,
		PersonaTone: "strict", ReminderTone: "motivational",
	})

	w := voice.NewWizard(svc)
	if err := w.Preload(context.Background()); err != nil {
		t.Fatalf("preload: %v", err)
	}
	if w.Settings().Stability != 0.6 {
		t.Errorf("stability = %v, want 0.6", w.Settings().Stability)
	}
	persona := w.Persona()
	if persona.PersonaTone != "strict" {
		t.Errorf("persona tone = %q, want strict", persona.PersonaTone)
	}
	// The saved display name resumes as the editable assistant name.
	if persona.AssistantName != "Coach" {
		t.Errorf("assistant name = %q, want Coach", persona.AssistantName)
	}
}

func TestWizard_LoadVoicesAppliesFilter(t *testing.T) {
	w := voice.NewWizard(seededService())
	w.SetFacet(voice.FacetGender, "male")

	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}
	if w.Stage() != voice.StageCatalogLoaded {
		t.Errorf("stage = %v, want catalog loaded", w.Stage())
	}
	voices := w.Voices()
	if len(voices) != 1 || voices[0].VoiceID != "v2" {
		t.Errorf("voices = %+v, want just v2", voices)
	}
}

func TestWizard_LoadFailureKeepsPreviousList(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}
	before := len(w.Voices())

	svc.QueryVoicesErr = testutil.ErrNotFound
	if err := w.LoadVoices(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if len(w.Voices()) != before {
		t.Errorf("voice list changed on failure: %d -> %d", before, len(w.Voices()))
	}
}

func TestWizard_SelectFetchesSettings(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}

	if err := w.Select(context.Background(), w.Voices()[0]); err != nil {
		t.Fatalf("select: %v", err)
	}
	if w.Stage() != voice.StageVoiceSelected {
		t.Errorf("stage = %v, want voice selected", w.Stage())
	}
	if w.Settings().Stability != 0.7 {
		t.Errorf("stability = %v, want fetched 0.7", w.Settings().Stability)
	}
}

func TestWizard_SelectionStandsWhenSettingsFetchFails(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}

	svc.VoiceSettingsErr = testutil.ErrNotFound
	err := w.Select(context.Background(), w.Voices()[1])
	if err == nil {
		t.Fatal("expected settings error")
	}
	if w.Selected() == nil || w.Selected().VoiceID != "v2" {
		t.Error("selection should stand despite the settings failure")
	}
	if w.Settings() != voice.DefaultSettings() {
		t.Errorf("settings should be untouched, got %+v", w.Settings())
	}
}

func TestWizard_RefilteringResetsDownstream(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}
	if err := w.Select(context.Background(), w.Voices()[0]); err != nil {
		t.Fatalf("select: %v", err)
	}

	w.SetFacet(voice.FacetAccent, "british")
	if w.Stage() != voice.StageFiltering {
		t.Errorf("stage = %v, want filtering after refilter", w.Stage())
	}
	if w.Selected() != nil {
		t.Error("selection should be dropped after refilter")
	}
	if len(w.Voices()) != 0 {
		t.Error("loaded voices should be dropped after refilter")
	}
}

func TestWizard_SetSettingsClamps(t *testing.T) {
	w := voice.NewWizard(seededService())
	w.SetSettings(voice.Settings{Stability: 1.5, SimilarityBoost: -0.2, Style: 0.5})

	s := w.Settings()
	if s.Stability != 1 || s.SimilarityBoost != 0 || s.Style != 0.5 {
		t.Errorf("clamped settings = %+v", s)
	}
}

func TestWizard_ComposeRequiresSelection(t *testing.T) {
	w := voice.NewWizard(seededService())
	if _, err := w.Compose(); err != voice.ErrNoVoiceSelected {
		t.Errorf("err = %v, want ErrNoVoiceSelected", err)
	}
}

func TestWizard_ComposeNameFallback(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}
	if err := w.Select(context.Background(), w.Voices()[0]); err != nil {
		t.Fatalf("select: %v", err)
	}

	cfg, err := w.Compose()
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if cfg.VoiceName != "Aria" {
		t.Errorf("voice name = %q, want catalog name Aria", cfg.VoiceName)
	}

	persona := w.Persona()
	persona.AssistantName = "  Jarvis  "
	w.SetPersona(persona)
	cfg, err = w.Compose()
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if cfg.VoiceName != "Jarvis" {
		t.Errorf("voice name = %q, want trimmed assistant name", cfg.VoiceName)
	}
}

func TestWizard_SaveRoundTrip(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}
	if err := w.Select(context.Background(), w.Voices()[0]); err != nil {
		t.Fatalf("select: %v", err)
	}
	persona := w.Persona()
	persona.PersonaTone = "friendly"
	persona.ReminderFrequency = "high"
	w.SetPersona(persona)

	if err := w.Save(context.Background()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if w.Stage() != voice.StageSaved {
		t.Errorf("stage = %v, want saved", w.Stage())
	}

	saved := svc.SavedConfig()
	if saved == nil {
		t.Fatal("no config saved")
	}
	if saved.VoiceID != "v1" || saved.PersonaTone != "friendly" || saved.ReminderFrequency != "high" {
		t.Errorf("saved config = %+v", saved)
	}
	if saved.Stability != 0.7 {
		t.Errorf("saved stability = %v, want selected voice's 0.7", saved.Stability)
	}
}

// Backend calls run on worker goroutines while the render loop reads
// wizard state; both must be safe at once. Run with the race detector
// enabled.
func TestWizard_ConcurrentBackendCallAndRead(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.LoadVoices(context.Background()); err != nil {
		t.Fatalf("load voices: %v", err)
	}
	v := w.Voices()[0]

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if err := w.Select(context.Background(), v); err != nil {
				t.Errorf("select: %v", err)
				return
			}
			if err := w.Save(context.Background()); err != nil {
				t.Errorf("save: %v", err)
				return
			}
		}
	}()
	for i := 0; i < 200; i++ {
		w.Stage()
		w.Settings()
		w.Persona()
		w.Selected()
		w.Voices()
	}
	wg.Wait()

	if svc.ConfigSaveCalls != 50 {
		t.Errorf("save calls = %d, want 50", svc.ConfigSaveCalls)
	}
}

func TestWizard_SaveWithoutSelection(t *testing.T) {
	svc := seededService()
	w := voice.NewWizard(svc)
	if err := w.Save(context.Background()); err != voice.ErrNoVoiceSelected {
		t.Errorf("err = %v, want ErrNoVoiceSelected", err)
	}
	if svc.ConfigSaveCalls != 0 {
		t.Error("no request should be sent without a selection")
	}
}
