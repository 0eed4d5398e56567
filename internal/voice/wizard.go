package voice

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Stage identifies where the wizard currently is. Movement is
// one-directional; the only way back is re-filtering, which resets the
// selection downstream.
type Stage int

const (
	StageFiltering Stage = iota
	StageCatalogLoaded
	StageVoiceSelected
	StageSaved
)

// ErrNoVoiceSelected is returned by Compose and Save before a voice has
// been picked.
var ErrNoVoiceSelected = errors.New("no voice selected")

// Wizard drives the four-step configuration flow. Safe for concurrent
// use: the interactive interface runs backend calls on worker
// goroutines while its render loop reads wizard state. The mutex is
// never held across a backend call.
type Wizard struct {
	backend Backend

	mu       sync.Mutex
	stage    Stage
	filter   Filter
	voices   []Voice
	selected *Voice
	settings Settings
	persona  Persona
}

// NewWizard creates a wizard at the filtering stage with default
// synthesis settings.
func NewWizard(backend Backend) *Wizard {
	return &Wizard{
		backend:  backend,
		stage:    StageFiltering,
		settings: DefaultSettings(),
	}
}

// Preload pulls a previously saved configuration and, when present,
// populates settings and persona so the wizard resumes from last-saved
// values. A missing configuration is not an error and leaves defaults.
func (w *Wizard) Preload(ctx context.Context) error {
	cfg, err := w.backend.VoiceConfig(ctx)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings = Settings{
		Stability:       cfg.Stability,
		SimilarityBoost: cfg.SimilarityBoost,
		Style:           cfg.Style,
		UseSpeakerBoost: cfg.UseSpeakerBoost,
	}
	w.persona = Persona{
		PersonaTone:             cfg.PersonaTone,
		FormalityLevel:          cfg.FormalityLevel,
		PersonaTraits:           cfg.PersonaTraits,
		ResponseLength:          cfg.ResponseLength,
		ParaphraseVariability:   cfg.ParaphraseVariability,
		PersonalizedNaming:      cfg.PersonalizedNaming,
		EmotionalExpressiveness: cfg.EmotionalExpressiveness,
		ReminderFrequency:       cfg.ReminderFrequency,
		PreferredReminderTime:   cfg.PreferredReminderTime,
		ReminderTone:            cfg.ReminderTone,
		ProgressReporting:       cfg.ProgressReporting,
		InteractionStyle:        cfg.InteractionStyle,
		VoiceFeedbackStyle:      cfg.VoiceFeedbackStyle,
		AssistantName:           cfg.VoiceName,
		OtherPreferences:        cfg.OtherPreferences,
	}
	return nil
}

// Stage returns the current stage.
func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// Filter returns the current facet selection.
func (w *Wizard) Filter() Filter {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.filter
}

// SetFacet changes one facet. Re-filtering is the backtrack mechanism:
// it drops any loaded catalog and selection.
func (w *Wizard) SetFacet(facet Facet, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.filter = w.filter.Set(facet, value)
	w.voices = nil
	w.selected = nil
	w.stage = StageFiltering
}

// FacetOptions returns the live selectable values for one facet, namely
// those consistent with every other currently-selected facet.
func (w *Wizard) FacetOptions(facet Facet) []string {
	w.mu.Lock()
	filter := w.filter
	w.mu.Unlock()
	return Options(facet, filter)
}

// LoadVoices sends the current filter to the backend. On failure the
// voice list is left unchanged, not cleared.
func (w *Wizard) LoadVoices(ctx context.Context) error {
	w.mu.Lock()
	filter := w.filter
	w.mu.Unlock()

	voices, err := w.backend.QueryVoices(ctx, filter)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.voices = voices
	w.stage = StageCatalogLoaded
	return nil
}

// Voices returns the loaded catalog entries. The slice is replaced
// wholesale on each load, never appended to, so callers may keep it.
func (w *Wizard) Voices() []Voice {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.voices
}

// Select picks a catalog entry and immediately fetches its default
// synthesis settings. A reply the backend mangled (no stability field)
// keeps the existing settings and reports the error; the selection
// itself stands.
func (w *Wizard) Select(ctx context.Context, v Voice) error {
	w.mu.Lock()
	w.selected = &v
	w.stage = StageVoiceSelected
	w.mu.Unlock()

	settings, err := w.backend.VoiceSettings(ctx, v.VoiceID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings = clampSettings(settings)
	return nil
}

// Selected returns the chosen voice, or nil before selection. The
// entry behind the pointer is never written after selection.
func (w *Wizard) Selected() *Voice {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selected
}

// Settings returns the current synthesis settings.
func (w *Wizard) Settings() Settings {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settings
}

// SetSettings replaces the synthesis settings, clamping sliders to [0,1].
func (w *Wizard) SetSettings(s Settings) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings = clampSettings(s)
}

// Persona returns a copy of the persona preferences.
func (w *Wizard) Persona() Persona {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.persona
}

// SetPersona replaces the persona preferences.
func (w *Wizard) SetPersona(p Persona) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.persona = p
}

// Compose merges {selected voice attributes} with the synthesis settings
// and persona preferences into the single object that gets saved. The
// display name is the user-entered assistant name when present, else
// the catalog voice's name.
func (w *Wizard) Compose() (Config, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selected == nil {
		return Config{}, ErrNoVoiceSelected
	}
	v := w.selected
	name := strings.TrimSpace(w.persona.AssistantName)
	if name == "" {
		name = v.Name
	}
	return Config{
		VoiceID:   v.VoiceID,
		VoiceName: name,
		Accent:    v.Accent,
		Gender:    v.Gender,
		Age:       v.Age,
		Desc:      v.Desc,
		UseCase:   v.UseCase,

		Stability:       w.settings.Stability,
		SimilarityBoost: w.settings.SimilarityBoost,
		Style:           w.settings.Style,
		UseSpeakerBoost: w.settings.UseSpeakerBoost,

		PersonaTone:             w.persona.PersonaTone,
		PersonaTraits:           w.persona.PersonaTraits,
		InteractionStyle:        w.persona.InteractionStyle,
		FormalityLevel:          w.persona.FormalityLevel,
		ResponseLength:          w.persona.ResponseLength,
		ParaphraseVariability:   w.persona.ParaphraseVariability,
		PersonalizedNaming:      w.persona.PersonalizedNaming,
		EmotionalExpressiveness: w.persona.EmotionalExpressiveness,
		ReminderFrequency:       w.persona.ReminderFrequency,
		PreferredReminderTime:   w.persona.PreferredReminderTime,
		ReminderTone:            w.persona.ReminderTone,
		VoiceFeedbackStyle:      w.persona.VoiceFeedbackStyle,
		OtherPreferences:        w.persona.OtherPreferences,
		ProgressReporting:       w.persona.ProgressReporting,
	}, nil
}

// Save composes the configuration and submits it as one request. Save
// is the terminal stage for this workflow.
func (w *Wizard) Save(ctx context.Context) error {
	cfg, err := w.Compose()
	if err != nil {
		return err
	}
	if err := w.backend.SaveVoiceConfig(ctx, cfg); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stage = StageSaved
	return nil
}

func clampSettings(s Settings) Settings {
	s.Stability = clamp01(s.Stability)
	s.SimilarityBoost = clamp01(s.SimilarityBoost)
	s.Style = clamp01(s.Style)
	return s
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
