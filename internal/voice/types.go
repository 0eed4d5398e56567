// Package voice implements the assistant voice configuration workflow:
// facet filtering over a static catalog, voice selection with dependent
// synthesis settings, persona preferences and the composed save.
package voice

import "context"

// Voice is one playable catalog entry returned by the backend for a
// facet query. Immutable.
type Voice struct {
	VoiceID    string `json:"voice_id"`
	Name       string `json:"name"`
	PreviewURL string `json:"preview_url"`
	Accent     string `json:"accent"`
	Gender     string `json:"gender"`
	Age        string `json:"age"`
	Desc       string `json:"description"`
	UseCase    string `json:"use_case"`

	// Persona/behavioral defaults bundled with the entry.
	PersonaTone             string `json:"persona_tone"`
	InteractionStyle        string `json:"interaction_style"`
	FormalityLevel          string `json:"formality_level"`
	ResponseLength          string `json:"response_length"`
	ParaphraseVariability   string `json:"paraphrase_variability"`
	PersonalizedNaming      string `json:"personalized_naming"`
	EmotionalExpressiveness string `json:"emotional_expressiveness"`
	ReminderFrequency       string `json:"reminder_frequency"`
	PreferredReminderTime   string `json:"preferred_reminder_time"`
	ReminderTone            string `json:"reminder_tone"`
	VoiceFeedbackStyle      string `json:"voice_feedback_style"`
	OtherPreferences        string `json:"other_preferences"`
}

// Filter is the facet selection sent with a catalog query. Empty fields
// mean "any".
type Filter struct {
	Accent  string `json:"accent"`
	Gender  string `json:"gender"`
	Age     string `json:"age"`
	Desc    string `json:"description"`
	UseCase string `json:"use_case"`
}

// Settings are the synthesis parameters. The sliders live in [0,1].
type Settings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// DefaultSettings are the values the wizard starts from.
func DefaultSettings() Settings {
	return Settings{Stability: 0.5, SimilarityBoost: 0.8, Style: 0.0, UseSpeakerBoost: true}
}

// Persona holds the behavioral preference fields. Closed-enum values
// plus the free-text assistant name and other preferences.
type Persona struct {
	PersonaTone             string `json:"persona_tone"`
	FormalityLevel          string `json:"formality_level"`
	PersonaTraits           string `json:"persona_traits"`
	ResponseLength          string `json:"response_length"`
	ParaphraseVariability   string `json:"paraphrase_variability"`
	PersonalizedNaming      string `json:"personalized_naming"`
	EmotionalExpressiveness string `json:"emotional_expressiveness"`
	ReminderFrequency       string `json:"reminder_frequency"`
	PreferredReminderTime   string `json:"preferred_reminder_time"`
	ReminderTone            string `json:"reminder_tone"`
	ProgressReporting       string `json:"progress_reporting"`
	InteractionStyle        string `json:"interaction_style"`
	VoiceFeedbackStyle      string `json:"voice_feedback_style"`
	AssistantName           string `json:"-"`
	OtherPreferences        string `json:"other_preferences"`
}

// Config is the composed configuration saved as one request. Every
// field is always present on the wire, blank or not; there are no
// partial-patch semantics.
type Config struct {
	VoiceID   string `json:"voice_id"`
	VoiceName string `json:"voice_name"`
	Accent    string `json:"accent"`
	Gender    string `json:"gender"`
	Age       string `json:"age"`
	Desc      string `json:"description"`
	UseCase   string `json:"use_case"`

	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`

	PersonaTone             string `json:"persona_tone"`
	PersonaTraits           string `json:"persona_traits"`
	InteractionStyle        string `json:"interaction_style"`
	FormalityLevel          string `json:"formality_level"`
	ResponseLength          string `json:"response_length"`
	ParaphraseVariability   string `json:"paraphrase_variability"`
	PersonalizedNaming      string `json:"personalized_naming"`
	EmotionalExpressiveness string `json:"emotional_expressiveness"`
	ReminderFrequency       string `json:"reminder_frequency"`
	PreferredReminderTime   string `json:"preferred_reminder_time"`
	ReminderTone            string `json:"reminder_tone"`
	VoiceFeedbackStyle      string `json:"voice_feedback_style"`
	OtherPreferences        string `json:"other_preferences"`
	ProgressReporting       string `json:"progress_reporting"`
}

// Backend is the slice of the backend service the workflow consumes.
type Backend interface {
	// QueryVoices sends the facet filter and returns matching catalog
	// entries. A malformed response is an error.
	QueryVoices(ctx context.Context, f Filter) ([]Voice, error)

	// VoiceSettings fetches a voice's default synthesis parameters.
	VoiceSettings(ctx context.Context, voiceID string) (Settings, error)

	// VoiceConfig loads the previously saved configuration, or nil when
	// none exists.
	VoiceConfig(ctx context.Context) (*Config, error)

	// SaveVoiceConfig persists the composed configuration atomically.
	SaveVoiceConfig(ctx context.Context, cfg Config) error
}
