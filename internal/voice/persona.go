package voice

// Closed-enum option lists for the persona/behavioral preferences.
var (
	PersonaTones             = []string{"friendly", "professional", "strict", "playful"}
	FormalityLevels          = []string{"formal", "neutral", "informal"}
	PersonaTraits            = []string{"empathetic", "direct", "humorous", "encouraging", "supportive"}
	ResponseLengths          = []string{"short", "medium", "long"}
	ParaphraseVariabilities  = []string{"low", "medium", "high"}
	PersonalizedNamings      = []string{"use my name", "do not use my name"}
	EmotionalExpressiveness  = []string{"low", "moderate", "high"}
	ReminderFrequencies      = []string{"low", "medium", "high"}
	PreferredReminderTimes   = []string{"morning", "evening", "dynamic"}
	ReminderTones            = []string{"motivational", "strict", "playful"}
	ProgressReportingOptions = []string{"basic", "detailed", "gamified"}
	InteractionStyles        = []string{"coach", "friend", "neutral"}
	VoiceFeedbackStyles      = []string{"concise", "detailed"}
)

// PersonaField describes one persona preference for form rendering.
type PersonaField struct {
	Label   string
	Options []string // nil for free-text fields
	Get     func(*Persona) *string
}

// PersonaFields lists the persona preferences in wizard display order.
// The two free-text entries (assistant name, other preferences) come
// last, mirroring the form layout.
var PersonaFields = []PersonaField{
	{"Persona Tone", PersonaTones, func(p *Persona) *string { return &p.PersonaTone }},
	{"Formality Level", FormalityLevels, func(p *Persona) *string { return &p.FormalityLevel }},
	{"Persona Traits", PersonaTraits, func(p *Persona) *string { return &p.PersonaTraits }},
	{"Response Length", ResponseLengths, func(p *Persona) *string { return &p.ResponseLength }},
	{"Paraphrase Variability", ParaphraseVariabilities, func(p *Persona) *string { return &p.ParaphraseVariability }},
	{"Personalized Naming", PersonalizedNamings, func(p *Persona) *string { return &p.PersonalizedNaming }},
	{"Emotional Expressiveness", EmotionalExpressiveness, func(p *Persona) *string { return &p.EmotionalExpressiveness }},
	{"Reminder Frequency", ReminderFrequencies, func(p *Persona) *string { return &p.ReminderFrequency }},
	{"Preferred Reminder Time", PreferredReminderTimes, func(p *Persona) *string { return &p.PreferredReminderTime }},
	{"Reminder Tone", ReminderTones, func(p *Persona) *string { return &p.ReminderTone }},
	{"Progress Reporting", ProgressReportingOptions, func(p *Persona) *string { return &p.ProgressReporting }},
	{"Interaction Style", InteractionStyles, func(p *Persona) *string { return &p.InteractionStyle }},
	{"Voice Feedback Style", VoiceFeedbackStyles, func(p *Persona) *string { return &p.VoiceFeedbackStyle }},
	{"Assistant Name", nil, func(p *Persona) *string { return &p.AssistantName }},
	{"Other Preferences", nil, func(p *Persona) *string { return &p.OtherPreferences }},
}
