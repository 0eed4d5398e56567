// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"performate/internal/service"
	"performate/internal/voice"
)

const (
	// SectionSeparator is the separator line for output sections.
	SectionSeparator = "------------"

	// DateLayout is how timestamps render in lists.
	DateLayout = "2006-01-02"
)

// FormatTask formats one task line.
// Format: "{N:>4}  [{x| }] {TITLE}  (due {DATE})?\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.IsCompleted {
		mark = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s", num, mark, normalizeTitle(task.Title))
	if task.DueDate != nil {
		line += fmt.Sprintf("  (due %s)", task.DueDate.Local().Format(DateLayout))
	}
	fmt.Fprintln(w, line)
}

// FormatSubtasks formats a task's subtask section, indented under the
// parent. An empty subtask list is omitted entirely, never rendered as
// an empty section.
func FormatSubtasks(w io.Writer, subtasks []service.Subtask) {
	for _, st := range subtasks {
		mark := " "
		if st.IsCompleted {
			mark = "x"
		}
		fmt.Fprintf(w, "        - [%s] %s\n", mark, normalizeTitle(st.Title))
	}
}

// FormatSectionHeader formats a titled section.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatNotification formats one notification line.
// Unread entries carry a "*" marker.
func FormatNotification(w io.Writer, n service.Notification) {
	mark := "*"
	if n.IsRead {
		mark = " "
	}
	fmt.Fprintf(w, "%4d  %s %s  %s", n.ID, mark, n.CreatedAt.Local().Format(DateLayout), normalizeTitle(n.TaskTitle))
	if n.Message != "" {
		fmt.Fprintf(w, ": %s", normalizeTitle(n.Message))
	}
	fmt.Fprintln(w)
}

// FormatVoice formats one catalog entry.
func FormatVoice(w io.Writer, num int, v voice.Voice) {
	fmt.Fprintf(w, "%4d  %s  (%s, %s, %s, %s, %s)\n", num, v.Name, v.Accent, v.Gender, v.Age, v.Desc, v.UseCase)
	if v.PreviewURL != "" {
		fmt.Fprintf(w, "      preview: %s\n", v.PreviewURL)
	}
}

// FormatSettings formats synthesis settings.
func FormatSettings(w io.Writer, s voice.Settings) {
	fmt.Fprintf(w, "stability:         %.2f\n", s.Stability)
	fmt.Fprintf(w, "similarity boost:  %.2f\n", s.SimilarityBoost)
	fmt.Fprintf(w, "style:             %.2f\n", s.Style)
	fmt.Fprintf(w, "speaker boost:     %t\n", s.UseSpeakerBoost)
}

// FormatConfig formats a saved voice configuration.
func FormatConfig(w io.Writer, cfg voice.Config) {
	fmt.Fprintf(w, "voice:             %s (%s)\n", cfg.VoiceName, cfg.VoiceID)
	fmt.Fprintf(w, "profile:           %s, %s, %s, %s, %s\n", cfg.Accent, cfg.Gender, cfg.Age, cfg.Desc, cfg.UseCase)
	FormatSettings(w, voice.Settings{
		Stability:       cfg.Stability,
		SimilarityBoost: cfg.SimilarityBoost,
		Style:           cfg.Style,
		UseSpeakerBoost: cfg.UseSpeakerBoost,
	})
	persona := []struct{ label, value string }{
		{"persona tone", cfg.PersonaTone},
		{"persona traits", cfg.PersonaTraits},
		{"interaction style", cfg.InteractionStyle},
		{"formality", cfg.FormalityLevel},
		{"response length", cfg.ResponseLength},
		{"paraphrase variability", cfg.ParaphraseVariability},
		{"personalized naming", cfg.PersonalizedNaming},
		{"expressiveness", cfg.EmotionalExpressiveness},
		{"reminder frequency", cfg.ReminderFrequency},
		{"reminder time", cfg.PreferredReminderTime},
		{"reminder tone", cfg.ReminderTone},
		{"progress reporting", cfg.ProgressReporting},
		{"feedback style", cfg.VoiceFeedbackStyle},
		{"other preferences", cfg.OtherPreferences},
	}
	for _, p := range persona {
		if p.value != "" {
			fmt.Fprintf(w, "%-18s %s\n", p.label+":", p.value)
		}
	}
}

// normalizeTitle normalizes text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
