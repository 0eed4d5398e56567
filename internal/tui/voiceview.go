package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/voice"
)

// The voice-selected form stacks four synthesis rows, the persona
// fields and a save row; formCursor walks all of them.
const settingsRows = 4

func (a *App) formRowCount() int {
	return settingsRows + len(voice.PersonaFields) + 1
}

func (a *App) updateVoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editingText {
		return a.updatePersonaEdit(msg)
	}

	switch a.wizard.Stage() {
	case voice.StageFiltering:
		return a.updateFilteringKey(msg)
	case voice.StageCatalogLoaded:
		return a.updateCatalogKey(msg)
	case voice.StageVoiceSelected:
		return a.updateFormKey(msg)
	case voice.StageSaved:
		return a, nil
	}
	return a, nil
}

func (a *App) updateFilteringKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.facetCursor > 0 {
			a.facetCursor--
		}
	case "down", "j":
		if a.facetCursor < len(voice.Facets)-1 {
			a.facetCursor++
		}
	case "left", "h":
		a.cycleFacet(-1)
	case "right", "l":
		a.cycleFacet(1)
	case "enter":
		return a, a.loadVoicesCmd()
	}
	return a, nil
}

// cycleFacet steps the selected facet through "(any)" plus the values
// consistent with the other selected facets. Changing a facet drops any
// loaded voices and selection downstream.
func (a *App) cycleFacet(dir int) {
	facet := voice.Facets[a.facetCursor]
	opts := append([]string{""}, a.wizard.FacetOptions(facet)...)

	current := a.wizard.Filter().Get(facet)
	idx := 0
	for i, v := range opts {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(opts)) % len(opts)
	a.wizard.SetFacet(facet, opts[idx])
}

func (a *App) updateCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	voices := a.wizard.Voices()

	switch msg.String() {
	case "up", "k":
		if a.voiceCursor > 0 {
			a.voiceCursor--
		}
	case "down", "j":
		if a.voiceCursor < len(voices)-1 {
			a.voiceCursor++
		}
	case "esc":
		// Back to filtering. Re-setting the facet to its current value
		// is the reset path; it drops the loaded list.
		facet := voice.Facets[a.facetCursor]
		a.wizard.SetFacet(facet, a.wizard.Filter().Get(facet))
	case "enter":
		if a.voiceCursor < len(voices) {
			return a, a.selectVoiceCmd(voices[a.voiceCursor])
		}
	}
	return a, nil
}

func (a *App) updateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := a.formRowCount()

	switch msg.String() {
	case "up", "k":
		if a.formCursor > 0 {
			a.formCursor--
		}
	case "down", "j":
		if a.formCursor < rows-1 {
			a.formCursor++
		}
	case "left", "h":
		a.adjustFormRow(-1)
	case "right", "l":
		a.adjustFormRow(1)
	case "esc":
		facet := voice.Facets[a.facetCursor]
		a.wizard.SetFacet(facet, a.wizard.Filter().Get(facet))
	case "enter":
		if a.formCursor == rows-1 {
			return a, a.saveConfigCmd()
		}
		if field, ok := a.personaFieldAt(a.formCursor); ok && field.Options == nil {
			// Free-text field: switch to inline editing.
			a.editingText = true
			persona := a.wizard.Persona()
			a.personaInput.SetValue(*field.Get(&persona))
			a.personaInput.Focus()
			return a, nil
		}
	}
	return a, nil
}

func (a *App) updatePersonaEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if field, ok := a.personaFieldAt(a.formCursor); ok {
			persona := a.wizard.Persona()
			*field.Get(&persona) = a.personaInput.Value()
			a.wizard.SetPersona(persona)
		}
		a.editingText = false
		a.personaInput.Blur()
		return a, nil
	case "esc":
		a.editingText = false
		a.personaInput.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.personaInput, cmd = a.personaInput.Update(msg)
	return a, cmd
}

func (a *App) personaFieldAt(row int) (voice.PersonaField, bool) {
	idx := row - settingsRows
	if idx < 0 || idx >= len(voice.PersonaFields) {
		return voice.PersonaField{}, false
	}
	return voice.PersonaFields[idx], true
}

// adjustFormRow handles left/right on the focused row: sliders step by
// 0.05, the boost row toggles, enum persona rows cycle their options.
func (a *App) adjustFormRow(dir int) {
	s := a.wizard.Settings()
	step := 0.05 * float64(dir)

	switch a.formCursor {
	case 0:
		s.Stability += step
		a.wizard.SetSettings(s)
		return
	case 1:
		s.SimilarityBoost += step
		a.wizard.SetSettings(s)
		return
	case 2:
		s.Style += step
		a.wizard.SetSettings(s)
		return
	case 3:
		s.UseSpeakerBoost = !s.UseSpeakerBoost
		a.wizard.SetSettings(s)
		return
	}

	field, ok := a.personaFieldAt(a.formCursor)
	if !ok || field.Options == nil {
		return
	}
	persona := a.wizard.Persona()
	slot := field.Get(&persona)
	opts := append([]string{""}, field.Options...)
	idx := 0
	for i, v := range opts {
		if v == *slot {
			idx = i
			break
		}
	}
	*slot = opts[(idx+dir+len(opts))%len(opts)]
	a.wizard.SetPersona(persona)
}

func (a *App) renderVoice() string {
	switch a.wizard.Stage() {
	case voice.StageFiltering:
		return a.renderFiltering()
	case voice.StageCatalogLoaded:
		return a.renderVoiceList()
	case voice.StageVoiceSelected:
		return a.renderForm()
	case voice.StageSaved:
		return titleStyle.Render("Voice Persona") + "\n" +
			toastStyle.Render("Configuration saved.")
	}
	return ""
}

func (a *App) renderFiltering() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Voice Persona - pick voice attributes"))
	b.WriteString("\n")

	filter := a.wizard.Filter()
	for i, facet := range voice.Facets {
		cursor := "  "
		if i == a.facetCursor {
			cursor = cursorStyle.Render("> ")
		}
		value := filter.Get(facet)
		display := "(any)"
		if value != "" {
			display = selectedValueStyle.Render(value)
		}
		b.WriteString(cursor + facetLabelStyle.Render(string(facet)) + display + "\n")
	}
	return b.String()
}

func (a *App) renderVoiceList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Voice Persona - choose a voice"))
	b.WriteString("\n")

	voices := a.wizard.Voices()
	if len(voices) == 0 {
		b.WriteString(readStyle.Render("No voices matched these attributes."))
		b.WriteString("\n")
		return b.String()
	}

	for i, v := range voices {
		cursor := "  "
		if i == a.voiceCursor {
			cursor = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s  %s\n", cursor, selectedValueStyle.Render(v.Name),
			readStyle.Render(fmt.Sprintf("(%s, %s, %s)", v.Accent, v.Gender, v.Age)))
	}
	return b.String()
}

func (a *App) renderForm() string {
	var b strings.Builder

	selected := a.wizard.Selected()
	title := "Voice Persona"
	if selected != nil {
		title = "Voice Persona - " + selected.Name
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	s := a.wizard.Settings()
	settingsLabels := []string{
		fmt.Sprintf("%.2f", s.Stability),
		fmt.Sprintf("%.2f", s.SimilarityBoost),
		fmt.Sprintf("%.2f", s.Style),
		fmt.Sprintf("%t", s.UseSpeakerBoost),
	}
	settingsNames := []string{"stability", "similarity boost", "style", "speaker boost"}
	for i := range settingsNames {
		cursor := "  "
		if a.formCursor == i {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor + facetLabelStyle.Render(settingsNames[i]) + settingsLabels[i] + "\n")
	}
	b.WriteString("\n")

	persona := a.wizard.Persona()
	for i, field := range voice.PersonaFields {
		row := settingsRows + i
		cursor := "  "
		if a.formCursor == row {
			cursor = cursorStyle.Render("> ")
		}

		if a.editingText && a.formCursor == row {
			b.WriteString(cursor + facetLabelStyle.Render(field.Label) + a.personaInput.View() + "\n")
			continue
		}

		value := *field.Get(&persona)
		display := "(unset)"
		if value != "" {
			display = selectedValueStyle.Render(value)
		}
		b.WriteString(cursor + facetLabelStyle.Render(field.Label) + display + "\n")
	}

	saveCursor := "  "
	if a.formCursor == a.formRowCount()-1 {
		saveCursor = cursorStyle.Render("> ")
	}
	b.WriteString("\n" + saveCursor + toastStyle.Render("[ Save configuration ]") + "\n")
	return b.String()
}

func (a *App) voiceHelpLine() string {
	if a.editingText {
		return "enter commit - esc cancel"
	}
	switch a.wizard.Stage() {
	case voice.StageFiltering:
		return "up/down facet - left/right value - enter load voices - tab next view"
	case voice.StageCatalogLoaded:
		return "up/down move - enter select - esc back to attributes - tab next view"
	case voice.StageVoiceSelected:
		return "up/down field - left/right value - enter edit/save - esc restart - tab next view"
	}
	return "tab next view"
}
