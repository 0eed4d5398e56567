package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/output"
)

func (a *App) updateNotifsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.notifCursor > 0 {
			a.notifCursor--
		}
	case "down", "j":
		if a.notifCursor < len(a.notifs)-1 {
			a.notifCursor++
		}
	case "enter", " ":
		if a.notifCursor < len(a.notifs) {
			n := a.notifs[a.notifCursor]
			if !n.IsRead {
				// The read flag flips only after the request succeeds;
				// markReadCmd refetches the list.
				return a, a.markReadCmd(n.ID)
			}
		}
	}
	return a, nil
}

func (a *App) renderNotifs() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notifications"))
	b.WriteString("\n")

	if len(a.notifs) == 0 {
		b.WriteString(readStyle.Render("No notifications."))
		b.WriteString("\n")
		return b.String()
	}

	for i, n := range a.notifs {
		cursor := "  "
		if i == a.notifCursor {
			cursor = cursorStyle.Render("> ")
		}

		line := fmt.Sprintf("%s  %s", n.CreatedAt.Local().Format(output.DateLayout), n.TaskTitle)
		if n.Message != "" {
			line += ": " + n.Message
		}
		if n.IsRead {
			b.WriteString(cursor + readStyle.Render("  "+line))
		} else {
			b.WriteString(cursor + unreadStyle.Render("* "+line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
