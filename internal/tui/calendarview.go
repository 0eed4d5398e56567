package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/calendar"
	"performate/internal/service"
)

func (a *App) updateCalendarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		a.calOffset--
	case "right", "l":
		a.calOffset++
	case "t":
		a.calOffset = 0
	}
	return a, nil
}

// renderCalendar shows two consecutive months, the offset month and
// the one after it, with the tasks due in either listed below.
func (a *App) renderCalendar() string {
	var b strings.Builder

	grouped := calendar.GroupByDueDate(a.tasks)
	taskKeys := make(map[string]bool)

	now := time.Now()
	for _, offset := range []int{a.calOffset, a.calOffset + 1} {
		renderMonth(&b, calendar.MonthGrid(now, offset), grouped, taskKeys)
		b.WriteString("\n")
	}

	// Tasks due in the displayed months, by date.
	dates := make([]string, 0, len(taskKeys))
	for date := range taskKeys {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		for _, task := range grouped[date] {
			line := task.Title
			if task.IsCompleted {
				line = doneStyle.Render(line)
			}
			fmt.Fprintf(&b, "%s  %s\n", dueStyle.Render(date), line)
		}
	}
	return b.String()
}

func renderMonth(b *strings.Builder, month calendar.Month, grouped map[string][]service.Task, taskKeys map[string]bool) {
	b.WriteString(titleStyle.Render(month.Title()))
	b.WriteString("\n")

	for _, wd := range calendar.Weekdays {
		b.WriteString(calendarDayStyle.Render(wd))
	}
	b.WriteString("\n")

	for i, day := range month.Days {
		if day.Blank() {
			b.WriteString(calendarDayStyle.Render(""))
		} else {
			key := calendar.DateKey(day.Date)
			label := fmt.Sprintf("%d", day.Date.Day())
			if len(grouped[key]) > 0 {
				taskKeys[key] = true
				b.WriteString(calendarTaskDayStyle.Render(label + "*"))
			} else {
				b.WriteString(calendarDayStyle.Render(label))
			}
		}
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	if len(month.Days)%7 != 0 {
		b.WriteString("\n")
	}
}
