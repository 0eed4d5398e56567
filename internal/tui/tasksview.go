package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/output"
	"performate/internal/service"
)

func (a *App) visibleTasks() []service.Task {
	if a.showAll {
		return a.tasks
	}
	open := make([]service.Task, 0, len(a.tasks))
	for _, t := range a.tasks {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}
	return open
}

func (a *App) updateTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := a.visibleTasks()

	switch msg.String() {
	case "up", "k":
		if a.taskCursor > 0 {
			a.taskCursor--
		}
	case "down", "j":
		if a.taskCursor < len(visible)-1 {
			a.taskCursor++
		}
	case "a":
		a.showAll = !a.showAll
		a.taskCursor = 0
	case "enter", " ":
		if a.taskCursor < len(visible) {
			task := visible[a.taskCursor]
			completed := !task.IsCompleted
			return a, a.toggleTaskCmd(service.TaskUpdate{
				TaskID:      task.ID,
				TaskType:    service.TypeTask,
				IsCompleted: &completed,
			})
		}
	case "s":
		// Toggle the first open subtask of the selected task.
		if a.taskCursor < len(visible) {
			task := visible[a.taskCursor]
			for _, st := range task.Subtasks {
				if !st.IsCompleted {
					completed := true
					return a, a.toggleTaskCmd(service.TaskUpdate{
						TaskID:      st.ID,
						TaskType:    service.TypeSubtask,
						IsCompleted: &completed,
					})
				}
			}
		}
	}
	return a, nil
}

func (a *App) renderTasks() string {
	var b strings.Builder
	title := "To-Do"
	if a.showAll {
		title = "To-Do (all)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	visible := a.visibleTasks()
	if len(visible) == 0 {
		b.WriteString(assistantTurnStyle.Render("No tasks. Ask the assistant to create one."))
		b.WriteString("\n")
		return b.String()
	}

	for i, task := range visible {
		cursor := "  "
		if i == a.taskCursor {
			cursor = cursorStyle.Render("> ")
		}

		mark := "[ ]"
		line := task.Title
		if task.IsCompleted {
			mark = "[x]"
			line = doneStyle.Render(line)
		}
		if task.DueDate != nil {
			line += dueStyle.Render("  due " + task.DueDate.Local().Format(output.DateLayout))
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, line)

		for _, st := range task.Subtasks {
			stMark := "[ ]"
			stLine := st.Title
			if st.IsCompleted {
				stMark = "[x]"
				stLine = doneStyle.Render(stLine)
			}
			b.WriteString(subtaskStyle.Render(stMark+" "+stLine) + "\n")
		}
	}
	return b.String()
}
