package commands

import (
	"fmt"
	"strconv"
	"strings"

	"performate/internal/service"
)

// findTask resolves a task reference against a fetched list. A numeric
// ref matches the task ID; anything else matches a case-insensitive
// title prefix and must be unambiguous.
func findTask(tasks []service.Task, ref string) (service.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return service.Task{}, fmt.Errorf("task reference required")
	}

	if id, err := strconv.Atoi(ref); err == nil {
		for _, t := range tasks {
			if t.ID == id {
				return t, nil
			}
		}
		return service.Task{}, fmt.Errorf("task not found: %d", id)
	}

	prefix := strings.ToLower(ref)
	var matches []service.Task
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.Title), prefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return service.Task{}, fmt.Errorf("task not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, fmt.Errorf("ambiguous task reference: %s", ref)
	}
}

// findSubtask resolves a subtask by ID across all tasks.
func findSubtask(tasks []service.Task, id int) (service.Subtask, error) {
	for _, t := range tasks {
		for _, st := range t.Subtasks {
			if st.ID == id {
				return st, nil
			}
		}
	}
	return service.Subtask{}, fmt.Errorf("subtask not found: %d", id)
}
