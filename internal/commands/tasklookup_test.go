package commands

import (
	"testing"

	"performate/internal/service"
)

var lookupTasks = []service.Task{
	{ID: 3, Title: "Buy milk"},
	{ID: 7, Title: "Buy eggs"},
	{ID: 12, Title: "Call dentist", Subtasks: []service.Subtask{
		{ID: 101, Title: "find number"},
	}},
}

func TestFindTask_ByID(t *testing.T) {
	task, err := findTask(lookupTasks, "7")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if task.Title != "Buy eggs" {
		t.Errorf("task = %+v", task)
	}
}

func TestFindTask_ByTitlePrefix(t *testing.T) {
	task, err := findTask(lookupTasks, "call")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if task.ID != 12 {
		t.Errorf("task = %+v", task)
	}
}

func TestFindTask_AmbiguousPrefix(t *testing.T) {
	if _, err := findTask(lookupTasks, "buy"); err == nil {
		t.Fatal("expected ambiguity error")
	}
}

func TestFindTask_NotFound(t *testing.T) {
	if _, err := findTask(lookupTasks, "laundry"); err == nil {
		t.Fatal("expected not-found error")
	}
	if _, err := findTask(lookupTasks, "99"); err == nil {
		t.Fatal("expected not-found error for unknown id")
	}
}

func TestFindSubtask(t *testing.T) {
	st, err := findSubtask(lookupTasks, 101)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if st.Title != "find number" {
		t.Errorf("subtask = %+v", st)
	}
	if _, err := findSubtask(lookupTasks, 999); err == nil {
		t.Fatal("expected not-found error")
	}
}
