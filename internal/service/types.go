// Package service defines the backend-agnostic interface for PerforMate
// operations.
package service

import "time"

// Task is a single to-do item. The task list is always fetched in full;
// identity is the ID.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	Subtasks    []Subtask  `json:"subtasks"`
}

// Subtask mirrors Task minus description and nesting.
type Subtask struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
}

// Task type discriminators for updates.
const (
	TypeTask    = "task"
	TypeSubtask = "subtask"
)

// TaskUpdate is a field update for a task or subtask. Nil pointers mean
// "leave unchanged". Mutations round-trip through the backend; views
// refetch the full list before trusting them.
type TaskUpdate struct {
	TaskID      int     `json:"task_id"`
	TaskType    string  `json:"task_type"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// Notification is a reminder raised server-side for a task.
type Notification struct {
	ID        int       `json:"id"`
	IsRead    bool      `json:"is_read"`
	TaskTitle string    `json:"task_title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AssistantReply is one assistant turn. Audio is the decoded reply
// audio (mpeg), present only on the voice path. Transcript is the
// recognized speech for a voice turn; empty on the text path.
type AssistantReply struct {
	Transcript string
	Response   string
	Audio      []byte
}
