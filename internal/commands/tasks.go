package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/output"
	"performate/internal/service"
)

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command: the to-do list view.
type TasksCmd struct {
	all bool
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return []string{"todo"} }
func (c *TasksCmd) Synopsis() string  { return "List tasks" }
func (c *TasksCmd) Usage() string     { return "performate tasks [--all]" }
func (c *TasksCmd) NeedsAuth() bool   { return true }

func (c *TasksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks, err := svc.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	shown := 0
	for _, task := range tasks {
		if !c.all && task.IsCompleted {
			continue
		}
		output.FormatTask(out, task.ID, task)
		// Empty subtask lists are omitted, never rendered as a section.
		if len(task.Subtasks) > 0 {
			output.FormatSubtasks(out, task.Subtasks)
		}
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
