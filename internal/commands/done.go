package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/output"
	"performate/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles a task's (or subtask's) completion flag. The update
// round-trips through the backend and the list is refetched before
// anything is shown; there is no optimistic local flip.
type DoneCmd struct {
	subtask bool
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "performate done [--subtask] <task-id-or-title-prefix>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.subtask, "subtask", false, "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	ref := strings.Join(args, " ")

	tasks, err := svc.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	var upd service.TaskUpdate
	if c.subtask {
		id, err := strconv.Atoi(strings.TrimSpace(ref))
		if err != nil {
			fmt.Fprintf(errOut, "error: subtask reference must be numeric: %s\n", ref)
			return exitcode.UserError
		}
		st, err := findSubtask(tasks, id)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		completed := !st.IsCompleted
		upd = service.TaskUpdate{TaskID: st.ID, TaskType: service.TypeSubtask, IsCompleted: &completed}
	} else {
		task, err := findTask(tasks, ref)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		completed := !task.IsCompleted
		upd = service.TaskUpdate{TaskID: task.ID, TaskType: service.TypeTask, IsCompleted: &completed}
	}

	if err := svc.UpdateTask(ctx, upd); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	// Full refetch after the mutation; the server copy is authoritative.
	tasks, err = svc.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		for _, task := range tasks {
			if task.ID == upd.TaskID && upd.TaskType == service.TypeTask {
				output.FormatTask(out, task.ID, task)
			}
		}
	}
	return exitcode.Success
}
