package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/output"
	"performate/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd updates a task's title or description.
type EditCmd struct {
	title       string
	description string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title or description" }
func (c *EditCmd) Usage() string {
	return "performate edit [--title <t>] [--description <d>] <task-id-or-title-prefix>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "description", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}
	if c.title == "" && c.description == "" {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --description)")
		return exitcode.UserError
	}

	tasks, err := svc.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	task, err := findTask(tasks, strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	upd := service.TaskUpdate{TaskID: task.ID, TaskType: service.TypeTask}
	if c.title != "" {
		upd.Title = &c.title
	}
	if c.description != "" {
		upd.Description = &c.description
	}

	if err := svc.UpdateTask(ctx, upd); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	tasks, err = svc.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		for _, t := range tasks {
			if t.ID == task.ID {
				output.FormatTask(out, t.ID, t)
			}
		}
	}
	return exitcode.Success
}
