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
	Register(&NotificationsCmd{})
}

// NotificationsCmd lists notifications and marks them read. The read
// flag is reflected locally only after the request succeeds.
type NotificationsCmd struct {
	read int
}

func (c *NotificationsCmd) Name() string      { return "notifications" }
func (c *NotificationsCmd) Aliases() []string { return []string{"notifs"} }
func (c *NotificationsCmd) Synopsis() string  { return "List notifications, mark them read" }
func (c *NotificationsCmd) Usage() string     { return "performate notifications [--read <id>]" }
func (c *NotificationsCmd) NeedsAuth() bool   { return true }

func (c *NotificationsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.read, "read", 0, "")
}

func (c *NotificationsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.read > 0 {
		if err := svc.MarkNotificationRead(ctx, c.read); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	}

	notifs, err := svc.Notifications(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(notifs) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no notifications")
		}
		return exitcode.Success
	}

	for _, n := range notifs {
		output.FormatNotification(out, n)
	}
	return exitcode.Success
}
