package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"performate/internal/chat"
	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/refresh"
	"performate/internal/service"
)

func init() {
	Register(&ChatCmd{})
}

// ChatCmd sends one typed message to the assistant and prints the
// reply. One-shot; the interactive transcript lives in the ui command.
type ChatCmd struct{}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return []string{"ask"} }
func (c *ChatCmd) Synopsis() string  { return "Send a message to the assistant" }
func (c *ChatCmd) Usage() string     { return "performate chat <message>" }
func (c *ChatCmd) NeedsAuth() bool   { return true }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	log := newLogger(cfg, errOut)
	session := chat.NewSession(svc, refresh.NewHub(log))

	reply, err := session.SendText(ctx, strings.Join(args, " "))
	if errors.Is(err, chat.ErrEmptyMessage) {
		fmt.Fprintln(errOut, "error: message required")
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	fmt.Fprintln(out, reply.Response)
	return exitcode.Success
}
