package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/service"
	"performate/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the current identity. Exercises the startup path:
// load the token, attempt the identity fetch, silently log out when
// the backend rejects it.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string      { return "whoami" }
func (c *WhoamiCmd) Aliases() []string { return nil }
func (c *WhoamiCmd) Synopsis() string  { return "Show the logged-in user" }
func (c *WhoamiCmd) Usage() string     { return "performate whoami [common flags]" }
func (c *WhoamiCmd) NeedsAuth() bool   { return false }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := session.NewStore(cfg, newLogger(cfg, errOut))
	store.Init(ctx)

	if !store.Authenticated() {
		fmt.Fprintln(out, "not logged in")
		return exitcode.Success
	}

	id := store.Identity()
	fmt.Fprintf(out, "%s %s <%s>\n", id.FirstName, id.LastName, id.Email)
	return exitcode.Success
}
