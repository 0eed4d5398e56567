package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/service"
	"performate/internal/session"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in with email and password" }
func (c *LoginCmd) Usage() string {
	return "performate login --email <email> --password <password>"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.email == "" || c.password == "" {
		fmt.Fprintln(errOut, "error: --email and --password are required")
		return exitcode.UserError
	}

	store := session.NewStore(cfg, newLogger(cfg, errOut))
	if err := store.Login(ctx, c.email, c.password); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			fmt.Fprintln(errOut, "error: invalid email or password")
			return exitcode.AuthError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		if name := store.DisplayName(); name != "" {
			fmt.Fprintf(out, "logged in as %s\n", name)
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
	return exitcode.Success
}
