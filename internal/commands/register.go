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
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	firstName string
	lastName  string
	email     string
	password  string
	password2 string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "performate register --first-name <name> --last-name <name> --email <email> --password <pw> --password2 <pw>"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.firstName, "first-name", "", "")
	fs.StringVar(&c.lastName, "last-name", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password2, "password2", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.firstName == "" || c.lastName == "" || c.email == "" || c.password == "" || c.password2 == "" {
		fmt.Fprintln(errOut, "error: all fields are required")
		return exitcode.UserError
	}

	store := session.NewStore(cfg, newLogger(cfg, errOut))
	err := store.Register(ctx, session.RegisterRequest{
		FirstName: c.firstName,
		LastName:  c.lastName,
		Email:     c.email,
		Password:  c.password,
		Password2: c.password2,
	})
	if err != nil {
		if errors.Is(err, session.ErrPasswordMismatch) {
			fmt.Fprintln(errOut, "error: passwords do not match")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "registered; run 'performate ui' to configure your assistant voice")
	}
	return exitcode.Success
}
