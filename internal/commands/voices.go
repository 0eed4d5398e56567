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
	"performate/internal/voice"
)

func init() {
	Register(&VoicesCmd{})
}

// VoicesCmd queries the voice catalog by facet. With --options it
// prints, per facet, the values still selectable alongside the current
// filter instead of querying the backend.
type VoicesCmd struct {
	accent  string
	gender  string
	age     string
	desc    string
	useCase string
	options bool
}

func (c *VoicesCmd) Name() string      { return "voices" }
func (c *VoicesCmd) Aliases() []string { return nil }
func (c *VoicesCmd) Synopsis() string  { return "Query the voice catalog" }
func (c *VoicesCmd) Usage() string {
	return "performate voices [--accent <v>] [--gender <v>] [--age <v>] [--description <v>] [--use-case <v>] [--options]"
}
func (c *VoicesCmd) NeedsAuth() bool { return true }

func (c *VoicesCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.accent, "accent", "", "")
	fs.StringVar(&c.gender, "gender", "", "")
	fs.StringVar(&c.age, "age", "", "")
	fs.StringVar(&c.desc, "description", "", "")
	fs.StringVar(&c.useCase, "use-case", "", "")
	fs.BoolVar(&c.options, "options", false, "")
}

func (c *VoicesCmd) filter() voice.Filter {
	return voice.Filter{
		Accent:  c.accent,
		Gender:  c.gender,
		Age:     c.age,
		Desc:    c.desc,
		UseCase: c.useCase,
	}
}

func (c *VoicesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	filter := c.filter()

	if c.options {
		for _, facet := range voice.Facets {
			opts := voice.Options(facet, filter)
			fmt.Fprintf(out, "%-12s %s\n", string(facet)+":", strings.Join(opts, ", "))
		}
		return exitcode.Success
	}

	voices, err := svc.QueryVoices(ctx, filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if len(voices) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no voices matched")
		}
		return exitcode.Success
	}

	for i, v := range voices {
		output.FormatVoice(out, i+1, v)
	}
	return exitcode.Success
}
