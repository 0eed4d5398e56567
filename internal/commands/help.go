package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "performate help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  performate                                          List open tasks
  performate ui [common flags]                        Interactive interface
  performate tasks [common flags] [--all]
  performate done [common flags] [--subtask] <ref>
  performate edit [common flags] [--title <t>] [--description <d>] <ref>
  performate calendar [common flags] [--months <n>]
  performate chat [common flags] <message...>
  performate say [common flags] --file <recording.wav> [--play]
  performate notifications [common flags] [--read <id>]
  performate voices [common flags] [--accent|--gender|--age|--description|--use-case <v>] [--options]
  performate voice-settings [common flags] <voice-id>
  performate voice-config [common flags]
  performate register [common flags] --first-name <n> --last-name <n> --email <e> --password <p> --password2 <p>
  performate login [common flags] --email <e> --password <p>
  performate logout [common flags]
  performate whoami [common flags]
  performate help
  performate version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
