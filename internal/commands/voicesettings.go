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
	Register(&VoiceSettingsCmd{})
}

// VoiceSettingsCmd fetches a voice's default synthesis settings.
type VoiceSettingsCmd struct{}

func (c *VoiceSettingsCmd) Name() string      { return "voice-settings" }
func (c *VoiceSettingsCmd) Aliases() []string { return nil }
func (c *VoiceSettingsCmd) Synopsis() string  { return "Show a voice's synthesis settings" }
func (c *VoiceSettingsCmd) Usage() string     { return "performate voice-settings <voice-id>" }
func (c *VoiceSettingsCmd) NeedsAuth() bool   { return true }

func (c *VoiceSettingsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VoiceSettingsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: voice id required")
		return exitcode.UserError
	}

	settings, err := svc.VoiceSettings(ctx, args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	output.FormatSettings(out, settings)
	return exitcode.Success
}
