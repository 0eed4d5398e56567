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
	Register(&VoiceConfigCmd{})
}

// VoiceConfigCmd shows the saved assistant voice configuration. The
// interactive wizard that builds one lives in the ui command.
type VoiceConfigCmd struct{}

func (c *VoiceConfigCmd) Name() string      { return "voice-config" }
func (c *VoiceConfigCmd) Aliases() []string { return nil }
func (c *VoiceConfigCmd) Synopsis() string  { return "Show the saved voice configuration" }
func (c *VoiceConfigCmd) Usage() string     { return "performate voice-config" }
func (c *VoiceConfigCmd) NeedsAuth() bool   { return true }

func (c *VoiceConfigCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VoiceConfigCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	vc, err := svc.VoiceConfig(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	if vc == nil {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no voice configuration saved")
		}
		return exitcode.Success
	}

	output.FormatConfig(out, *vc)
	return exitcode.Success
}
