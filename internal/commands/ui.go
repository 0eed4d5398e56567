package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"performate/internal/audio"
	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/service"
	"performate/internal/session"
	"performate/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive interface.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return nil }
func (c *UICmd) Synopsis() string  { return "Start the interactive interface" }
func (c *UICmd) Usage() string     { return "performate ui" }
func (c *UICmd) NeedsAuth() bool   { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	log := newLogger(cfg, errOut)

	// Identity for the header. Failures degrade to a nameless header.
	store := session.NewStore(cfg, log)
	store.Init(ctx)
	displayName := store.DisplayName()

	opts := tui.Options{
		Service:     svc,
		DisplayName: displayName,
		Log:         log,
	}

	// Audio hardware is optional; without it the chat stays text-only.
	if rec, err := audio.NewMicRecorder(); err == nil {
		opts.Recorder = rec
		defer rec.Close()
	} else {
		log.Debug().Err(err).Msg("microphone unavailable")
	}
	if player, err := audio.NewSpeakerPlayer(); err == nil {
		opts.Player = player
	} else {
		log.Debug().Err(err).Msg("speaker unavailable")
	}

	program := tea.NewProgram(tui.New(opts), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
