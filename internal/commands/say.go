package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"performate/internal/audio"
	"performate/internal/chat"
	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/refresh"
	"performate/internal/service"
)

func init() {
	Register(&SayCmd{})
}

// SayCmd sends one recorded voice message to the assistant. The
// recording is read from a wav file; with --play the spoken reply is
// played through the speakers after the text is printed.
type SayCmd struct {
	file string
	play bool

	// test seams
	player audio.Player
}

func (c *SayCmd) Name() string      { return "say" }
func (c *SayCmd) Aliases() []string { return nil }
func (c *SayCmd) Synopsis() string  { return "Send a recorded voice message to the assistant" }
func (c *SayCmd) Usage() string     { return "performate say --file <recording.wav> [--play]" }
func (c *SayCmd) NeedsAuth() bool   { return true }

func (c *SayCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "file", "", "")
	fs.BoolVar(&c.play, "play", false, "")
}

func (c *SayCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.file == "" {
		fmt.Fprintln(errOut, "error: --file required")
		return exitcode.UserError
	}

	wav, err := os.ReadFile(c.file)
	if err != nil {
		fmt.Fprintf(errOut, "error: cannot read recording: %v\n", err)
		return exitcode.UserError
	}

	log := newLogger(cfg, errOut)
	session := chat.NewSession(svc, refresh.NewHub(log))

	reply, err := session.SendAudio(ctx, wav)
	if errors.Is(err, chat.ErrEmptyMessage) {
		fmt.Fprintln(errOut, "error: recording is empty")
		return exitcode.UserError
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	if reply.Transcript != "" {
		fmt.Fprintf(out, "you: %s\n", reply.Transcript)
	}
	fmt.Fprintln(out, reply.Response)

	if c.play && len(reply.Audio) > 0 {
		player := c.player
		if player == nil {
			p, err := audio.NewSpeakerPlayer()
			if err != nil {
				fmt.Fprintf(errOut, "error: no audio output: %v\n", err)
				return exitcode.Success
			}
			player = p
		}
		if err := player.Play(reply.Audio, audio.FormatMP3); err != nil {
			log.Debug().Err(err).Msg("playback failed")
			fmt.Fprintf(errOut, "error: playback failed: %v\n", err)
		}
	}
	return exitcode.Success
}
