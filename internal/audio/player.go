package audio

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// playbackRate is the speaker mixer rate; sources at other rates are
// resampled into it.
const playbackRate = beep.SampleRate(44100)

var speakerOnce sync.Once
var speakerErr error

// SpeakerPlayer plays blobs through the default output device.
type SpeakerPlayer struct{}

// NewSpeakerPlayer initializes the speaker on first use.
func NewSpeakerPlayer() (*SpeakerPlayer, error) {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(playbackRate, playbackRate.N(100_000_000))
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return &SpeakerPlayer{}, nil
}

// Play decodes the blob and blocks until playback finishes. Each blob
// is played exactly once.
func (p *SpeakerPlayer) Play(data []byte, format Format) error {
	rc := io.NopCloser(bytes.NewReader(data))

	var (
		streamer beep.StreamSeekCloser
		f        beep.Format
		err      error
	)
	switch format {
	case FormatWAV:
		streamer, f, err = wav.Decode(rc)
	case FormatMP3:
		streamer, f, err = mp3.Decode(rc)
	default:
		return fmt.Errorf("unsupported audio format: %s", format)
	}
	if err != nil {
		return err
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if f.SampleRate != playbackRate {
		source = beep.Resample(4, f.SampleRate, playbackRate, streamer)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(source, beep.Callback(func() {
		close(done)
	})))
	<-done
	return nil
}
