// Package audio is the capture/playback boundary. The rest of the
// client deals in blobs: a recorder yields a wav blob, a player
// consumes wav or mpeg bytes. Hardware access sits behind interfaces so
// tests and headless environments inject fakes.
package audio

// Format tags a byte blob for the player.
type Format string

const (
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
)

// Recorder captures microphone audio between Start and Stop.
// Press-and-hold maps onto this directly: press starts, release stops
// and hands the blob to the upload path.
type Recorder interface {
	// Start begins capturing.
	Start() error

	// Stop ends capturing and returns the recording as a wav blob.
	Stop() ([]byte, error)

	// Close releases the capture device.
	Close() error
}

// Player plays one blob to completion.
type Player interface {
	Play(data []byte, format Format) error
}
