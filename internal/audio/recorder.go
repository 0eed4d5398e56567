package audio

import (
	"errors"
	"sync"

	"github.com/gen2brain/malgo"
)

// Capture parameters: 16 kHz mono s16, what the speech backend expects.
const (
	captureRate     = 16000
	captureChannels = 1
)

// ErrNotRecording is returned by Stop without a matching Start.
var ErrNotRecording = errors.New("not recording")

// captureDevice is the slice of malgo.Device the recorder drives.
type captureDevice interface {
	Start() error
	Uninit()
}

// MicRecorder captures from the default input device via miniaudio.
type MicRecorder struct {
	ctx *malgo.AllocatedContext

	mu        sync.Mutex
	device    captureDevice
	pcm       []byte
	recording bool
}

// NewMicRecorder initializes the audio context. Fails on headless
// machines without a capture backend; callers fall back to file input.
func NewMicRecorder() (*MicRecorder, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, err
	}
	return &MicRecorder{ctx: ctx}, nil
}

// Start opens the capture device and begins accumulating PCM.
func (r *MicRecorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return nil
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatS16
	cfg.Capture.Channels = captureChannels
	cfg.SampleRate = captureRate
	cfg.Alsa.NoMMap = 1

	r.pcm = nil
	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			r.mu.Lock()
			r.pcm = append(r.pcm, input...)
			r.mu.Unlock()
		},
	}

	device, err := malgo.InitDevice(r.ctx.Context, cfg, callbacks)
	if err != nil {
		return err
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return err
	}
	r.device = device
	r.recording = true
	return nil
}

// Stop ends the capture and returns the take as a wav blob.
//
// Uninit waits for the capture worker, and the worker's data callback
// takes r.mu; holding the lock across Uninit would deadlock against an
// in-flight callback. So the device is detached under the lock, torn
// down outside it, and the PCM snapshot taken afterwards so the final
// callback's data is included.
func (r *MicRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	device := r.device
	r.device = nil
	r.recording = false
	r.mu.Unlock()

	device.Uninit()

	r.mu.Lock()
	pcm := r.pcm
	r.pcm = nil
	r.mu.Unlock()
	return EncodeWAV(pcm, captureRate, captureChannels), nil
}

// Close releases the audio context. The device, if still open, is torn
// down outside the lock for the same reason as in Stop.
func (r *MicRecorder) Close() error {
	r.mu.Lock()
	device := r.device
	r.device = nil
	r.recording = false
	r.mu.Unlock()

	if device != nil {
		device.Uninit()
	}

	if err := r.ctx.Uninit(); err != nil {
		return err
	}
	r.ctx.Free()
	return nil
}
