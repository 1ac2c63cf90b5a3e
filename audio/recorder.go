package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyRecording is returned when Start is called on a take that is
// still open.
var ErrAlreadyRecording = errors.New("already recording")

// Recorder buffers one capture take at a time. Start opens the device,
// Stop closes it and returns the samples as float32, Cancel closes it
// and discards them.
type Recorder struct {
	ctx    Context
	device *DeviceInfo

	mu        sync.Mutex
	dev       CaptureDevice
	pcm       []byte
	lastPCM   []byte
	recording bool
	vad       *VAD
}

func NewRecorder(ctx Context, device *DeviceInfo) *Recorder {
	return &Recorder{ctx: ctx, device: device}
}

// EnableVAD turns on speech gating: takes with no detected voice come
// back empty from Stop.
func (r *Recorder) EnableVAD() error {
	v, err := NewVAD()
	if err != nil {
		return fmt.Errorf("init vad: %w", err)
	}
	r.mu.Lock()
	r.vad = v
	r.mu.Unlock()
	return nil
}

// HasSpeechTick reports speech activity since the previous call. Always
// false without VAD.
func (r *Recorder) HasSpeechTick() bool {
	r.mu.Lock()
	vad := r.vad
	r.mu.Unlock()
	if vad == nil {
		return false
	}
	return vad.HasSpeechTick()
}

func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return ErrAlreadyRecording
	}

	dev, err := r.ctx.NewCapture(r.device, CaptureConfig{
		SampleRate: SampleRate,
		Channels:   Channels,
	})
	if err != nil {
		return fmt.Errorf("open capture device: %w", err)
	}

	vad := r.vad
	if vad != nil {
		vad.Reset()
	}
	dev.SetCallback(func(data []byte, _ uint32) {
		r.mu.Lock()
		live := r.recording
		if live {
			r.pcm = append(r.pcm, data...)
		}
		r.mu.Unlock()
		if live && vad != nil {
			vad.Process(data)
		}
	})

	if err := dev.Start(); err != nil {
		dev.ClearCallback()
		dev.Close()
		return fmt.Errorf("start capture: %w", err)
	}

	r.dev = dev
	r.pcm = nil
	r.recording = true
	return nil
}

func (r *Recorder) Stop() ([]float32, error) {
	pcm, err := r.finish()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	vad := r.vad
	r.mu.Unlock()
	if vad != nil && !vad.VoiceDetected() {
		// no speech in the whole take, drop it
		return nil, nil
	}
	r.mu.Lock()
	r.lastPCM = pcm
	r.mu.Unlock()
	return decodePCM(pcm), nil
}

func (r *Recorder) Cancel() {
	_, _ = r.finish()
}

func (r *Recorder) finish() ([]byte, error) {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return nil, errors.New("not recording")
	}
	dev := r.dev
	r.recording = false
	r.dev = nil
	r.mu.Unlock()

	// outside the lock: the data callback grabs it
	dev.Stop()
	dev.ClearCallback()
	dev.Close()

	r.mu.Lock()
	pcm := r.pcm
	r.pcm = nil
	r.mu.Unlock()
	return pcm, nil
}

// LastPCM returns the raw 16-bit PCM of the most recent completed take,
// for archival.
func (r *Recorder) LastPCM() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPCM
}

func decodePCM(pcm []byte) []float32 {
	n := len(pcm) / 2
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		samples[i] = float32(s) / 32768
	}
	return samples
}
