package asr

import (
	"context"
	"sync"
)

// Fake returns canned text, for tests and the -faketext flag.
type Fake struct {
	Text string
	Err  error

	mu     sync.Mutex
	loaded bool
}

func (f *Fake) LoadModel(_ context.Context, _, _ string) error {
	f.mu.Lock()
	f.loaded = true
	f.mu.Unlock()
	return nil
}

func (f *Fake) Transcribe(_ context.Context, _ []float32) (string, error) {
	return f.Text, f.Err
}

func (f *Fake) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *Fake) Unload() {
	f.mu.Lock()
	f.loaded = false
	f.mu.Unlock()
}
