// Package asr runs local speech recognition. The Whisper engine shells
// out to a whisper.cpp CLI binary with a temp WAV file; there is no
// cloud path.
package asr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Engine converts audio samples to text.
type Engine interface {
	LoadModel(ctx context.Context, modelID, language string) error
	Transcribe(ctx context.Context, samples []float32) (string, error)
	Loaded() bool
	Unload()
}

// Whisper drives a whisper.cpp command-line binary. Models live as
// ggml-<id>.bin files under the models directory.
type Whisper struct {
	bin       string
	modelsDir string

	mu        sync.Mutex
	modelPath string
	language  string
}

func NewWhisper(bin, modelsDir string) *Whisper {
	if bin == "" {
		bin = "whisper-cli"
	}
	return &Whisper{bin: bin, modelsDir: modelsDir}
}

// LoadModel resolves and checks the model file. The actual weights load
// happens inside the CLI per invocation; "loaded" here means the model
// is resolved and usable.
func (w *Whisper) LoadModel(_ context.Context, modelID, language string) error {
	path := modelID
	if !strings.ContainsRune(modelID, os.PathSeparator) {
		path = filepath.Join(w.modelsDir, "ggml-"+modelID+".bin")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("model %s: %w", modelID, err)
	}

	w.mu.Lock()
	w.modelPath = path
	w.language = language
	w.mu.Unlock()
	return nil
}

func (w *Whisper) Loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.modelPath != ""
}

func (w *Whisper) Unload() {
	w.mu.Lock()
	w.modelPath = ""
	w.mu.Unlock()
}

func (w *Whisper) Transcribe(ctx context.Context, samples []float32) (string, error) {
	w.mu.Lock()
	modelPath, language := w.modelPath, w.language
	w.mu.Unlock()
	if modelPath == "" {
		return "", fmt.Errorf("no model loaded")
	}

	tmp, err := os.CreateTemp("", "murmur-*.wav")
	if err != nil {
		return "", fmt.Errorf("temp wav: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteWAV(tmp, samples); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write wav: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	args := []string{
		"-m", modelPath,
		"-f", tmp.Name(),
		"--no-prints",
		"--no-timestamps",
	}
	if language != "" {
		args = append(args, "-l", language)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, w.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", w.bin, err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
