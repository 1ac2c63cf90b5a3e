package session

import (
	"context"
	"time"

	"murmur/command"
)

// Capture records microphone audio. Start and Stop bracket one take;
// Cancel discards an in-flight take without returning samples.
type Capture interface {
	Start() error
	Stop() ([]float32, error)
	Cancel()
}

// Transcriber converts captured samples to text. LoadModel must succeed
// before Transcribe is called.
type Transcriber interface {
	LoadModel(ctx context.Context, modelID, language string) error
	Transcribe(ctx context.Context, samples []float32) (string, error)
	Loaded() bool
}

// Delivery places finished text at its destination and executes voice
// commands. Execute only ever receives values from the closed command
// table.
type Delivery interface {
	Inject(text string) error
	CopyToClipboard(text string) error
	Execute(cmd command.Command) error
}

// History records completed dictations. Best effort: a failed Record
// never unwinds a delivery.
type History interface {
	Record(text, modelID, language string, duration time.Duration) error
}
