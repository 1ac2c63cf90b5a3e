// Package inject delivers finished text into the focused application and
// executes voice commands as keystrokes. Text goes in through the
// clipboard with a synthetic paste, then the previous clipboard contents
// come back.
package inject

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"

	"murmur/command"
)

const (
	// clipboard writes need a moment to propagate before the paste
	clipboardSettle = 80 * time.Millisecond
	// the focused app reads the selection before the clipboard goes back
	restoreDelay = 120 * time.Millisecond
)

var (
	kb     keybd_event.KeyBonding
	kbOnce sync.Once
	kbErr  error
)

func initKeyboard() error {
	kbOnce.Do(func() {
		kb, kbErr = keybd_event.NewKeyBonding()
		if kbErr == nil && runtime.GOOS == "linux" {
			// uinput devices need time to register
			time.Sleep(2 * time.Second)
		}
	})
	return kbErr
}

// stroke is one synthetic key press with modifiers.
type stroke struct {
	keys  []int
	ctrl  bool
	shift bool
	alt   bool
	super bool
}

func press(s stroke) error {
	if kbErr != nil {
		return kbErr
	}
	k := kb
	k.SetKeys(s.keys...)
	k.HasCTRL(s.ctrl)
	k.HasSHIFT(s.shift)
	k.HasALT(s.alt)
	k.HasSuper(s.super)
	return k.Launching()
}

// Injector implements the delivery port. One instance per process;
// operations are serialized so interleaved text and commands land in
// spoken order.
type Injector struct {
	mu sync.Mutex
}

// New prepares the synthetic keyboard. On failure the injector is still
// returned alongside the error: clipboard delivery keeps working, paste
// and command execution report the init error per call.
func New() (*Injector, error) {
	inj := &Injector{}
	if err := initKeyboard(); err != nil {
		return inj, fmt.Errorf("keyboard: %w", err)
	}
	return inj, nil
}

func (i *Injector) Inject(text string) error {
	if text == "" {
		return nil
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	prev, prevErr := clipboard.ReadAll()
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	time.Sleep(clipboardSettle)
	if err := sendPaste(); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	time.Sleep(restoreDelay)
	if prevErr == nil {
		_ = clipboard.WriteAll(prev)
	}
	return nil
}

func (i *Injector) CopyToClipboard(text string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// Execute turns a voice command into its keystroke sequence. The switch
// in strokesFor is exhaustive over the command table; anything else is
// rejected, never guessed.
func (i *Injector) Execute(cmd command.Command) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	strokes, err := strokesFor(cmd)
	if err != nil {
		return err
	}
	for n, s := range strokes {
		if n > 0 {
			time.Sleep(5 * time.Millisecond)
		}
		if err := press(s); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
	}
	return nil
}
