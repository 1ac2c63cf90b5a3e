// Package session owns the recording lifecycle. One controller holds the
// single mutual-exclusion point of the daemon: every transition between
// Idle, Recording, Processing and Error is a check-and-set under its
// mutex, and any event with no legal transition from the current state
// is a logged no-op.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"murmur/log"
	"murmur/textproc"
)

type Status int

const (
	StatusIdle Status = iota
	StatusRecording
	StatusProcessing
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRecording:
		return "recording"
	case StatusProcessing:
		return "processing"
	case StatusError:
		return "error"
	}
	return "unknown"
}

type Mode int

const (
	ModePushToTalk Mode = iota
	ModeToggle
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "ptt", "push-to-talk", "pushtotalk":
		return ModePushToTalk, nil
	case "toggle":
		return ModeToggle, nil
	}
	return ModePushToTalk, fmt.Errorf("unknown mode %q", s)
}

const (
	defaultDebounce = 100 * time.Millisecond
	defaultCooldown = 2 * time.Second

	// captures shorter than this are accidental taps, not dictations
	minCaptureSamples = 16000 / 10
)

// Config controls the controller. Zero values pick the defaults.
type Config struct {
	Mode          Mode
	Debounce      time.Duration
	ErrorCooldown time.Duration
	Clipboard     bool
	Post          textproc.Config
}

// Controller drives one recording session at a time.
type Controller struct {
	capture  Capture
	asr      Transcriber
	delivery Delivery
	history  History
	cfg      Config
	events   *broadcaster

	mu        sync.Mutex
	status    Status
	modelID   string
	language  string
	startedAt time.Time
	lastPress time.Time
	errGen    int
	lastText  string
}

func NewController(capture Capture, asr Transcriber, delivery Delivery, history History, cfg Config) *Controller {
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounce
	}
	if cfg.ErrorCooldown <= 0 {
		cfg.ErrorCooldown = defaultCooldown
	}
	return &Controller{
		capture:  capture,
		asr:      asr,
		delivery: delivery,
		history:  history,
		cfg:      cfg,
		events:   newBroadcaster(),
		status:   StatusIdle,
	}
}

// Subscribe returns an owned handle on the event stream. The controller
// works fine with zero subscribers.
func (c *Controller) Subscribe() *Subscription {
	return c.events.subscribe()
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// LastText returns the most recent completed dictation.
func (c *Controller) LastText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastText
}

// SetClipboard flips between clipboard and inject delivery at runtime.
func (c *Controller) SetClipboard(on bool) {
	c.mu.Lock()
	c.cfg.Clipboard = on
	c.mu.Unlock()
}

// SetPostProcessing enables or disables the text pipeline at runtime.
func (c *Controller) SetPostProcessing(on bool) {
	c.mu.Lock()
	c.cfg.Post.Enabled = on
	c.mu.Unlock()
}

// LoadModel loads a transcription model. Rejected unless Idle so an
// in-flight dictation always finishes against the model it started with.
func (c *Controller) LoadModel(ctx context.Context, modelID, language string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusIdle {
		return fmt.Errorf("cannot load model while %s", c.status)
	}
	if err := c.asr.LoadModel(ctx, modelID, language); err != nil {
		return fmt.Errorf("load model %s: %w", modelID, err)
	}
	c.modelID = modelID
	c.language = language
	log.Infof("model loaded: %s (%s)", modelID, language)
	return nil
}

// HotkeyPressed handles the hotkey-down signal. Presses inside the
// debounce window of the previous accepted press are dropped.
func (c *Controller) HotkeyPressed() {
	c.mu.Lock()
	now := time.Now()
	if now.Sub(c.lastPress) < c.cfg.Debounce {
		c.mu.Unlock()
		log.Info("hotkey press dropped by debounce")
		return
	}
	c.lastPress = now
	mode := c.cfg.Mode
	c.mu.Unlock()

	if mode == ModeToggle {
		c.Toggle()
		return
	}
	c.startRecording()
}

// HotkeyReleased handles the hotkey-up signal. Meaningful only in
// push-to-talk mode.
func (c *Controller) HotkeyReleased() {
	if c.cfg.Mode != ModePushToTalk {
		return
	}
	c.stopRecording()
}

// Toggle flips between recording and not, for tray and UI callers. Same
// guards, same mutex as the hotkey path.
func (c *Controller) Toggle() {
	c.mu.Lock()
	status := c.status
	c.mu.Unlock()

	switch status {
	case StatusIdle:
		c.startRecording()
	case StatusRecording:
		c.stopRecording()
	default:
		log.Warnf("toggle ignored while %s", status)
	}
}

// Cancel discards an in-flight recording without transcription. Only
// Recording can be canceled: processing is already committed.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.status != StatusRecording {
		c.mu.Unlock()
		log.Warnf("cancel ignored while %s", c.status)
		return
	}
	c.status = StatusIdle
	c.mu.Unlock()

	c.capture.Cancel()
	log.Info("recording canceled")
}

func (c *Controller) startRecording() {
	c.mu.Lock()
	if c.status != StatusIdle {
		c.mu.Unlock()
		log.Warnf("start ignored while %s", c.status)
		return
	}
	if !c.asr.Loaded() {
		c.mu.Unlock()
		log.Error("start rejected: no model loaded")
		c.events.publish(Event{Kind: ErrorOccurred, Message: "No model loaded"})
		return
	}
	if err := c.capture.Start(); err != nil {
		// the transition aborts: status never left Idle
		c.mu.Unlock()
		log.Errorf("capture start failed: %v", err)
		c.events.publish(Event{Kind: ErrorOccurred, Message: "Could not start recording"})
		return
	}
	c.status = StatusRecording
	c.startedAt = time.Now()
	c.mu.Unlock()

	log.Info("recording started")
	c.events.publish(Event{Kind: RecordingStarted})
}

func (c *Controller) stopRecording() {
	c.mu.Lock()
	if c.status != StatusRecording {
		c.mu.Unlock()
		log.Warnf("stop ignored while %s", c.status)
		return
	}
	c.status = StatusProcessing
	startedAt := c.startedAt
	c.mu.Unlock()

	c.events.publish(Event{Kind: RecordingStopped})

	// processing runs off the event loop; new hotkey presses see
	// Processing and no-op until this finishes
	go c.process(startedAt)
}

func (c *Controller) process(startedAt time.Time) {
	samples, err := c.capture.Stop()
	if err != nil {
		c.fail("Recording failed", err)
		return
	}
	if len(samples) < minCaptureSamples {
		log.Info("capture too short, discarding")
		c.setIdle()
		return
	}

	text, err := c.asr.Transcribe(context.Background(), samples)
	if err != nil {
		c.fail("Transcription failed", err)
		return
	}

	c.mu.Lock()
	postCfg := c.cfg.Post
	clipboard := c.cfg.Clipboard
	c.mu.Unlock()

	res := textproc.Process(postCfg, text)
	final := res.Text()

	if err := c.deliver(res, clipboard); err != nil {
		// reported, not unwound: the text is still kept
		log.Errorf("delivery failed: %v", err)
		c.events.publish(Event{Kind: ErrorOccurred, Message: "Could not deliver text"})
	}

	c.mu.Lock()
	modelID, language := c.modelID, c.language
	c.lastText = final
	c.mu.Unlock()

	duration := time.Since(startedAt)
	go func() {
		if err := c.history.Record(final, modelID, language, duration); err != nil {
			log.Warnf("history record failed: %v", err)
		}
	}()
	log.Dictation(modelID, language, duration.Seconds(), len(final))

	c.setIdle()
	c.events.publish(Event{Kind: TranscriptionCompleted, Text: final})
}

// deliver walks the segments in spoken order. In inject mode text and
// commands interleave exactly as spoken; in clipboard mode commands run
// in order and the remaining text lands on the clipboard as one block.
func (c *Controller) deliver(res textproc.Result, clipboard bool) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if clipboard {
		for _, cmd := range res.Commands() {
			keep(c.delivery.Execute(cmd))
		}
		if text := res.Text(); text != "" {
			keep(c.delivery.CopyToClipboard(text))
		}
		return firstErr
	}

	for _, seg := range res.Segments {
		switch seg.Kind {
		case textproc.TextSegment:
			if seg.Text != "" {
				keep(c.delivery.Inject(seg.Text))
			}
		case textproc.CommandSegment:
			keep(c.delivery.Execute(seg.Command))
		}
	}
	return firstErr
}

func (c *Controller) setIdle() {
	c.mu.Lock()
	c.status = StatusIdle
	c.mu.Unlock()
}

// fail moves to Error, reports, and arms the cooldown back to Idle. The
// generation counter keeps a stale timer from flipping a newer state.
func (c *Controller) fail(message string, err error) {
	log.Errorf("%s: %v", message, err)

	c.mu.Lock()
	c.status = StatusError
	c.errGen++
	gen := c.errGen
	cooldown := c.cfg.ErrorCooldown
	c.mu.Unlock()

	c.events.publish(Event{Kind: ErrorOccurred, Message: message})

	time.AfterFunc(cooldown, func() {
		c.mu.Lock()
		if c.status == StatusError && c.errGen == gen {
			c.status = StatusIdle
		}
		c.mu.Unlock()
	})
}
