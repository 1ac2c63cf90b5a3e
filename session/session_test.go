package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"murmur/command"
	"murmur/textproc"
)

type fakeCapture struct {
	mu       sync.Mutex
	starts   int
	stops    int
	cancels  int
	samples  []float32
	startErr error
	stopErr  error
}

func (f *fakeCapture) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	return f.startErr
}

func (f *fakeCapture) Stop() ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return f.samples, f.stopErr
}

func (f *fakeCapture) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
}

func (f *fakeCapture) counts() (starts, stops, cancels int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts, f.stops, f.cancels
}

type fakeTranscriber struct {
	mu      sync.Mutex
	loaded  bool
	text    string
	err     error
	loadErr error
	calls   int
	block   chan struct{}
}

func (f *fakeTranscriber) LoadModel(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = true
	return nil
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []float32) (string, error) {
	f.mu.Lock()
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.text, f.err
}

func (f *fakeTranscriber) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *fakeTranscriber) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeDelivery records every operation in call order so tests can check
// interleaving, not just counts.
type fakeDelivery struct {
	mu        sync.Mutex
	ops       []string
	injectErr error
}

func (f *fakeDelivery) Inject(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "inject:"+text)
	return f.injectErr
}

func (f *fakeDelivery) CopyToClipboard(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "copy:"+text)
	return nil
}

func (f *fakeDelivery) Execute(cmd command.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, "exec:"+cmd.Token())
	return nil
}

func (f *fakeDelivery) operations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.ops))
	copy(out, f.ops)
	return out
}

type historyRecord struct {
	text, model, lang string
	duration          time.Duration
}

type fakeHistory struct {
	mu      sync.Mutex
	records []historyRecord
	err     error
}

func (f *fakeHistory) Record(text, modelID, language string, duration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, historyRecord{text, modelID, language, duration})
	return f.err
}

func (f *fakeHistory) recorded() []historyRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]historyRecord, len(f.records))
	copy(out, f.records)
	return out
}

type harness struct {
	ctrl     *Controller
	capture  *fakeCapture
	asr      *fakeTranscriber
	delivery *fakeDelivery
	history  *fakeHistory
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	if cfg.Debounce == 0 {
		cfg.Debounce = time.Nanosecond
	}
	if cfg.ErrorCooldown == 0 {
		cfg.ErrorCooldown = 40 * time.Millisecond
	}
	h := &harness{
		capture:  &fakeCapture{samples: make([]float32, 16000)},
		asr:      &fakeTranscriber{text: "hello world"},
		delivery: &fakeDelivery{},
		history:  &fakeHistory{},
	}
	h.ctrl = NewController(h.capture, h.asr, h.delivery, h.history, cfg)
	if err := h.ctrl.LoadModel(context.Background(), "base.en", "en"); err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	return h
}

func waitStatus(t *testing.T, c *Controller, want Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Status() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for status %v, have %v", want, c.Status())
}

func waitEvent(t *testing.T, sub *Subscription, kind EventKind) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-sub.C:
			if e.Kind == kind {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %v event", kind)
		}
	}
}

func TestPushToTalkFlow(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	sub := h.ctrl.Subscribe()
	defer sub.Close()

	h.ctrl.HotkeyPressed()
	waitEvent(t, sub, RecordingStarted)
	if got := h.ctrl.Status(); got != StatusRecording {
		t.Fatalf("status after press: %v", got)
	}

	h.ctrl.HotkeyReleased()
	waitEvent(t, sub, RecordingStopped)
	e := waitEvent(t, sub, TranscriptionCompleted)
	if e.Text != "hello world" {
		t.Errorf("completed text %q", e.Text)
	}
	waitStatus(t, h.ctrl, StatusIdle)

	ops := h.delivery.operations()
	if len(ops) != 1 || ops[0] != "inject:hello world" {
		t.Errorf("delivery ops %v, want exactly one inject", ops)
	}

	deadline := time.Now().Add(time.Second)
	for len(h.history.recorded()) == 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	recs := h.history.recorded()
	if len(recs) != 1 {
		t.Fatalf("history records %d, want 1", len(recs))
	}
	if recs[0].text != "hello world" || recs[0].model != "base.en" || recs[0].lang != "en" {
		t.Errorf("history record %+v", recs[0])
	}
	if h.ctrl.LastText() != "hello world" {
		t.Errorf("last text %q", h.ctrl.LastText())
	}
}

func TestToggleFlow(t *testing.T) {
	h := newHarness(t, Config{Mode: ModeToggle})
	sub := h.ctrl.Subscribe()
	defer sub.Close()

	h.ctrl.HotkeyPressed()
	waitEvent(t, sub, RecordingStarted)

	h.ctrl.HotkeyPressed()
	waitEvent(t, sub, TranscriptionCompleted)
	waitStatus(t, h.ctrl, StatusIdle)

	starts, stops, _ := h.capture.counts()
	if starts != 1 || stops != 1 {
		t.Errorf("capture starts=%d stops=%d, want 1/1", starts, stops)
	}
}

func TestReleaseWhileIdleIsNoOp(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	h.ctrl.HotkeyReleased()
	if got := h.ctrl.Status(); got != StatusIdle {
		t.Fatalf("status %v", got)
	}
	if _, stops, _ := h.capture.counts(); stops != 0 {
		t.Errorf("capture stopped on stray release")
	}
}

func TestEventsIgnoredWhileProcessing(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	h.asr.block = make(chan struct{})

	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)
	h.ctrl.HotkeyReleased()
	waitStatus(t, h.ctrl, StatusProcessing)

	// duplicate and out-of-order events during processing
	h.ctrl.HotkeyPressed()
	h.ctrl.HotkeyReleased()
	h.ctrl.Cancel()
	if got := h.ctrl.Status(); got != StatusProcessing {
		t.Fatalf("status changed during processing: %v", got)
	}

	close(h.asr.block)
	waitStatus(t, h.ctrl, StatusIdle)

	if calls := h.asr.callCount(); calls != 1 {
		t.Errorf("transcribe calls %d, want 1", calls)
	}
	starts, _, cancels := h.capture.counts()
	if starts != 1 || cancels != 0 {
		t.Errorf("capture starts=%d cancels=%d", starts, cancels)
	}
}

func TestDebounceDropsRapidPresses(t *testing.T) {
	h := newHarness(t, Config{Mode: ModeToggle, Debounce: 200 * time.Millisecond})

	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)

	// inside the window: would toggle the recording off if accepted
	h.ctrl.HotkeyPressed()
	if got := h.ctrl.Status(); got != StatusRecording {
		t.Fatalf("debounced press toggled the session: %v", got)
	}
	if starts, stops, _ := h.capture.counts(); starts != 1 || stops != 0 {
		t.Errorf("capture starts=%d stops=%d", starts, stops)
	}
}

func TestStartRejectedWithoutModel(t *testing.T) {
	capture := &fakeCapture{samples: make([]float32, 16000)}
	ctrl := NewController(capture, &fakeTranscriber{}, &fakeDelivery{}, &fakeHistory{}, Config{Debounce: time.Nanosecond})
	sub := ctrl.Subscribe()
	defer sub.Close()

	ctrl.HotkeyPressed()
	waitEvent(t, sub, ErrorOccurred)
	if got := ctrl.Status(); got != StatusIdle {
		t.Fatalf("status %v, want idle", got)
	}
	if starts, _, _ := capture.counts(); starts != 0 {
		t.Errorf("capture started without a model")
	}
}

func TestLoadModelRejectedWhileRecording(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)

	if err := h.ctrl.LoadModel(context.Background(), "small.en", "en"); err == nil {
		t.Fatal("LoadModel succeeded while recording")
	}
}

func TestCaptureStartFailureStaysIdle(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	h.capture.startErr = errors.New("device busy")
	sub := h.ctrl.Subscribe()
	defer sub.Close()

	h.ctrl.HotkeyPressed()
	waitEvent(t, sub, ErrorOccurred)
	if got := h.ctrl.Status(); got != StatusIdle {
		t.Fatalf("status %v, want idle after aborted start", got)
	}
}

func TestTranscriptionFailureCoolsDownToIdle(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk, ErrorCooldown: 40 * time.Millisecond})
	h.asr.err = errors.New("model crashed")
	sub := h.ctrl.Subscribe()
	defer sub.Close()

	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)
	h.ctrl.HotkeyReleased()

	waitEvent(t, sub, ErrorOccurred)
	waitStatus(t, h.ctrl, StatusError)
	waitStatus(t, h.ctrl, StatusIdle)

	if ops := h.delivery.operations(); len(ops) != 0 {
		t.Errorf("delivery ran after failure: %v", ops)
	}
}

func TestCancelDiscardsRecording(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)

	h.ctrl.Cancel()
	waitStatus(t, h.ctrl, StatusIdle)

	if _, _, cancels := h.capture.counts(); cancels != 1 {
		t.Errorf("capture cancels %d, want 1", cancels)
	}
	if ops := h.delivery.operations(); len(ops) != 0 {
		t.Errorf("canceled recording delivered: %v", ops)
	}
	if recs := h.history.recorded(); len(recs) != 0 {
		t.Errorf("canceled recording recorded: %v", recs)
	}
}

func TestEmptyCaptureDiscardedSilently(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	h.capture.samples = make([]float32, 100)

	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)
	h.ctrl.HotkeyReleased()
	waitStatus(t, h.ctrl, StatusIdle)

	if calls := h.asr.callCount(); calls != 0 {
		t.Errorf("transcribed an accidental tap")
	}
	if ops := h.delivery.operations(); len(ops) != 0 {
		t.Errorf("delivered for an accidental tap: %v", ops)
	}
}

func TestDeliveryFailureStillRecordsHistory(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	h.delivery.injectErr = errors.New("no focused window")
	sub := h.ctrl.Subscribe()
	defer sub.Close()

	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)
	h.ctrl.HotkeyReleased()

	waitEvent(t, sub, ErrorOccurred)
	waitEvent(t, sub, TranscriptionCompleted)
	waitStatus(t, h.ctrl, StatusIdle)

	deadline := time.Now().Add(time.Second)
	for len(h.history.recorded()) == 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	if recs := h.history.recorded(); len(recs) != 1 {
		t.Errorf("history records %d, want 1", len(recs))
	}
}

func TestInjectModeInterleavesCommands(t *testing.T) {
	h := newHarness(t, Config{
		Mode: ModePushToTalk,
		Post: textproc.Config{Enabled: true},
	})
	h.asr.text = "hello press enter world"

	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)
	h.ctrl.HotkeyReleased()
	waitStatus(t, h.ctrl, StatusIdle)

	want := []string{"inject:Hello", "exec:[[ENTER]]", "inject:world"}
	got := h.delivery.operations()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("delivery ops %v, want %v", got, want)
	}
}

func TestClipboardModeExecutesThenCopies(t *testing.T) {
	h := newHarness(t, Config{
		Mode:      ModePushToTalk,
		Clipboard: true,
		Post:      textproc.Config{Enabled: true},
	})
	h.asr.text = "hello press enter world"

	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)
	h.ctrl.HotkeyReleased()
	waitStatus(t, h.ctrl, StatusIdle)

	want := []string{"exec:[[ENTER]]", "copy:Hello world"}
	got := h.delivery.operations()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("delivery ops %v, want %v", got, want)
	}
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	h := newHarness(t, Config{Mode: ModePushToTalk})
	sub := h.ctrl.Subscribe()
	sub.Close()
	sub.Close()

	// stream keeps working with zero subscribers
	h.ctrl.HotkeyPressed()
	waitStatus(t, h.ctrl, StatusRecording)
	h.ctrl.HotkeyReleased()
	waitStatus(t, h.ctrl, StatusIdle)
}
