package session

import (
	"sync"
	"time"
)

type EventKind int

const (
	RecordingStarted EventKind = iota
	RecordingStopped
	TranscriptionCompleted
	ErrorOccurred
)

func (k EventKind) String() string {
	switch k {
	case RecordingStarted:
		return "recording_started"
	case RecordingStopped:
		return "recording_stopped"
	case TranscriptionCompleted:
		return "transcription_completed"
	case ErrorOccurred:
		return "error_occurred"
	}
	return "unknown"
}

// Event is one controller notification. Text carries the final text on
// TranscriptionCompleted; Message carries the user-facing description on
// ErrorOccurred.
type Event struct {
	Kind    EventKind
	Text    string
	Message string
	When    time.Time
}

// Subscription is an owned handle on the controller's event stream.
// Close releases it; the controller never closes C under a subscriber.
type Subscription struct {
	C <-chan Event

	ch   chan Event
	once sync.Once
	b    *broadcaster
}

func (s *Subscription) Close() {
	s.once.Do(func() { s.b.remove(s) })
}

// broadcaster fans events out to subscribers. Sends never block the
// controller: a subscriber that falls behind loses events, not the
// session.
type broadcaster struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[*Subscription]struct{})}
}

func (b *broadcaster) subscribe() *Subscription {
	ch := make(chan Event, 16)
	s := &Subscription{C: ch, ch: ch, b: b}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

func (b *broadcaster) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

func (b *broadcaster) publish(e Event) {
	if e.When.IsZero() {
		e.When = time.Now()
	}
	b.mu.Lock()
	for s := range b.subs {
		select {
		case s.ch <- e:
		default:
		}
	}
	b.mu.Unlock()
}
