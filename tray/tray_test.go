package tray

import (
	"testing"
	"time"
)

// Without a tray host onReady never runs. The state setters must come
// back immediately so the event consumer they run on keeps draining.
func TestSettersReturnWithoutTrayHost(t *testing.T) {
	done := make(chan struct{})
	go func() {
		SetRecording(true)
		SetProcessing()
		SetRecording(false)
		SetError("microphone unavailable")
		SetLastText("hello world", 2*time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tray setter blocked with no tray host running")
	}
}

func TestQuitIdempotent(t *testing.T) {
	Quit()
	Quit() // second close must not panic

	select {
	case <-quitCh:
	default:
		t.Fatal("quit channel not closed")
	}
}
