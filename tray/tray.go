// Package tray puts murmur in the system tray: a status icon plus menu
// items for record/stop, copying the last dictation, and toggling
// post-processing and clipboard output.
package tray

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/systray"
)

var (
	quitCh    = make(chan struct{})
	readyCh   = make(chan struct{})
	closeOnce sync.Once

	toggleFn    func()
	copyLastFn  func()
	postCb      func(bool)
	clipboardCb func(bool)

	stateMu   sync.Mutex
	postOn    bool
	clipOn    bool
	recording bool
	errGen    int

	mStatus *systray.MenuItem
	mRecord *systray.MenuItem
	mCopy   *systray.MenuItem
	mPost   *systray.MenuItem
	mClip   *systray.MenuItem
)

const tooltipIdle = "murmur – push to talk"

func OnToggle(fn func())        { toggleFn = fn }
func OnCopyLast(fn func())      { copyLastFn = fn }
func OnPost(fn func(bool))      { postCb = fn }
func OnClipboard(fn func(bool)) { clipboardCb = fn }

// SetPost and SetClipboard seed the checkbox state; call before Init.
func SetPost(on bool)      { postOn = on }
func SetClipboard(on bool) { clipOn = on }

// ready reports whether onReady has built the menu. State setters drop
// their update when the tray host never came up (no StatusNotifier or
// D-Bus session); dictation keeps working without the icon.
func ready() bool {
	select {
	case <-readyCh:
		return true
	default:
		return false
	}
}

func SetRecording(rec bool) {
	if !ready() {
		return
	}
	stateMu.Lock()
	recording = rec
	errGen++
	stateMu.Unlock()

	if rec {
		systray.SetIcon(iconRecording)
		mStatus.SetTitle("Recording…")
		mRecord.SetTitle("Stop Recording")
	} else {
		setIdleIcon()
		mStatus.SetTitle("Idle")
		mRecord.SetTitle("Start Recording")
		systray.SetTooltip(tooltipIdle)
	}
}

func SetProcessing() {
	if !ready() {
		return
	}
	stateMu.Lock()
	recording = false
	stateMu.Unlock()

	systray.SetIcon(iconProcessing)
	mStatus.SetTitle("Transcribing…")
	mRecord.SetTitle("Start Recording")
}

// SetError shows the warning icon and message, then reverts to idle
// after ten seconds unless the state changed again in between.
func SetError(msg string) {
	if !ready() {
		return
	}
	stateMu.Lock()
	errGen++
	gen := errGen
	stateMu.Unlock()

	systray.SetIcon(iconError)
	mStatus.SetTitle("Error: " + msg)
	systray.SetTooltip("murmur – " + msg)

	go func() {
		time.Sleep(10 * time.Second)
		stateMu.Lock()
		stale := gen != errGen
		stateMu.Unlock()
		if stale {
			return
		}
		setIdleIcon()
		mStatus.SetTitle("Idle")
		systray.SetTooltip(tooltipIdle)
	}()
}

// SetLastText enables the copy item once a dictation has completed.
func SetLastText(text string, dur time.Duration) {
	if !ready() {
		return
	}
	preview := text
	if len(preview) > 24 {
		preview = preview[:24] + "…"
	}
	mCopy.SetTitle(fmt.Sprintf("Copy Last Text (%.1fs)", dur.Seconds()))
	mCopy.SetTooltip(preview)
	mCopy.Enable()
}

func Quit() {
	closeOnce.Do(func() { close(quitCh) })
}

func onReady() {
	setIdleIcon()
	systray.SetTooltip(tooltipIdle)

	mStatus = systray.AddMenuItem("Idle", "Current state")
	mStatus.Disable()

	systray.AddSeparator()

	mRecord = systray.AddMenuItem("Start Recording", "Start or stop recording")
	mCopy = systray.AddMenuItem("Copy Last Text", "Copy last dictation to clipboard")
	mCopy.Disable()

	systray.AddSeparator()

	mPost = systray.AddMenuItemCheckbox("Post-processing", "Apply text post-processing", postOn)
	mClip = systray.AddMenuItemCheckbox("Clipboard Output", "Copy instead of typing", clipOn)

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit murmur")

	go func() {
		for {
			select {
			case <-mRecord.ClickedCh:
				if toggleFn != nil {
					toggleFn()
				}
			case <-mCopy.ClickedCh:
				if copyLastFn != nil {
					copyLastFn()
				}
			case <-mPost.ClickedCh:
				toggleCheckbox(mPost, postCb)
			case <-mClip.ClickedCh:
				toggleCheckbox(mClip, clipboardCb)
			case <-mQuit.ClickedCh:
				Quit()
				return
			case <-quitCh:
				return
			}
		}
	}()

	close(readyCh)
}

func toggleCheckbox(item *systray.MenuItem, cb func(bool)) {
	if item.Checked() {
		item.Uncheck()
	} else {
		item.Check()
	}
	if cb != nil {
		cb(item.Checked())
	}
}

func onExit() {
	closeOnce.Do(func() { close(quitCh) })
}
