//go:build !darwin

package tray

import "fyne.io/systray"

// Init starts the tray loop and returns a channel closed when the user
// quits from the menu. Linux talks StatusNotifier over D-Bus so the
// loop does not need the main thread.
func Init() <-chan struct{} {
	go systray.Run(onReady, onExit)
	return quitCh
}
