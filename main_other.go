//go:build !linux

package main

import (
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	// Hotkey registration and the tray both need the OS main thread.
	mainthread.Init(run)
}
