// Package notify raises desktop notifications for events the user
// would otherwise miss when no terminal is visible.
package notify

import "github.com/gen2brain/beeep"

var disabled bool

func Disable() { disabled = true }

func Error(msg string) {
	if disabled {
		return
	}
	beeep.Alert("murmur", msg, "")
}

func Info(msg string) {
	if disabled {
		return
	}
	beeep.Notify("murmur", msg, "")
}
