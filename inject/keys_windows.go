//go:build windows

package inject

import (
	"fmt"

	"github.com/micmonay/keybd_event"

	"murmur/command"
)

func sendPaste() error {
	return press(stroke{keys: []int{keybd_event.VK_V}, ctrl: true})
}

// Keystroke commands are not wired up on Windows yet; text delivery
// works, command execution reports the gap instead of guessing at
// virtual-key names.
func strokesFor(cmd command.Command) ([]stroke, error) {
	return nil, fmt.Errorf("command %s not supported on windows", cmd)
}
