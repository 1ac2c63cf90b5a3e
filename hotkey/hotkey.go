// Package hotkey turns a global key combination into keydown/keyup
// signals. Linux reads evdev directly so the hotkey works on Wayland;
// everywhere else golang.design/x/hotkey registers with the OS.
package hotkey

import (
	"fmt"
	"regexp"
	"strings"
)

const DefaultCombo = "ctrl+shift+space"

type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

// Combo is a parsed key combination: one key plus at least one modifier.
type Combo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Super bool
	Key   string
}

var keyNamePattern = regexp.MustCompile(`^([a-z0-9]|space|f[1-9]|f1[0-2])$`)

// ParseCombo parses strings like "ctrl+shift+space" or "super+f9".
// Modifier aliases: control, option/opt, cmd/command/meta/win.
func ParseCombo(s string) (Combo, error) {
	var c Combo
	for _, part := range strings.Split(strings.ToLower(s), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control":
			c.Ctrl = true
		case "shift":
			c.Shift = true
		case "alt", "option", "opt":
			c.Alt = true
		case "super", "cmd", "command", "meta", "win":
			c.Super = true
		case "":
			return Combo{}, fmt.Errorf("malformed hotkey %q", s)
		default:
			if c.Key != "" {
				return Combo{}, fmt.Errorf("hotkey %q has more than one key", s)
			}
			if !keyNamePattern.MatchString(part) {
				return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", s, part)
			}
			c.Key = part
		}
	}
	if c.Key == "" {
		return Combo{}, fmt.Errorf("hotkey %q has no key", s)
	}
	if !c.Ctrl && !c.Shift && !c.Alt && !c.Super {
		return Combo{}, fmt.Errorf("hotkey %q needs at least one modifier", s)
	}
	return c, nil
}

func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Super {
		parts = append(parts, "super")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}
