//go:build darwin

package inject

import (
	"fmt"

	"github.com/micmonay/keybd_event"

	"murmur/command"
)

func sendPaste() error {
	return press(stroke{keys: []int{keybd_event.VK_V}, super: true}) // Cmd+V
}

func strokesFor(cmd command.Command) ([]stroke, error) {
	one := func(s stroke) []stroke { return []stroke{s} }

	switch cmd {
	case command.Undo, command.DeleteLast:
		// "scratch that" undoes the last injection
		return one(stroke{keys: []int{keybd_event.VK_Z}, super: true}), nil
	case command.Redo:
		return one(stroke{keys: []int{keybd_event.VK_Z}, super: true, shift: true}), nil
	case command.Copy:
		return one(stroke{keys: []int{keybd_event.VK_C}, super: true}), nil
	case command.Cut:
		return one(stroke{keys: []int{keybd_event.VK_X}, super: true}), nil
	case command.Paste:
		return one(stroke{keys: []int{keybd_event.VK_V}, super: true}), nil
	case command.SelectAll:
		return one(stroke{keys: []int{keybd_event.VK_A}, super: true}), nil
	case command.Backspace:
		return one(stroke{keys: []int{keybd_event.VK_DELETE}}), nil
	case command.DeleteWord:
		return one(stroke{keys: []int{keybd_event.VK_DELETE}, alt: true}), nil
	case command.DeleteLine:
		return one(stroke{keys: []int{keybd_event.VK_DELETE}, super: true}), nil
	case command.Enter:
		return one(stroke{keys: []int{keybd_event.VK_RETURN}}), nil
	case command.Tab:
		return one(stroke{keys: []int{keybd_event.VK_TAB}}), nil
	case command.Escape:
		return one(stroke{keys: []int{keybd_event.VK_ESC}}), nil
	case command.Left:
		return one(stroke{keys: []int{keybd_event.VK_LEFT}}), nil
	case command.Right:
		return one(stroke{keys: []int{keybd_event.VK_RIGHT}}), nil
	case command.Up:
		return one(stroke{keys: []int{keybd_event.VK_UP}}), nil
	case command.Down:
		return one(stroke{keys: []int{keybd_event.VK_DOWN}}), nil
	case command.Home:
		return one(stroke{keys: []int{keybd_event.VK_HOME}}), nil
	case command.End:
		return one(stroke{keys: []int{keybd_event.VK_END}}), nil
	case command.WordLeft:
		return one(stroke{keys: []int{keybd_event.VK_LEFT}, alt: true}), nil
	case command.WordRight:
		return one(stroke{keys: []int{keybd_event.VK_RIGHT}, alt: true}), nil
	}
	return nil, fmt.Errorf("no keystroke for command %s", cmd)
}
