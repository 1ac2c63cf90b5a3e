// Package command defines the closed set of voice commands a dictation
// can trigger. Commands are keystroke actions, not text: the set is a
// fixed enum so that transcribed speech can never drive an effector
// lookup by arbitrary string.
package command

import "fmt"

type Command int

const (
	Undo Command = iota
	Redo
	Copy
	Cut
	Paste
	SelectAll
	DeleteLast
	Backspace
	DeleteWord
	DeleteLine
	Enter
	Tab
	Escape
	Left
	Right
	Up
	Down
	Home
	End
	WordLeft
	WordRight

	numCommands
)

var tokens = [numCommands]string{
	Undo:       "[[UNDO]]",
	Redo:       "[[REDO]]",
	Copy:       "[[COPY]]",
	Cut:        "[[CUT]]",
	Paste:      "[[PASTE]]",
	SelectAll:  "[[SELECT_ALL]]",
	DeleteLast: "[[DELETE_LAST]]",
	Backspace:  "[[BACKSPACE]]",
	DeleteWord: "[[DELETE_WORD]]",
	DeleteLine: "[[DELETE_LINE]]",
	Enter:      "[[ENTER]]",
	Tab:        "[[TAB]]",
	Escape:     "[[ESCAPE]]",
	Left:       "[[LEFT]]",
	Right:      "[[RIGHT]]",
	Up:         "[[UP]]",
	Down:       "[[DOWN]]",
	Home:       "[[HOME]]",
	End:        "[[END]]",
	WordLeft:   "[[WORD_LEFT]]",
	WordRight:  "[[WORD_RIGHT]]",
}

var byToken = func() map[string]Command {
	m := make(map[string]Command, numCommands)
	for c, t := range tokens {
		m[t] = Command(c)
	}
	return m
}()

// Token returns the bracketed marker form used inside pipeline text.
func (c Command) Token() string {
	if c < 0 || c >= numCommands {
		return fmt.Sprintf("[[INVALID_%d]]", int(c))
	}
	return tokens[c]
}

func (c Command) String() string { return c.Token() }

// FromToken resolves a bracketed marker to a command. Unknown markers
// return ok=false and must be left in the text untouched.
func FromToken(tok string) (Command, bool) {
	c, ok := byToken[tok]
	return c, ok
}

// All returns every registered command, in dispatch order.
func All() []Command {
	out := make([]Command, numCommands)
	for i := range out {
		out[i] = Command(i)
	}
	return out
}
