package command

import "regexp"

// phrase maps one spoken form to a command token. The recognizer set is
// fixed; trailing punctuation is tolerated because recognizers often
// append a period to the final word of an utterance.
type phrase struct {
	re  *regexp.Regexp
	cmd Command
}

var phrases = []phrase{
	{regexp.MustCompile(`(?i)\b(delete\s+that|scratch\s+that|remove\s+that|delete\s+last|scratch\s+last)\b[.,!?]?`), DeleteLast},
	{regexp.MustCompile(`(?i)\bundo(\s+(that|last|it))?\b[.,!?]?`), Undo},
	{regexp.MustCompile(`(?i)\bredo(\s+(that|last|it))?\b[.,!?]?`), Redo},
	{regexp.MustCompile(`(?i)\bselect\s+all(\s+text)?\b[.,!?]?`), SelectAll},
	{regexp.MustCompile(`(?i)\bcopy\s+(that|this|selection|it)\b[.,!?]?`), Copy},
	{regexp.MustCompile(`(?i)\bcut\s+(that|this|selection|it)\b[.,!?]?`), Cut},
	{regexp.MustCompile(`(?i)\bpaste(\s+(that|here|it))?\b[.,!?]?`), Paste},
	{regexp.MustCompile(`(?i)\b(delete\s+word|remove\s+word|backspace\s+word)\b[.,!?]?`), DeleteWord},
	{regexp.MustCompile(`(?i)\b(delete\s+line|remove\s+line|clear\s+line)\b[.,!?]?`), DeleteLine},
	{regexp.MustCompile(`(?i)\b(backspace|delete\s+character|remove\s+character)\b[.,!?]?`), Backspace},
	{regexp.MustCompile(`(?i)\b(press\s+enter|hit\s+enter|enter\s+key)\b[.,!?]?`), Enter},
	{regexp.MustCompile(`(?i)\b(press\s+tab|hit\s+tab|tab\s+key)\b[.,!?]?`), Tab},
	{regexp.MustCompile(`(?i)\b(press\s+escape|hit\s+escape|escape\s+key)\b[.,!?]?`), Escape},
	{regexp.MustCompile(`(?i)\b(go\s+left|move\s+left|cursor\s+left|left\s+arrow)\b[.,!?]?`), Left},
	{regexp.MustCompile(`(?i)\b(go\s+right|move\s+right|cursor\s+right|right\s+arrow)\b[.,!?]?`), Right},
	{regexp.MustCompile(`(?i)\b(go\s+up|move\s+up|cursor\s+up|up\s+arrow)\b[.,!?]?`), Up},
	{regexp.MustCompile(`(?i)\b(go\s+down|move\s+down|cursor\s+down|down\s+arrow)\b[.,!?]?`), Down},
	{regexp.MustCompile(`(?i)\b(go\s+to\s+start|go\s+to\s+beginning|beginning\s+of\s+line|home\s+key)\b[.,!?]?`), Home},
	{regexp.MustCompile(`(?i)\b(go\s+to\s+end|end\s+of\s+line|end\s+key)\b[.,!?]?`), End},
	{regexp.MustCompile(`(?i)\b(word\s+left|previous\s+word|back\s+word)\b[.,!?]?`), WordLeft},
	{regexp.MustCompile(`(?i)\b(word\s+right|next\s+word|forward\s+word)\b[.,!?]?`), WordRight},
}

// RewritePhrases converts spoken command phrases into their bracketed
// tokens. Order matters: "delete word" must match before the bare
// "backspace"/"delete character" recognizer can see its words.
func RewritePhrases(text string) string {
	for _, p := range phrases {
		text = p.re.ReplaceAllString(text, p.cmd.Token())
	}
	return text
}
