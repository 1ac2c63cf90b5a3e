package textproc

import (
	"regexp"
	"strings"

	"murmur/command"
)

var tokenPattern = regexp.MustCompile(`\[\[[A-Z0-9_]+\]\]`)

// extractCommands rewrites spoken command phrases to their bracketed
// tokens and splits the text into ordered segments at known tokens.
// Unknown bracketed tokens stay in the text untouched: only the closed
// command table can produce a CommandSegment.
func extractCommands(s string) []Segment {
	s = command.RewritePhrases(s)

	var segs []Segment
	var text strings.Builder
	flush := func() {
		t := strings.TrimSpace(text.String())
		text.Reset()
		if t != "" {
			segs = append(segs, Segment{Kind: TextSegment, Text: t})
		}
	}

	last := 0
	for _, m := range tokenPattern.FindAllStringIndex(s, -1) {
		start, end := m[0], m[1]
		cmd, ok := command.FromToken(s[start:end])
		if !ok {
			continue
		}
		text.WriteString(s[last:start])
		last = end
		flush()
		segs = append(segs, Segment{Kind: CommandSegment, Command: cmd})
	}
	text.WriteString(s[last:])
	flush()
	return segs
}
