package textproc

import (
	"regexp"
	"strings"
)

// Spoken-symbol substitutions, most specific first. All patterns are
// word-bounded so "dashboard" never loses its dash. Ambiguous
// punctuation words require the "insert" prefix; a bare "period" in
// conversation must survive as text.
var symbolSubs = []struct {
	re  *regexp.Regexp
	out string
}{
	{regexp.MustCompile(`(?i)\bnew\s*paragraph\b[.,!?]?`), "\n\n"},
	{regexp.MustCompile(`(?i)\bnew\s*line\b[.,!?]?`), "\n"},
	{regexp.MustCompile(`(?i)\bsemi\s*colon\b`), ";"},
	{regexp.MustCompile(`(?i)\bback\s*slash\b`), `\`},
	{regexp.MustCompile(`(?i)\b(?:forward\s+)?slash\b`), "/"},
	{regexp.MustCompile(`(?i)\bunderscore\b`), "_"},
	{regexp.MustCompile(`(?i)\b(?:hyphen|dash)\b`), "-"},
	{regexp.MustCompile(`(?i)\bcolon\b`), ":"},
	{regexp.MustCompile(`(?i)\b(?:fat\s+)?arrow\b`), "=>"},
	{regexp.MustCompile(`(?i)\b(?:equals?(?:\s+sign)?|equal\s+to)\b`), "="},
	{regexp.MustCompile(`(?i)\binsert\s+ellipsis\b`), "..."},
	{regexp.MustCompile(`(?i)\binsert\s+question\s*mark\b`), "?"},
	{regexp.MustCompile(`(?i)\binsert\s+(?:exclamation\s*(?:mark|point)?|bang)\b`), "!"},
	{regexp.MustCompile(`(?i)\bopen\s+(?:double\s+)?quote\b`), `"`},
	{regexp.MustCompile(`(?i)\bclose\s+(?:double\s+)?quote\b`), `"`},
	{regexp.MustCompile(`(?i)\binsert\s+single\s+quote\b`), "'"},
	{regexp.MustCompile(`(?i)\binsert\s+(?:double\s+)?quote\b`), `"`},
	{regexp.MustCompile(`(?i)\binsert\s+apostrophe\b`), "'"},
	{regexp.MustCompile(`(?i)\binsert\s+comma\b`), ","},
	{regexp.MustCompile(`(?i)\binsert\s+(?:period|full\s+stop)\b`), "."},
	{regexp.MustCompile(`(?i)\binsert\s+ampersand\b`), "&"},
	{regexp.MustCompile(`(?i)\binsert\s+at\s*sign\b`), "@"},
	{regexp.MustCompile(`(?i)\binsert\s+(?:hash|hashtag|pound\s*sign|number\s*sign)\b`), "#"},
	{regexp.MustCompile(`(?i)\binsert\s+percent(?:\s*sign)?\b`), "%"},
	{regexp.MustCompile(`(?i)\binsert\s+dollar(?:\s*sign)?\b`), "$"},
	{regexp.MustCompile(`(?i)\binsert\s+(?:asterisk|star)\b`), "*"},
	{regexp.MustCompile(`(?i)\binsert\s+plus(?:\s*sign)?\b`), "+"},
	{regexp.MustCompile(`(?i)\binsert\s+minus(?:\s*sign)?\b`), "-"},
	{regexp.MustCompile(`(?i)\binsert\s+tilde\b`), "~"},
	{regexp.MustCompile(`(?i)\binsert\s+caret\b`), "^"},
	{regexp.MustCompile(`(?i)\binsert\s+(?:pipe|vertical\s*bar)\b`), "|"},
	{regexp.MustCompile(`(?i)\binsert\s+(?:less\s*than|left\s*angle(?:\s*bracket)?)\b`), "<"},
	{regexp.MustCompile(`(?i)\binsert\s+(?:greater\s*than|right\s*angle(?:\s*bracket)?)\b`), ">"},
	{regexp.MustCompile(`(?i)\bopen\s*(?:paren|parenthesis|bracket)\b`), "("},
	{regexp.MustCompile(`(?i)\bclose\s*(?:paren|parenthesis|bracket)\b`), ")"},
	{regexp.MustCompile(`(?i)\bopen\s*(?:brace|curly)\b`), "{"},
	{regexp.MustCompile(`(?i)\bclose\s*(?:brace|curly)\b`), "}"},
	{regexp.MustCompile(`(?i)\bopen\s*square(?:\s*bracket)?\b`), "["},
	{regexp.MustCompile(`(?i)\bclose\s*square(?:\s*bracket)?\b`), "]"},
	{regexp.MustCompile(`(?i)\btab\s+character\b`), "\t"},
}

// Caps commands rewrite a spoken span in place. "all caps" and
// "no caps" run to "end caps" or the end of the utterance; "cap"
// capitalizes exactly the next word.
var (
	allCapsRe = regexp.MustCompile(`(?i)\ball\s*caps\s+(.+?)(?:\s+end\s*caps\b[.,!?]?|$)`)
	noCapsRe  = regexp.MustCompile(`(?i)\bno\s*caps\s+(.+?)(?:\s+end\s*caps\b[.,!?]?|$)`)
	capWordRe = regexp.MustCompile(`(?i)\bcap\s+(\w+)`)

	noSpaceRe     = regexp.MustCompile(`(?i)\s*\bno\s*space\b\s*`)
	insertSpaceRe = regexp.MustCompile(`(?i)\s*\binsert\s+space\b\s*`)
)

// substituteSymbols converts spoken symbol names to their characters and
// then standalone "dot"/"period" words, line by line. A "dot" directly
// before a known extension is left for nothing: the code stage already
// consumed those, so any survivor here converts to ".".
func substituteSymbols(s string) string {
	s = applyCapsCommands(s)
	for _, sub := range symbolSubs {
		s = sub.re.ReplaceAllString(s, sub.out)
	}
	s = substituteDots(s)
	s = applySpacingCommands(s)
	return tightenSymbols(s)
}

func applyCapsCommands(s string) string {
	s = allCapsRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(allCapsRe.FindStringSubmatch(m)[1])
	})
	s = noCapsRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToLower(noCapsRe.FindStringSubmatch(m)[1])
	})
	s = capWordRe.ReplaceAllStringFunc(s, func(m string) string {
		word := capWordRe.FindStringSubmatch(m)[1]
		return strings.ToUpper(word[:1]) + word[1:]
	})
	return s
}

// applySpacingCommands joins across "no space" and forces exactly one
// space for "insert space", eating the gaps the spoken words leave.
func applySpacingCommands(s string) string {
	s = noSpaceRe.ReplaceAllString(s, "")
	s = insertSpaceRe.ReplaceAllString(s, " ")
	return s
}

func substituteDots(s string) string {
	lines := strings.Split(s, "\n")
	for li, line := range lines {
		words := strings.Split(line, " ")
		for wi, w := range words {
			switch strings.ToLower(w) {
			case "dot", "period":
				words[wi] = "."
			case "dot.", "period.", "dot,", "period,":
				// recognizer punctuation glued onto the spoken word
				words[wi] = "."
			}
		}
		lines[li] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}

// tightenSymbols removes the space the spoken form left around connector
// characters: "hello ." reads as "hello.", "a / b" as "a/b".
func tightenSymbols(s string) string {
	for _, conn := range []string{".", ",", ";", ":", "/", `\`, "_", "-"} {
		s = strings.ReplaceAll(s, " "+conn+" ", conn)
		if strings.HasSuffix(s, " "+conn) {
			s = s[:len(s)-len(conn)-1] + conn
		}
	}
	for _, p := range []string{"?", "!"} {
		s = strings.ReplaceAll(s, " "+p, p)
	}
	for _, open := range []string{"(", "{", "["} {
		s = strings.ReplaceAll(s, open+" ", open)
	}
	for _, close := range []string{")", "}", "]"} {
		s = strings.ReplaceAll(s, " "+close, close)
	}
	return strings.TrimSpace(s)
}
