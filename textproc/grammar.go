package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// Spoken abbreviations the recognizer emits in lowercase. Uppercased
// unless they sit in a file-extension position.
var abbrevPattern = regexp.MustCompile(`(?i)\b(http|https|api|url|html|css|json|xml|sql|gui|cli|sdk|ide|dom|ajax|rest|crud|orm|mvc|jwt|oauth|ssr|csr|pwa|spa|seo|cdn|dns|ssh|ssl|tls|ftp|tcp|udp|ip|os|cpu|gpu|ram|ssd|hdd|usb|pdf|csv|svg|png|jpg|gif|mp3|mp4|avi|exe|dll|npm|yarn|pnpm|git|svn|aws|gcp|env)\b`)

// fileRefPattern matches a file reference at the start of the string,
// either still spoken ("test dot ts") or already literal ("test.ts").
var fileRefPattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9_-]*(\s+(dot|period)\s+|\.)(` + extAlternation + `)\b`)

// formatGrammar uppercases known spoken abbreviations and capitalizes
// sentence starts. A sentence start that is a file reference keeps its
// case: "test dot ts" must come out as test.ts, not Test.ts.
func formatGrammar(s string) string {
	s = expandAbbreviations(s)
	return capitalizeSentences(s)
}

func expandAbbreviations(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range abbrevPattern.FindAllStringIndex(s, -1) {
		start, end := m[0], m[1]
		b.WriteString(s[last:start])
		word := s[start:end]
		if extensionContext(s, start) {
			b.WriteString(strings.ToLower(word))
		} else {
			b.WriteString(strings.ToUpper(word))
		}
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// extensionContext reports whether the word at start sits right after a
// literal dot or after a spoken "dot"/"period", i.e. it is a file
// extension and must stay lowercase.
func extensionContext(s string, start int) bool {
	if start == 0 {
		return false
	}
	if s[start-1] == '.' || s[start-1] == '@' {
		return true
	}
	head := strings.TrimRight(s[:start], " ")
	if i := strings.LastIndexByte(head, ' '); i >= 0 {
		head = head[i+1:]
	}
	switch strings.ToLower(head) {
	case "dot", "period":
		return true
	}
	return false
}

func capitalizeSentences(s string) string {
	rs := []rune(s)
	capNext := true
	for i, c := range rs {
		if capNext && unicode.IsLetter(c) {
			if !fileRefPattern.MatchString(string(rs[i:])) {
				rs[i] = unicode.ToUpper(c)
			}
			capNext = false
			continue
		}
		if c == '.' || c == '!' || c == '?' {
			// a dot between alphanumerics is an extension, not a
			// sentence end
			before := i > 0 && isAlnum(rs[i-1])
			after := i+1 < len(rs) && isAlnum(rs[i+1])
			capNext = !(c == '.' && before && after)
		}
	}
	return string(rs)
}

func isAlnum(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c)
}
