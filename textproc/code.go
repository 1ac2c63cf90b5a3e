package textproc

import (
	"regexp"
	"strings"
)

// Known file extensions for "name dot ext" detection. The table is
// deliberately closed: an unknown extension leaves the spoken "dot"
// alone for the symbol stage to handle.
const extAlternation = `js|ts|tsx|jsx|rs|py|go|rb|java|cpp|c|h|hpp|css|scss|sass|less|html|htm|json|yaml|yml|toml|xml|md|txt|sh|bash|zsh|fish|sql|vue|svelte|astro|php|swift|kt|scala|ex|exs|erl|hs|ml|fs|clj|lisp|r|jl|lua|pl|pm|env|lock`

var knownExtensions = func() map[string]bool {
	m := make(map[string]bool)
	for _, e := range strings.Split(extAlternation, "|") {
		m[e] = true
	}
	return m
}()

var (
	camelCasePattern    = regexp.MustCompile(`(?i)\bcamel\s*case\s+([a-z]+(?:\s+[a-z]+)*)\b`)
	snakeCasePattern    = regexp.MustCompile(`(?i)\bsnake\s*case\s+([a-z]+(?:\s+[a-z]+)*)\b`)
	pascalCasePattern   = regexp.MustCompile(`(?i)\bpascal\s*case\s+([a-z]+(?:\s+[a-z]+)*)\b`)
	kebabCasePattern    = regexp.MustCompile(`(?i)\bkebab\s*case\s+([a-z]+(?:\s+[a-z]+)*)\b`)
	constantCasePattern = regexp.MustCompile(`(?i)\b(?:constant|screaming)\s*case\s+([a-z]+(?:\s+[a-z]+)*)\b`)

	functionPattern = regexp.MustCompile(`(?i)\b(?:function|func|method|def)\s+([a-z]+(?:\s+[a-z]+)*)\b`)
	variablePattern = regexp.MustCompile(`(?i)\b(variable|var|const|let)\s+([a-z]+(?:\s+[a-z]+)*)\b`)
	classPattern    = regexp.MustCompile(`(?i)\bclass\s+([a-z]+(?:\s+[a-z]+)*)\b`)

	filePathPattern  = regexp.MustCompile(`(?i)\b([a-z][a-z0-9_-]*)\s+(?:dot|period)\s+(` + extAlternation + `)\b`)
	slashPathPattern = regexp.MustCompile(`(?i)\b([a-z][a-z0-9_.-]*)\s+(?:forward\s+)?slash\s+([a-z][a-z0-9_.-]*)`)

	keywordWordPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9]*`)
)

// Programming keywords kept in canonical lowercase when they appear
// mid-sentence with stray recognizer casing.
var keywords = func() map[string]string {
	list := []string{
		"if", "else", "for", "while", "do", "switch", "case", "break", "continue",
		"return", "function", "const", "let", "var", "class", "struct", "enum",
		"interface", "type", "import", "export", "from", "as", "default", "async",
		"await", "try", "catch", "finally", "throw", "new", "this", "self", "super",
		"public", "private", "protected", "static", "final", "abstract", "virtual",
		"override", "implements", "extends", "null", "undefined", "none", "nil",
		"true", "false", "and", "or", "not", "in", "is", "typeof", "instanceof",
		"void", "int", "float", "double", "string", "bool", "boolean", "char",
		"array", "list", "map", "set", "dict", "tuple", "option", "result",
		"println", "print", "console", "log", "debug", "info", "warn", "error",
	}
	m := make(map[string]string, len(list))
	for _, k := range list {
		m[k] = k
	}
	return m
}()

// formatCode rewrites explicit casing commands, declaration patterns,
// file references and path fragments. Best effort: anything ambiguous
// stays as spoken.
func formatCode(s string, conv Convention) string {
	s = camelCasePattern.ReplaceAllStringFunc(s, capturedName(camelCasePattern, toCamel))
	s = snakeCasePattern.ReplaceAllStringFunc(s, capturedName(snakeCasePattern, toSnake))
	s = pascalCasePattern.ReplaceAllStringFunc(s, capturedName(pascalCasePattern, toPascal))
	s = kebabCasePattern.ReplaceAllStringFunc(s, capturedName(kebabCasePattern, toKebab))
	s = constantCasePattern.ReplaceAllStringFunc(s, capturedName(constantCasePattern, toConstant))

	s = functionPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := functionPattern.FindStringSubmatch(m)[1]
		return identifier(name, conv) + "()"
	})
	s = variablePattern.ReplaceAllStringFunc(s, func(m string) string {
		caps := variablePattern.FindStringSubmatch(m)
		return strings.ToLower(caps[1]) + " " + identifier(caps[2], conv)
	})
	s = classPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := classPattern.FindStringSubmatch(m)[1]
		return "class " + toPascal(name)
	})

	// "test dot ts" -> "test.ts". Runs before the symbol stage so the
	// extension's dot is never treated as a standalone one.
	s = filePathPattern.ReplaceAllStringFunc(s, func(m string) string {
		caps := filePathPattern.FindStringSubmatch(m)
		return strings.ToLower(caps[1]) + "." + strings.ToLower(caps[2])
	})

	// "src slash components slash button" -> "src/components/button".
	// Looped: each pass joins one hop of the chain.
	for {
		next := slashPathPattern.ReplaceAllString(s, "$1/$2")
		if next == s {
			break
		}
		s = next
	}

	return normalizeKeywords(s)
}

func capturedName(re *regexp.Regexp, convert func(string) string) func(string) string {
	return func(m string) string {
		return convert(re.FindStringSubmatch(m)[1])
	}
}

// normalizeKeywords lowercases known programming keywords that picked up
// stray capitals, except at sentence starts where the capital is the
// grammar stage's work.
func normalizeKeywords(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range keywordWordPattern.FindAllStringIndex(s, -1) {
		start, end := m[0], m[1]
		word := s[start:end]
		proper, ok := keywords[strings.ToLower(word)]
		if !ok || word == proper || sentenceStart(s, start) {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(proper)
		last = end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

func sentenceStart(s string, i int) bool {
	for i > 0 {
		i--
		switch s[i] {
		case ' ', '\n', '\t':
			continue
		case '.', '!', '?':
			return true
		default:
			return false
		}
	}
	return true
}

func identifier(spoken string, conv Convention) string {
	if conv == Snake {
		return toSnake(spoken)
	}
	return toCamel(spoken)
}

func toCamel(spoken string) string {
	words := strings.Fields(spoken)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(titleWord(w))
	}
	return b.String()
}

func toPascal(spoken string) string {
	var b strings.Builder
	for _, w := range strings.Fields(spoken) {
		b.WriteString(titleWord(w))
	}
	return b.String()
}

func toSnake(spoken string) string {
	return strings.Join(strings.Fields(strings.ToLower(spoken)), "_")
}

func toKebab(spoken string) string {
	return strings.Join(strings.Fields(strings.ToLower(spoken)), "-")
}

func toConstant(spoken string) string {
	return strings.Join(strings.Fields(strings.ToUpper(spoken)), "_")
}

func titleWord(w string) string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
