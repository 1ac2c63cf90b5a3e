package textproc

import (
	"strings"
	"testing"

	"murmur/command"
)

func enabled() Config { return Config{Enabled: true} }

func TestDisabledPassesThroughByteForByte(t *testing.T) {
	raw := "  hello   WORLD  dot ts [[ENTER]] \n\t "
	res := Process(Config{Enabled: false}, raw)
	if len(res.Segments) != 1 {
		t.Fatalf("want 1 segment, got %d", len(res.Segments))
	}
	if res.Segments[0].Text != raw {
		t.Errorf("disabled pipeline modified text: %q", res.Segments[0].Text)
	}
}

func TestPlainTextOnlyGainsSentenceCase(t *testing.T) {
	res := Process(enabled(), "the quick brown fox")
	if got := res.Text(); got != "The quick brown fox" {
		t.Errorf("got %q", got)
	}
	if len(res.Commands()) != 0 {
		t.Errorf("plain text produced commands: %v", res.Commands())
	}
}

func TestWhitespaceNormalization(t *testing.T) {
	res := Process(enabled(), "  hello   world  ")
	if got := res.Text(); got != "Hello world" {
		t.Errorf("got %q", got)
	}
}

func TestFileReferenceRoundTrip(t *testing.T) {
	res := Process(enabled(), "test dot ts")
	if got := res.Text(); got != "test.ts" {
		t.Errorf("got %q, want %q", got, "test.ts")
	}
}

func TestFileReferenceInSentence(t *testing.T) {
	res := Process(enabled(), "open the file main dot go please")
	if got := res.Text(); !strings.Contains(got, "main.go") {
		t.Errorf("got %q, want main.go inside", got)
	}
}

func TestUnknownExtensionLeftForSymbolStage(t *testing.T) {
	// "zzz" is not a known extension, so the dot converts standalone
	res := Process(enabled(), "test dot zzz")
	if got := res.Text(); got != "Test.zzz" {
		t.Errorf("got %q", got)
	}
}

func TestAbbreviations(t *testing.T) {
	res := Process(enabled(), "the api uses http and json")
	got := res.Text()
	for _, want := range []string{"API", "HTTP", "JSON"} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want %s uppercased", got, want)
		}
	}
}

func TestAbbreviationStaysLowerAsExtension(t *testing.T) {
	res := Process(enabled(), "check config dot env now")
	if got := res.Text(); !strings.Contains(got, "config.env") {
		t.Errorf("got %q, want config.env", got)
	}
}

func TestExplicitCasingCommands(t *testing.T) {
	cases := []struct{ in, want string }{
		{"use camel case get user data", "getUserData"},
		{"use snake case get user data", "get_user_data"},
		{"use pascal case get user data", "GetUserData"},
		{"use kebab case get user data", "get-user-data"},
		{"use constant case max retry count", "MAX_RETRY_COUNT"},
	}
	for _, c := range cases {
		if got := Process(enabled(), c.in).Text(); !strings.Contains(got, c.want) {
			t.Errorf("Process(%q) = %q, want %q inside", c.in, got, c.want)
		}
	}
}

func TestCasingConventionDeterministic(t *testing.T) {
	camel := Config{Enabled: true, Convention: Camel}
	snake := Config{Enabled: true, Convention: Snake}

	if got := Process(camel, "use variable user name").Text(); !strings.Contains(got, "variable userName") {
		t.Errorf("camel: got %q", got)
	}
	if got := Process(snake, "use variable user name").Text(); !strings.Contains(got, "variable user_name") {
		t.Errorf("snake: got %q", got)
	}
	// same input, same config, same output
	a := Process(camel, "use variable user name").Text()
	b := Process(camel, "use variable user name").Text()
	if a != b {
		t.Errorf("not deterministic: %q vs %q", a, b)
	}
}

func TestFunctionDeclaration(t *testing.T) {
	if got := Process(enabled(), "call function get user").Text(); !strings.Contains(got, "getUser()") {
		t.Errorf("got %q", got)
	}
}

func TestClassDeclaration(t *testing.T) {
	if got := Process(enabled(), "make a class user profile").Text(); !strings.Contains(got, "class UserProfile") {
		t.Errorf("got %q", got)
	}
}

func TestSlashPath(t *testing.T) {
	if got := Process(enabled(), "go to src slash components slash button").Text(); !strings.Contains(got, "src/components/button") {
		t.Errorf("got %q", got)
	}
}

func TestSymbolSubstitution(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a equals b", "="},
		{"a arrow b", "=>"},
		{"set user underscore name", "user_name"},
		{"say hello dash world", "hello-world"},
		{"value colon five", ":"},
		{"end semicolon", ";"},
	}
	for _, c := range cases {
		if got := Process(enabled(), c.in).Text(); !strings.Contains(got, c.want) {
			t.Errorf("Process(%q) = %q, want %q inside", c.in, got, c.want)
		}
	}
}

func TestInsertPunctuation(t *testing.T) {
	cases := []struct{ in, want string }{
		{"say hello insert period", "hello."},
		{"is it done insert question mark", "done?"},
		{"watch out insert exclamation", "out!"},
		{"wait insert ellipsis", "..."},
		{"it insert apostrophe s fine", "'"},
		{"rock insert ampersand roll", "&"},
		{"user insert at sign host", "@"},
		{"insert hash include", "#"},
		{"fifty insert percent off", "%"},
		{"insert dollar sign five", "$"},
		{"glob insert asterisk here", "*"},
		{"two insert plus two", "+"},
		{"a five insert minus three", "five-three"},
		{"home insert tilde path", "~"},
		{"insert caret top", "^"},
		{"pipe it insert pipe through", "|"},
		{"x insert less than y", "<"},
		{"y insert greater than x", ">"},
	}
	for _, c := range cases {
		if got := Process(enabled(), c.in).Text(); !strings.Contains(got, c.want) {
			t.Errorf("Process(%q) = %q, want %q inside", c.in, got, c.want)
		}
	}
}

func TestInsertQuotes(t *testing.T) {
	if got := Process(enabled(), "say insert quote hello").Text(); !strings.Contains(got, `"`) {
		t.Errorf("got %q, want double quote", got)
	}
	if got := Process(enabled(), "say insert single quote hi").Text(); !strings.Contains(got, "'") {
		t.Errorf("got %q, want single quote", got)
	}
	got := Process(enabled(), "open quote brave new world close quote").Text()
	if strings.Count(got, `"`) != 2 {
		t.Errorf("got %q, want a quoted span", got)
	}
}

func TestAllCapsSpan(t *testing.T) {
	if got := Process(enabled(), "all caps danger zone end caps ahead").Text(); !strings.Contains(got, "DANGER ZONE") {
		t.Errorf("got %q", got)
	}
	// without a terminator the span runs to the end
	if got := Process(enabled(), "this is all caps important").Text(); !strings.Contains(got, "IMPORTANT") {
		t.Errorf("got %q", got)
	}
}

func TestNoCapsSpan(t *testing.T) {
	if got := Process(enabled(), "no caps QUIET DOWN end caps please").Text(); !strings.Contains(got, "quiet down") {
		t.Errorf("got %q", got)
	}
}

func TestCapNextWord(t *testing.T) {
	if got := Process(enabled(), "meet cap alice today").Text(); !strings.Contains(got, "Alice") {
		t.Errorf("got %q", got)
	}
}

func TestNoSpaceJoins(t *testing.T) {
	if got := Process(enabled(), "data no space base").Text(); !strings.Contains(got, "Database") {
		t.Errorf("got %q, want Database", got)
	}
}

func TestInsertSpace(t *testing.T) {
	if got := Process(enabled(), "one insert space two").Text(); !strings.Contains(got, "One two") {
		t.Errorf("got %q, want single space", got)
	}
}

func TestWordBoundarySafety(t *testing.T) {
	// "dashboard" contains "dash", "colonel" contains "colon"
	got := Process(enabled(), "the dashboard shows the colonel").Text()
	if !strings.Contains(got, "dashboard") || !strings.Contains(got, "colonel") {
		t.Errorf("substitution broke embedded words: %q", got)
	}
}

func TestNewlineAndParagraph(t *testing.T) {
	if got := Process(enabled(), "hello new line world").Text(); !strings.Contains(got, "\n") {
		t.Errorf("got %q, want newline", got)
	}
	if got := Process(enabled(), "hello new paragraph world").Text(); !strings.Contains(got, "\n\n") {
		t.Errorf("got %q, want blank line", got)
	}
}

func TestCommandExtractedExactlyOnce(t *testing.T) {
	res := Process(enabled(), "hello press enter world")
	cmds := res.Commands()
	if len(cmds) != 1 || cmds[0] != command.Enter {
		t.Fatalf("want exactly one Enter, got %v", cmds)
	}
	if got := res.Text(); strings.Contains(got, "enter") || strings.Contains(got, "[[") {
		t.Errorf("command phrase left in text: %q", got)
	}
}

func TestSegmentOrderPreserved(t *testing.T) {
	res := Process(enabled(), "hello press enter world")
	want := []Segment{
		{Kind: TextSegment, Text: "Hello"},
		{Kind: CommandSegment, Command: command.Enter},
		{Kind: TextSegment, Text: "world"},
	}
	if len(res.Segments) != len(want) {
		t.Fatalf("want %d segments, got %d: %+v", len(want), len(res.Segments), res.Segments)
	}
	for i, w := range want {
		g := res.Segments[i]
		if g.Kind != w.Kind || g.Text != w.Text || g.Command != w.Command {
			t.Errorf("segment %d: got %+v, want %+v", i, g, w)
		}
	}
}

func TestMultipleCommandsInOrder(t *testing.T) {
	res := Process(enabled(), "undo that go left go left")
	want := []command.Command{command.Undo, command.Left, command.Left}
	got := res.Commands()
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestUnknownTokenStaysInText(t *testing.T) {
	res := Process(enabled(), "run [[LAUNCH_MISSILES]] now")
	if len(res.Commands()) != 0 {
		t.Fatalf("unknown token dispatched: %v", res.Commands())
	}
	if got := res.Text(); !strings.Contains(got, "[[LAUNCH_MISSILES]]") {
		t.Errorf("unknown token removed from text: %q", got)
	}
}

func TestTrailingRecognizerPunctuation(t *testing.T) {
	res := Process(enabled(), "delete that.")
	cmds := res.Commands()
	if len(cmds) != 1 || cmds[0] != command.DeleteLast {
		t.Fatalf("want DeleteLast, got %v", cmds)
	}
	if got := res.Text(); got != "" {
		t.Errorf("leftover text %q", got)
	}
}
