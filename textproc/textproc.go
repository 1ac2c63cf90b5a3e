// Package textproc turns raw transcription output into deliverable text.
// The pipeline is pure: no state machine, no I/O. It runs five stages in
// a fixed order and splits the result into ordered segments of plain
// text and voice-command tokens.
package textproc

import (
	"fmt"
	"strings"

	"murmur/command"
)

// Convention selects the identifier style used when a spoken name does
// not carry an explicit casing command ("camel case", "snake case", ...).
type Convention int

const (
	Camel Convention = iota
	Snake
)

func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(s) {
	case "camel", "camelcase":
		return Camel, nil
	case "snake", "snakecase":
		return Snake, nil
	}
	return Camel, fmt.Errorf("unknown casing convention %q", s)
}

// Config controls the pipeline. Enabled=false bypasses every stage and
// the raw text passes through byte for byte.
type Config struct {
	Enabled    bool
	Convention Convention
}

type SegmentKind int

const (
	TextSegment SegmentKind = iota
	CommandSegment
)

// Segment is one ordered piece of pipeline output: either text to
// deliver or a command to execute.
type Segment struct {
	Kind    SegmentKind
	Text    string
	Command command.Command
}

// Result is the pipeline output. Segments preserve spoken order.
type Result struct {
	Segments []Segment
}

// Text concatenates the text segments, joined by single spaces.
func (r Result) Text() string {
	var parts []string
	for _, s := range r.Segments {
		if s.Kind == TextSegment && s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

// Commands returns the command segments in spoken order.
func (r Result) Commands() []command.Command {
	var out []command.Command
	for _, s := range r.Segments {
		if s.Kind == CommandSegment {
			out = append(out, s.Command)
		}
	}
	return out
}

// Process runs the pipeline. Stages run in fixed order and each stage is
// total: input it does not recognize passes through unmodified.
func Process(cfg Config, raw string) Result {
	if !cfg.Enabled {
		return Result{Segments: []Segment{{Kind: TextSegment, Text: raw}}}
	}

	text := normalizeWhitespace(raw)
	text = formatGrammar(text)
	text = formatCode(text, cfg.Convention)
	text = substituteSymbols(text)
	return Result{Segments: extractCommands(text)}
}
