//go:build !windows

package inject

import (
	"testing"

	"murmur/command"
)

func TestEveryCommandHasKeystrokes(t *testing.T) {
	for _, cmd := range command.All() {
		strokes, err := strokesFor(cmd)
		if err != nil {
			t.Errorf("%s: %v", cmd, err)
			continue
		}
		if len(strokes) == 0 {
			t.Errorf("%s: empty keystroke sequence", cmd)
		}
		for _, s := range strokes {
			if len(s.keys) == 0 {
				t.Errorf("%s: stroke without keys", cmd)
			}
		}
	}
}

func TestInvalidCommandRejected(t *testing.T) {
	if _, err := strokesFor(command.Command(9999)); err == nil {
		t.Fatal("out-of-table command accepted")
	}
}
