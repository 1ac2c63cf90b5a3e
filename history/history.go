// Package history keeps an append-only record of completed dictations.
// One TSV line per dictation; writes are best effort and never block or
// fail a delivery.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const fileName = "history.tsv"

// Store appends dictation records to a TSV file in its directory.
type Store struct {
	mu   sync.Mutex
	path string
	file *os.File
}

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("history dir: %w", err)
	}
	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return &Store{path: path, file: f}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Record appends one dictation. Tabs and newlines inside the text are
// flattened so the file stays one record per line.
func (s *Store) Record(text, modelID, language string, duration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return fmt.Errorf("history store closed")
	}
	line := fmt.Sprintf("%s\t%s\t%s\t%.1f\t%s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		modelID,
		language,
		duration.Seconds(),
		sanitize(text),
	)
	if _, err := s.file.WriteString(line); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// Entry is one parsed history line.
type Entry struct {
	When     time.Time
	ModelID  string
	Language string
	Seconds  float64
	Text     string
}

// Entries reads the whole history back, oldest first. Malformed lines
// are skipped.
func (s *Store) Entries() ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		parts := strings.SplitN(sc.Text(), "\t", 5)
		if len(parts) != 5 {
			continue
		}
		when, err := time.ParseInLocation("2006-01-02 15:04:05", parts[0], time.Local)
		if err != nil {
			continue
		}
		var secs float64
		fmt.Sscanf(parts[3], "%f", &secs)
		out = append(out, Entry{
			When:     when,
			ModelID:  parts[1],
			Language: parts[2],
			Seconds:  secs,
			Text:     parts[4],
		})
	}
	return out, sc.Err()
}

func sanitize(text string) string {
	r := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return r.Replace(text)
}
