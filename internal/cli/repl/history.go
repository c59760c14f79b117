package repl

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultHistorySize is the number of lines kept in memory and on disk.
const DefaultHistorySize = 1000

// History keeps recent command lines and persists them to a file. It is
// safe to Save from another goroutine while the shell is running.
type History struct {
	mu      sync.Mutex
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a History backed by file. An empty file keeps history
// in memory only; maxSize < 1 means DefaultHistorySize.
func NewHistory(file string, maxSize int) *History {
	if maxSize < 1 {
		maxSize = DefaultHistorySize
	}
	return &History{
		entries: make([]string, 0),
		maxSize: maxSize,
		file:    file,
	}
}

// File returns the backing file path.
func (h *History) File() string {
	return h.file
}

// Add appends a line, dropping the oldest when full. A line equal to the
// previous one is not recorded again.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	h.trim()
}

// Get returns the entry at index, 0 being the most recent.
func (h *History) Get(index int) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

func (h *History) trim() {
	if over := len(h.entries) - h.maxSize; over > 0 {
		h.entries = h.entries[over:]
	}
}

// Load reads the history file. A missing file is not an error.
func (h *History) Load() error {
	if h.file == "" {
		return nil
	}

	file, err := os.Open(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer file.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, line)
		}
	}
	h.trim()
	return scanner.Err()
}

// Save writes the history file, creating its directory if needed.
func (h *History) Save() error {
	if h.file == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.file), 0700); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	file, err := os.OpenFile(h.file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create history: %w", err)
	}
	defer file.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	w := bufio.NewWriter(file)
	for _, entry := range h.entries {
		if _, err := w.WriteString(entry + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
