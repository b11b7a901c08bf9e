package session

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/zephyrtronium/calc/internal/errwrap"
)

// History is the ordered list of successful evaluations in a session, one
// "expr = result" line each. The zero value is an empty history.
type History struct {
	lines []string
}

// Add records a successful evaluation.
func (h *History) Add(expr, result string) {
	h.lines = append(h.lines, expr+" = "+result)
}

// Lines returns a copy of the recorded lines, oldest first.
func (h *History) Lines() []string {
	return append([]string(nil), h.lines...)
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	return len(h.lines)
}

// Clear removes every line.
func (h *History) Clear() {
	h.lines = h.lines[:0]
}

// String returns the lines joined by newlines, or "(empty)" if there are none.
func (h *History) String() string {
	if len(h.lines) == 0 {
		return "(empty)"
	}
	return strings.Join(h.lines, "\n")
}

// Save writes the lines joined by newlines to path, replacing any existing
// file. An empty history writes an empty file.
func (h *History) Save(fs afero.Fs, path string) error {
	data := []byte(strings.Join(h.lines, "\n"))
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return ErrHistorySave.Wrap(errwrap.Wrapf(err, "writing %d lines", len(h.lines)), path)
	}
	return nil
}
