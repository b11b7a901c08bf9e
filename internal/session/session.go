// Package session implements an interactive calculator session: a history
// of evaluated expressions and the commands that inspect it.
package session

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/zephyrtronium/calc"
)

// DefaultHistoryFile is the file :save writes when no other is configured.
const DefaultHistoryFile = "history.txt"

// Session holds the state of one interactive session.
type Session struct {
	// History is the list of successful evaluations.
	History History
	// Fs is the filesystem the history is saved to.
	Fs afero.Fs
	// HistoryFile is the path :save writes.
	HistoryFile string
	// Format renders results.
	Format func(float64) string
	// Echo prefixes results with the parse tree.
	Echo bool
}

// New creates a session saving its history to file on fs. An empty file
// selects DefaultHistoryFile.
func New(fs afero.Fs, file string) *Session {
	if file == "" {
		file = DefaultHistoryFile
	}
	return &Session{Fs: fs, HistoryFile: file, Format: Format}
}

// Handle processes one input line. It returns the text to show, if any, and
// whether the session should end. Only expressions that evaluate without
// error are added to the history.
func (s *Session) Handle(line string) (string, bool, error) {
	line = strings.TrimSpace(line)
	cmd, err := ParseCommand(line)
	if err != nil {
		return "", false, err
	}
	log.Debugf("session: %v %q", cmd, line)
	switch cmd {
	case CmdNone:
		return "", false, nil
	case CmdHistory:
		return s.History.String(), false, nil
	case CmdSave:
		if err := s.History.Save(s.Fs, s.HistoryFile); err != nil {
			return "", false, err
		}
		log.Infof("saved %d history lines to %s", s.History.Len(), s.HistoryFile)
		return "Saved to " + s.HistoryFile, false, nil
	case CmdClear:
		s.History.Clear()
		return "History cleared", false, nil
	case CmdQuit:
		return "Bye!", true, nil
	}
	out, err := s.Eval(line)
	if err != nil {
		return "", false, err
	}
	return out, false, nil
}

// Eval evaluates an expression and records it in the history. The result is
// the rendered value prefixed by "= ".
func (s *Session) Eval(expr string) (string, error) {
	a, err := calc.ParseString(expr)
	if err != nil {
		return "", err
	}
	return s.Run(expr, a)
}

// Run evaluates an already parsed expression and records it in the history
// under text.
func (s *Session) Run(text string, a *calc.Expr) (string, error) {
	log.Debugf("parsed %q as %v", text, a)
	r, err := a.Eval()
	if err != nil {
		return "", err
	}
	v := s.format(r)
	s.History.Add(text, v)
	if s.Echo {
		return a.String() + "\n= " + v, nil
	}
	return "= " + v, nil
}

func (s *Session) format(x float64) string {
	if s.Format == nil {
		return Format(x)
	}
	return s.Format(x)
}
