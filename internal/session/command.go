package session

import (
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrUnknownCommand is returned for a line that starts with ':' but names
	// no session command.
	ErrUnknownCommand = errors.NewKind("unknown command %q")
	// ErrHistorySave is returned when the history file cannot be written.
	ErrHistorySave = errors.NewKind("cannot save history to %s")
)

// Command is a kind of session input line.
type Command int8

//go:generate stringer -type Command -trimprefix Cmd

const (
	// CmdEval is an expression to evaluate.
	CmdEval Command = iota
	// CmdHistory shows the history.
	CmdHistory
	// CmdSave saves the history to the history file.
	CmdSave
	// CmdClear clears the history.
	CmdClear
	// CmdQuit ends the session.
	CmdQuit
	// CmdNone is an empty line.
	CmdNone
)

var commands = map[string]Command{
	":history": CmdHistory,
	":h":       CmdHistory,
	":save":    CmdSave,
	":clear":   CmdClear,
	":q":       CmdQuit,
	"q":        CmdQuit,
	"quit":     CmdQuit,
	"exit":     CmdQuit,
}

// ParseCommand classifies a trimmed input line.
func ParseCommand(line string) (Command, error) {
	if line == "" {
		return CmdNone, nil
	}
	if c, ok := commands[line]; ok {
		return c, nil
	}
	if strings.HasPrefix(line, ":") {
		return CmdNone, ErrUnknownCommand.New(line)
	}
	return CmdEval, nil
}
