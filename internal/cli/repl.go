package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc/internal/session"
)

// Banner is printed when an interactive session starts.
const Banner = "Advanced Calculator (':q' quit, ':history', ':save', ':clear')"

// lineReader reads one line of input without its line terminator. It returns
// io.EOF once input is exhausted.
type lineReader interface {
	ReadLine() (string, error)
}

// scanReader reads lines from a non-terminal input, printing the prompt
// itself.
type scanReader struct {
	scan   *bufio.Scanner
	w      io.Writer
	prompt string
}

func (r *scanReader) ReadLine() (string, error) {
	fmt.Fprint(r.w, r.prompt)
	if !r.scan.Scan() {
		if err := r.scan.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scan.Text(), nil
}

// repl runs an interactive session until the user quits or input ends. When
// standard input is a terminal, lines are edited with the terminal's line
// discipline in raw mode.
func repl(cmd *cobra.Command, s *session.Session, prompt string) error {
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, state)
		screen := struct {
			io.Reader
			io.Writer
		}{f, out}
		t := term.NewTerminal(screen, prompt)
		log.Debug("interactive session on terminal")
		return loop(t, t, s)
	}
	r := &scanReader{scan: bufio.NewScanner(in), w: out, prompt: prompt}
	return loop(r, out, s)
}

// loop reads and handles lines from r, writing output to w. Errors from
// evaluation are shown to the user and do not end the session.
func loop(r lineReader, w io.Writer, s *session.Session) error {
	fmt.Fprintln(w, Banner)
	for {
		line, err := r.ReadLine()
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "Bye!")
				return nil
			}
			return err
		}
		out, quit, err := s.Handle(line)
		if err != nil {
			fmt.Fprintln(w, "Error:", err)
			continue
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
		if quit {
			return nil
		}
	}
}

