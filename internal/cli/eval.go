package cli

import (
	"bufio"
	"io"
	"unicode"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/errwrap"
	"github.com/zephyrtronium/calc/internal/session"
)

// evalAll evaluates the input file, if any, then each argument as its own
// expression. Every expression is evaluated even if earlier ones fail; the
// result collects all the failures.
func evalAll(cmd *cobra.Command, fs afero.Fs, s *session.Session, in string, args []string) error {
	var reterr error
	if in != "" {
		src, c, err := openInput(cmd, fs, in)
		if err != nil {
			return report(cmd, "", err)
		}
		reterr = errwrap.Append(reterr, evalStream(cmd, s, src, getFlag(cmd, "lines")))
		if c != nil {
			c.Close()
		}
	}
	for i, arg := range args {
		out, err := s.Eval(arg)
		if report(cmd, out, err) != nil {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "argument %d", i+1))
		}
	}
	return reterr
}

// openInput opens the named input. "-" is the command's standard input, in
// which case the returned closer is nil.
func openInput(cmd *cobra.Command, fs afero.Fs, name string) (*bufio.Reader, io.Closer, error) {
	if name == "-" {
		return bufio.NewReader(cmd.InOrStdin()), nil, nil
	}
	f, err := fs.Open(name)
	if err != nil {
		return nil, nil, errwrap.Wrapf(err, "opening input")
	}
	log.Debugf("reading expressions from %s", name)
	return bufio.NewReader(f), f, nil
}

// evalStream evaluates expressions from src. If lines is true, each line
// holds a separate expression, except that a line ending inside parentheses
// or after an operator continues onto the next. Otherwise, all of src is one
// expression.
func evalStream(cmd *cobra.Command, s *session.Session, src *bufio.Reader, lines bool) error {
	var opts []calc.ParseOption
	if lines {
		opts = append(opts, calc.StopOn('\n'))
	}
	var reterr error
	for k := 1; ; k++ {
		if err := skipSpace(src); err != nil {
			if err == io.EOF {
				break
			}
			return errwrap.Append(reterr, errwrap.Wrapf(err, "reading input"))
		}
		a, err := calc.Parse(src, opts...)
		var out string
		if err == nil {
			out, err = s.Run(a.String(), a)
		} else if lines {
			// Resynchronize at the next line.
			discardLine(src)
		}
		if report(cmd, out, err) != nil {
			reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "expression %d", k))
			if !lines {
				break
			}
		}
	}
	return reterr
}

// skipSpace consumes whitespace so that the end of input can be detected
// before parsing. It returns io.EOF if nothing else remains.
func skipSpace(src io.RuneScanner) error {
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(r) {
			return src.UnreadRune()
		}
	}
}

// discardLine consumes runes through the next newline.
func discardLine(src io.RuneReader) {
	for {
		r, _, err := src.ReadRune()
		if err != nil || r == '\n' {
			return
		}
	}
}
