package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a single lexical unit of an expression.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the source text of the token. It is empty for EOF.
	Text string
	// Value is the value of a number token.
	Value float64
	// Pos is the 1-based rune column where the token starts.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind classifies tokens.
type TokenKind int

const (
	// TokenNone is the zero TokenKind. It is never returned with a nil error.
	TokenNone TokenKind = iota
	// TokenEOF indicates the end of the input.
	TokenEOF
	// TokenNum is an integer or decimal number.
	TokenNum
	// TokenIdent is a function name.
	TokenIdent
	// TokenOp is an operator.
	TokenOp
	// TokenOpen is an open parenthesis.
	TokenOpen
	// TokenClose is a close parenthesis.
	TokenClose
	// TokenSep is a function argument separator.
	TokenSep
)

//go:generate stringer -type=TokenKind -trimprefix=Token

// Operators contains the runes which begin operators. A doubled * is the
// exponentiation operator.
const Operators = "+-*/%"

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the number of runes read from src.
	col int
	p   Token
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok Token) {
	if l.p.Kind != TokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() Token {
	tok := l.p
	if tok.Kind == TokenNone {
		panic("calc: no pushed token")
	}
	l.p = Token{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. The first time EOF is encountered
// before any non-whitespace characters, the result is an EOF token with a nil
// error. Subsequent times, if the EOF token is not pushed, the result is an
// empty token with io.EOF. Whitespace runes in wseof are treated as EOF.
func (l *lexer) next(wseof string) (Token, error) {
	if l.p.Kind != TokenNone {
		tok := l.p
		l.p = Token{}
		return tok, nil
	}
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	tok := Token{Pos: l.col + 1}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = TokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			if strings.ContainsRune(wseof, r) {
				tok.Kind = TokenEOF
				l.eof = true
				return tok, nil
			}
			tok.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			v, err := strconv.ParseFloat(tok.Text, 64)
			if err != nil {
				// Syntax is checked by scanNum, so this is a range error.
				return tok, &LexError{Text: tok.Text, Kind: "number", Col: tok.Pos, Err: err}
			}
			tok.Value = v
			tok.Kind = TokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenIdent
			return tok, nil
		case r == '*':
			tok.Kind = TokenOp
			tok.Text = "*"
			s, err := l.readRune()
			switch {
			case err == nil && s == '*':
				tok.Text = "**"
			case err == nil:
				l.unreadRune()
			case !errors.Is(err, io.EOF):
				return tok, err
			}
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.Text = string(r)
			tok.Kind = TokenOp
			return tok, nil
		case r == '(':
			tok.Text = "("
			tok.Kind = TokenOpen
			return tok, nil
		case r == ')':
			tok.Text = ")"
			tok.Kind = TokenClose
			return tok, nil
		case r == ',':
			tok.Text = ","
			tok.Kind = TokenSep
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans a decimal number with an optional exponent.
func (l *lexer) scanNum() error {
	var dig, dot, e, le, ed bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if (r == '+' || r == '-') && le {
			// Sign of the exponent.
			le = false
			l.buf.WriteRune(r)
			continue
		}
		switch {
		case r == '.':
			l.buf.WriteRune(r)
			if dot || e {
				return l.error("number")
			}
			dot = true
		case r == 'e', r == 'E':
			l.buf.WriteRune(r)
			if !dig || e {
				return l.error("number")
			}
			e = true
			le = true
			continue
		case '0' <= r && r <= '9':
			l.buf.WriteRune(r)
			if e {
				ed = true
			} else {
				dig = true
			}
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
			return l.error("number")
		default:
			l.unreadRune()
			if e && !ed {
				return l.error("number")
			}
			return nil
		}
		le = false
	}
	if !dig || (e && !ed) {
		return l.error("number")
	}
	return nil
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.col,
	}
}

// Tokenize splits src into tokens. The last token is always an EOF token
// unless there is an error, in which case the tokens scanned so far are
// returned along with the error.
func Tokenize(src string) ([]Token, error) {
	scan := lex(strings.NewReader(src))
	var toks []Token
	for {
		tok, err := scan.next("")
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// tokenList replays a slice of tokens to the parser.
type tokenList struct {
	toks []Token
	p    Token
	eof  Token
}

func (l *tokenList) next(wseof string) (Token, error) {
	if l.p.Kind != TokenNone {
		tok := l.p
		l.p = Token{}
		return tok, nil
	}
	if len(l.toks) == 0 {
		if l.eof.Kind == TokenEOF {
			return Token{}, io.EOF
		}
		l.eof = Token{Kind: TokenEOF, Pos: 1}
		return l.eof, nil
	}
	tok := l.toks[0]
	l.toks = l.toks[1:]
	if tok.Kind == TokenEOF {
		l.toks = nil
		l.eof = tok
	} else if len(l.toks) == 0 {
		// Synthesize EOF just past the last token.
		l.toks = []Token{{Kind: TokenEOF, Pos: tok.Pos + utf8.RuneCountInString(tok.Text)}}
	}
	return tok, nil
}

func (l *tokenList) push(tok Token) {
	if l.p.Kind != TokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

func (l *tokenList) must() Token {
	tok := l.p
	if tok.Kind == TokenNone {
		panic("calc: no pushed token")
	}
	l.p = Token{}
	return tok
}
