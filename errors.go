package calc

import (
	"errors"
	"strconv"
)

// Error categories. Every error returned by this package for invalid input
// matches exactly one of ErrLex, ErrParse, or ErrEval with errors.Is, and
// possibly a more specific category.
var (
	// ErrLex is the category of errors from invalid characters or malformed
	// numbers.
	ErrLex = errors.New("lex error")
	// ErrParse is the category of syntax errors.
	ErrParse = errors.New("parse error")
	// ErrArity is the category of function calls with the wrong number of
	// arguments. Arity errors are also parse errors.
	ErrArity = errors.New("arity error")
	// ErrEval is the category of errors from evaluating a well-formed
	// expression.
	ErrEval = errors.New("evaluation error")
	// ErrDivisionByZero is the category of divisions and remainders by zero.
	// It is an evaluation error.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain is the category of function arguments outside the function's
	// domain. It is an evaluation error.
	ErrDomain = errors.New("domain error")
)

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the start of the token that caused
	// the error.
	Pos() int
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number"
	// or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the column of the invalid rune, or of the start of a number that
	// is out of range.
	Col int
	// Err is the error from converting a number, if any.
	Err error
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	msg := "invalid token at " + pos + ": " + err.Text
	if err.Kind != "" {
		msg = "invalid " + err.Kind + " token at " + pos + ": " + err.Text
	}
	if err.Err != nil {
		var ne *strconv.NumError
		if errors.As(err.Err, &ne) {
			msg += " (" + ne.Err.Error() + ")"
		} else {
			msg += " (" + err.Err.Error() + ")"
		}
	}
	return msg
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return err.Err
}

func (err *LexError) Is(target error) bool {
	return target == ErrLex
}

// OperatorError is an error indicating an operator token that is not
// understood by the parser, e.g. a binary operator where an operand should
// be. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Is(target error) bool {
	return target == ErrParse
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the token where the mismatch was detected.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Is(target error) bool {
	return target == ErrParse
}

// SeparatorError is an error indicating a comma outside a function argument
// list, or a comma where an argument is expected. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Is(target error) bool {
	return target == ErrParse
}

// ArityError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type ArityError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Want is the number of arguments the function takes.
	Want int
	// Got is the number of arguments in the call.
	Got int
}

func (err *ArityError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Got)+" arguments (takes exactly "+strconv.Itoa(err.Want)+")")
}

func (err *ArityError) Pos() int {
	return err.Col
}

func (err *ArityError) Is(target error) bool {
	return target == ErrArity || target == ErrParse
}

// EmptyExpressionError is an error indicating an empty subexpression or a
// missing operand.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Is(target error) bool {
	return target == ErrParse
}

// TokenError is an error indicating a token where the parser expected
// something else, such as two numbers with no operator between them. It
// implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token text.
	Text string
	// Kind is the token kind.
	Kind TokenKind
	// Want describes what the parser expected instead.
	Want string
}

func (err *TokenError) Error() string {
	var s string
	switch err.Kind {
	case TokenEOF:
		s = "unexpected end of input"
	case TokenNum:
		s = "unexpected number " + strconv.Quote(err.Text)
	case TokenIdent:
		s = "unexpected name " + strconv.Quote(err.Text)
	default:
		s = "unexpected " + strconv.Quote(err.Text)
	}
	if err.Want != "" {
		s += ", expected " + err.Want
	}
	return errpos(err.Col, s)
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Is(target error) bool {
	return target == ErrParse
}

// NameError is an error indicating a name that is not a known function. It
// implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the unknown name.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Is(target error) bool {
	return target == ErrParse
}

// DivisionByZeroError is an error indicating a division or remainder by zero,
// or zero raised to a negative power. It implements InputError.
type DivisionByZeroError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator.
	Op string
	// X and Y are the operands.
	X, Y float64
}

func (err *DivisionByZeroError) Error() string {
	return errpos(err.Col, "division by zero: "+fmtnum(err.X)+" "+err.Op+" "+fmtnum(err.Y))
}

func (err *DivisionByZeroError) Pos() int {
	return err.Col
}

func (err *DivisionByZeroError) Is(target error) bool {
	return target == ErrDivisionByZero || target == ErrEval
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain. It implements InputError.
type DomainError struct {
	// Col is the position of the function name or operator.
	Col int
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := fmtnum(err.X) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return errpos(err.Col, r)
}

func (err *DomainError) Pos() int {
	return err.Col
}

func (err *DomainError) Is(target error) bool {
	return target == ErrDomain || target == ErrEval
}

// OverflowError is an error indicating an operation whose result is too large
// to represent. It implements InputError.
type OverflowError struct {
	// Col is the position of the operator or function name.
	Col int
	// Op is the operator or function.
	Op string
}

func (err *OverflowError) Error() string {
	return errpos(err.Col, "result of "+err.Op+" is out of range")
}

func (err *OverflowError) Pos() int {
	return err.Col
}

func (err *OverflowError) Is(target error) bool {
	return target == ErrEval
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

func fmtnum(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*DivisionByZeroError)(nil)
	_ InputError = (*DomainError)(nil)
	_ InputError = (*OverflowError)(nil)
)
