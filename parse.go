package calc

import (
	"io"
	"strings"
)

// Expr = num | Call | Neg | Plus | Add | Sub | Mul | Div | Mod | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '**' Expr
//
// From loosest to tightest: + and -, then * / and %, then unary signs, then
// **. A unary sign on the right of ** applies to the exponent, so -2**-2 is
// -(2**(-2)).

// Expr is a parsed expression. It is immutable and safe to evaluate
// concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// tokenScanner is a source of tokens with one token of pushback.
type tokenScanner interface {
	next(wseof string) (Token, error)
	push(Token)
	must() Token
}

// Parse parses an expression from src. The given options are applied in
// order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return parse(lex(src), &p)
}

// ParseString parses an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// ParseTokens parses an expression from tokens produced by Tokenize. If toks
// does not end with an EOF token, the end of the slice is the end of the
// expression.
func ParseTokens(toks []Token) (*Expr, error) {
	return parse(&tokenList{toks: toks}, &parsectx{})
}

func parse(scan tokenScanner, p *parsectx) (*Expr, error) {
	n, err := parseterm(scan, p, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.Kind {
	case TokenEOF:
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, nil)
	}
	return &Expr{n: n}, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan tokenScanner, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.eofws())
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenNum, TokenIdent, TokenOpen:
			// Two operands with nothing between them.
			return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Kind: tok.Kind, Want: "operator"}
		case TokenOp:
			// Binary operator.
			prec := binop(tok.Text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyOperand(scan)
			}
			n = &node{kind: prec.op, pos: tok.Pos, left: n, right: rhs}
		case TokenClose, TokenSep, TokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan tokenScanner, p *parsectx, until operator) (*node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.Kind {
	case TokenNum:
		n = &node{kind: nodeNum, pos: tok.Pos, name: tok.Text, val: tok.Value}
	case TokenIdent:
		fn := builtins[tok.Text]
		if fn == nil {
			return nil, &NameError{Col: tok.Pos, Name: tok.Text}
		}
		args, err := parsecall(scan, p, fn, tok)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, pos: tok.Pos, name: tok.Text, fn: fn, args: args}
	case TokenOp:
		// unary operator
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyOperand(scan)
		}
		n = &node{kind: prec.op, pos: tok.Pos, left: rhs}
	case TokenOpen:
		p.depth++
		rhs, err := parseterm(scan, p, exprprec)
		p.depth--
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.Kind != TokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, &tok)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.Pos, End: end.Text}
		}
		n = rhs
	case TokenClose:
		// Let the caller decide what an empty term means here.
		scan.push(tok)
		return nil, nil
	case TokenSep:
		return nil, &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	case TokenEOF:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsecall parses the parenthesized arguments to a call of fn.
func parsecall(scan tokenScanner, p *parsectx, fn *builtin, name Token) ([]*node, error) {
	tok, err := scan.next(p.eofws())
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenOpen {
		return nil, &TokenError{Col: tok.Pos, Text: tok.Text, Kind: tok.Kind, Want: "( after " + name.Text}
	}
	p.depth++
	args, err := parsearglist(scan, p, tok)
	p.depth--
	if err != nil {
		return nil, err
	}
	end := scan.must()
	if end.Kind != TokenClose {
		panic("calc: parsearglist ended on " + end.String() + " instead of close bracket")
	}
	if len(args) != fn.arity {
		return nil, &ArityError{Col: name.Pos, Func: name.Text, Want: fn.arity, Got: len(args)}
	}
	return args, nil
}

// parsearglist parses a parenthesized list of zero or more args. It pushes the
// closing parenthesis.
func parsearglist(scan tokenScanner, p *parsectx, open Token) ([]*node, error) {
	var args []*node
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting an unclosed bracket is more
			// helpful than an empty expression at the end.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.Text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.Kind {
		case TokenClose:
			scan.push(end)
			if rhs == nil {
				// func() is allowed, but func(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.Pos, End: end.Text}
				}
				return nil, nil
			}
			return append(args, rhs), nil
		case TokenSep:
			// parselhs rejects a separator where a term is expected, so rhs
			// is never nil here.
			args = append(args, rhs)
		case TokenEOF:
			return nil, &BracketError{Col: end.Pos, Left: open.Text, Right: ""}
		default:
			panic("calc: parseterm ended on non-end token " + end.String())
		}
	}
}

// emptyOperand creates an error for an operator that is missing its right
// operand. The token that ended the empty operand must be pushed.
func emptyOperand(scan tokenScanner) error {
	end := scan.must()
	scan.push(end)
	return &EmptyExpressionError{Col: end.Pos, End: end.Text}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is the parenthesis that the
// expression should have matched, or nil if none.
func itShouldNotHaveEndedThisWay(tok Token, open *Token) error {
	left := ""
	if open != nil {
		left = open.Text
	}
	switch tok.Kind {
	case TokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.Pos, Left: left, Right: ""}
	case TokenClose:
		return &BracketError{Col: tok.Pos, Left: left, Right: tok.Text}
	case TokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.Pos, Sep: tok.Text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// String creates a fully parenthesized representation of the parsed
// expression. The result parses to the same expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
