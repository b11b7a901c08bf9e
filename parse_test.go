package calc

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.name != m.name || n.val != m.val {
			return n, m
		}
	case nodeCall:
		if n.name != m.name || len(n.args) != len(m.args) {
			return n, m
		}
		for i := range n.args {
			if d, e := n.args[i].diff(m.args[i]); d != nil || e != nil {
				return d, e
			}
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeNeg, nodeNop:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

// haskind checks whether a parse tree contains a node of the given type.
func (n *node) haskind(k nodeKind) bool {
	if n == nil {
		return false
	}
	if n.kind == k {
		return true
	}
	for _, a := range n.args {
		if a.haskind(k) {
			return true
		}
	}
	if n.left.haskind(k) {
		return true
	}
	return n.right.haskind(k)
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
	if binop("**").op != nodePow {
		t.Errorf("no operator for **")
	}
}

func TestUnaryPrecedence(t *testing.T) {
	for _, op := range []string{"+", "-"} {
		u := unop(op)
		for _, b := range []string{"+", "-", "*", "/", "%"} {
			if !u.moreBinding(binop(b)) {
				t.Errorf("unary %s binds looser than binary %s", op, b)
			}
		}
		if u.moreBinding(binop("**")) {
			t.Errorf("unary %s binds tighter than **", op)
		}
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(2)", "2"},
		{"multi", "((((2))))", "2"},
		{"space", "  2  +  3  ", "2+3"},

		{"plus", "+2", "(+(2))"},
		{"neg", "-2", "(-(2))"},
		{"add", "1+2", "((1)+(2))"},
		{"sub", "1-2", "((1)-(2))"},
		{"mul", "1*2", "((1)*(2))"},
		{"div", "1/2", "((1)/(2))"},
		{"mod", "1%2", "((1)%(2))"},
		{"pow", "1**2", "((1)**(2))"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"mod4", "1%2%3%4", "((1%2)%3)%4"},
		{"pow4", "1**2**3**4", "1**(2**(3**4))"},

		{"precedence", "2 + 3 * 4", "2 + (3 * 4)"},
		{"negpow", "-2**2", "-(2**2)"},
		{"powneg", "2**-1", "2**(-1)"},
		{"pownegpow", "2**-3**-4", "2**(-(3**(-4)))"},
		{"pownegneg", "2**--3", "2**(-(-3))"},
		{"pownegmul", "2**-1*3", "(2**(-1))*3"},
		{"negneg", "--2", "-(-2)"},
		{"negsub", "-2-2", "(-2)-2"},
		{"negmul", "-2*3", "(-2)*3"},
		{"mulneg", "2*-3", "2*(-3)"},
		{"mulnegpow", "2*-3**2", "2*(-(3**2))"},
		{"subneg", "2--3", "2-(-3)"},
		{"desc", "2**3*4+5", "((2**3)*4)+5"},
		{"asc", "2+3*4**5", "2+(3*(4**5))"},
		{"descasc", "2**3*4+5+6*7**8", "(((2**3)*4)+5)+(6*(7**8))"},
		{"ascdesc", "1+2*3**4**5*6+7", "(1+((2*(3**(4**5)))*6))+7"},
		{"modmul", "2+3%4*5", "2+((3%4)*5)"},

		{"call-args", "max(1+2, 3*4)", "max((1+2), (3*4))"},
		{"call-nested", "sqrt(max(1, min(2, 3)))", "sqrt((max(1, (min(2, 3)))))"},
		{"negcall", "-max(2, 3) + 10", "(-(max(2, 3))) + 10"},
		{"powcall", "sqrt(4)**2", "(sqrt(4))**2"},
		{"callpow", "2**sqrt(4)**2", "2**((sqrt(4))**2)"},
		{"example", "sqrt(16) + 2 ** 3 % 5", "(sqrt(16)) + ((2 ** 3) % 5)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := ParseString(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "call2",
			src:  "max(1, 2.5)",
			n: &node{
				kind: nodeCall,
				name: "max",
				args: []*node{
					{kind: nodeNum, name: "1", val: 1},
					{kind: nodeNum, name: "2.5", val: 2.5},
				},
			},
		},
		{
			name: "negpow",
			src:  "-2**2",
			n: &node{
				kind: nodeNeg,
				left: &node{
					kind:  nodePow,
					left:  &node{kind: nodeNum, name: "2", val: 2},
					right: &node{kind: nodeNum, name: "2", val: 2},
				},
			},
		},
		{
			name: "exponent",
			src:  "1.5e3",
			n:    &node{kind: nodeNum, name: "1.5e3", val: 1500},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\twant %v which has %v\n\tgot  %v which has %v from %q", c.n, e, a.n, d, c.src)
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"paren", "(2)"},
		{"plus", "+2"},
		{"neg", "-2"},
		{"add", "1+2"},
		{"sub", "1-2"},
		{"mul", "1*2"},
		{"div", "1/2"},
		{"mod", "1%2"},
		{"pow", "1**2"},
		{"add4", "1+2+3+4"},
		{"pow4", "1**2**3**4"},
		{"negpow", "-2**2"},
		{"powneg", "2**-1"},
		{"pownegpow", "2**-3**-4"},
		{"descasc", "2**3*4+5+6*7**8"},
		{"ascdesc", "1+2*3**4**5*6+7"},
		{"call", "max(1+2, min(3, sqrt(4)))"},
		{"negcall", "-max(2, 3) + 10"},
		{"decimal", "3.14 * .5 + 5. - 1e3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			b, err := ParseString(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, s, b.n, e)
			}
		})
	}
}

func TestExprStringFormat(t *testing.T) {
	cases := []struct {
		src, want string
	}{
		{"1+2*3", "((1) + ((2) * (3)))"},
		{"-2", "(-(2))"},
		{"max(1, 2)", "(max((1), (2)))"},
		{"2**-1", "((2) ** (-(1)))"},
	}
	for _, c := range cases {
		a, err := ParseString(c.src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", c.src, err)
		}
		if got := a.String(); got != c.want {
			t.Errorf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		res  []string
		excl []string
	}{
		{"empty", "", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`}, []string{`(?i)\bend\b`}},
		{"blank", "   ", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`}, nil},
		{"emptyparen", "()", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `\)`}, nil},
		{"emptyoperand", "2 +", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"emptyunary", "2 * -", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `(?i)\bend\b`}, nil},
		{"op-paren", "(2*)", new(EmptyExpressionError), []string{`\)`}, nil},
		{"unary-paren", "(+)", new(EmptyExpressionError), []string{`\)`}, nil},
		{"left", "(2", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"left2", "((2)", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"right", "2)", new(BracketError), []string{`(?i)\bbracket\b`, `\)`}, nil},
		{"right-only", ")", new(BracketError), []string{`(?i)\bbracket\b`, `\)`}, nil},
		{"nonunary", "* 2", new(OperatorError), []string{`(?i)\bunary\b`, `(?i)\bop`, `\*`}, nil},
		{"consecutive", "2 + * 3", new(OperatorError), []string{`(?i)\bunary\b`, `\*`}, nil},
		{"consecutive-pow", "2 ** ** 3", new(OperatorError), []string{`\*\*`}, nil},
		{"floordiv", "2 // 3", new(OperatorError), []string{`/`}, nil},
		{"sep", "1, 2", new(SeparatorError), []string{`","`}, nil},
		{"sepbrackets", "(1, 2)", new(SeparatorError), []string{`","`}, nil},
		{"sep-first", "max(, 1)", new(SeparatorError), []string{`","`}, nil},
		{"sep-double", "max(1,,2)", new(SeparatorError), []string{`","`}, nil},
		{"call-trailing-sep", "max(1,)", new(EmptyExpressionError), []string{`(?i)\b(no|empty)\b.*\bexpression\b`, `\)`}, nil},
		{"call-eof", "max(1", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"call-sep-eof", "max(1,", new(BracketError), []string{`(?i)\bbracket\b`, `\(`}, nil},
		{"max-1", "max(1)", new(ArityError), []string{`(?i)\bcall\b`, `\bmax\b`, `\b1\b`, `\b2\b`}, nil},
		{"min-3", "min(1, 2, 3)", new(ArityError), []string{`\bmin\b`, `\b3\b`, `\b2\b`}, nil},
		{"sqrt-0", "sqrt()", new(ArityError), []string{`\bsqrt\b`, `\b0\b`, `\b1\b`}, nil},
		{"sqrt-2", "sqrt(1, 2)", new(ArityError), []string{`\bsqrt\b`, `\b2\b`}, nil},
		{"call-bare", "sqrt 4", new(TokenError), []string{`"4"`, `\(`}, nil},
		{"call-eof-bare", "sqrt", new(TokenError), []string{`(?i)\bend\b`, `\(`}, nil},
		{"adjacent", "2 3", new(TokenError), []string{`"3"`}, nil},
		{"adjacent-paren", "2 (3)", new(TokenError), []string{`"\("`}, nil},
		{"adjacent-parens", "(1)(2)", new(TokenError), []string{`"\("`}, nil},
		{"adjacent-call", "sqrt(4) max(1, 2)", new(TokenError), []string{`"max"`}, nil},
		{"variable", "x + 1", new(NameError), []string{`(?i)\bfunction\b`, `"x"`}, nil},
		{"unknown-func", "abs(2)", new(NameError), []string{`"abs"`}, nil},
		{"pow-func", "pow(2,3)", new(NameError), []string{`"pow"`}, nil},
		{"lexer", "2 $ 3", new(LexError), []string{`\$`}, nil},
		{"lexer-nested", "2**sqrt(-$)", new(LexError), []string{`\$`}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
			for _, re := range c.excl {
				if regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q matches %s", msg, re)
				}
			}
			_, isLex := err.(*LexError)
			if errors.Is(err, ErrParse) == isLex {
				t.Errorf("%v: lex error %t, parse error %t", err, isLex, errors.Is(err, ErrParse))
			}
			_, isArity := err.(*ArityError)
			if errors.Is(err, ErrArity) != isArity {
				t.Errorf("%v: arity error %t, matches ErrArity %t", err, isArity, errors.Is(err, ErrArity))
			}
			if errors.Is(err, ErrEval) {
				t.Errorf("%v matches ErrEval", err)
			}
		})
	}
}

func TestParseErrorPos(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"2 +", 4},
		{"(2", 3},
		{"2)", 2},
		{"1 + 2 3", 7},
		{"1 + max(1)", 5},
		{"  x", 3},
		{"1, 2", 2},
	}
	for _, c := range cases {
		_, err := ParseString(c.src)
		var ie InputError
		if !errors.As(err, &ie) {
			t.Errorf("%q gave non-input error %#v", c.src, err)
			continue
		}
		if ie.Pos() != c.pos {
			t.Errorf("%q: want error at %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
		}
	}
}

func TestParseTokens(t *testing.T) {
	srcs := []string{"2 + 3 * 4", "-2**2", "max(10, 3) * (2 + 1)", "sqrt(16) + 2 ** 3 % 5"}
	for _, src := range srcs {
		toks, err := Tokenize(src)
		if err != nil {
			t.Fatalf("%q failed to tokenize: %v", src, err)
		}
		a, err := ParseTokens(toks)
		if err != nil {
			t.Fatalf("%q failed to parse from tokens: %v", src, err)
		}
		b, err := ParseString(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		if d, e := a.n.diff(b.n); d != nil || e != nil {
			t.Errorf("mismatched AST for %q: tokens give %v, string gives %v", src, a.n, b.n)
		}
	}

	// Without an EOF token, the end of the slice ends the expression.
	a, err := ParseTokens([]Token{
		{Kind: TokenNum, Text: "2", Value: 2, Pos: 1},
		{Kind: TokenOp, Text: "+", Pos: 2},
		{Kind: TokenNum, Text: "3", Value: 3, Pos: 3},
	})
	if err != nil {
		t.Fatalf("tokens without EOF failed to parse: %v", err)
	}
	if !a.n.haskind(nodeAdd) {
		t.Errorf("tokens without EOF parsed to %v", a.n)
	}
	_, err = ParseTokens([]Token{
		{Kind: TokenNum, Text: "2", Value: 2, Pos: 1},
		{Kind: TokenOp, Text: "+", Pos: 2},
	})
	var ee *EmptyExpressionError
	if !errors.As(err, &ee) {
		t.Fatalf("missing operand gave %#v", err)
	}
	if ee.Col != 3 {
		t.Errorf("missing operand reported at %d, want 3", ee.Col)
	}
	if _, err := ParseTokens(nil); !errors.As(err, &ee) {
		t.Errorf("no tokens gave %#v", err)
	}
}

func TestStopOn(t *testing.T) {
	cases := []struct {
		name string
		src  string
		good [][]nodeKind
		bad  [][]nodeKind
	}{
		{"newline", "1\n2", [][]nodeKind{{nodeNum}, {nodeNum}}, [][]nodeKind{{nodeAdd}, {nodeAdd}}},
		{"multinl", "1\n\n2", [][]nodeKind{{nodeNum}, {nodeNum}}, [][]nodeKind{{nodeAdd}, {nodeAdd}}},
		{"operator", "1 +\n2\n3", [][]nodeKind{{nodeAdd}, {nodeNum}}, [][]nodeKind{{}, {nodeAdd}}},
		{"paren", "(1\n+ 2)\n-3", [][]nodeKind{{nodeAdd}, {nodeNeg}}, [][]nodeKind{{nodeSub}, {nodeAdd}}},
		{"call", "max(1,\n2)\n3", [][]nodeKind{{nodeCall}, {nodeNum}}, [][]nodeKind{{}, {nodeCall}}},
	}
	for _, c := range cases {
		if len(c.good) != len(c.bad) {
			t.Fatalf("case %q has different sizes of good and bad: %v vs %v", c.name, c.good, c.bad)
		}
		t.Run(c.name, func(t *testing.T) {
			src := strings.NewReader(c.src)
			for i := range c.good {
				a, err := Parse(src, StopOn('\n'))
				if err != nil {
					t.Fatalf("%q iter %d didn't parse: %v", c.src, i, err)
				}
				for _, good := range c.good[i] {
					if !a.n.haskind(good) {
						t.Errorf("%q iter %d didn't have %v", c.src, i, good)
					}
				}
				for _, bad := range c.bad[i] {
					if a.n.haskind(bad) {
						t.Errorf("%q iter %d had %v", c.src, i, bad)
					}
				}
			}
			a, err := Parse(src, StopOn('\n'))
			if _, ok := err.(*EmptyExpressionError); !ok {
				t.Errorf("%q after %d iters parsed with error %#v and parse tree %v", c.src, len(c.good), err, a)
			}
		})
	}
}

func TestStopOnPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("StopOn(',') didn't panic")
		}
	}()
	StopOn(',')
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"descasc", "2**3*4+5+6*7**8"},
		{"descasc-parens", "(((2**3)*4)+5)+6*(7**8)"},
		{"ascdesc", "1+2*3**4**5*6+7"},
		{"ascdesc-parens", "1+((2*(3**(4**5)))*6)+7"},
		{"decimals", "1**1.1*1.1e1+1.1e-1+.1%5."},
		{"calls", "sqrt(max(1, min(2, 3)))"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			var src strings.Reader
			for i := 0; i < b.N; i++ {
				src.Reset(c.src)
				Parse(&src)
			}
		})
	}
}
