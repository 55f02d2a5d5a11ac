package grammar

import (
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func types(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		switch t.Type {
		case Number:
			b.WriteByte('N')
		case Ident:
			b.WriteByte('I')
		case Operator:
			b.WriteString(t.Lexeme)
		case LeftParen:
			b.WriteByte('(')
		case RightParen:
			b.WriteByte(')')
		case ImplicitMul:
			b.WriteByte('&')
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

func TestNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	if s := Normalize(" 2,5 x\t+ 1 "); s != "2.5x+1" {
		t.Errorf("expected normalized input to be 2.5x+1, is %q", s)
	}
}

func TestTokenizeSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		input string
		types string
	}{
		{"x", "I"},
		{"x^2", "I^N"},
		{"1 + 2 * 3", "N+N*N"},
		{"sin(x)", "I(I)"},
		{"-x", "-I"},
		{"1/x", "N/I"},
		{"(x+1", "(I+N"},
		{"x # 2", "I?N"},
	} {
		tokens := Tokenize(x.input)
		if s := types(tokens); s != x.types {
			t.Errorf("test %d: expected %q to tokenize as %s, is %s", i, x.input, x.types, s)
		}
	}
}

func TestTokenizeImplicitMultiplication(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		input string
		types string
	}{
		{"2x", "N&I"},
		{"3sin(x)", "N&I(I)"},
		{"2(x+1)", "N&(I+N)"},
		{"x(3)", "I&(N)"},
		{"x2", "I&N"},
		{"sin(x)", "I(I)"},
		{"2pi", "N&N"},
		{"pi(x)", "N&(I)"},
		{"2x+1", "N&I+N"},
	} {
		tokens := Tokenize(x.input)
		if s := types(tokens); s != x.types {
			t.Errorf("test %d: expected %q to tokenize as %s, is %s", i, x.input, x.types, s)
		}
	}
}

func TestTokenizeDecimalComma(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	tokens := Tokenize("2,5")
	if len(tokens) != 1 || tokens[0].Type != Number || tokens[0].Value != 2.5 {
		t.Errorf("expected 2,5 to be the literal 2.5, is %v", tokens)
	}
}

func TestTokenizeConstants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	for i, x := range []struct {
		input string
		v     float64
	}{
		{"pi", math.Pi},
		{"PI", math.Pi},
		{"e", math.E},
		{"E", math.E},
	} {
		tokens := Tokenize(x.input)
		if len(tokens) != 1 || tokens[0].Type != Number || tokens[0].Value != x.v {
			t.Errorf("test %d: expected constant %q to be %g, is %v", i, x.input, x.v, tokens)
		}
	}
	tokens := Tokenize("exp(1)")
	if tokens[0].Type != Ident || tokens[0].Lexeme != "exp" {
		t.Errorf("expected exp to stay a function name, is %v", tokens[0])
	}
}

func TestTokenizeMalformedLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	tokens := Tokenize("1.2.3+x")
	if s := types(tokens); s != "?+I" {
		t.Errorf("expected 1.2.3 to be illegal, tokens are %v", tokens)
	}
}

func TestIsFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	for _, f := range []string{"sin", "SIN", "Sqrt", "ln", "log", "abs"} {
		if !IsFunction(f) {
			t.Errorf("expected %q to be a function name", f)
		}
	}
	for _, f := range []string{"x", "sinh", "foo", ""} {
		if IsFunction(f) {
			t.Errorf("expected %q not to be a function name", f)
		}
	}
}

func TestTokenizeArbitrary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.grammar")
	defer teardown()
	//
	for _, input := range []string{"", "((((", "))", "äöü", "x\x00y", "....", "+-*/^"} {
		_ = Tokenize(input) // must not panic
	}
}
