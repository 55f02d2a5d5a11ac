package grammar

/*
The scanner works in two passes. First a lexmachine DFA splits the input into
raw lexemes: runs of digits and dots, runs of letters, and single characters.
Then a rule pass turns raw lexemes into tokens, substituting constants,
rejecting malformed literals and inserting implicit multiplications.
*/

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Raw lexeme categories of the DFA.
const (
	rawNumber int = iota
	rawIdent
	rawChar
)

type rawLexeme struct {
	cat    int
	lexeme string
}

var lexer *lexmachine.Lexer
var lexerOnce sync.Once

func makeLexeme(cat int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(cat, string(m.Bytes), m), nil
	}
}

func initLexer() {
	lexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`[0-9\.]+`), makeLexeme(rawNumber))
		lx.Add([]byte(`([a-z]|[A-Z])+`), makeLexeme(rawIdent))
		lx.Add([]byte(`.`), makeLexeme(rawChar))
		if err := lx.Compile(); err != nil {
			panic(fmt.Errorf("cannot compile function tokenizer: %w", err))
		}
		lexer = lx
	})
}

// Normalize removes all white space from a function definition and converts
// decimal commas to decimal points.
func Normalize(input string) string {
	input = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
	return strings.ReplaceAll(input, ",", ".")
}

func splitLexemes(input string) []rawLexeme {
	initLexer()
	var raw []rawLexeme
	scanner, err := lexer.Scanner([]byte(input))
	if err != nil {
		tracer().Errorf("cannot create scanner: %v", err)
		return nil
	}
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if ui, is := err.(*machines.UnconsumedInput); is {
			end := ui.FailTC
			if end <= ui.StartTC {
				end = ui.StartTC + 1
			}
			if end > len(ui.Text) {
				end = len(ui.Text)
			}
			raw = append(raw, rawLexeme{cat: rawChar, lexeme: string(ui.Text[ui.StartTC:end])})
			scanner.TC = end
			continue
		} else if err != nil {
			tracer().Errorf("tokenizer: %v", err)
			break
		}
		token := tok.(*lexmachine.Token)
		raw = append(raw, rawLexeme{cat: token.Type, lexeme: string(token.Lexeme)})
	}
	return raw
}

// Tokenize splits a function definition into tokens. It never fails;
// anything unrecognizable results in Illegal tokens.
func Tokenize(input string) []Token {
	raw := splitLexemes(Normalize(input))
	tokens := make([]Token, 0, len(raw)+4)
	next := func(i int) (rawLexeme, bool) {
		if i+1 < len(raw) {
			return raw[i+1], true
		}
		return rawLexeme{}, false
	}
	for i, r := range raw {
		la, hasLA := next(i)
		switch r.cat {
		case rawNumber:
			f, err := strconv.ParseFloat(r.lexeme, 64)
			if err != nil {
				tracer().Debugf("malformed number literal %q", r.lexeme)
				tokens = append(tokens, Token{Type: Illegal, Lexeme: r.lexeme})
				continue
			}
			tokens = appendNumber(tokens, r.lexeme, f, la, hasLA)
		case rawIdent:
			switch strings.ToLower(r.lexeme) {
			case "pi":
				tokens = appendNumber(tokens, r.lexeme, math.Pi, la, hasLA)
				continue
			case "e":
				tokens = appendNumber(tokens, r.lexeme, math.E, la, hasLA)
				continue
			}
			tokens = append(tokens, Token{Type: Ident, Lexeme: r.lexeme})
			if hasLA && (la.cat == rawNumber || (la.lexeme == "(" && !IsFunction(r.lexeme))) {
				tokens = append(tokens, Token{Type: ImplicitMul, Lexeme: "*"})
			}
		default:
			tokens = append(tokens, charToken(r.lexeme))
		}
	}
	tracer().Debugf("tokens = %v", tokens)
	return tokens
}

// appendNumber appends a number token, followed by an implicit multiplication
// if a letter or an opening parenthesis follows.
func appendNumber(tokens []Token, lexeme string, f float64, la rawLexeme, hasLA bool) []Token {
	tokens = append(tokens, Token{Type: Number, Lexeme: lexeme, Value: f})
	if hasLA && (la.cat == rawIdent || la.lexeme == "(") {
		tokens = append(tokens, Token{Type: ImplicitMul, Lexeme: "*"})
	}
	return tokens
}

func charToken(lexeme string) Token {
	switch lexeme {
	case "+", "-", "*", "/", "^":
		return Token{Type: Operator, Lexeme: lexeme}
	case "(":
		return Token{Type: LeftParen, Lexeme: lexeme}
	case ")":
		return Token{Type: RightParen, Lexeme: lexeme}
	}
	tracer().Debugf("illegal character %q", lexeme)
	return Token{Type: Illegal, Lexeme: lexeme}
}
