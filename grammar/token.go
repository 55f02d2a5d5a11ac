package grammar

import (
	"fmt"
	"strings"
)

// TokType is the category of a token.
type TokType int8

const (
	Illegal     TokType = iota // unknown character or malformed literal
	Number                     // numeric literal or substituted constant
	Ident                      // variable, function name or unknown name
	Operator                   // one of + - * / ^
	LeftParen                  // (
	RightParen                 // )
	ImplicitMul                // inserted multiplication
)

var toktypeNames = [...]string{"Illegal", "Number", "Ident", "Operator", "LeftParen",
	"RightParen", "ImplicitMul"}

func (tt TokType) String() string {
	if tt < 0 || int(tt) >= len(toktypeNames) {
		return fmt.Sprintf("TokType(%d)", tt)
	}
	return toktypeNames[tt]
}

// Token is a lexical unit of a function definition.
type Token struct {
	Type   TokType
	Lexeme string
	Value  float64 // for Number tokens
}

func (t Token) String() string {
	switch t.Type {
	case Number:
		return fmt.Sprintf("<%s %g>", t.Type, t.Value)
	case ImplicitMul:
		return "<*>"
	}
	return fmt.Sprintf("<%s %q>", t.Type, t.Lexeme)
}

// Op returns the operator character of an Operator or ImplicitMul token,
// or 0 for other tokens.
func (t Token) Op() byte {
	switch t.Type {
	case Operator:
		return t.Lexeme[0]
	case ImplicitMul:
		return '*'
	}
	return 0
}

// --- Identifiers -----------------------------------------------------------

// Functions lists the names of the recognized functions, in lower case.
var Functions = []string{
	"sin", "cos", "tan", "asin", "acos", "atan", "exp", "ln", "log", "sqrt", "abs",
}

var functionSet map[string]bool

func init() {
	functionSet = make(map[string]bool, len(Functions))
	for _, f := range Functions {
		functionSet[f] = true
	}
}

// IsFunction is a predicate: is name a recognized function name?
// Comparison is case-insensitive.
func IsFunction(name string) bool {
	return functionSet[strings.ToLower(name)]
}

// IsVariable is a predicate: does name denote the free variable x?
func IsVariable(name string) bool {
	return name == "x" || name == "X"
}
