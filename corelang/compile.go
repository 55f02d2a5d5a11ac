package corelang

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/fplot/grammar"
	"github.com/npillmayer/fplot/vm"
)

type entryKind int8

const (
	binaryOp entryKind = iota
	unaryMinus
	function
	paren
)

// stackEntry is an element of the operator stack.
type stackEntry struct {
	kind  entryKind
	op    byte   // for binary operators
	name  string // for functions
	prec  int
	right bool // right associative?
}

func (e stackEntry) String() string {
	switch e.kind {
	case unaryMinus:
		return "neg"
	case function:
		return e.name
	case paren:
		return "("
	}
	return string(e.op)
}

var precedence = map[byte]int{'+': 2, '-': 2, '*': 3, '/': 3, '^': 4}

const unaryPrecedence = 5

func binaryEntry(op byte) stackEntry {
	return stackEntry{kind: binaryOp, op: op, prec: precedence[op], right: op == '^'}
}

// Compile translates a function definition into an RPN program. It never
// fails; see the package documentation for how malformed input is handled.
func Compile(source string) *vm.Program {
	tokens := AutoClose(grammar.Tokenize(source))
	c := compiler{
		out: vm.NewBuilder(source),
		ops: linkedliststack.New(),
	}
	c.unaryContext = true
	for _, t := range tokens {
		c.token(t)
	}
	for !c.ops.Empty() {
		c.popToOutput()
	}
	prog := c.out.Program()
	tracer().Debugf("compiled %q to [%s]", source, prog)
	return prog
}

// AutoClose appends a closing parenthesis for every unmatched opening
// parenthesis. Stray closing parentheses do not count.
func AutoClose(tokens []grammar.Token) []grammar.Token {
	depth := 0
	for _, t := range tokens {
		switch t.Type {
		case grammar.LeftParen:
			depth++
		case grammar.RightParen:
			if depth > 0 {
				depth--
			}
		}
	}
	if depth > 0 {
		tracer().Debugf("auto-closing %d parentheses", depth)
	}
	for ; depth > 0; depth-- {
		tokens = append(tokens, grammar.Token{Type: grammar.RightParen, Lexeme: ")"})
	}
	return tokens
}

type compiler struct {
	out          *vm.Builder
	ops          *linkedliststack.Stack // operator stack of stackEntry
	depth        int                    // count of open parentheses on ops
	unaryContext bool                   // would a minus be unary here?
}

func (c *compiler) top() (stackEntry, bool) {
	e, ok := c.ops.Peek()
	if !ok {
		return stackEntry{}, false
	}
	return e.(stackEntry), true
}

func (c *compiler) popToOutput() {
	e, ok := c.ops.Pop()
	if !ok {
		return
	}
	entry := e.(stackEntry)
	switch entry.kind {
	case binaryOp:
		c.out.Operator(entry.op)
	case unaryMinus:
		c.out.Negate()
	case function:
		c.out.Call(entry.name)
	case paren:
		c.depth--
	}
}

func (c *compiler) token(t grammar.Token) {
	switch t.Type {
	case grammar.Illegal:
		tracer().Debugf("skipping illegal token %v", t)
	case grammar.Number:
		c.out.Constant(t.Value)
		c.unaryContext = false
	case grammar.Ident:
		if grammar.IsFunction(t.Lexeme) {
			c.ops.Push(stackEntry{kind: function, name: t.Lexeme})
			c.unaryContext = true
			return
		}
		if grammar.IsVariable(t.Lexeme) {
			c.out.Variable()
		} else {
			tracer().Debugf("unknown name %q", t.Lexeme)
			c.out.Unknown(t.Lexeme)
		}
		c.unaryContext = false
	case grammar.Operator, grammar.ImplicitMul:
		op := t.Op()
		if op == '-' && c.unaryContext {
			c.ops.Push(stackEntry{kind: unaryMinus, prec: unaryPrecedence, right: true})
			return
		}
		c.binary(binaryEntry(op))
		c.unaryContext = true
	case grammar.LeftParen:
		c.ops.Push(stackEntry{kind: paren})
		c.depth++
		c.unaryContext = true
	case grammar.RightParen:
		c.closeParen()
		c.unaryContext = false
	default:
		tracer().Errorf("unknown token type %s", t.Type)
	}
}

// binary pops operators of higher precedence, or of equal precedence if e is
// left associative, then pushes e. Parentheses and functions stop popping.
func (c *compiler) binary(e stackEntry) {
	for {
		top, ok := c.top()
		if !ok || top.kind == paren || top.kind == function {
			break
		}
		if top.prec > e.prec || (top.prec == e.prec && !e.right) {
			c.popToOutput()
			continue
		}
		break
	}
	c.ops.Push(e)
}

func (c *compiler) closeParen() {
	if c.depth == 0 {
		tracer().Debugf("dropping stray closing parenthesis")
		return
	}
	for {
		top, ok := c.top()
		if !ok {
			return
		}
		if top.kind == paren {
			c.popToOutput() // discards the parenthesis
			break
		}
		c.popToOutput()
	}
	if top, ok := c.top(); ok && top.kind == function {
		c.popToOutput()
	}
}
