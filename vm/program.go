package vm

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/fplot"
)

// Errors during execution. They are not visible to clients, as execution
// errors result in undefined values.
var (
	ErrNoProgramToExecute = errors.New("no program to execute")
	ErrStackUnderflow     = errors.New("stack underflow")
	ErrUnknownName        = errors.New("unknown name")
	ErrNotFinite          = errors.New("result is not finite")
	ErrUnbalancedStack    = errors.New("program leaves an unbalanced stack")
)

// Program is a compiled function definition.
type Program struct {
	source string
	code   []Op
}

// Source returns the function definition the program has been compiled from.
func (p *Program) Source() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	if p == nil {
		return 0
	}
	return len(p.code)
}

// Code returns the instructions of a program. Clients must not modify the
// returned slice.
func (p *Program) Code() []Op {
	if p == nil {
		return nil
	}
	return p.code
}

// String returns the program in RPN notation.
func (p *Program) String() string {
	if p == nil {
		return ""
	}
	s := make([]string, len(p.code))
	for i, op := range p.code {
		s[i] = op.String()
	}
	return strings.Join(s, " ")
}

// Evaluate executes the program for a given x. It returns an undefined
// value if execution fails or results in a non-finite number.
func (p *Program) Evaluate(x float64) fplot.Value {
	f, err := p.Execute(x)
	if err != nil {
		return fplot.Undefined
	}
	return fplot.Known(f)
}

// Execute runs the program for a given x and reports errors.
func (p *Program) Execute(x float64) (float64, error) {
	if p == nil || len(p.code) == 0 {
		return math.NaN(), ErrNoProgramToExecute
	}
	m := newMachine(x)
	for _, op := range p.code {
		m.regs.DecodeArg(op)
		if err := m.execute(op); err != nil {
			return math.NaN(), err
		}
	}
	if m.stack.Size() != 1 {
		return math.NaN(), ErrUnbalancedStack
	}
	f, err := m.pop()
	if err == nil && math.IsInf(f, 0) {
		return f, ErrNotFinite
	}
	return f, err
}

// --- Builder ---------------------------------------------------------------

// Builder appends instructions to a program under construction.
type Builder struct {
	prog *Program
}

// NewBuilder starts a new program for a given source.
func NewBuilder(source string) *Builder {
	return &Builder{prog: &Program{source: source}}
}

func (b *Builder) emit(code OpCode, arg interface{}) *Builder {
	tracer().Debugf("emit %s", Op{opcode: code, arg: arg})
	b.prog.code = append(b.prog.code, Op{opcode: code, arg: arg})
	return b
}

// Constant appends an instruction to push a number.
func (b *Builder) Constant(f float64) *Builder {
	return b.emit(FConst, f)
}

// Variable appends an instruction to push x.
func (b *Builder) Variable() *Builder {
	return b.emit(VarX, nil)
}

// Operator appends a binary operator, one of + - * / ^.
// Other characters result in an Unknown instruction.
func (b *Builder) Operator(c byte) *Builder {
	switch c {
	case '+':
		return b.emit(Add, nil)
	case '-':
		return b.emit(Sub, nil)
	case '*':
		return b.emit(Mul, nil)
	case '/':
		return b.emit(Div, nil)
	case '^':
		return b.emit(Pow, nil)
	}
	return b.emit(UnknownS, string(c))
}

// Negate appends a unary minus.
func (b *Builder) Negate() *Builder {
	return b.emit(Neg, nil)
}

// Call appends a call to a named function. Unknown function names result in
// an Unknown instruction.
func (b *Builder) Call(name string) *Builder {
	if fn, ok := LookupFunc(name); ok {
		return b.emit(CallFn, fn)
	}
	return b.emit(UnknownS, name)
}

// Unknown appends a reference to an unknown name.
func (b *Builder) Unknown(name string) *Builder {
	return b.emit(UnknownS, name)
}

// Program returns the program built so far. The builder must not be used
// afterwards.
func (b *Builder) Program() *Program {
	p := b.prog
	b.prog = nil
	return p
}

// --- Machine ---------------------------------------------------------------

type machine struct {
	stack *arraystack.Stack
	regs  RegisterSet
}

func newMachine(x float64) *machine {
	return &machine{
		stack: arraystack.New(),
		regs:  RegisterSet{X: x},
	}
}

func (m *machine) pop() (float64, error) {
	v, ok := m.stack.Pop()
	if !ok {
		return math.NaN(), ErrStackUnderflow
	}
	return v.(float64), nil
}

// push pushes an intermediate result. Infinities are legal operands, e.g.
// for 1/exp(1000), but NaN is undefined and stops execution.
func (m *machine) push(f float64) error {
	if math.IsNaN(f) {
		return ErrNotFinite
	}
	m.stack.Push(f)
	return nil
}

func (m *machine) execute(op Op) error {
	switch op.opcode {
	case FConst:
		return m.push(m.regs.F)
	case VarX:
		return m.push(m.regs.X)
	case Add, Sub, Mul, Div, Pow:
		r, err := m.pop()
		if err != nil {
			return err
		}
		l, err := m.pop()
		if err != nil {
			return err
		}
		return m.push(arithmetic(op.opcode, l, r))
	case Neg:
		v, err := m.pop()
		if err != nil {
			return err
		}
		return m.push(-v)
	case CallFn:
		v, err := m.pop()
		if err != nil {
			return err
		}
		return m.push(m.regs.M.Fn(v))
	case UnknownS:
		return fmt.Errorf("%w: %q", ErrUnknownName, m.regs.S)
	}
	return fmt.Errorf("illegal instruction %s", op.opcode)
}

func arithmetic(code OpCode, l, r float64) float64 {
	switch code {
	case Add:
		return l + r
	case Sub:
		return l - r
	case Mul:
		return l * r
	case Div:
		if r == 0 {
			return math.NaN()
		}
		return l / r
	case Pow:
		return math.Pow(l, r)
	}
	return math.NaN()
}
