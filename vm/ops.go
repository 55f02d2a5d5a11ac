package vm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OpCode is the instruction code of an Op.
type OpCode uint16

// Argument types are encoded in the lower 3 bits of an op code.
const (
	OpNop OpCode = 0

	OpArgF OpCode = 2 // float argument
	OpArgS OpCode = 5 // string argument
	OpArgM OpCode = 6 // math function argument
)

const (
	Const  OpCode = (8 + iota) << 3 // FCONST ⟪f64⟫ : put a float constant onto the stack
	VarX                            // VARX : put the current value of x onto the stack
	Add                             // ADD : replace TOS and OS by OS + TOS
	Sub                             // SUB : replace TOS and OS by OS - TOS
	Mul                             // MUL : replace TOS and OS by OS * TOS
	Div                             // DIV : replace TOS and OS by OS / TOS
	Pow                             // POW : replace TOS and OS by OS ^ TOS
	Neg                             // NEG : negate TOS
	Call                            // CALL ⟪fn⟫ : replace TOS by fn(TOS)
	Unknown                         // UNKNOWN ⟪name⟫ : reference to an unknown name

	FConst   OpCode = Const + OpArgF
	CallFn   OpCode = Call + OpArgM
	UnknownS OpCode = Unknown + OpArgS
)

var opcodeNames = map[OpCode]string{
	OpNop: "NOP", FConst: "FCONST", VarX: "VARX", Add: "ADD", Sub: "SUB",
	Mul: "MUL", Div: "DIV", Pow: "POW", Neg: "NEG", CallFn: "CALL",
	UnknownS: "UNKNOWN",
}

func (code OpCode) String() string {
	if s, ok := opcodeNames[code]; ok {
		return s
	}
	return fmt.Sprintf("OP(%02x)", uint16(code))
}

// Op is a single instruction, optionally with an argument.
type Op struct {
	opcode OpCode
	arg    interface{}
}

// Code returns the op code of an instruction.
func (op Op) Code() OpCode {
	return op.opcode
}

// String returns the RPN form of an instruction.
func (op Op) String() string {
	switch op.opcode {
	case FConst:
		return strconv.FormatFloat(op.arg.(float64), 'g', -1, 64)
	case VarX:
		return "x"
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "^"
	case Neg:
		return "neg"
	case CallFn:
		return op.arg.(MathFunc).Name
	case UnknownS:
		return "?" + op.arg.(string)
	}
	return op.opcode.String()
}

// RegisterSet holds decoded instruction arguments and the current x.
type RegisterSet struct {
	X float64
	F float64
	S string
	M MathFunc
}

// DecodeArg loads the argument of op into the appropriate register.
func (rset *RegisterSet) DecodeArg(op Op) {
	switch op.opcode & 0x07 {
	case 0:
	case OpArgF:
		rset.F = op.arg.(float64)
	case OpArgS:
		rset.S = op.arg.(string)
	case OpArgM:
		rset.M = op.arg.(MathFunc)
	default:
		panic(fmt.Sprintf("cannot handle op %2x", op.opcode))
	}
}

// --- Math functions --------------------------------------------------------

// MathFunc is a named function of one argument.
type MathFunc struct {
	Name string
	Fn   func(float64) float64
}

var mathFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"exp":  math.Exp,
	"ln":   math.Log,
	"log":  math.Log,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
}

// LookupFunc finds a math function by name, case-insensitively.
func LookupFunc(name string) (MathFunc, bool) {
	name = strings.ToLower(name)
	fn, ok := mathFuncs[name]
	return MathFunc{Name: name, Fn: fn}, ok
}
