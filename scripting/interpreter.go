package scripting

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/fplot/corelang"
	"github.com/npillmayer/fplot/session"
	lua "github.com/yuin/gopher-lua"
)

// ErrNoProgramToExecute flags an empty script.
var ErrNoProgramToExecute = errors.New("no program to execute")

// Interpreter executes Lua scripts operating on a session.
type Interpreter struct {
	L       *lua.LState
	session *session.Session
	out     io.Writer
}

// operator is a Lua-callable function with access to the interpreter.
type operator func(intp *Interpreter, L *lua.LState) int

// operators is the environment of functions pre-loaded into Lua.
var operators = map[string]operator{
	"plot":          plot,
	"remove":        remove,
	"clear":         clearAll,
	"functions":     functions,
	"window":        window,
	"pan":           pan,
	"zoom":          zoom,
	"eval":          eval,
	"roots":         rootsOf,
	"intersections": intersections,
	"save":          save,
	"load":          load,
	"print":         printOut,
}

// NewInterpreter creates an interpreter for a session. Output of print
// goes to out, or to stdout if out is nil.
func NewInterpreter(s *session.Session, out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	intp := &Interpreter{
		L:       lua.NewState(),
		session: s,
		out:     out,
	}
	for name, op := range operators {
		op := op
		intp.L.SetGlobal(name, intp.L.NewFunction(func(L *lua.LState) int {
			return op(intp, L)
		}))
	}
	return intp
}

// Close releases the Lua state.
func (intp *Interpreter) Close() {
	intp.L.Close()
}

// DoString executes a Lua chunk.
func (intp *Interpreter) DoString(script string) error {
	if strings.TrimSpace(script) == "" {
		return ErrNoProgramToExecute
	}
	if err := intp.L.DoString(script); err != nil {
		tracer().Errorf("script error: %v", err)
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// DoFile executes a Lua script file.
func (intp *Interpreter) DoFile(path string) error {
	tracer().Infof("executing script %s", path)
	if err := intp.L.DoFile(path); err != nil {
		tracer().Errorf("script error: %v", err)
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// --- Operators -------------------------------------------------------------

func plot(intp *Interpreter, L *lua.LState) int {
	src := L.CheckString(1)
	if L.GetTop() >= 2 {
		c, err := session.ParseColor(L.CheckString(2))
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
		intp.session.AddWithColor(src, c)
	} else {
		intp.session.Add(src)
	}
	L.Push(lua.LNumber(len(intp.session.Functions())))
	return 1
}

func function(intp *Interpreter, L *lua.LState, arg int) *session.GraphFunction {
	i := L.OptInt(arg, 1)
	gf, err := intp.session.Function(i - 1)
	if err != nil {
		L.ArgError(arg, fmt.Sprintf("%v: #%d", err, i))
		return nil
	}
	return gf
}

func remove(intp *Interpreter, L *lua.LState) int {
	if gf := function(intp, L, 1); gf != nil {
		if err := intp.session.Remove(gf.ID); err != nil {
			L.RaiseError("%v", err)
		}
	}
	return 0
}

func clearAll(intp *Interpreter, L *lua.LState) int {
	intp.session.Clear()
	return 0
}

func functions(intp *Interpreter, L *lua.LState) int {
	tbl := L.NewTable()
	for _, gf := range intp.session.Functions() {
		tbl.Append(lua.LString(gf.Source()))
	}
	L.Push(tbl)
	return 1
}

func window(intp *Interpreter, L *lua.LState) int {
	if L.GetTop() >= 4 {
		intp.session.SetWindow(
			float64(L.CheckNumber(1)), float64(L.CheckNumber(2)),
			float64(L.CheckNumber(3)), float64(L.CheckNumber(4)),
		)
	}
	w := intp.session.Window()
	L.Push(lua.LNumber(w.XMin))
	L.Push(lua.LNumber(w.XMax))
	L.Push(lua.LNumber(w.YMin))
	L.Push(lua.LNumber(w.YMax))
	return 4
}

func pan(intp *Interpreter, L *lua.LState) int {
	intp.session.Pan(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)))
	return 0
}

func zoom(intp *Interpreter, L *lua.LState) int {
	f := float64(L.CheckNumber(1))
	if L.GetTop() >= 3 {
		intp.session.Zoom(f, arithm.P(float64(L.CheckNumber(2)), float64(L.CheckNumber(3))))
	} else {
		intp.session.ZoomCenter(f)
	}
	return 0
}

func eval(intp *Interpreter, L *lua.LState) int {
	src := L.CheckString(1)
	x := float64(L.CheckNumber(2))
	v := corelang.Compile(src).Evaluate(x)
	if !v.IsKnown() {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(v.Float()))
	return 1
}

func rootsOf(intp *Interpreter, L *lua.LState) int {
	i := L.OptInt(1, 1)
	frame := intp.session.Frame()
	if i < 1 || i > len(frame.Curves) {
		L.ArgError(1, fmt.Sprintf("%v: #%d", session.ErrNoSuchFunction, i))
		return 0
	}
	tbl := L.NewTable()
	for _, m := range frame.Curves[i-1].Roots {
		tbl.Append(lua.LNumber(m.World.X()))
	}
	L.Push(tbl)
	return 1
}

func intersections(intp *Interpreter, L *lua.LState) int {
	tbl := L.NewTable()
	for _, m := range intp.session.Frame().Intersections {
		pt := L.NewTable()
		L.SetField(pt, "x", lua.LNumber(m.World.X()))
		L.SetField(pt, "y", lua.LNumber(m.World.Y()))
		tbl.Append(pt)
	}
	L.Push(tbl)
	return 1
}

func save(intp *Interpreter, L *lua.LState) int {
	if err := intp.session.SaveFile(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func load(intp *Interpreter, L *lua.LState) int {
	if err := intp.session.LoadFile(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func printOut(intp *Interpreter, L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(intp.out, strings.Join(parts, "\t"))
	return 0
}
