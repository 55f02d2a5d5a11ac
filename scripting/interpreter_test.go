package scripting

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/fplot/session"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func newInterpreter() (*Interpreter, *session.Session, *bytes.Buffer) {
	s := session.New(800, 600)
	out := &bytes.Buffer{}
	return NewInterpreter(s, out), s, out
}

func lines(out *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestEmptyScript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.scripting")
	defer teardown()
	//
	intp, _, _ := newInterpreter()
	defer intp.Close()
	if err := intp.DoString("  "); !errors.Is(err, ErrNoProgramToExecute) {
		t.Errorf("expected empty-input-error, but got %v", err)
	}
}

func TestScriptPlot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.scripting")
	defer teardown()
	//
	intp, s, out := newInterpreter()
	defer intp.Close()
	script := `
local n = plot("x-1")
plot("1-x", "#00ff00")
print(n, #functions())
local r = roots(1)
print(#r, string.format("%.3f", r[1]))
local is = intersections()
print(#is, string.format("%.3f %.3f", is[1].x, math.abs(is[1].y)))
`
	if err := intp.DoString(script); err != nil {
		t.Fatal(err)
	}
	expected := []string{"1\t2", "1\t1.000", "1\t1.000 0.000"}
	got := lines(out)
	if len(got) != len(expected) {
		t.Fatalf("expected output %q, have %q", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d: expected %q, have %q", i+1, expected[i], got[i])
		}
	}
	if gf, _ := s.Function(1); gf.Color.G != 0xff || gf.Color.R != 0 {
		t.Errorf("expected second function to be green, is %v", gf.Color)
	}
}

func TestScriptEvalWindow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.scripting")
	defer teardown()
	//
	intp, s, out := newInterpreter()
	defer intp.Close()
	script := `
print(eval("x^2", 3))
print(eval("1/x", 0))
print(window(-1, 1, -2, 2))
zoom(2)
pan(0, 0)
`
	if err := intp.DoString(script); err != nil {
		t.Fatal(err)
	}
	expected := []string{"9", "nil", "-1\t1\t-2\t2"}
	got := lines(out)
	for i := range expected {
		if i >= len(got) || got[i] != expected[i] {
			t.Errorf("expected output %q, have %q", expected, got)
			break
		}
	}
	if w := s.Window(); w.DX() != 1 || w.DY() != 2 {
		t.Errorf("expected window of 1×2 after zoom, is %v", w)
	}
}

func TestScriptErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.scripting")
	defer teardown()
	//
	intp, _, _ := newInterpreter()
	defer intp.Close()
	for i, script := range []string{
		`remove(5)`,
		`plot("x", "red")`,
		`roots(3)`,
		`load("/does/not/exist.yaml")`,
		`plot(`,
	} {
		if err := intp.DoString(script); err == nil {
			t.Errorf("test %d: expected script %q to fail", i, script)
		}
	}
}

func TestScriptRemoveTwice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.scripting")
	defer teardown()
	//
	intp, s, _ := newInterpreter()
	defer intp.Close()
	if err := intp.DoString(`plot("x") remove(1)`); err != nil {
		t.Fatal(err)
	}
	if len(s.Functions()) != 0 {
		t.Errorf("expected function to be removed")
	}
	err := intp.DoString(`remove(1)`)
	if err == nil || !strings.Contains(err.Error(), session.ErrNoSuchFunction.Error()) {
		t.Errorf("expected no-such-function error, got %v", err)
	}
}

func TestScriptFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.scripting")
	defer teardown()
	//
	dir := t.TempDir()
	sessionFile := filepath.Join(dir, "s.yaml")
	script := filepath.Join(dir, "plot.lua")
	code := `plot("sin(x)")
plot("cos(x)")
remove(1)
save("` + filepath.ToSlash(sessionFile) + `")
clear()
load("` + filepath.ToSlash(sessionFile) + `")
print(functions()[1])
`
	if err := os.WriteFile(script, []byte(code), 0o644); err != nil {
		t.Fatal(err)
	}
	intp, s, out := newInterpreter()
	defer intp.Close()
	if err := intp.DoFile(script); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != "cos(x)" {
		t.Errorf("expected cos(x) to survive, output is %q", got)
	}
	if len(s.Functions()) != 1 {
		t.Errorf("expected 1 function after load, have %d", len(s.Functions()))
	}
}
