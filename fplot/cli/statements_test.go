package cli

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/session"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func render(t *testing.T, item interface{}) string {
	t.Helper()
	tw, ok := item.(table.Writer)
	if !ok {
		t.Fatalf("expected a table, have %T", item)
	}
	return tw.Render()
}

func TestStatementPlotList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	p := newPlotter(&bytes.Buffer{})
	for _, line := range []string{"plot x-1", "plot 1 - x", "edit 2 2x"} {
		if _, err := p.execute(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
	result, err := p.execute("list")
	if err != nil {
		t.Fatal(err)
	}
	out := render(t, result)
	for _, s := range []string{"x-1", "2x", "x 1 -", "2 x *"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected function list to contain %q:\n%s", s, out)
		}
	}
	if _, err := p.execute("remove 1"); err != nil {
		t.Fatal(err)
	}
	if fs := p.session.Functions(); len(fs) != 1 || fs[0].Source() != "2x" {
		t.Errorf("expected only 2x to be left, have %v", fs)
	}
	if _, err := p.execute("clear"); err != nil || len(p.session.Functions()) != 0 {
		t.Errorf("expected session to be cleared")
	}
}

func TestStatementErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	p := newPlotter(&bytes.Buffer{})
	if _, err := p.execute("frobnicate"); !errors.Is(err, ErrUnknownStatement) {
		t.Errorf("expected unknown statement error, got %v", err)
	}
	if _, err := p.execute("remove 3"); !errors.Is(err, session.ErrNoSuchFunction) {
		t.Errorf("expected no-such-function error, got %v", err)
	}
	for i, line := range []string{
		"plot", "edit 1", "pan 1", "zoom -2", "zoom abc", "eval x",
		"window 1 2 3", "table 1", "intersect", "save", "run",
	} {
		if _, err := p.execute(line); err == nil {
			t.Errorf("test %d: expected %q to fail", i, line)
		}
	}
	if result, err := p.execute("   "); result != nil || err != nil {
		t.Errorf("expected empty input to be ignored")
	}
}

func TestStatementEvalRPN(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	p := newPlotter(&bytes.Buffer{})
	for i, x := range []struct {
		line   string
		result interface{}
	}{
		{"eval 3 x^2", fplot.Known(9)},
		{"eval 2,5 2x", fplot.Known(5)},
		{"eval 0 1/x", fplot.Undefined},
		{"rpn 2x + 1", "2 x * 1 +"},
		{"rpn sin(x", "x sin"},
	} {
		result, err := p.execute(x.line)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if result != x.result {
			t.Errorf("test %d: expected %q to result in %v, is %v", i, x.line, x.result, result)
		}
	}
}

func TestStatementRootsIntersect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	p := newPlotter(&bytes.Buffer{})
	p.execute("plot x^2-4")
	p.execute("plot 2x-4")
	result, err := p.execute("roots 1")
	if err != nil {
		t.Fatal(err)
	}
	if out := render(t, result); !strings.Contains(out, "-2") || !strings.Contains(out, "2") {
		t.Errorf("expected roots at ±2:\n%s", out)
	}
	result, err = p.execute("intersect")
	if err != nil {
		t.Fatal(err)
	}
	if out := render(t, result); !strings.Contains(out, "│ 2 ") {
		t.Errorf("expected intersection at x = 2:\n%s", out)
	}
	result, err = p.execute("table 2")
	if err != nil {
		t.Fatal(err)
	}
	if out := render(t, result); !strings.Contains(out, "-24") || !strings.Contains(out, "16") {
		t.Errorf("expected table of 2x-4 from -10 to 10:\n%s", out)
	}
}

func TestStatementWindowPanZoom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	p := newPlotter(&bytes.Buffer{})
	if _, err := p.execute("window -1 1 -2 2"); err != nil {
		t.Fatal(err)
	}
	if _, err := p.execute("zoom 0,5"); err != nil {
		t.Fatal(err)
	}
	w := p.session.Window()
	if math.Abs(w.DX()-4) > 1e-9 || math.Abs(w.DY()-8) > 1e-9 {
		t.Errorf("expected window of 4×8 after zoom out, is %v", w)
	}
	if _, err := p.execute("pan 400 0"); err != nil {
		t.Fatal(err)
	}
	if w = p.session.Window(); math.Abs(w.XMin+4) > 1e-9 {
		t.Errorf("expected xmin = -4 after pan by half a window, is %v", w)
	}
}

func TestStatementSaveLoadRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	dir := t.TempDir()
	out := &bytes.Buffer{}
	p := newPlotter(out)
	p.execute("plot cos(x)")
	path := filepath.Join(dir, "trig")
	if _, err := p.execute("save " + path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".yaml"); err != nil {
		t.Fatalf("expected session file with suffix: %v", err)
	}
	script := filepath.Join(dir, "more.lua")
	os.WriteFile(script, []byte(`plot("sin(x)")
print(#functions())
`), 0o644)
	q := newPlotter(out)
	if _, err := q.execute("load " + path); err != nil {
		t.Fatal(err)
	}
	if _, err := q.execute("run " + script); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "2" {
		t.Errorf("expected script to see 2 functions, output is %q", out.String())
	}
}

func TestParseWindow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	b, err := parseWindow(strings.Split("-1,5 2 0 1e3", " "))
	if err != nil || b != [4]float64{-1.5, 2, 0, 1000} {
		t.Errorf("unexpected bounds %v (err = %v)", b, err)
	}
	if _, err = parseWindow([]string{"1", "2"}); err == nil {
		t.Errorf("expected error for 2 bounds")
	}
	if _, err = parseWindow([]string{"1", "2", "x", "4"}); err == nil {
		t.Errorf("expected error for illegal bound")
	}
}

func TestSessionPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	dir := t.TempDir()
	paths := appPaths{tag: "FPLOT", home: dir}
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for i, x := range []struct {
		name, path string
	}{
		{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "a.yaml")},
		{filepath.Join(dir, "b"), filepath.Join(dir, "b.yaml")},
		{"c.yml", "c.yml"},
	} {
		if p := sessionPath(nil, x.name); p != x.path {
			t.Errorf("test %d: expected path %q, have %q", i, x.path, p)
		}
	}
	if p := sessionPath(paths, "d"); filepath.Base(p) != "d.yaml" || filepath.Dir(p) != paths.SessionDir() {
		t.Errorf("expected session file in session dir, have %q", p)
	}
}

func TestLocalizedNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	saved := fplot.Configuration
	defer func() { fplot.Configuration = saved }()
	k := koanf.New(".")
	k.Load(confmap.Provider(map[string]interface{}{"locale": "de"}, "."), nil)
	fplot.Configuration = k
	if s := formatNumber(numberPrinter(), 1.5); !strings.Contains(s, ",") {
		t.Errorf("expected decimal comma for german locale, have %q", s)
	}
	k.Load(confmap.Provider(map[string]interface{}{"locale": "??"}, "."), nil)
	if s := formatNumber(numberPrinter(), 1.5); s != "1.5" {
		t.Errorf("expected fallback to english for illegal locale, have %q", s)
	}
}
