package session

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/fplot/sampler"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFunctionList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(800, 600)
	f1 := s.Add("x^2")
	f2 := s.Add("2x+1")
	if f1.Color == f2.Color {
		t.Errorf("expected functions to get different colors")
	}
	if len(s.Functions()) != 2 {
		t.Fatalf("expected 2 functions, have %d", len(s.Functions()))
	}
	edited, err := s.Edit(f1.ID, "x^3")
	if err != nil {
		t.Fatal(err)
	}
	if v := edited.Evaluate(2); v.Float() != 8 {
		t.Errorf("expected edited function to be recompiled, f(2) = %v", v)
	}
	if edited.ID != f1.ID || edited.Color != f1.Color {
		t.Errorf("expected edited function to keep identity and color")
	}
	if v := f1.Evaluate(2); v.Float() != 4 || f1.Source() != "x^2" {
		t.Errorf("expected previous function to be left untouched, f(2) = %v", v)
	}
	if gf, _ := s.Function(0); gf != edited {
		t.Errorf("expected edited function to replace the previous one")
	}
	if err = s.Remove(f1.ID); err != nil {
		t.Fatal(err)
	}
	if gf, _ := s.Function(0); gf != f2 {
		t.Errorf("expected 2x+1 to be first function after removal")
	}
	if _, err := s.Edit(uuid.New(), "x"); !errors.Is(err, ErrNoSuchFunction) {
		t.Errorf("expected ErrNoSuchFunction, got %v", err)
	}
	if err := s.Remove(uuid.New()); !errors.Is(err, ErrNoSuchFunction) {
		t.Errorf("expected ErrNoSuchFunction, got %v", err)
	}
	if _, err := s.Function(5); !errors.Is(err, ErrNoSuchFunction) {
		t.Errorf("expected ErrNoSuchFunction, got %v", err)
	}
	s.Clear()
	if len(s.Functions()) != 0 {
		t.Errorf("expected empty session after clear")
	}
}

func TestFrameRoots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(800, 600)
	s.Add("x-1")
	s.Add("1/x")
	frame := s.Frame()
	if len(frame.Curves) != 2 {
		t.Fatalf("expected 2 curves, have %d", len(frame.Curves))
	}
	r := frame.Curves[0].Roots
	if len(r) != 1 || math.Abs(r[0].World.X()-1) > 1e-6 {
		t.Fatalf("expected one root at 1, have %v", r)
	}
	if math.Abs(r[0].Pixel.X()-440) > 1e-3 || math.Abs(r[0].Pixel.Y()-300) > 1e-3 {
		t.Errorf("expected root at pixel (440,300), is %v", r[0].Pixel)
	}
	if r := frame.Curves[1].Roots; len(r) != 0 {
		t.Errorf("expected no roots for 1/x, have %v", r)
	}
	if frame.Origin.X() != 400 || frame.Origin.Y() != 300 {
		t.Errorf("expected origin at pixel (400,300), is %v", frame.Origin)
	}
	if len(frame.Columns) == 0 || len(frame.Rows) == 0 {
		t.Errorf("expected grid lines")
	}
}

func TestFrameSegmentsClipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(800, 600)
	s.Add("1/x")
	s.Add("tan(x)")
	frame := s.Frame()
	const eps = 1e-6
	for _, c := range frame.Curves {
		if len(c.Segments) == 0 {
			t.Errorf("no segments for %s", c.Function)
		}
		for _, seg := range c.Segments {
			for _, p := range []arithm.Pair{seg.From, seg.To} {
				if p.X() < -eps || p.X() > 800+eps || p.Y() < -eps || p.Y() > 600+eps {
					t.Errorf("%s: segment %v not clipped", c.Function, seg)
				}
			}
			if !seg.Closing && math.Abs(seg.To.Y()-seg.From.Y()) > 599 &&
				math.Abs(seg.To.X()-seg.From.X()) < 2 {
				t.Errorf("%s: vertical connector %v", c.Function, seg)
			}
		}
	}
}

func TestFrameIntersections(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(800, 600)
	s.Add("x")
	s.Add("-x")
	s.Add("x+5")
	frame := s.Frame()
	if len(frame.Intersections) != 1 {
		t.Fatalf("expected one intersection, have %v", frame.Intersections)
	}
	p := frame.Intersections[0].World
	if math.Abs(p.X()) > 1e-6 || math.Abs(p.Y()) > 1e-6 {
		t.Errorf("expected intersection at origin, is %v", p)
	}
	s.SetOptions(sampler.DefaultOptions(), 0)
	frame = s.Frame()
	if len(frame.Intersections) != 1 || math.Abs(frame.Intersections[0].World.X()) > 0.05 {
		t.Errorf("expected one unrefined intersection near 0, have %v", frame.Intersections)
	}
}

func TestCrosshair(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(800, 600)
	s.Add("x^2")
	s.Add("1/x")
	m, ok := s.Crosshair(440, 0)
	if !ok || math.Abs(m.World.X()-1) > 1e-9 || math.Abs(m.World.Y()-1) > 1e-9 {
		t.Errorf("expected crosshair at (1,1), is %v", m.World)
	}
	if _, ok := s.Crosshair(400, 1); ok {
		t.Errorf("expected no crosshair at the pole of 1/x")
	}
	if _, ok := s.Crosshair(400, 7); ok {
		t.Errorf("expected no crosshair for missing function")
	}
}

func TestPanZoom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(200, 200)
	s.Pan(100, 0)
	if w := s.Window(); math.Abs(w.XMin+20) > 1e-9 {
		t.Errorf("expected xmin = -20 after pan, is %v", w)
	}
	s.ZoomCenter(0.5)
	if w := s.Window(); math.Abs(w.DX()-40) > 1e-9 {
		t.Errorf("expected window width 40 after zoom out, is %v", w)
	}
	xs, _ := s.Scales()
	if cols := s.Window().DX() / xs; cols < 8 || cols > 24 {
		t.Errorf("expected grid to be re-scaled, have %g columns", cols)
	}
}

func TestSaveLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(800, 600)
	f1 := s.Add("x^2")
	s.Add("sin(x)")
	s.SetWindow(-2, 3, -1, 4)
	path := filepath.Join(t.TempDir(), "session.yaml")
	if err := s.SaveFile(path); err != nil {
		t.Fatal(err)
	}
	loaded := New(800, 600)
	if err := loaded.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	fs := loaded.Functions()
	if len(fs) != 2 || fs[0].Source() != "x^2" || fs[1].Source() != "sin(x)" {
		t.Fatalf("functions not restored: %v", fs)
	}
	if fs[0].ID != f1.ID || fs[0].Color != f1.Color {
		t.Errorf("identity of function not restored")
	}
	if w := loaded.Window(); w.XMin != -2 || w.XMax != 3 || w.YMin != -1 || w.YMax != 4 {
		t.Errorf("window not restored: %v", w)
	}
	if err := loaded.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestLoadIllegal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(800, 600)
	s.Add("x")
	input := "functions:\n  - source: x^2\n    color: '#zz0000'\n"
	if err := s.Load(strings.NewReader(input)); !errors.Is(err, ErrIllegalColor) {
		t.Errorf("expected illegal color error, got %v", err)
	}
	if fs := s.Functions(); len(fs) != 1 || fs[0].Source() != "x" {
		t.Errorf("expected session to be unchanged after failed load")
	}
	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "source: x") {
		t.Errorf("unexpected session file:\n%s", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(400, 300)
	s.Add("sin(x)")
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Frame()
		}()
		go func(i int) {
			defer wg.Done()
			s.Pan(float64(i), 1)
			s.Add("x")
		}(i)
	}
	wg.Wait()
	if len(s.Functions()) != 5 {
		t.Errorf("expected 5 functions, have %d", len(s.Functions()))
	}
}

func TestConcurrentEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.session")
	defer teardown()
	//
	s := New(400, 300)
	gf := s.Add("sin(x)")
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for _, c := range s.Frame().Curves {
				_ = c.Function.Source()
			}
		}()
		go func(i int) {
			defer wg.Done()
			if _, err := s.Edit(gf.ID, strings.Repeat("x*", i)+"x"); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	if fs := s.Functions(); len(fs) != 1 || fs[0].ID != gf.ID {
		t.Errorf("expected one function with unchanged id after edits")
	}
	if gf.Source() != "sin(x)" {
		t.Errorf("expected function handed out before edits to be unchanged, is %q", gf.Source())
	}
}
