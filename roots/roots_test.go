package roots

import (
	"math"
	"testing"

	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/corelang"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func series(ys ...fplot.Value) []fplot.SamplePoint {
	s := make([]fplot.SamplePoint, len(ys))
	for i, y := range ys {
		s[i] = fplot.Pt(float64(i), y)
	}
	return s
}

var k = fplot.Known
var u = fplot.Undefined

func TestSingleRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.roots")
	defer teardown()
	//
	samples := fplot.Sample(corelang.Compile("x-1"), -5, 5, 500)
	markers := Roots(samples)
	if len(markers) != 1 {
		t.Fatalf("expected one root for x-1, have %v", markers)
	}
	if x := markers[0].At.X(); math.Abs(x-1) > 0.05 {
		t.Errorf("expected root near 1, is at %g", x)
	}
	if markers[0].Lo > 1 || markers[0].Hi < 1 {
		t.Errorf("expected root to be bracketed, is %v", markers[0])
	}
}

func TestRootsAtExactZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.roots")
	defer teardown()
	//
	for i, x := range []struct {
		samples []fplot.SamplePoint
		count   int
	}{
		{series(k(-1), k(0), k(1)), 1},
		{series(k(0), k(0), k(0)), 1},
		{series(k(-1), k(0), k(-1)), 1},
		{series(k(-1), u, k(1)), 0},
		{series(k(1), k(-1), k(1), k(-1)), 3},
		{series(u, u), 0},
		{nil, 0},
	} {
		if markers := Roots(x.samples); len(markers) != x.count {
			t.Errorf("test %d: expected %d roots, have %v", i, x.count, markers)
		}
	}
	markers := Roots(series(k(-1), k(0), k(1)))
	if m := markers[0]; m.At.X() != 1 || m.Lo != 1 || m.Hi != 1 {
		t.Errorf("expected root at the zero sample, is %v", m)
	}
}

func TestSingleIntersection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.roots")
	defer teardown()
	//
	for i, x := range []struct {
		xmin, xmax float64
	}{
		{-5, 5},
		{-10, 10},
	} {
		s1 := fplot.Sample(corelang.Compile("x"), x.xmin, x.xmax, 500)
		s2 := fplot.Sample(corelang.Compile("-x"), x.xmin, x.xmax, 500)
		markers := Intersections(s1, s2)
		if len(markers) != 1 {
			t.Errorf("test %d: expected one intersection, have %v", i, markers)
			continue
		}
		if p := markers[0].At; math.Abs(p.X()) > 0.05 || math.Abs(p.Y()) > 0.05 {
			t.Errorf("test %d: expected intersection near origin, is at %v", i, p)
		}
	}
}

func TestIntersectionsResetOnUndefined(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.roots")
	defer teardown()
	//
	s1 := series(k(1), k(1), k(1))
	s2 := series(k(0), u, k(2))
	if markers := Intersections(s1, s2); len(markers) != 0 {
		t.Errorf("expected no intersection across a gap, have %v", markers)
	}
	s2 = series(k(0), k(0.5), k(2))
	if markers := Intersections(s1, s2); len(markers) != 1 {
		t.Errorf("expected one intersection, have %v", markers)
	}
}

func TestRefine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.roots")
	defer teardown()
	//
	x, ok := Refine(corelang.Compile("x^2-2"), 1, 2, 50)
	if !ok || math.Abs(x-math.Sqrt2) > 1e-9 {
		t.Errorf("expected root at √2, is %g (%v)", x, ok)
	}
	if _, ok := Refine(corelang.Compile("1/x"), -1, 2, 50); ok {
		t.Errorf("expected the pole of 1/x not to be a root")
	}
	if _, ok := Refine(corelang.Compile("x^2+1"), -1, 2, 50); ok {
		t.Errorf("expected interval without sign change to be rejected")
	}
	d := Difference{F: corelang.Compile("x"), G: corelang.Compile("2-x")}
	if x, ok := Refine(d, 0, 3, 50); !ok || math.Abs(x-1) > 1e-9 {
		t.Errorf("expected x and 2-x to intersect at 1, is %g (%v)", x, ok)
	}
}
