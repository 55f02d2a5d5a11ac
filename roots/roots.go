package roots

import (
	"fmt"
	"math"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/fplot"
)

// Marker is an approximate crossing. Lo and Hi bracket the crossing; for
// markers at exact zero samples, Lo = Hi.
type Marker struct {
	At     arithm.Pair
	Lo, Hi float64
}

func (m Marker) String() string {
	return fmt.Sprintf("%v in [%g,%g]", m.At, m.Lo, m.Hi)
}

// scanState is the state of a sign scan.
type scanState int8

const (
	noPriorSample scanState = iota
	havePrior
)

// scanner detects sign changes in a series of values.
type scanner struct {
	state    scanState
	prevX    float64
	prevV    float64
	prevSign int
	markers  []Marker
}

// next consumes the value v at position x. It reports a crossing with
// the x-position of the crossing.
func (sc *scanner) next(x float64, v fplot.Value) (float64, bool) {
	sign, ok := v.Sign()
	if !ok {
		sc.state = noPriorSample
		return 0, false
	}
	f := v.Float()
	defer func() {
		sc.prevX, sc.prevV, sc.prevSign = x, f, sign
		sc.state = havePrior
	}()
	if sign == 0 {
		if sc.state == havePrior && sc.prevSign == 0 {
			return 0, false // duplicate of previous zero
		}
		sc.markers = append(sc.markers, Marker{Lo: x, Hi: x})
		return x, true
	}
	if sc.state == havePrior && sc.prevSign != 0 && sign != sc.prevSign {
		xc := sc.prevX - sc.prevV*(x-sc.prevX)/(f-sc.prevV)
		sc.markers = append(sc.markers, Marker{Lo: sc.prevX, Hi: x})
		return xc, true
	}
	return 0, false
}

// Roots finds the positions where a sampled function crosses the x-axis.
// Positions between samples are linearly interpolated.
func Roots(samples []fplot.SamplePoint) []Marker {
	sc := &scanner{}
	for _, s := range samples {
		if x, ok := sc.next(s.X, s.Y); ok {
			m := &sc.markers[len(sc.markers)-1]
			m.At = arithm.P(x, 0)
		}
	}
	tracer().Debugf("found %d roots", len(sc.markers))
	return sc.markers
}

// Intersections finds the positions where two sampled functions cross.
// Both series must have been sampled at the same positions. If either
// function is undefined at a position, scanning starts over.
func Intersections(s1, s2 []fplot.SamplePoint) []Marker {
	n := len(s1)
	if len(s2) < n {
		n = len(s2)
	}
	sc := &scanner{}
	for i := 0; i < n; i++ {
		if s1[i].X != s2[i].X {
			tracer().Errorf("sample positions differ: %g ≠ %g", s1[i].X, s2[i].X)
			return sc.markers
		}
		if x, ok := sc.next(s1[i].X, s1[i].Y.Minus(s2[i].Y)); ok {
			m := &sc.markers[len(sc.markers)-1]
			m.At = arithm.P(x, interpolate(s1, i, x))
		}
	}
	tracer().Debugf("found %d intersections", len(sc.markers))
	return sc.markers
}

// interpolate returns the y-value at x, between samples i-1 and i.
func interpolate(s []fplot.SamplePoint, i int, x float64) float64 {
	if i == 0 || s[i].X == x {
		return s[i].Y.Float()
	}
	a, b := s[i-1], s[i]
	ya, yb := a.Y.Float(), b.Y.Float()
	return ya + (yb-ya)*(x-a.X)/(b.X-a.X)
}

// --- Refinement ------------------------------------------------------------

// Difference is the function f - g.
type Difference struct {
	F, G fplot.Function
}

// Evaluate returns f(x) - g(x).
func (d Difference) Evaluate(x float64) fplot.Value {
	return d.F.Evaluate(x).Minus(d.G.Evaluate(x))
}

// Refine locates a root of f within [lo,hi] by bisection, where f(lo) and
// f(hi) have different signs. It returns false if the interval does not
// bracket a root, if f becomes undefined, or if |f| grows while bisecting,
// which indicates a pole instead of a root.
func Refine(f fplot.Function, lo, hi float64, iterations int) (float64, bool) {
	flo, fhi := f.Evaluate(lo), f.Evaluate(hi)
	slo, ok1 := flo.Sign()
	shi, ok2 := fhi.Sign()
	if !ok1 || !ok2 {
		return math.NaN(), false
	}
	if slo == 0 {
		return lo, true
	}
	if shi == 0 {
		return hi, true
	}
	if slo == shi {
		return math.NaN(), false
	}
	bound := math.Min(math.Abs(flo.Float()), math.Abs(fhi.Float()))
	mid := lo + (hi-lo)/2
	for i := 0; i < iterations; i++ {
		mid = lo + (hi-lo)/2
		fm := f.Evaluate(mid)
		sm, ok := fm.Sign()
		if !ok {
			return math.NaN(), false
		}
		if sm == 0 {
			return mid, true
		}
		if sm == slo {
			lo = mid
		} else {
			hi = mid
		}
	}
	mid = lo + (hi-lo)/2
	fm := f.Evaluate(mid)
	if !fm.IsKnown() || math.Abs(fm.Float()) > bound {
		tracer().Debugf("sign change at x=%g is not a root", mid)
		return mid, false
	}
	return mid, true
}
