package fplot

import (
	"fmt"
	"math"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fplot'.
func tracer() tracing.Trace {
	return tracing.Select("fplot")
}

// --- Value -----------------------------------------------------------------

// Value is a real number which may be undefined. Undefined values result from
// division by zero, domain errors (sqrt(-1), ln(0)), non-finite intermediate
// results or malformed programs.
//
// The zero value is undefined.
type Value struct {
	f     float64
	known bool
}

// Undefined is the undefined value.
var Undefined = Value{}

// Known creates a value from a float. NaN and ±Inf result in Undefined.
func Known(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Undefined
	}
	return Value{f: f, known: true}
}

// IsKnown is a predicate: is this a finite, defined value?
func (v Value) IsKnown() bool {
	return v.known
}

// Float returns a known value as a float, or NaN.
func (v Value) Float() float64 {
	if !v.known {
		return math.NaN()
	}
	return v.f
}

// Get returns the float and a flag indicating whether the value is known.
func (v Value) Get() (float64, bool) {
	return v.f, v.known
}

// Minus calculates v - w. If either operand is undefined, so is the result.
func (v Value) Minus(w Value) Value {
	if !v.known || !w.known {
		return Undefined
	}
	return Known(v.f - w.f)
}

// Sign returns -1, 0 or +1 for known values, and 0 and false for undefined ones.
func (v Value) Sign() (int, bool) {
	if !v.known {
		return 0, false
	}
	switch {
	case v.f < 0:
		return -1, true
	case v.f > 0:
		return 1, true
	}
	return 0, true
}

func (v Value) String() string {
	if !v.known {
		return "<undefined>"
	}
	return fmt.Sprintf("%g", v.f)
}

// --- Sample points ---------------------------------------------------------

// SamplePoint is a point of a function's graph in world coordinates.
// Y may be undefined.
type SamplePoint struct {
	X float64
	Y Value
}

// Pt creates a sample point.
func Pt(x float64, y Value) SamplePoint {
	return SamplePoint{X: x, Y: y}
}

// IsKnown is a predicate: is the y-part of the sample defined?
func (sp SamplePoint) IsKnown() bool {
	return sp.Y.IsKnown()
}

// AsPair returns a known sample point as a pair. For undefined samples,
// the y-part of the pair will be NaN and an error will be traced.
func (sp SamplePoint) AsPair() arithm.Pair {
	if !sp.Y.IsKnown() {
		tracer().Errorf("sample point at x=%g is undefined", sp.X)
	}
	return arithm.P(sp.X, sp.Y.Float())
}

func (sp SamplePoint) String() string {
	return "(" + fmt.Sprintf("%g", sp.X) + "," + sp.Y.String() + ")"
}

// Function is an interface for everything which may be evaluated for a
// given x, most notably compiled programs and graph functions.
type Function interface {
	Evaluate(x float64) Value
}

// Sample evaluates f at n evenly spaced positions across [xmin, xmax],
// including both ends. n will be at least 2.
func Sample(f Function, xmin, xmax float64, n int) []SamplePoint {
	if n < 2 {
		n = 2
	}
	samples := make([]SamplePoint, n)
	width := xmax - xmin
	for i := 0; i < n; i++ {
		x := xmin + width*float64(i)/float64(n-1)
		samples[i] = Pt(x, f.Evaluate(x))
	}
	return samples
}
