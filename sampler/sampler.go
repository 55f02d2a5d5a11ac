package sampler

import (
	"fmt"
	"math"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/viewport"
)

// Defaults for sampling options.
const (
	DefaultSamples = 500
	DefaultDepth   = 20
)

// Options control the resolution of a trace.
type Options struct {
	Samples int // count of samples across the window
	Depth   int // maximum recursion depth for resolving slope flips
}

// DefaultOptions returns options with the default sample count and depth.
func DefaultOptions() Options {
	return Options{Samples: DefaultSamples, Depth: DefaultDepth}
}

// OptionsFromConfig reads sampling options from the global configuration,
// keys "graph.samples" and "graph.depth".
func OptionsFromConfig() Options {
	return Options{
		Samples: fplot.ConfigInt("graph.samples", DefaultSamples),
		Depth:   fplot.ConfigInt("graph.depth", DefaultDepth),
	}
}

func (opts Options) normalized() Options {
	if opts.Samples < 2 {
		opts.Samples = DefaultSamples
	}
	if opts.Depth < 0 {
		opts.Depth = DefaultDepth
	}
	return opts
}

// Segment is a straight line between two points in world coordinates.
// Closing segments are flat stubs terminating a curve at a divergence.
type Segment struct {
	From, To arithm.Pair
	Closing  bool
}

func (s Segment) String() string {
	c := ""
	if s.Closing {
		c = " (closing)"
	}
	return fmt.Sprintf("%v–%v%s", s.From, s.To, c)
}

// Curve is the result of tracing a function.
type Curve struct {
	Samples  []fplot.SamplePoint
	Segments []Segment
}

// Trace samples f across window w and returns the segments to draw.
func Trace(f fplot.Function, w viewport.Window, opts Options) Curve {
	opts = opts.normalized()
	t := &trace{f: f, height: w.DY()}
	t.curve.Samples = fplot.Sample(f, w.XMin, w.XMax, opts.Samples)
	var prev fplot.SamplePoint
	var havePrev, haveSlope bool
	var prevSlope float64
	for _, s := range t.curve.Samples {
		if !s.IsKnown() {
			havePrev, haveSlope = false, false
			continue
		}
		if !havePrev {
			prev, havePrev = s, true
			continue
		}
		slope := slopeOf(prev, s)
		if !haveSlope || sameDirection(prevSlope, slope) {
			t.draw(prev, s)
			prevSlope, haveSlope = slope, true
		} else if t.resolve(prev, s, opts.Depth) {
			prevSlope = slope
		} else {
			tracer().Debugf("divergence between x=%g and x=%g", prev.X, s.X)
			haveSlope = false
		}
		prev = s
	}
	tracer().Debugf("trace: %d samples, %d segments", len(t.curve.Samples), len(t.curve.Segments))
	return t.curve
}

type trace struct {
	f      fplot.Function
	height float64 // visible height of the window
	curve  Curve
}

func (t *trace) draw(a, b fplot.SamplePoint) {
	t.curve.Segments = append(t.curve.Segments, Segment{From: a.AsPair(), To: b.AsPair()})
}

// close terminates the curve coming from a with a flat segment up to x.
func (t *trace) close(a fplot.SamplePoint, x float64) {
	y := a.Y.Float()
	t.curve.Segments = append(t.curve.Segments, Segment{
		From:    arithm.P(a.X, y),
		To:      arithm.P(x, y),
		Closing: true,
	})
}

// resolve draws the interval [a,b], where the slope has changed its sign.
// It returns false if the function diverges within the interval.
func (t *trace) resolve(a, b fplot.SamplePoint, depth int) bool {
	if depth <= 0 {
		if math.Abs(b.Y.Float()-a.Y.Float()) > t.height {
			t.close(a, b.X)
			return false
		}
		t.draw(a, b)
		return true
	}
	mx := a.X + (b.X-a.X)/2
	m := fplot.Pt(mx, t.f.Evaluate(mx))
	if !m.IsKnown() {
		t.close(a, mx)
		return false
	}
	if math.Abs(slopeOf(a, m)) <= math.Abs(slopeOf(m, b)) {
		t.draw(a, m)
		return t.resolve(m, b, depth-1)
	}
	ok := t.resolve(a, m, depth-1)
	t.draw(m, b)
	return ok
}

func slopeOf(a, b fplot.SamplePoint) float64 {
	return (b.Y.Float() - a.Y.Float()) / (b.X - a.X)
}

// sameDirection is true if two slopes have the same sign or one of them is 0.
func sameDirection(s1, s2 float64) bool {
	return s1 == 0 || s2 == 0 || (s1 < 0) == (s2 < 0)
}
