package session

import (
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/roots"
	"github.com/npillmayer/fplot/sampler"
	"github.com/npillmayer/fplot/viewport"
)

// Marker is a point of interest, in world and in pixel coordinates.
type Marker struct {
	World arithm.Pair
	Pixel arithm.Pair
}

// Curve is a traced function, ready for rendering.
type Curve struct {
	Function *GraphFunction
	Segments []sampler.Segment // in pixel coordinates, clipped to the surface
	Roots    []Marker
	curve    sampler.Curve // world coordinates
}

// GridLine is a grid line at a world position.
type GridLine struct {
	Value float64 // world coordinate
	Pixel float64 // pixel coordinate on the render surface
	Label string
}

// Frame contains everything to render the current state of a session.
type Frame struct {
	Window        viewport.Window
	Origin        arithm.Pair // pixel position of the world origin
	Columns       []GridLine  // vertical grid lines
	Rows          []GridLine  // horizontal grid lines
	Curves        []Curve
	Intersections []Marker // between the first two functions
}

// Frame traces all functions for the current viewport.
func (s *Session) Frame() *Frame {
	s.mu.Lock()
	w := s.vp.Window()
	grid := s.vp.GridLines()
	xscale, yscale := s.vp.XScale, s.vp.YScale
	functions := make([]*GraphFunction, len(s.functions))
	copy(functions, s.functions)
	opts, refine := s.opts, s.refine
	s.mu.Unlock()
	//
	frame := &Frame{Window: w, Origin: w.WorldToPixel(arithm.Origin)}
	for _, x := range grid.X {
		p := w.WorldToPixel(arithm.P(x, 0))
		frame.Columns = append(frame.Columns, GridLine{Value: x, Pixel: p.X(), Label: viewport.Label(x, xscale)})
	}
	for _, y := range grid.Y {
		p := w.WorldToPixel(arithm.P(0, y))
		frame.Rows = append(frame.Rows, GridLine{Value: y, Pixel: p.Y(), Label: viewport.Label(y, yscale)})
	}
	for _, gf := range functions {
		c := sampler.Trace(gf, w, opts)
		curve := Curve{Function: gf, curve: c}
		for _, seg := range c.Segments {
			if from, to, ok := clip(seg.From, seg.To, w); ok {
				curve.Segments = append(curve.Segments, sampler.Segment{
					From:    w.WorldToPixel(from),
					To:      w.WorldToPixel(to),
					Closing: seg.Closing,
				})
			}
		}
		for _, m := range roots.Roots(c.Samples) {
			if x, ok := refined(gf, m, refine); ok {
				curve.Roots = append(curve.Roots, marker(w, arithm.P(x, 0)))
			}
		}
		frame.Curves = append(frame.Curves, curve)
	}
	if len(frame.Curves) >= 2 {
		f, g := frame.Curves[0], frame.Curves[1]
		diff := roots.Difference{F: f.Function, G: g.Function}
		for _, m := range roots.Intersections(f.curve.Samples, g.curve.Samples) {
			x, ok := refined(diff, m, refine)
			if !ok {
				continue
			}
			y := m.At.Y()
			if v := f.Function.Evaluate(x); v.IsKnown() {
				y = v.Float()
			}
			frame.Intersections = append(frame.Intersections, marker(w, arithm.P(x, y)))
		}
	}
	tracer().Debugf("frame with %d curves, %d intersections", len(frame.Curves), len(frame.Intersections))
	return frame
}

// refined returns the x-position of a marker, refined by bisection if
// refinement is switched on. Sign changes which turn out not to be
// crossings are rejected.
func refined(f fplot.Function, m roots.Marker, steps int) (float64, bool) {
	if steps <= 0 || m.Lo == m.Hi {
		return m.At.X(), true
	}
	return roots.Refine(f, m.Lo, m.Hi, steps)
}

func marker(w viewport.Window, p arithm.Pair) Marker {
	return Marker{World: p, Pixel: w.WorldToPixel(p)}
}

// Crosshair returns a marker for the function at position i at the x-position
// under pixel column px. It returns false if the function is undefined there.
func (s *Session) Crosshair(px float64, i int) (Marker, bool) {
	s.mu.Lock()
	w := s.vp.Window()
	var gf *GraphFunction
	if i >= 0 && i < len(s.functions) {
		gf = s.functions[i]
	}
	s.mu.Unlock()
	if gf == nil {
		return Marker{}, false
	}
	x := w.PixelToWorld(arithm.P(px, 0)).X()
	v := gf.Evaluate(x)
	if !v.IsKnown() {
		return Marker{}, false
	}
	return marker(w, arithm.P(x, v.Float())), true
}

// clip clips the line from a to b to the window, in world coordinates
// (Liang-Barsky).
func clip(a, b arithm.Pair, w viewport.Window) (arithm.Pair, arithm.Pair, bool) {
	x0, y0 := a.X(), a.Y()
	dx, dy := b.X()-x0, b.Y()-y0
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - w.XMin, w.XMax - x0, y0 - w.YMin, w.YMax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return a, b, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return a, b, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return a, b, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return arithm.P(x0+t0*dx, y0+t0*dy), arithm.P(x0+t1*dx, y0+t1*dy), true
}
