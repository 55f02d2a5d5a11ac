package gui

import (
	"image"
	"image/color"
	"math"
	"sync"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/fplot/session"
)

var (
	background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	gridColor  = color.NRGBA{R: 225, G: 225, B: 225, A: 255}
	axisColor  = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	labelColor = color.NRGBA{R: 120, G: 120, B: 120, A: 255}
	markColor  = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// zoomStep is the zoom factor for one notch of the scroll wheel.
const zoomStep = 1.1

// PlotView renders the functions of a session. Dragging pans the window,
// scrolling zooms around the pointer, and a click reports the values of the
// functions at the clicked x-position to the log window.
type PlotView struct {
	session *session.Session
	changed chan struct{}
	size    image.Point
	press   f32.Point // start of a drag
	last    f32.Point // last position during a drag
	moved   bool
	mx      sync.Mutex // guards showing
	showing bool
}

// NewPlotView creates a view for a session.
func NewPlotView(s *session.Session) *PlotView {
	return &PlotView{
		session: s,
		changed: make(chan struct{}, 1),
	}
}

// Show opens a plot window for the view, if it is not already showing, and
// redraws it otherwise.
func (v *PlotView) Show(width, height int) {
	v.mx.Lock()
	defer v.mx.Unlock()
	if v.showing {
		v.Invalidate()
		return
	}
	v.showing = true
	size := app.Size(unit.Dp(float32(width)), unit.Dp(float32(height)))
	GlobalGui().NewWindow("fplot", v, size)
}

// Showing is true while the plot window is open.
func (v *PlotView) Showing() bool {
	v.mx.Lock()
	defer v.mx.Unlock()
	return v.showing
}

// Invalidate requests a redraw after the session has been changed from
// outside the window.
func (v *PlotView) Invalidate() {
	select {
	case v.changed <- struct{}{}:
	default: // a redraw is already pending
	}
}

// Run implements the View interface.
func (v *PlotView) Run(w *Window) error {
	defer func() {
		v.mx.Lock()
		v.showing = false
		v.mx.Unlock()
	}()
	var ops op.Ops
	applicationClose := w.App.Context.Done()
	for {
		select {
		case <-applicationClose:
			return nil
		case <-v.changed:
			w.Invalidate()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				v.Layout(w.App, gtx)
				e.Frame(gtx.Ops)
			}
		}
	}
}

// Layout handles input and draws the current frame of the session.
func (v *PlotView) Layout(a *GuiApplication, gtx layout.Context) layout.Dimensions {
	size := gtx.Constraints.Max
	if size != v.size {
		v.size = size
		v.session.Resize(size.X, size.Y)
	}
	v.handleInput(a, gtx)
	area := clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops)
	pointer.InputOp{
		Tag:          v,
		Types:        pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
		ScrollBounds: image.Rect(0, -100, 0, 100),
	}.Add(gtx.Ops)
	paint.Fill(gtx.Ops, background)
	frame := v.session.Frame()
	v.drawGrid(a.Theme, gtx, frame)
	width := float32(gtx.Dp(unit.Dp(2)))
	for _, c := range frame.Curves {
		for _, seg := range c.Segments {
			drawLine(gtx, pt(seg.From), pt(seg.To), width, c.Function.Color)
		}
		for _, m := range c.Roots {
			drawDot(gtx, pt(m.Pixel), gtx.Dp(unit.Dp(4)), c.Function.Color)
		}
	}
	for _, m := range frame.Intersections {
		drawDot(gtx, pt(m.Pixel), gtx.Dp(unit.Dp(4)), markColor)
	}
	area.Pop()
	return layout.Dimensions{Size: size}
}

func (v *PlotView) handleInput(a *GuiApplication, gtx layout.Context) {
	for _, ev := range gtx.Events(v) {
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Type {
		case pointer.Press:
			v.press, v.last, v.moved = e.Position, e.Position, false
		case pointer.Drag:
			d := e.Position.Sub(v.last)
			v.last = e.Position
			v.session.Pan(float64(d.X), float64(d.Y))
			if dist := e.Position.Sub(v.press); math.Hypot(float64(dist.X), float64(dist.Y)) > 3 {
				v.moved = true
			}
		case pointer.Release:
			if !v.moved {
				v.pick(a, float64(e.Position.X))
			}
		case pointer.Scroll:
			factor := zoomStep
			if e.Scroll.Y > 0 {
				factor = 1 / zoomStep
			}
			v.session.Zoom(factor, arithm.P(float64(e.Position.X), float64(e.Position.Y)))
		}
	}
}

// pick reports the values of all functions at pixel column px.
func (v *PlotView) pick(a *GuiApplication, px float64) {
	log := a.Log()
	for i, gf := range v.session.Functions() {
		if m, ok := v.session.Crosshair(px, i); ok {
			log.Printf("%s: (%.4g, %.4g)", gf.Source(), m.World.X(), m.World.Y())
		} else {
			log.Printf("%s: undefined", gf.Source())
		}
	}
}

func (v *PlotView) drawGrid(th *material.Theme, gtx layout.Context, frame *session.Frame) {
	h, w := float32(v.size.Y), float32(v.size.X)
	thin := float32(gtx.Dp(unit.Dp(1)))
	for _, col := range frame.Columns {
		x := float32(col.Pixel)
		drawLine(gtx, f32.Pt(x, 0), f32.Pt(x, h), thin, gridColor)
	}
	for _, row := range frame.Rows {
		y := float32(row.Pixel)
		drawLine(gtx, f32.Pt(0, y), f32.Pt(w, y), thin, gridColor)
	}
	o := pt(frame.Origin)
	drawLine(gtx, f32.Pt(o.X, 0), f32.Pt(o.X, h), thin, axisColor)
	drawLine(gtx, f32.Pt(0, o.Y), f32.Pt(w, o.Y), thin, axisColor)
	// labels sit next to the axes, or at the border if an axis is off-screen
	lx := clamp(o.X, 0, w-float32(gtx.Dp(unit.Dp(40))))
	ly := clamp(o.Y, 0, h-float32(gtx.Dp(unit.Dp(16))))
	for _, col := range frame.Columns {
		drawLabel(th, gtx, col.Label, image.Pt(int(col.Pixel)+2, int(ly)+2))
	}
	for _, row := range frame.Rows {
		drawLabel(th, gtx, row.Label, image.Pt(int(lx)+2, int(row.Pixel)+2))
	}
}

func drawLabel(th *material.Theme, gtx layout.Context, text string, at image.Point) {
	if text == "" || text == "0" {
		return
	}
	stack := op.Offset(at).Push(gtx.Ops)
	gtx.Constraints.Min = image.Point{}
	lbl := material.Caption(th, text)
	lbl.Color = labelColor
	lbl.Layout(gtx)
	stack.Pop()
}

func drawLine(gtx layout.Context, p1, p2 f32.Point, width float32, c color.NRGBA) {
	var linePath clip.Path
	linePath.Begin(gtx.Ops)
	linePath.MoveTo(p1)
	linePath.LineTo(p2)
	line := clip.Stroke{
		Path:  linePath.End(),
		Width: width,
	}.Op()
	paint.FillShape(gtx.Ops, c, line)
}

func drawDot(gtx layout.Context, center f32.Point, r int, c color.NRGBA) {
	p := image.Pt(int(center.X), int(center.Y))
	dot := clip.Ellipse{Min: p.Sub(image.Pt(r, r)), Max: p.Add(image.Pt(r, r))}
	paint.FillShape(gtx.Ops, c, dot.Op(gtx.Ops))
}

func pt(p arithm.Pair) f32.Point {
	return f32.Pt(float32(p.X()), float32(p.Y()))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
