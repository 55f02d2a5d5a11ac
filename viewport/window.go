package viewport

import (
	"fmt"

	"github.com/npillmayer/arithm"
)

// Window is a snapshot of a viewport: a rectangle in world coordinates and
// the size of the render surface in pixels.
type Window struct {
	XMin, XMax    float64
	YMin, YMax    float64
	Width, Height float64 // pixel dimensions of the render surface
}

// DX returns the width of the window in world units.
func (w Window) DX() float64 {
	return w.XMax - w.XMin
}

// DY returns the height of the window in world units.
func (w Window) DY() float64 {
	return w.YMax - w.YMin
}

// Center returns the center of the window in world coordinates.
func (w Window) Center() arithm.Pair {
	return arithm.P((w.XMin+w.XMax)/2, (w.YMin+w.YMax)/2)
}

// Contains is a predicate: is world point p inside the window?
func (w Window) Contains(p arithm.Pair) bool {
	return p.X() >= w.XMin && p.X() <= w.XMax && p.Y() >= w.YMin && p.Y() <= w.YMax
}

// WorldToPixel maps a point in world coordinates to the render surface.
// The pixel y-axis points downwards.
func (w Window) WorldToPixel(p arithm.Pair) arithm.Pair {
	px := (p.X() - w.XMin) / w.DX() * w.Width
	py := (w.YMax - p.Y()) / w.DY() * w.Height
	return arithm.P(px, py)
}

// PixelToWorld maps a pixel position to world coordinates. It is the inverse
// of WorldToPixel.
func (w Window) PixelToWorld(p arithm.Pair) arithm.Pair {
	x := w.XMin + p.X()/w.Width*w.DX()
	y := w.YMax - p.Y()/w.Height*w.DY()
	return arithm.P(x, y)
}

func (w Window) String() string {
	return fmt.Sprintf("[%g…%g]×[%g…%g] @ %g×%g px", w.XMin, w.XMax, w.YMin, w.YMax,
		w.Width, w.Height)
}
