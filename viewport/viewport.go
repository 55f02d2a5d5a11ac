package viewport

import (
	"math"
	"strconv"

	"github.com/npillmayer/arithm"
	"github.com/shopspring/decimal"
)

// Limits for the visible extent of a viewport, in world units.
const (
	MinSpan = 0.01
	MaxSpan = 10000.0
)

// Limits for the count of grid columns and rows.
const (
	MinColumns = 8
	MaxColumns = 24
	MinRows    = 4
	MaxRows    = 12
)

// Viewport is the visible window in world coordinates, together with grid
// spacings and the pixel size of the render surface.
//
// Invariants: XMax > XMin, YMax > YMin, scales > 0.
type Viewport struct {
	XMin, XMax     float64
	YMin, YMax     float64
	XScale, YScale float64 // grid spacing in world units
	width, height  float64 // render surface in pixels
}

// New creates a viewport showing [-10,10]×[-10,10] on a render surface of
// the given pixel size.
func New(width, height int) *Viewport {
	vp := &Viewport{
		XMin: -10, XMax: 10,
		YMin: -10, YMax: 10,
		XScale: 1, YScale: 1,
	}
	vp.Resize(width, height)
	vp.AutoScale()
	return vp
}

// Window returns a snapshot of the viewport.
func (vp *Viewport) Window() Window {
	return Window{
		XMin: vp.XMin, XMax: vp.XMax,
		YMin: vp.YMin, YMax: vp.YMax,
		Width: vp.width, Height: vp.height,
	}
}

// Size returns the pixel dimensions of the render surface.
func (vp *Viewport) Size() (int, int) {
	return int(vp.width), int(vp.height)
}

// Resize sets the pixel dimensions of the render surface. Dimensions below
// 1 pixel are set to 1.
func (vp *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	vp.width, vp.height = float64(width), float64(height)
}

// SetWindow sets the visible window. Reversed bounds are swapped; the
// extent is clamped and the grid is re-scaled.
func (vp *Viewport) SetWindow(xmin, xmax, ymin, ymax float64) {
	if xmin > xmax {
		xmin, xmax = xmax, xmin
	}
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	vp.XMin, vp.XMax, vp.YMin, vp.YMax = xmin, xmax, ymin, ymax
	vp.Clamp()
	vp.AutoScale()
}

// AutoScale adjusts the grid spacings: XScale is doubled while there are
// more than MaxColumns grid columns and halved while there are fewer than
// MinColumns. YScale is adjusted in the same way for rows. AutoScale is
// idempotent.
func (vp *Viewport) AutoScale() {
	vp.XScale = adjustScale(vp.XScale, vp.XMax-vp.XMin, MinColumns, MaxColumns)
	vp.YScale = adjustScale(vp.YScale, vp.YMax-vp.YMin, MinRows, MaxRows)
	tracer().Debugf("viewport grid scales = (%g,%g)", vp.XScale, vp.YScale)
}

func adjustScale(scale, span float64, lo, hi float64) float64 {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	if !(span > 0) || math.IsInf(span, 0) {
		return scale
	}
	for guard := 0; guard < 2000; guard++ {
		n := span / scale
		if n > hi {
			scale *= 2
		} else if n < lo {
			scale /= 2
		} else {
			break
		}
	}
	return scale
}

// Pan shifts the window by the world equivalent of a drag of (dx,dy)
// pixels. Content follows the drag, i.e. dragging to the right reveals
// smaller x values. The pixel y-axis is inverted.
//
// A pan which would move the window to where its extent can no longer be
// represented is ignored.
func (vp *Viewport) Pan(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	xmin, xmax, okx := shift(vp.XMin, vp.XMax, -dx*(vp.XMax-vp.XMin)/vp.width)
	ymin, ymax, oky := shift(vp.YMin, vp.YMax, dy*(vp.YMax-vp.YMin)/vp.height)
	if !okx || !oky {
		tracer().Infof("ignoring pan by (%g,%g) px", dx, dy)
		return
	}
	vp.XMin, vp.XMax, vp.YMin, vp.YMax = xmin, xmax, ymin, ymax
	tracer().Debugf("pan by (%g,%g) px → %v", dx, dy, vp.Window())
}

// shift moves [lo,hi] by d. It returns false if the result is not finite
// or if its span is lost to rounding.
func shift(lo, hi, d float64) (float64, float64, bool) {
	nlo, nhi := lo+d, hi+d
	if !finite(nlo) || !finite(nhi) || nhi-nlo < MinSpan {
		return lo, hi, false
	}
	span := hi - lo
	if math.Abs((nhi-nlo)-span) > 1e-3*span {
		return lo, hi, false
	}
	return nlo, nhi, true
}

// Zoom scales the window by 1/factor around the world point under the
// anchor pixel position. The anchor keeps its screen position unless the
// result has to be clamped. Factors ≤ 0 or non-finite factors are ignored.
func (vp *Viewport) Zoom(factor float64, anchor arithm.Pair) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		tracer().Debugf("ignoring zoom factor %g", factor)
		return
	}
	a := vp.PixelToWorld(anchor)
	if !finite(a.X()) || !finite(a.Y()) {
		return
	}
	vp.XMin = a.X() + (vp.XMin-a.X())/factor
	vp.XMax = a.X() + (vp.XMax-a.X())/factor
	vp.YMin = a.Y() + (vp.YMin-a.Y())/factor
	vp.YMax = a.Y() + (vp.YMax-a.Y())/factor
	vp.Clamp()
	vp.AutoScale()
	tracer().Debugf("zoom by %g → %v", factor, vp.Window())
}

// Clamp limits the visible width and height to [MinSpan,MaxSpan],
// keeping the center of the window. A window with non-finite bounds is
// reset to [-10,10]×[-10,10].
func (vp *Viewport) Clamp() {
	if !finite(vp.XMin) || !finite(vp.XMax) || !finite(vp.YMin) || !finite(vp.YMax) {
		tracer().Infof("resetting degenerated viewport")
		vp.XMin, vp.XMax, vp.YMin, vp.YMax = -10, 10, -10, 10
		return
	}
	vp.XMin, vp.XMax = clampSpan(vp.XMin, vp.XMax)
	vp.YMin, vp.YMax = clampSpan(vp.YMin, vp.YMax)
}

func clampSpan(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span >= MinSpan && span <= MaxSpan {
		return lo, hi
	}
	c := lo + (hi-lo)/2
	span = math.Max(MinSpan, math.Min(MaxSpan, span))
	return c - span/2, c + span/2
}

// WorldToPixel maps a point in world coordinates to the render surface.
func (vp *Viewport) WorldToPixel(p arithm.Pair) arithm.Pair {
	return vp.Window().WorldToPixel(p)
}

// PixelToWorld maps a pixel position to world coordinates.
func (vp *Viewport) PixelToWorld(p arithm.Pair) arithm.Pair {
	return vp.Window().PixelToWorld(p)
}

// --- Grid ------------------------------------------------------------------

// Grid holds the world positions of visible grid lines.
type Grid struct {
	X []float64 // vertical lines
	Y []float64 // horizontal lines
}

// GridLines returns the positions of all visible grid lines, which are the
// multiples of the grid scales.
func (vp *Viewport) GridLines() Grid {
	return Grid{
		X: multiples(vp.XScale, vp.XMin, vp.XMax),
		Y: multiples(vp.YScale, vp.YMin, vp.YMax),
	}
}

func multiples(scale, lo, hi float64) []float64 {
	if !(scale > 0) {
		return nil
	}
	first, last := math.Ceil(lo/scale), math.Floor(hi/scale)
	if last-first > 4*MaxColumns {
		return nil
	}
	var lines []float64
	for k := first; k <= last; k++ {
		lines = append(lines, k*scale)
	}
	return lines
}

// Label formats a grid position for display, with as many decimal places
// as the grid scale requires.
func Label(v, scale float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	places := int32(0)
	if scale > 0 && finite(scale) {
		if exp := decimal.NewFromFloat(scale).Exponent(); exp < 0 {
			places = -exp
		}
	}
	return decimal.NewFromFloat(v).Round(places).String()
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
