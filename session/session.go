package session

import (
	"errors"
	"image/color"
	"sync"

	"github.com/google/uuid"
	"github.com/npillmayer/arithm"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/sampler"
	"github.com/npillmayer/fplot/viewport"
)

// Errors returned by session operations.
var (
	ErrNoSuchFunction = errors.New("no such function")
	ErrIllegalColor   = errors.New("illegal color")
)

// DefaultRefine is the default count of bisection steps for refining
// markers.
const DefaultRefine = 40

// Session is a list of graph functions together with a viewport.
type Session struct {
	mu        sync.Mutex
	functions []*GraphFunction
	vp        *viewport.Viewport
	opts      sampler.Options
	refine    int // bisection steps for markers, 0 to switch off
	created   int // count of functions created, for color assignment
}

// New creates an empty session for a render surface of the given pixel size.
// Sampling and marker options, and the initial window, are read from the
// global configuration if present.
func New(width, height int) *Session {
	s := &Session{
		vp:     viewport.New(width, height),
		opts:   sampler.OptionsFromConfig(),
		refine: fplot.ConfigInt("markers.refine", DefaultRefine),
	}
	if fplot.Configuration != nil && fplot.Configuration.Exists("viewport.xmin") {
		s.vp.SetWindow(
			fplot.ConfigFloat("viewport.xmin", -10),
			fplot.ConfigFloat("viewport.xmax", 10),
			fplot.ConfigFloat("viewport.ymin", -10),
			fplot.ConfigFloat("viewport.ymax", 10),
		)
	}
	return s
}

// SetOptions sets sampling options and the count of bisection steps for
// refining markers (0 switches refinement off).
func (s *Session) SetOptions(opts sampler.Options, refine int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
	if refine < 0 {
		refine = 0
	}
	s.refine = refine
}

// Add appends a new function to the session. It is assigned the next color
// of the palette.
func (s *Session) Add(source string) *GraphFunction {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := Palette[s.created%len(Palette)]
	return s.add(source, c)
}

// AddWithColor appends a new function with a given color.
func (s *Session) AddWithColor(source string, c color.NRGBA) *GraphFunction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(source, c)
}

func (s *Session) add(source string, c color.NRGBA) *GraphFunction {
	gf := NewFunction(source, c)
	s.functions = append(s.functions, gf)
	s.created++
	tracer().Infof("added function #%d: %s", len(s.functions), gf)
	return gf
}

// Edit replaces the definition of the function with the given id. The
// function is replaced by a new one, keeping ID and color, which is
// returned. Functions handed out earlier keep their old definition.
func (s *Session) Edit(id uuid.UUID, source string) (*GraphFunction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNoSuchFunction
	}
	gf := s.functions[i].WithSource(source)
	s.functions[i] = gf
	return gf, nil
}

// Remove removes the function with the given id.
func (s *Session) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return ErrNoSuchFunction
	}
	s.functions = append(s.functions[:i], s.functions[i+1:]...)
	return nil
}

// Clear removes all functions.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.functions = nil
}

func (s *Session) indexOf(id uuid.UUID) int {
	for i, gf := range s.functions {
		if gf.ID == id {
			return i
		}
	}
	return -1
}

// Functions returns the functions of the session, in order.
func (s *Session) Functions() []*GraphFunction {
	s.mu.Lock()
	defer s.mu.Unlock()
	fs := make([]*GraphFunction, len(s.functions))
	copy(fs, s.functions)
	return fs
}

// Function returns the function at position i, counting from 0.
func (s *Session) Function(i int) (*GraphFunction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.functions) {
		return nil, ErrNoSuchFunction
	}
	return s.functions[i], nil
}

// --- Viewport --------------------------------------------------------------

// Window returns a snapshot of the current viewport.
func (s *Session) Window() viewport.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp.Window()
}

// Scales returns the current grid spacings.
func (s *Session) Scales() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp.XScale, s.vp.YScale
}

// Resize sets the pixel size of the render surface.
func (s *Session) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.Resize(width, height)
}

// SetWindow sets the visible window in world coordinates.
func (s *Session) SetWindow(xmin, xmax, ymin, ymax float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.SetWindow(xmin, xmax, ymin, ymax)
}

// Pan shifts the viewport by a drag of (dx,dy) pixels.
func (s *Session) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.Pan(dx, dy)
	s.vp.AutoScale()
}

// Zoom zooms the viewport by factor around a pixel position.
func (s *Session) Zoom(factor float64, anchor arithm.Pair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.Zoom(factor, anchor)
	s.vp.AutoScale()
}

// ZoomCenter zooms the viewport by factor around the center of the render
// surface.
func (s *Session) ZoomCenter(factor float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.vp.Size()
	s.vp.Zoom(factor, arithm.P(float64(w)/2, float64(h)/2))
	s.vp.AutoScale()
}
