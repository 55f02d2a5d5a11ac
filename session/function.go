package session

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/corelang"
	"github.com/npillmayer/fplot/vm"
)

// GraphFunction is a function shown in a session. It is immutable once
// created; editing a function replaces it by a new one with the same ID
// and color.
type GraphFunction struct {
	ID     uuid.UUID
	Color  color.NRGBA
	source string
	prog   *vm.Program
}

// NewFunction compiles a function definition.
func NewFunction(source string, c color.NRGBA) *GraphFunction {
	return &GraphFunction{
		ID:     uuid.New(),
		Color:  c,
		source: source,
		prog:   corelang.Compile(source),
	}
}

// Source returns the function definition.
func (gf *GraphFunction) Source() string {
	return gf.source
}

// WithSource returns a copy of gf with a new function definition.
func (gf *GraphFunction) WithSource(source string) *GraphFunction {
	return &GraphFunction{
		ID:     gf.ID,
		Color:  gf.Color,
		source: source,
		prog:   corelang.Compile(source),
	}
}

// Program returns the compiled function definition.
func (gf *GraphFunction) Program() *vm.Program {
	return gf.prog
}

// Evaluate evaluates the function at x.
func (gf *GraphFunction) Evaluate(x float64) fplot.Value {
	return gf.prog.Evaluate(x)
}

func (gf *GraphFunction) String() string {
	return fmt.Sprintf("f(x) = %s", gf.source)
}

// --- Colors ----------------------------------------------------------------

// Palette holds the colors assigned to functions in the order of creation.
var Palette = []color.NRGBA{
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// ColorHex formats a color as #rrggbb.
func ColorHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses a color given as #rrggbb or rrggbb.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrIllegalColor, s)
	}
	rgb, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrIllegalColor, s)
	}
	return color.NRGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}, nil
}
