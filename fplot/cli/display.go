package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/fplot/ui/termui"
	"github.com/npillmayer/fplot/session"
	"github.com/npillmayer/fplot/viewport"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numberPrinter returns a printer which formats numbers for the configured
// locale.
func numberPrinter() *message.Printer {
	loc := fplot.ConfigString("locale", "en")
	tag, err := language.Parse(loc)
	if err != nil {
		tracer().Errorf("unknown locale %q, using english: %v", loc, err)
		tag = language.English
	}
	return message.NewPrinter(tag)
}

func formatNumber(p *message.Printer, f float64) string {
	return p.Sprintf("%.6g", f)
}

func formatValue(p *message.Printer, v fplot.Value) string {
	if f, ok := v.Get(); ok {
		return formatNumber(p, f)
	}
	return "undefined"
}

// parseNumber parses a number given on the command line. A decimal comma is
// accepted as well as a decimal point.
func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

// parseWindow parses the four bounds xmin, xmax, ymin, ymax of a window.
func parseWindow(args []string) ([4]float64, error) {
	var bounds [4]float64
	if len(args) != 4 {
		return bounds, fmt.Errorf("window needs 4 bounds (xmin xmax ymin ymax), have %d", len(args))
	}
	for i, a := range args {
		f, err := parseNumber(a)
		if err != nil {
			return bounds, err
		}
		bounds[i] = f
	}
	return bounds, nil
}

// --- Tables ----------------------------------------------------------------

func samplesTable(p *message.Printer, title string, pts []fplot.SamplePoint) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"x", "f(x)"})
	for _, pt := range pts {
		tw.AppendRow(table.Row{formatNumber(p, pt.X), formatValue(p, pt.Y)})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func markersTable(p *message.Printer, title string, markers []session.Marker) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"#", "x", "y"})
	for i, m := range markers {
		tw.AppendRow(table.Row{i + 1, formatNumber(p, m.World.X()), formatNumber(p, m.World.Y())})
	}
	if len(markers) == 0 {
		tw.AppendRow(table.Row{"–", "none", ""})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func functionsTable(functions []*session.GraphFunction) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Functions")
	tw.AppendHeader(table.Row{"#", "f(x)", "color", "RPN"})
	for i, gf := range functions {
		tw.AppendRow(table.Row{i + 1, gf.Source(), session.ColorHex(gf.Color), gf.Program().String()})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func windowTable(p *message.Printer, w viewport.Window, xscale, yscale float64) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Window %g×%g px", w.Width, w.Height)
	tw.AppendHeader(table.Row{"", "min", "max", "scale"})
	tw.AppendRow(table.Row{"x", formatNumber(p, w.XMin), formatNumber(p, w.XMax), formatNumber(p, xscale)})
	tw.AppendRow(table.Row{"y", formatNumber(p, w.YMin), formatNumber(p, w.YMax), formatNumber(p, yscale)})
	tw.SetStyle(table.StyleLight)
	return tw
}

// Formatter formats results of interpreter statements.
type Formatter struct {
	termui.DefaultFormatter
	printer *message.Printer
}

// Format implements termui.Formatter.
func (f Formatter) Format(item interface{}, w io.Writer) (bool, error) {
	tracer().Debugf("format item of type %T", item)
	switch t := item.(type) {
	case fplot.Value:
		item = formatValue(f.printer, t)
	case *session.GraphFunction:
		item = fmt.Sprintf("%s  [%s]", t.Source(), session.ColorHex(t.Color))
	}
	return f.DefaultFormatter.Format(item, w)
}

var _ termui.Formatter = Formatter{}
