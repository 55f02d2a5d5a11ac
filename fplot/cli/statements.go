package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/corelang"
	"github.com/npillmayer/fplot/fplot/ui/gui"
	"github.com/npillmayer/fplot/scripting"
	"github.com/npillmayer/fplot/session"
	"golang.org/x/text/message"
)

// ErrUnknownStatement is returned for input the interpreter does not know.
var ErrUnknownStatement = errors.New("unknown statement")

// tableSteps is the count of rows of a value table.
const tableSteps = 11

// plotter holds the state shared by all statements: the session and, once
// shown, the plot window displaying it.
type plotter struct {
	session *session.Session
	view    *gui.PlotView
	printer *message.Printer
	paths   AppPaths
	out     io.Writer // output of scripts
}

func newPlotter(out io.Writer) *plotter {
	return &plotter{
		session: session.New(viewSize()),
		printer: numberPrinter(),
		paths:   locatePaths(),
		out:     out,
	}
}

func viewSize() (int, int) {
	return fplot.ConfigInt("viewport.width", 800), fplot.ConfigInt("viewport.height", 600)
}

// statement executes an interpreter statement. args is the remainder of
// the input line after the statement keyword.
type statement func(p *plotter, args string) (interface{}, error)

var statements = map[string]statement{
	"plot":      plotStmt,
	"edit":      editStmt,
	"remove":    removeStmt,
	"clear":     clearStmt,
	"list":      listStmt,
	"window":    windowStmt,
	"pan":       panStmt,
	"zoom":      zoomStmt,
	"eval":      evalStmt,
	"rpn":       rpnStmt,
	"table":     tableStmt,
	"roots":     rootsStmt,
	"intersect": intersectStmt,
	"show":      showStmt,
	"save":      saveStmt,
	"load":      loadStmt,
	"run":       runStmt,
}

// execute interprets one line of input.
func (p *plotter) execute(line string) (interface{}, error) {
	line = strings.TrimSpace(strings.Trim(line, "\x00"))
	if line == "" {
		return nil, nil
	}
	keyword := strings.Fields(line)[0]
	stmt, ok := statements[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStatement, keyword)
	}
	result, err := stmt(p, strings.TrimSpace(line[len(keyword):]))
	if p.view != nil {
		p.view.Invalidate()
	}
	return result, err
}

// function returns the function at 1-based position arg, with the first
// function as default.
func (p *plotter) function(arg string) (*session.GraphFunction, error) {
	i := 1
	if arg != "" {
		var err error
		if i, err = strconv.Atoi(arg); err != nil {
			return nil, fmt.Errorf("not a function number: %q", arg)
		}
	}
	gf, err := p.session.Function(i - 1)
	if err != nil {
		return nil, fmt.Errorf("%w: #%d", err, i)
	}
	return gf, nil
}

func plotStmt(p *plotter, args string) (interface{}, error) {
	if args == "" {
		return nil, errors.New("usage: plot <f(x)>")
	}
	gf := p.session.Add(args)
	return fmt.Sprintf("#%d  f(x) = %s", len(p.session.Functions()), gf.Source()), nil
}

func editStmt(p *plotter, args string) (interface{}, error) {
	words := strings.Fields(args)
	if len(words) < 2 {
		return nil, errors.New("usage: edit <n> <f(x)>")
	}
	gf, err := p.function(words[0])
	if err != nil {
		return nil, err
	}
	src := strings.TrimSpace(args[len(words[0]):])
	return p.session.Edit(gf.ID, src)
}

func removeStmt(p *plotter, args string) (interface{}, error) {
	gf, err := p.function(args)
	if err != nil {
		return nil, err
	}
	return fmt.Sprintf("removed %s", gf.Source()), p.session.Remove(gf.ID)
}

func clearStmt(p *plotter, args string) (interface{}, error) {
	p.session.Clear()
	return nil, nil
}

func listStmt(p *plotter, args string) (interface{}, error) {
	return functionsTable(p.session.Functions()), nil
}

func windowStmt(p *plotter, args string) (interface{}, error) {
	if args != "" {
		bounds, err := parseWindow(strings.Fields(args))
		if err != nil {
			return nil, err
		}
		p.session.SetWindow(bounds[0], bounds[1], bounds[2], bounds[3])
	}
	xs, ys := p.session.Scales()
	return windowTable(p.printer, p.session.Window(), xs, ys), nil
}

func panStmt(p *plotter, args string) (interface{}, error) {
	words := strings.Fields(args)
	if len(words) != 2 {
		return nil, errors.New("usage: pan <dx> <dy>")
	}
	dx, err := parseNumber(words[0])
	if err != nil {
		return nil, err
	}
	dy, err := parseNumber(words[1])
	if err != nil {
		return nil, err
	}
	p.session.Pan(dx, dy)
	return p.session.Window(), nil
}

func zoomStmt(p *plotter, args string) (interface{}, error) {
	f, err := parseNumber(args)
	if err != nil {
		return nil, err
	}
	if f <= 0 {
		return nil, fmt.Errorf("zoom factor must be positive, is %g", f)
	}
	p.session.ZoomCenter(f)
	return p.session.Window(), nil
}

func evalStmt(p *plotter, args string) (interface{}, error) {
	words := strings.Fields(args)
	if len(words) < 2 {
		return nil, errors.New("usage: eval <x> <f(x)>")
	}
	x, err := parseNumber(words[0])
	if err != nil {
		return nil, err
	}
	return corelang.Compile(strings.TrimSpace(args[len(words[0]):])).Evaluate(x), nil
}

func rpnStmt(p *plotter, args string) (interface{}, error) {
	if args == "" {
		return nil, errors.New("usage: rpn <f(x)>")
	}
	return corelang.Compile(args).String(), nil
}

func tableStmt(p *plotter, args string) (interface{}, error) {
	gf, err := p.function(args)
	if err != nil {
		return nil, err
	}
	w := p.session.Window()
	pts := fplot.Sample(gf, w.XMin, w.XMax, tableSteps)
	return samplesTable(p.printer, "f(x) = "+gf.Source(), pts), nil
}

func rootsStmt(p *plotter, args string) (interface{}, error) {
	gf, err := p.function(args)
	if err != nil {
		return nil, err
	}
	for _, c := range p.session.Frame().Curves {
		if c.Function == gf {
			return markersTable(p.printer, "Roots of "+gf.Source(), c.Roots), nil
		}
	}
	return nil, session.ErrNoSuchFunction
}

func intersectStmt(p *plotter, args string) (interface{}, error) {
	fs := p.session.Functions()
	if len(fs) < 2 {
		return nil, errors.New("intersections need at least 2 functions")
	}
	title := fmt.Sprintf("%s ∩ %s", fs[0].Source(), fs[1].Source())
	return markersTable(p.printer, title, p.session.Frame().Intersections), nil
}

func showStmt(p *plotter, args string) (interface{}, error) {
	if p.view == nil {
		p.view = gui.NewPlotView(p.session)
	}
	p.view.Show(viewSize())
	return nil, nil
}

func saveStmt(p *plotter, args string) (interface{}, error) {
	if args == "" {
		return nil, errors.New("usage: save <file>")
	}
	path := sessionPath(p.paths, args)
	if err := p.session.SaveFile(path); err != nil {
		return nil, err
	}
	return "saved to " + path, nil
}

func loadStmt(p *plotter, args string) (interface{}, error) {
	if args == "" {
		return nil, errors.New("usage: load <file>")
	}
	if err := p.session.LoadFile(sessionPath(p.paths, args)); err != nil {
		return nil, err
	}
	return functionsTable(p.session.Functions()), nil
}

func runStmt(p *plotter, args string) (interface{}, error) {
	if args == "" {
		return nil, errors.New("usage: run <script.lua>")
	}
	intp := scripting.NewInterpreter(p.session, p.out)
	defer intp.Close()
	return nil, intp.DoFile(args)
}
