// Package cli implements the fplot command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/fplot/ui/gui"
	"github.com/npillmayer/fplot/fplot/ui/termui"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fplot [f(x) ...]",
	Short: "Plot functions of one variable",
	Long: `Welcome to fplot V0.1

fplot plots functions of one real variable x, given as formulas like
'2x^2 - sin(x)/x'. It finds roots and intersections, and detects asymptotes.

fplot is able to run in interactive mode or execute one or more commands in
batch-mode.  If run in interactive mode, it will prompt for user input in a
terminal REPL and show the plotted functions in a GUI window.

`,
	Args: cobra.ArbitraryArgs,
	Run:  runREPL,
}

// guiShown is set by batch commands which opened a window.
var guiShown bool

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by main().
func Execute() {
	rootCmd.AddCommand(evalCmd, rpnCmd, tableCmd, rootsCmd, runCmd, showCmd)
	if rootCmd.Execute() != nil {
		fplot.Exit(2)
	}
	if guiShown {
		gui.GlobalGui().Wait()
	}
	fplot.Exit(0)
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	flags := rootCmd.PersistentFlags()
	flags.BoolP("interactive", "i", false, "Enter the REPL after executing a command")
	flags.String("logfile", "stderr", "URL of log output location")
	flags.String("locale", "en", "Locale for number output")
	flags.String("window", "", "Initial window as 'xmin,xmax,ymin,ymax'")
	flags.Int("samples", 500, "Count of samples across the window")
	flags.Int("depth", 20, "Maximum depth of bisection at discontinuities")
	flags.Int("width", 800, "Width of the plot window")
	flags.Int("height", 600, "Height of the plot window")
	flags.Int("refine", 40, "Bisection steps for roots and intersections, 0 for none")
	tableCmd.Flags().Float64("from", -10, "Start of the x-range")
	tableCmd.Flags().Float64("to", 10, "End of the x-range")
	tableCmd.Flags().Int("steps", tableSteps, "Count of rows")
	runCmd.Flags().Bool("show", false, "Show the session after running the scripts")
}

const helpText = `
fplot will interpret the following statements:

  plot <f(x)>                    : add a function, e.g. plot 2x^2-1
  edit <n> <f(x)>                : change the definition of function #n
  remove [n]                     : remove function #n
  clear                          : remove all functions
  list                           : list functions
  window [xmin xmax ymin ymax]   : display or set the visible window
  pan <dx> <dy>                  : move the window by a drag of (dx,dy) pixels
  zoom <factor>                  : zoom in (factor > 1) or out around the center
  eval <x> <f(x)>                : evaluate a function at x
  rpn <f(x)>                     : display the compiled program of a function
  table [n]                      : value table of function #n
  roots [n]                      : roots of function #n in the window
  intersect                      : intersections of functions #1 and #2
  show                           : open the plot window
  save <file>, load <file>       : save or load a session
  run <script.lua>               : run a Lua script on the session

`

// completions for the statements of the REPL
var completions = []readline.PrefixCompleterInterface{
	readline.PcItem("plot"), readline.PcItem("edit"), readline.PcItem("remove"),
	readline.PcItem("clear"), readline.PcItem("list"), readline.PcItem("window"),
	readline.PcItem("pan"), readline.PcItem("zoom"), readline.PcItem("eval"),
	readline.PcItem("rpn"), readline.PcItem("table"), readline.PcItem("roots"),
	readline.PcItem("intersect"), readline.PcItem("show"),
	readline.PcItem("save"), readline.PcItem("load"), readline.PcItem("run"),
}

func runREPL(cmd *cobra.Command, args []string) {
	tracing.Infof("fplot interpreter called")
	p := newPlotter(os.Stdout)
	for _, src := range args {
		p.session.Add(src)
	}
	prompt(p)
}

// prompt enters the REPL for a plotter. It does not return.
func prompt(p *plotter) {
	intp := &plotIntpr{plotter: p}
	repl, err := termui.NewBaseREPL("fplot", "0.1", completions...)
	if err != nil {
		tracing.Errorf("cannot start REPL: %v", err)
		fplot.Exit(3)
	}
	intp.BaseREPL = repl
	intp.Interpreter = intp
	intp.Helper = func(w io.Writer) {
		io.WriteString(w, helpText)
	}
	stdout, _ := intp.Outputs()
	p.out = stdout
	intp.format = Formatter{printer: p.printer}
	if len(p.session.Functions()) > 0 {
		intp.InterpretCommand("show")
	}
	intp.Prompt(true)
}

type plotIntpr struct {
	*termui.BaseREPL
	*plotter
	format termui.Formatter
}

// InterpretCommand implements termui.REPLCommandInterpreter.
func (intp *plotIntpr) InterpretCommand(command string) {
	stdout, stderr := intp.Outputs()
	result, err := intp.execute(command)
	if err != nil {
		intp.format.Format(err, stderr)
		return
	}
	if result != nil {
		if ok, _ := intp.format.Format(result, stdout); !ok {
			fmt.Fprintf(stderr, "cannot display result of type %T\n", result)
		}
	}
}
