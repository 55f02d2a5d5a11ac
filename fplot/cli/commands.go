package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/corelang"
	"github.com/npillmayer/fplot/scripting"
	"github.com/npillmayer/fplot/session"
	"github.com/spf13/cobra"
)

// Batch-mode sub-commands. They print their results to stdout and return.

var evalCmd = &cobra.Command{
	Use:   "eval <f(x)> <x> [<x> ...]",
	Short: "Evaluate a function at one or more positions",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := numberPrinter()
		prog := corelang.Compile(args[0])
		pts := make([]fplot.SamplePoint, 0, len(args)-1)
		for _, a := range args[1:] {
			x, err := parseNumber(a)
			if err != nil {
				return err
			}
			pts = append(pts, fplot.Pt(x, prog.Evaluate(x)))
		}
		fmt.Fprintln(cmd.OutOrStdout(), samplesTable(p, "f(x) = "+args[0], pts).Render())
		return interactive(cmd, args[:1])
	},
}

var rpnCmd = &cobra.Command{
	Use:   "rpn <f(x)>",
	Short: "Display the compiled program of a function",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), corelang.Compile(args[0]).String())
	},
}

var tableCmd = &cobra.Command{
	Use:   "table <f(x)>",
	Short: "Print a value table of a function",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetFloat64("from")
		to, _ := cmd.Flags().GetFloat64("to")
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 2 {
			return fmt.Errorf("table needs at least 2 steps, have %d", steps)
		}
		pts := fplot.Sample(corelang.Compile(args[0]), from, to, steps)
		fmt.Fprintln(cmd.OutOrStdout(), samplesTable(numberPrinter(), "f(x) = "+args[0], pts).Render())
		return interactive(cmd, args)
	},
}

var rootsCmd = &cobra.Command{
	Use:   "roots <f(x)> [<g(x)>]",
	Short: "Find roots, and intersections of two functions, in the window",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := numberPrinter()
		s := session.New(viewSize())
		for _, src := range args {
			s.Add(src)
		}
		frame := s.Frame()
		out := cmd.OutOrStdout()
		for _, c := range frame.Curves {
			fmt.Fprintln(out, markersTable(p, "Roots of "+c.Function.Source(), c.Roots).Render())
		}
		if len(args) == 2 {
			title := fmt.Sprintf("%s ∩ %s", args[0], args[1])
			fmt.Fprintln(out, markersTable(p, title, frame.Intersections).Render())
		}
		return interactive(cmd, args)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <script.lua> [<script.lua> ...]",
	Short: "Run Lua scripts operating on a plotting session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPlotter(cmd.OutOrStdout())
		intp := scripting.NewInterpreter(p.session, p.out)
		for _, script := range args {
			if err := intp.DoFile(script); err != nil {
				intp.Close()
				return err
			}
		}
		intp.Close()
		if fplot.ConfigBool("interactive", false) {
			prompt(p)
		}
		if show, _ := cmd.Flags().GetBool("show"); show {
			return showSession(p)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [<f(x)> ...]",
	Short: "Show functions or a saved session in a plot window",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPlotter(cmd.OutOrStdout())
		for _, src := range args {
			if _, err := os.Stat(src); err == nil {
				if err = p.session.LoadFile(src); err != nil {
					return err
				}
				continue
			}
			p.session.Add(src)
		}
		if fplot.ConfigBool("interactive", false) {
			prompt(p)
		}
		return showSession(p)
	},
}

// interactive enters the REPL with functions pre-loaded, if the
// interactive flag is set.
func interactive(cmd *cobra.Command, functions []string) error {
	if !fplot.ConfigBool("interactive", false) {
		return nil
	}
	p := newPlotter(cmd.OutOrStdout())
	for _, src := range functions {
		p.session.Add(src)
	}
	prompt(p)
	return nil
}

func showSession(p *plotter) error {
	if len(p.session.Functions()) == 0 {
		return errors.New("nothing to show")
	}
	if _, err := showStmt(p, ""); err != nil {
		return err
	}
	guiShown = true
	return nil
}
