// Command fplot plots functions of one variable, interactively in a terminal
// REPL together with a GUI window, or in batch mode.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"gioui.org/app"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/fplot/fplot/cli"
)

func main() {
	var stop context.CancelFunc
	fplot.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// start the CLI in a goroutine, as the main thread will be blocked by the GUI
	go func() {
		cli.Execute()
	}()

	// app.Main will potentially move the focus away from the shell window,
	// therefore we guard it until a plot window is to be opened.
	// CLI commands will have to call fplot.Exit() to terminate the application.
	fplot.ConditionGuiStarted.Wait()
	app.Main()
}
