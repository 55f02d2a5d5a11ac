// Package gui displays plotting sessions in Gio windows.
//
// The GUI runs on the main thread (see app.Main), while the command line
// interface runs in a goroutine. The first call to GlobalGui releases the
// main thread's guard.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package gui

import (
	"context"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"
	"github.com/npillmayer/fplot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fplot.gui'
func tracer() tracing.Trace {
	return tracing.Select("fplot.gui")
}

var guiApplication *GuiApplication

var guiAppStart sync.Once

// GlobalGui returns the application wide GUI, starting it if necessary.
func GlobalGui() *GuiApplication {
	guiAppStart.Do(func() {
		ctx := fplot.SignalContext
		if ctx == nil {
			ctx = context.Background()
		}
		guiApplication = NewApplication(ctx)
		fplot.ConditionGuiStarted.Broadcast()
	})
	return guiApplication
}

// GuiApplication keeps track of all the windows and global state.
type GuiApplication struct {
	Context  context.Context // used to broadcast application shutdown
	Shutdown func()          // shut down all windows
	Theme    *material.Theme // the application wide theme
	active   sync.WaitGroup  // keep track of open windows
	log      *Log            // "console log" window to show text
	mx       sync.Mutex      // guards log
}

// NewApplication creates a GUI application which terminates with ctx.
func NewApplication(ctx context.Context) *GuiApplication {
	ctx, cancel := context.WithCancel(ctx)
	return &GuiApplication{
		Context:  ctx,
		Shutdown: cancel,
		Theme:    material.NewTheme(gofont.Collection()),
	}
}

// Log returns the log window of the application, opening it if necessary.
func (a *GuiApplication) Log() *Log {
	a.mx.Lock()
	defer a.mx.Unlock()
	if a.log == nil {
		a.log = newLog()
		a.log.Printf("[Log output started at %s]", time.Now().Format(time.UnixDate))
		a.NewWindow("fplot log", a.log)
	}
	return a.log
}

func (a *GuiApplication) closeLog() {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.log = nil
}

// Wait waits for all windows to close.
func (a *GuiApplication) Wait() {
	a.active.Wait()
}

// NewWindow creates a new tracked window.
func (a *GuiApplication) NewWindow(title string, view View, opts ...app.Option) {
	opts = append(opts, app.Title(title))
	w := &Window{
		App:    a,
		Window: app.NewWindow(opts...),
	}
	a.active.Add(1)
	go func() {
		defer a.active.Done()
		if err := view.Run(w); err != nil {
			tracer().Errorf("window %q: %v", title, err)
		}
	}()
}

// Window holds window state.
type Window struct {
	App *GuiApplication
	*app.Window
}

// View is the content of a window.
type View interface {
	// Run handles the window event loop.
	Run(w *Window) error
}

// WidgetView allows to use layout.Widget as a view.
type WidgetView func(gtx layout.Context) layout.Dimensions

// Run displays the widget with default handling.
func (view WidgetView) Run(w *Window) error {
	var ops op.Ops
	applicationClose := w.App.Context.Done()
	for {
		select {
		case <-applicationClose:
			return nil
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				view(gtx)
				e.Frame(gtx.Ops)
			}
		}
	}
}
