package gui

import (
	"fmt"
	"strings"

	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// Log shows a list of strings, e.g. coordinates picked in a plot window.
type Log struct {
	addLine chan string
	lines   []string

	list widget.List
}

// newLog creates a new log view.
func newLog() *Log {
	return &Log{
		addLine: make(chan string, 100),
		list: widget.List{List: layout.List{
			Axis:        layout.Vertical,
			ScrollToEnd: true,
		}},
	}
}

// Printf adds a new line to the log.
func (log *Log) Printf(format string, args ...interface{}) {
	s := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	for _, line := range strings.Split(s, "\n") {
		select { // logging must not block the caller
		case log.addLine <- line:
		default:
			tracer().Infof(line)
		}
	}
}

// Run handles window loop for the log.
func (log *Log) Run(w *Window) error {
	var ops op.Ops
	applicationClose := w.App.Context.Done()
	for {
		select {
		case <-applicationClose:
			return nil
		case line := <-log.addLine:
			log.lines = append(log.lines, line)
			w.Invalidate()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.DestroyEvent:
				w.App.closeLog()
				return e.Err
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				log.Layout(w.App.Theme, gtx)
				e.Frame(gtx.Ops)
			}
		}
	}
}

// Layout draws the lines of the log as a scrollable list.
func (log *Log) Layout(th *material.Theme, gtx layout.Context) layout.Dimensions {
	return material.List(th, &log.list).Layout(gtx, len(log.lines), func(gtx layout.Context, i int) layout.Dimensions {
		return material.Body1(th, log.lines[i]).Layout(gtx)
	})
}
