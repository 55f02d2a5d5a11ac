// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package termui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fplot.cli'.
func tracer() tracing.Trace {
	return tracing.Select("fplot.cli")
}

// Formatter writes a result item of an interpreter statement to w.
// It returns false if it is unable to format the item.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter formats strings, errors, Stringers and tables.
type DefaultFormatter struct{}

var _ Formatter = DefaultFormatter{}

// Format implements the Formatter interface.
func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	var err error
	switch t := item.(type) {
	case nil:
		return false, nil
	case string:
		_, err = fmt.Fprintf(w, "▶ %s\n", t)
	case []string:
		for _, s := range t {
			if _, err = fmt.Fprintf(w, "▶ %s\n", s); err != nil {
				break
			}
		}
	case error:
		_, err = fmt.Fprintf(w, "%s\n", prtxt.FgRed.Sprint("✗ "+t.Error()))
	case table.Writer:
		_, err = fmt.Fprintf(w, "%s\n", t.Render())
	case fmt.Stringer:
		_, err = fmt.Fprintf(w, "▶ %s\n", t.String())
	default:
		_, err = fmt.Fprintf(w, "▶ object of type %T\n", t)
	}
	return err == nil, err
}
