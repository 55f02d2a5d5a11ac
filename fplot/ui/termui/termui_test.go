package termui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type point struct{ x, y int }

func (p point) String() string { return "point" }

func TestDefaultFormatter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fplot.cli")
	defer teardown()
	//
	tw := table.NewWriter()
	tw.AppendRow(table.Row{"a", 1})
	for i, x := range []struct {
		item     interface{}
		expected string
	}{
		{"hello", "▶ hello\n"},
		{[]string{"a", "b"}, "▶ a\n▶ b\n"},
		{errors.New("failed"), "failed"},
		{point{1, 2}, "▶ point\n"},
		{42, "▶ object of type int\n"},
		{tw, "| a | 1 |"},
	} {
		var buf bytes.Buffer
		ok, err := DefaultFormatter{}.Format(x.item, &buf)
		if !ok || err != nil {
			t.Errorf("test %d: unable to format %v: %v", i, x.item, err)
		}
		if !strings.Contains(buf.String(), x.expected) {
			t.Errorf("test %d: expected output to contain %q, is %q", i, x.expected, buf.String())
		}
	}
	if ok, _ := (DefaultFormatter{}).Format(nil, &bytes.Buffer{}); ok {
		t.Errorf("expected nil not to be formatted")
	}
}
