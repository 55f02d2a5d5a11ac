package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fplot.cli'
func tracer() tracing.Trace {
	return tracing.Select("fplot.cli")
}
