/*
Package sampler traces the graph of a function across a window.

The function is sampled at a fixed count of evenly spaced positions.
Consecutive defined samples are connected by straight segments as long as the
sign of the slope does not change. A change of sign may be a harmless
extremum, or a pole where the function jumps from -∞ to +∞ (or vice versa).
To tell them apart, the suspicious interval is bisected recursively, up to a
fixed depth, always continuing into the half with the steeper slope. If the
function turns out to be undefined inside the interval, or still jumps by
more than the visible height at the deepest level, no connector is drawn.
Instead the curve is terminated by a short flat segment.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sampler

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fplot.sampler'
func tracer() tracing.Trace {
	return tracing.Select("fplot.sampler")
}
