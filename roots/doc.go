/*
Package roots finds approximate zero-crossings of sampled functions.

Roots of a single function and intersections of two functions are both found
by scanning consecutive samples for a change of sign, of the function values
or of their difference respectively. Undefined samples interrupt the scan, so
no crossing is reported across a gap.

Markers found by scanning may be refined by bisection. Refinement also tells
true roots from poles, where a function changes its sign without crossing
zero.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package roots

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fplot.roots'
func tracer() tracing.Trace {
	return tracing.Select("fplot.roots")
}
