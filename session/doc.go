/*
Package session holds the state of an interactive plotting session: an
ordered list of graph functions and the viewport they are shown in.

A session produces frames. A frame contains everything a renderer needs, in
pixel coordinates: the grid, the traced curves clipped to the render surface,
and markers for roots and intersections. Intersections are computed for the
first two functions of the list only.

Sessions are safe for concurrent use, which allows a command line and a
window to operate on the same session. Sessions may be saved to and loaded
from YAML files.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fplot.session'
func tracer() tracing.Trace {
	return tracing.Select("fplot.session")
}
