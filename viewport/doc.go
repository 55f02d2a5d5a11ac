/*
Package viewport models the visible part of the plane.

A Viewport is a window in world coordinates, mapped onto a render surface
measured in pixels. It maintains grid spacings which keep the count of grid
columns and rows within readable limits, and it reacts to pan and zoom
gestures given in pixel space.

Viewports are not safe for concurrent use. Renderers should operate on a
Window, which is an immutable snapshot of a viewport.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package viewport

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fplot.viewport'
func tracer() tracing.Trace {
	return tracing.Select("fplot.viewport")
}
