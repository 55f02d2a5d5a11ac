/*
Package scripting lets Lua scripts drive a plotting session.

The interpreter pre-loads the following functions into the Lua state:

    plot(src [, color])          add a function, returns its position (1…n)
    remove(i)                    remove function #i
    clear()                      remove all functions
    functions()                  list of function definitions
    window([xmin,xmax,ymin,ymax]) set the window; returns the current window
    pan(dx, dy)                  pan by a drag of (dx,dy) pixels
    zoom(f [, ax, ay])           zoom by f around pixel (ax,ay), default center
    eval(src, x)                 evaluate a function definition, nil if undefined
    roots([i])                   x-positions of roots of function #i, default #1
    intersections()              points {x=…, y=…} where functions #1 and #2 cross
    save(path), load(path)       write or read a session file
    print(…)                     print to the interpreter's output

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scripting

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fplot.scripting'
func tracer() tracing.Trace {
	return tracing.Select("fplot.scripting")
}
