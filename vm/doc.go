/*
Package vm implements compiled function definitions and a stack machine to
evaluate them.

A Program is a sequence of RPN instructions. Executing a program for a given x
never fails: stack underflow, unknown names, left-over operands and non-finite
intermediate results all produce an undefined value.

Programs are immutable once built and may be shared between goroutines.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vm

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'fplot.vm'
func tracer() tracing.Trace {
	return tracing.Select("fplot.vm")
}
