/*
Package corelang compiles function definitions into RPN programs.

Compilation

Compile uses a variant of Dijkstra's shunting-yard algorithm on the tokens
produced by package grammar. Operator precedence, from lowest to highest:

    + -      binary, left associative
    * /      binary, left associative (includes implicit multiplication)
    ^        binary, right associative
    -        unary minus, right associative

Note that unary minus binds tighter than exponentiation, i.e. -x^2 is (-x)^2.

A minus is unary at the start of an expression, after an operator, after an
opening parenthesis and after a function name. Function names wait on the
operator stack until their closing parenthesis.

Compilation never fails. Illegal tokens are skipped, unmatched opening
parentheses are closed at the end of the input, and stray closing parentheses
are dropped. Anything else that does not make sense, e.g. an operator without
operands, results in a program which evaluates to undefined.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package corelang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fplot.corelang'.
func tracer() tracing.Trace {
	return tracing.Select("fplot.corelang")
}
