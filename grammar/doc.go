/*
Package grammar implements the tokenizer for function definitions.

Function definitions are infix expressions in one variable, x, e.g.

    2sin(x) + 1/x
    3,5x^2 - (x+1

Whitespace is insignificant. A comma is accepted as a decimal separator.
Multiplication may be implicit between a number and a following letter or
parenthesis, and between an identifier and a following digit or parenthesis.
The constants pi and e are substituted during tokenization.

The tokenizer never fails. Characters and literals it cannot make sense of
become Illegal tokens, which the compiler skips.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fplot.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("fplot.grammar")
}
