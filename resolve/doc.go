/*
Package resolve computes class strings from ordered lists of style references.

Resolution follows StyleX semantics: refs are applied left to right, and a
later ref overrides an earlier one property by property. Two rules setting
disjoint properties both contribute their classes; for two rules setting
`color`, only the later rule's class for `color` survives:

	A = {color: c1}
	B = {color: c2, padding: p1}
	ClassString("Mod", R("A"), R("B"))  ⇒  "c2 p1"

Dynamic rules receive values at render time. Their CSS has been generated at
compile time and reads custom properties; resolving a dynamic ref yields the
rule's classes plus a custom property binding for every parameter, to be set
as inline style. No CSS is generated at runtime.

All functions operate on manifest snapshots and neither block nor perform
I/O. Refs are expected to have been validated at compile time; a ref which
does not resolve is an internal-consistency violation and results in a panic.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package resolve

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xstyle.resolve'.
func tracer() tracing.Trace {
	return tracing.Select("xstyle.resolve")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("resolve: "+msg, msgargs...)
		tracer().Errorf("%s", msg)
		panic(msg)
	}
}
