/*
Package css provides CSS property values as they flow through the style engine.

Atomic style rules are built from declarations (a property together with its
value), and dynamic rules receive values at render time which have to be
converted to CSS text. This package covers both: raw property values and
declaration lists, parsing of author-supplied declaration text, and
dimension values which render to CSS units.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xstyle.css'.
func tracer() tracing.Trace {
	return tracing.Select("xstyle.css")
}
