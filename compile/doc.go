/*
Package compile populates a manifest with style entities.

The compiler is the definition layer of the style engine: it turns constant,
variable and rule definitions of a module into manifest entries, generating
atomic classes and custom property names on the way. Every CSS declaration
becomes one atomic class; equal declarations in different rules share the
same class.

	c := compile.New(store)
	c.Consts("Theme", registry.P("gap", "4px"))
	c.Vars("Theme", registry.P("accent", "#0af"))
	c.Rule("Button", "base",
	    compile.D("padding", compile.Const("Theme.gap")),
	    compile.D("color", compile.Var("Theme.accent")))
	c.DynamicRule("Button", "fade", []string{"opacity"},
	    compile.D("opacity", compile.Param("opacity")))

References to constants and variables of other modules are resolved at
compile time; a module has to be compiled after the modules it references.

Writing stylesheets to disk is not part of this package; CSS renders the
generated rules to an io.Writer.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package compile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xstyle.compile'.
func tracer() tracing.Trace {
	return tracing.Select("xstyle.compile")
}
