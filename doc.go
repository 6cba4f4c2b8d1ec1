/*
Package xstyle is an engine for atomic CSS with per-property override.

Style rules are compiled into atomic classes, one class per CSS declaration,
and recorded in a manifest. At render time, lists of rule references are
resolved into class strings: where several referenced rules set the same
CSS property, the rule referenced last wins, independent of the order of the
classes in the generated stylesheet. Dynamic rules take runtime values,
which are bound to CSS custom properties through an inline style.

An Engine ties the parts together:

	engine := xstyle.New(xstyle.ClassPrefix("ui"))
	c := engine.Compiler()
	c.Rule("Button", "base", compile.L("color", "black"), compile.L("padding", "4px"))
	c.Rule("Button", "danger", compile.L("color", "red"))
	a := engine.Attrs("Button", attrs.NoStyle, resolve.R("base"), resolve.R("danger"))
	// a.Class() ⇒ class for "color: red", followed by class for "padding: 4px"

The sub-packages may be used on their own: package manifest holds entries,
package registry gives typed access to them, package compile populates the
manifest, package resolve merges references, and package attrs renders
element attributes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package xstyle

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xstyle'.
func tracer() tracing.Trace {
	return tracing.Select("xstyle")
}
