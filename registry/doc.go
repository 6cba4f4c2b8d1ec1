/*
Package registry provides lookup and definition of named style entities.

A registry is a view onto a manifest store for one kind of entity: CSS
variables, constants, style rules or dynamic style rules. All kinds share a
single generic implementation, configured with the kind, a display name for
error messages and a projection onto the entity's reference value:

	vars := registry.NewVars(store)
	r := vars.Lookup("Button", "Theme.accent")  // result.Result[manifest.Var]
	ident := vars.Ref(manifest.K("Theme", "accent"))   // "--x3f09a1", or panic

Lookup reports a miss as an error result; MustLookup and Ref panic, as
almost every caller relies on compile-time validation having guaranteed the
entity's presence. Constants override Ref: a constant's entry is its value.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package registry

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xstyle.registry'.
func tracer() tracing.Trace {
	return tracing.Select("xstyle.registry")
}
