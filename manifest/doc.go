/*
Package manifest implements the store for named style entities.

Style entities (CSS variables, constants, atomic style rules and dynamic
style rules) are declared inside modules and addressed by a two-part key:
the identifier of the defining module and the entity's name. A manifest maps
(kind, key) to an entry.

Manifests are immutable values. “Modifying” a manifest creates a new
incarnation, leaving the original unchanged; entries of other kinds are
shared between the incarnations. This makes it cheap to hand out consistent
snapshots to concurrent readers:

	store := manifest.NewStore()
	store.Put(manifest.KindConst, manifest.K("Theme", "gap"), manifest.Const("4px"))
	m := store.Read()                  // snapshot, never changes
	gap, found := m.Get(manifest.KindConst, manifest.K("Theme", "gap"))

Writes happen at compile time, one writer at a time; at runtime the manifest
is effectively read-only and readers need no locking at all.

Manifests may be saved to and loaded from YAML, so that incremental
compilation runs can start from the results of previous runs.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package manifest

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'xstyle.manifest'.
func tracer() tracing.Trace {
	return tracing.Select("xstyle.manifest")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("manifest: "+msg, msgargs...)
		panic(msg)
	}
}
