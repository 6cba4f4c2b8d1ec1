package registry

import (
	"fmt"

	"github.com/npillmayer/xstyle/manifest"
	"github.com/npillmayer/xstyle/result"
)

// Registry looks up and stores entities of one kind. E is the entry type,
// R the type of the entity's reference value.
type Registry[E manifest.Entry, R any] struct {
	entity  string // display name for error messages
	kind    manifest.Kind
	project func(E) R
	store   *manifest.Store
	fixed   *manifest.Manifest // non-nil for snapshot views
}

// New creates a registry for entities of kind, backed by store. entity is the
// display name used in error messages. project maps an entry to its
// reference value, see Ref.
func New[E manifest.Entry, R any](store *manifest.Store, kind manifest.Kind, entity string,
	project func(E) R) *Registry[E, R] {
	//
	if store == nil {
		panic("registry: store must not be nil")
	}
	return &Registry[E, R]{
		entity:  entity,
		kind:    kind,
		project: project,
		store:   store,
	}
}

// Entity returns the display name of this registry's kind of entity.
func (reg *Registry[E, R]) Entity() string {
	return reg.entity
}

// Kind returns the manifest kind of this registry.
func (reg *Registry[E, R]) Kind() manifest.Kind {
	return reg.kind
}

// Snapshot returns a read-only view of the registry on the current manifest.
// Lookups through the view are consistent with each other, even if the
// store is modified in the meantime.
func (reg *Registry[E, R]) Snapshot() *Registry[E, R] {
	return reg.At(reg.manifest())
}

// At returns a read-only view of the registry on manifest m. Views of
// different registries on the same m are consistent with each other.
func (reg *Registry[E, R]) At(m *manifest.Manifest) *Registry[E, R] {
	if m == nil {
		panic("registry: view on nil manifest")
	}
	view := *reg
	view.fixed = m
	return &view
}

// Manifest returns the manifest lookups are performed on.
func (reg *Registry[E, R]) Manifest() *manifest.Manifest {
	return reg.manifest()
}

func (reg *Registry[E, R]) manifest() *manifest.Manifest {
	if reg.fixed != nil {
		return reg.fixed
	}
	return reg.store.Read()
}

// Lookup finds an entity by reference. A bare name is interpreted as
// (module, name); a qualified reference "Other.name" addresses module Other.
func (reg *Registry[E, R]) Lookup(module string, ref string) result.Result[E] {
	return reg.LookupKey(manifest.ParseKey(ref, module))
}

// LookupKey finds an entity by key. A miss results in a *NotFoundError.
func (reg *Registry[E, R]) LookupKey(key manifest.Key) result.Result[E] {
	e, found := reg.manifest().Get(reg.kind, key)
	if !found {
		tracer().Debugf("%s %s not found", reg.entity, key)
		return result.Err[E](&NotFoundError{Entity: reg.entity, Key: key})
	}
	entry, ok := e.(E)
	if !ok { // cannot happen: manifests check kinds on insertion
		panic(fmt.Sprintf("registry: %s %s has unexpected entry type %T", reg.entity, key, e))
	}
	return result.Ok(entry)
}

// MustLookup finds an entity by key and panics with a *NotFoundError if it
// is missing.
func (reg *Registry[E, R]) MustLookup(key manifest.Key) E {
	r := reg.LookupKey(key)
	if err := r.Error(); err != nil {
		tracer().Errorf("%s", err)
	}
	return r.OrPanic()
}

// Ref looks up an entity by key and returns its reference value, e.g. the
// generated identifier of a CSS variable. Panics for missing entities.
func (reg *Registry[E, R]) Ref(key manifest.Key) R {
	if reg.project == nil {
		panic(fmt.Sprintf("registry: %s has no reference projection", reg.entity))
	}
	return reg.project(reg.MustLookup(key))
}

// Store associates key with entry, replacing a previous, different entry.
// Storing an identical entry again is a no-op. Store reports whether the
// manifest has been modified.
//
// Store is meant to be called at compile time only; snapshot views refuse
// to store.
func (reg *Registry[E, R]) Store(key manifest.Key, entry E) bool {
	if reg.fixed != nil {
		panic(fmt.Sprintf("registry: cannot store %s %s through a snapshot", reg.entity, key))
	}
	if key.Module == "" || key.Name == "" {
		panic(fmt.Sprintf("registry: cannot store %s with incomplete key %q", reg.entity, key))
	}
	written := reg.store.Put(reg.kind, key, entry)
	if written {
		tracer().Debugf("stored %s %s", reg.entity, key)
	}
	return written
}

// Keys returns the keys of all entities of this registry's kind, in
// definition order.
func (reg *Registry[E, R]) Keys() []manifest.Key {
	return reg.manifest().Keys(reg.kind)
}
