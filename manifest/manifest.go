package manifest

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	tp "github.com/xlab/treeprint"
)

// Manifest maps (kind, key) to entries. Manifests are immutable; an empty
// instance is a usable empty manifest, i.e. this is legal:
//
//	m := (&manifest.Manifest{}).Put(manifest.KindConst, k, manifest.Const("50"))
//
// returning a new manifest containing a single constant.
type Manifest struct {
	parts      [kindCount]partition
	generation uint64
}

// partition holds the entries of one kind. Partitions are never modified
// after a manifest incarnation has been published.
type partition struct {
	entries map[Key]Entry
	order   []Key // insertion order
}

// Get looks up the entry for a key.
func (m *Manifest) Get(kind Kind, key Key) (Entry, bool) {
	assertThat(kind.valid(), "illegal entity kind %d", kind)
	if m == nil {
		return nil, false
	}
	e, ok := m.parts[kind].entries[key]
	return e, ok
}

// Put returns a manifest with key associated to entry.
// If an equal entry is already present, Put returns m itself; otherwise a new
// incarnation is created, sharing all other kinds' partitions with m.
// A different entry for an existing key replaces the old entry, keeping the
// key's position.
func (m *Manifest) Put(kind Kind, key Key, entry Entry) *Manifest {
	assertThat(kind.valid(), "illegal entity kind %d", kind)
	assertThat(entry != nil, "attempt to store nil entry for %s", key)
	assertThat(entry.Kind() == kind, "cannot store %s entry as %s %s", entry.Kind(), kind, key)
	if m == nil {
		m = &Manifest{}
	}
	part := m.parts[kind]
	old, found := part.entries[key]
	if found && old.Equal(entry) {
		tracer().Debugf("%s %s unchanged", kind, key)
		return m
	}
	cow := *m // copy-on-write: copies the partition headers only
	cow.generation = m.generation + 1
	entries := maps.Clone(part.entries)
	if entries == nil {
		entries = make(map[Key]Entry)
	}
	entries[key] = entry
	order := part.order
	if !found {
		order = append(slices.Clip(order), key)
	}
	cow.parts[kind] = partition{entries: entries, order: order}
	tracer().Debugf("%s %s stored, generation %d", kind, key, cow.generation)
	return &cow
}

// Generation counts the modifications leading to this manifest. Within a
// store, equal generations denote the same manifest incarnation: Store
// publishes manifests with strictly increasing generations.
func (m *Manifest) Generation() uint64 {
	if m == nil {
		return 0
	}
	return m.generation
}

// stamped returns a copy of m with a different generation. Partitions are
// shared.
func (m *Manifest) stamped(generation uint64) *Manifest {
	cow := *m
	cow.generation = generation
	return &cow
}

// Len returns the number of entries of a kind.
func (m *Manifest) Len(kind Kind) int {
	assertThat(kind.valid(), "illegal entity kind %d", kind)
	if m == nil {
		return 0
	}
	return len(m.parts[kind].order)
}

// Keys returns the keys of a kind, in insertion order.
func (m *Manifest) Keys(kind Kind) []Key {
	assertThat(kind.valid(), "illegal entity kind %d", kind)
	if m == nil {
		return nil
	}
	return slices.Clone(m.parts[kind].order)
}

// All iterates over the entries of a kind, in insertion order.
func (m *Manifest) All(kind Kind) iter.Seq2[Key, Entry] {
	assertThat(kind.valid(), "illegal entity kind %d", kind)
	return func(yield func(Key, Entry) bool) {
		if m == nil {
			return
		}
		part := m.parts[kind]
		for _, k := range part.order {
			if !yield(k, part.entries[k]) {
				return
			}
		}
	}
}

// Merge returns a manifest with all entries of other put into m.
// Entries of other win for keys present in both.
func (m *Manifest) Merge(other *Manifest) *Manifest {
	for _, kind := range Kinds {
		for k, e := range other.All(kind) {
			m = m.Put(kind, k, e)
		}
	}
	return m
}

// String dumps the manifest as a tree, grouped by kind and module.
// Used for debugging.
func (m *Manifest) String() string {
	header := fmt.Sprintf("Manifest(generation=%d)\n", m.Generation())
	printer := tp.New()
	for _, kind := range Kinds {
		if m.Len(kind) == 0 {
			continue
		}
		kbranch := printer.AddBranch(kind.String())
		modules := make(map[string]tp.Tree)
		for k, e := range m.All(kind) {
			if k.Module == "" {
				kbranch.AddMetaNode(k.Name, entryString(e))
				continue
			}
			mbranch, ok := modules[k.Module]
			if !ok {
				mbranch = kbranch.AddBranch(k.Module)
				modules[k.Module] = mbranch
			}
			mbranch.AddMetaNode(k.Name, entryString(e))
		}
	}
	return header + printer.String()
}

func entryString(e Entry) string {
	switch x := e.(type) {
	case Var:
		if x.Default != "" {
			return x.Ident + " = " + x.Default
		}
		return x.Ident
	case Atom:
		return x.Decl()
	case Const:
		return fmt.Sprintf("%q", string(x))
	case Rule:
		return propsString(x.Props)
	case DynamicRule:
		return fmt.Sprintf("%s %s %s params=%v", x.Class, propsString(x.Static),
			propsString(x.Dynamic), x.Params)
	}
	return fmt.Sprintf("%v", e)
}

func propsString(pc PropClasses) string {
	s := "{"
	for i, p := range pc {
		if i > 0 {
			s += ", "
		}
		s += p.Property + ": " + p.Class
	}
	return s + "}"
}
