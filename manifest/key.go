package manifest

import "strings"

// Key addresses an entity within a kind-partitioned namespace: the entity
// named Name, defined in module Module.
type Key struct {
	Module string
	Name   string
}

// K is a shortcut for creating a key.
func K(module, name string) Key {
	return Key{Module: module, Name: name}
}

// ParseKey splits a qualified reference "Module.name" at the last dot.
// Module identifiers may contain dots themselves, e.g. "App.Button.name"
// denotes entity "name" in module "App.Button". A reference without a dot is
// a bare name and is interpreted relative to module `within`.
func ParseKey(ref string, within string) Key {
	if i := strings.LastIndexByte(ref, '.'); i > 0 && i < len(ref)-1 {
		return Key{Module: ref[:i], Name: ref[i+1:]}
	}
	return Key{Module: within, Name: ref}
}

// In returns a key for name in module, if k does not already name a module.
func (k Key) In(module string) Key {
	if k.Module == "" {
		k.Module = module
	}
	return k
}

func (k Key) String() string {
	if k.Module == "" {
		return k.Name
	}
	return k.Module + "." + k.Name
}

// --- Kinds -----------------------------------------------------------------

// Kind partitions the manifest's namespace. The same key may denote a
// variable and a rule at the same time.
type Kind uint8

const (
	KindVar Kind = iota
	KindConst
	KindRule
	KindDynamicRule
	KindAtom
	kindCount
)

// Kinds lists all entity kinds, in the order manifests are dumped.
var Kinds = [...]Kind{KindVar, KindConst, KindRule, KindDynamicRule, KindAtom}

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindConst:
		return "const"
	case KindRule:
		return "rule"
	case KindDynamicRule:
		return "dynamic-rule"
	case KindAtom:
		return "atom"
	}
	return "<unknown kind>"
}

func (k Kind) valid() bool {
	return k < kindCount
}
