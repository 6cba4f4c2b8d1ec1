package registry

import (
	"github.com/npillmayer/xstyle/manifest"
)

// Vars is the registry of CSS variables. A variable's reference value is the
// identifier of the custom property implementing it.
type Vars = Registry[manifest.Var, string]

// NewVars creates the variable registry for a store.
func NewVars(store *manifest.Store) *Vars {
	return New(store, manifest.KindVar, "CSS variable", func(v manifest.Var) string {
		return v.Ident
	})
}

// VarExpr returns the CSS expression reading a custom property,
// e.g. "var(--x1f3a)".
func VarExpr(ident string) string {
	return "var(" + ident + ")"
}

// Rules is the registry of static style rules. A rule's reference value is
// its property→class mapping.
type Rules = Registry[manifest.Rule, manifest.PropClasses]

// NewRules creates the rule registry for a store.
func NewRules(store *manifest.Store) *Rules {
	return New(store, manifest.KindRule, "style rule", func(r manifest.Rule) manifest.PropClasses {
		return r.Props
	})
}

// DynamicRules is the registry of dynamic style rules. There is no
// reduced reference value for dynamic rules: resolving them needs every part
// of the entry.
type DynamicRules = Registry[manifest.DynamicRule, manifest.DynamicRule]

// NewDynamicRules creates the dynamic rule registry for a store.
func NewDynamicRules(store *manifest.Store) *DynamicRules {
	return New(store, manifest.KindDynamicRule, "dynamic style rule", func(r manifest.DynamicRule) manifest.DynamicRule {
		return r
	})
}

// --- Constants -------------------------------------------------------------

// Consts is the registry of constants. It differs from the generic registry
// in Ref: the entry of a constant is its value, there is no structure to
// project from.
type Consts struct {
	*Registry[manifest.Const, string]
}

// NewConsts creates the constant registry for a store.
func NewConsts(store *manifest.Store) Consts {
	return Consts{New[manifest.Const, string](store, manifest.KindConst, "constant", nil)}
}

// Ref returns the literal value of a constant. Panics if the constant is
// missing.
func (c Consts) Ref(key manifest.Key) string {
	return string(c.MustLookup(key))
}

// Snapshot returns a read-only view of the constants on the current manifest.
func (c Consts) Snapshot() Consts {
	return Consts{c.Registry.Snapshot()}
}
