package manifest

import "slices"

// Entry is the value stored for a key. Every entry belongs to exactly one kind.
//
// Entries are compared structurally: re-storing an entry equal to the present
// one does not create a new manifest incarnation.
type Entry interface {
	Kind() Kind
	Equal(Entry) bool
}

// Var is the entry for a CSS variable. Ident is the generated name of the
// custom property implementing the variable, e.g. "--x1f3a9c". Default is
// the value the variable is initialized with on :root, if any.
type Var struct {
	Ident   string
	Default string
}

func (v Var) Kind() Kind { return KindVar }

func (v Var) Equal(other Entry) bool {
	o, ok := other.(Var)
	return ok && o == v
}

// Const is the entry for a constant. Constants never emit CSS; their value
// is substituted into rule definitions at compile time. The entry is the
// value itself.
type Const string

func (c Const) Kind() Kind { return KindConst }

func (c Const) Equal(other Entry) bool {
	o, ok := other.(Const)
	return ok && o == c
}

// PropClass associates a CSS property with the atomic class implementing it.
type PropClass struct {
	Property string
	Class    string
}

// PropClasses is an ordered mapping of CSS properties to atomic classes.
// Every property occurs at most once.
type PropClasses []PropClass

// Get returns the atomic class for a property.
func (pc PropClasses) Get(property string) (string, bool) {
	for _, p := range pc {
		if p.Property == property {
			return p.Class, true
		}
	}
	return "", false
}

// With returns a copy of pc with property mapped to class. An existing
// mapping for property is replaced in place.
func (pc PropClasses) With(property, class string) PropClasses {
	cow := slices.Clone(pc)
	for i := range cow {
		if cow[i].Property == property {
			cow[i].Class = class
			return cow
		}
	}
	return append(cow, PropClass{Property: property, Class: class})
}

// Rule is the entry for a static style rule: one atomic class per property.
type Rule struct {
	Props PropClasses
}

func (r Rule) Kind() Kind { return KindRule }

func (r Rule) Equal(other Entry) bool {
	o, ok := other.(Rule)
	return ok && slices.Equal(o.Props, r.Props)
}

// Param is a parameter of a dynamic rule, together with the custom property
// which carries the parameter's value at runtime.
type Param struct {
	Name string
	Var  string
}

// DynamicRule is the entry for a style rule with runtime parameters.
//
// Static holds the classes for properties which do not depend on parameters.
// Dynamic holds the classes for parameter-dependent properties; their CSS
// reads the parameters' custom properties (`opacity: var(--x-opacity)`) and
// has been generated at compile time. Params is positional. Class is a class
// scoped to the rule as a whole and may be empty.
type DynamicRule struct {
	Class   string
	Static  PropClasses
	Dynamic PropClasses
	Params  []Param
}

func (r DynamicRule) Kind() Kind { return KindDynamicRule }

func (r DynamicRule) Equal(other Entry) bool {
	o, ok := other.(DynamicRule)
	return ok && o.Class == r.Class &&
		slices.Equal(o.Static, r.Static) &&
		slices.Equal(o.Dynamic, r.Dynamic) &&
		slices.Equal(o.Params, r.Params)
}

// ParamNames returns the names of the parameters, in positional order.
func (r DynamicRule) ParamNames() []string {
	names := make([]string, len(r.Params))
	for i, p := range r.Params {
		names[i] = p.Name
	}
	return names
}

// Atom is the entry for a generated atomic class, i.e. a single CSS
// declaration. Atoms are keyed by class name alone: AtomKey(class).
type Atom struct {
	Property string
	Value    string
}

func (a Atom) Kind() Kind { return KindAtom }

func (a Atom) Equal(other Entry) bool {
	o, ok := other.(Atom)
	return ok && o == a
}

// Decl returns the CSS declaration text of an atom, e.g. "color:red".
func (a Atom) Decl() string {
	return a.Property + ":" + a.Value
}

// AtomKey is the key of the atom for an atomic class. Atoms do not belong to
// a module; classes are shared between all modules.
func AtomKey(class string) Key {
	return Key{Name: class}
}

var _ Entry = Var{}
var _ Entry = Atom{}
var _ Entry = Const("")
var _ Entry = Rule{}
var _ Entry = DynamicRule{}
