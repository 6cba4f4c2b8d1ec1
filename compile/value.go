package compile

import (
	"fmt"

	"github.com/npillmayer/xstyle/css"
	"github.com/npillmayer/xstyle/manifest"
)

// Value is the value of a declaration in a rule definition: a literal, a
// reference to a constant or variable, or a parameter of a dynamic rule.
type Value interface {
	fmt.Stringer
	isValue()
}

// Lit is a literal CSS value.
type Lit string

// ConstRef references a constant. The constant's value is substituted at
// compile time.
type ConstRef struct{ Key manifest.Key }

// VarRef references a CSS variable. It compiles to "var(--…)".
type VarRef struct{ Key manifest.Key }

// ParamRef references a parameter of a dynamic rule.
type ParamRef struct{ Name string }

func (Lit) isValue()      {}
func (ConstRef) isValue() {}
func (VarRef) isValue()   {}
func (ParamRef) isValue() {}

func (l Lit) String() string      { return string(l) }
func (c ConstRef) String() string { return "const(" + c.Key.String() + ")" }
func (v VarRef) String() string   { return "var(" + v.Key.String() + ")" }
func (p ParamRef) String() string { return "param(" + p.Name + ")" }

// Const creates a reference to a constant, either by bare name (in the
// module of the rule) or by qualified name "Module.name".
func Const(ref string) ConstRef {
	return ConstRef{Key: manifest.ParseKey(ref, "")}
}

// Var creates a reference to a CSS variable, by bare or qualified name.
func Var(ref string) VarRef {
	return VarRef{Key: manifest.ParseKey(ref, "")}
}

// Param creates a reference to a parameter of a dynamic rule.
func Param(name string) ParamRef {
	return ParamRef{Name: name}
}

// Decl is a declaration of a rule definition.
type Decl struct {
	Property string
	Value    Value
}

// D is a shortcut for creating a declaration.
func D(property string, value Value) Decl {
	return Decl{Property: property, Value: value}
}

// L is a shortcut for creating a declaration with a literal value.
func L(property, value string) Decl {
	return Decl{Property: property, Value: Lit(value)}
}

// ParseDecls parses declaration text, e.g. "color: red; padding: 4px",
// into declarations with literal values.
func ParseDecls(text string) ([]Decl, error) {
	parsed, err := css.ParseDeclarations(text)
	if err != nil {
		return nil, err
	}
	decls := make([]Decl, len(parsed))
	for i, kv := range parsed {
		decls[i] = L(kv.Key, kv.Value.String())
	}
	return decls, nil
}

// MustParseDecls is like ParseDecls, but panics for malformed input.
func MustParseDecls(text string) []Decl {
	decls, err := ParseDecls(text)
	if err != nil {
		panic(err)
	}
	return decls
}
