package compile

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"

	"github.com/npillmayer/xstyle/manifest"
	"github.com/npillmayer/xstyle/registry"
)

// ErrUndeclaredParam is wrapped by errors for declarations referencing a
// parameter which the dynamic rule does not declare.
var ErrUndeclaredParam = errors.New("undeclared parameter")

// ErrClassCollision is wrapped by errors for two different entities hashing
// to the same generated name, be it an atomic class, a custom property or
// the scoped class of a dynamic rule.
var ErrClassCollision = errors.New("generated name collision")

// Atom is a generated atomic CSS rule: one class, one declaration.
type Atom struct {
	Class    string
	Property string
	Value    string
}

// Compiler turns definitions into manifest entries. A Compiler is safe for
// concurrent use, but modules referencing each other must be compiled in
// dependency order.
//
// Every definition is written to the manifest in a single update, together
// with the atoms it generated. A definition which fails leaves no trace.
type Compiler struct {
	props  props
	store  *manifest.Store
	vars   *registry.Vars
	consts registry.Consts

	mu    sync.Mutex
	names map[string]string // generated name → owner
}

type props struct {
	prefix     string
	hashLength int
	debugNames bool
}

// Option is a type to help initializing compilers at creation time.
type Option func(props) props

// Prefix sets the prefix of generated class and custom property names.
// Prefixes have to be valid CSS identifiers; invalid prefixes are ignored.
func Prefix(p string) Option {
	return func(pp props) props {
		if registry.ValidName(p, false) {
			pp.prefix = p
		}
		return pp
	}
}

// HashLength sets the number of base-36 digits of generated names.
// The lower bound is 4, the upper bound is 13.
func HashLength(n int) Option {
	return func(pp props) props {
		pp.hashLength = min(max(n, 4), 13)
		return pp
	}
}

// DebugNames makes generated names human readable, including property and
// entity names. Debug names are longer, but still unique.
func DebugNames(on bool) Option {
	return func(pp props) props {
		pp.debugNames = on
		return pp
	}
}

// New creates a compiler writing to store. Names already generated into the
// store are known to the compiler, see Reindex.
func New(store *manifest.Store, opts ...Option) *Compiler {
	pp := props{prefix: "x", hashLength: 6}
	for _, option := range opts {
		pp = option(pp)
	}
	c := &Compiler{
		props:  pp,
		store:  store,
		vars:   registry.NewVars(store),
		consts: registry.NewConsts(store),
	}
	c.Reindex()
	return c
}

// Reindex rebuilds the compiler's index of generated names from the
// store. It has to be called after entries have been put into the store
// by other means than the compiler, e.g. after loading a saved manifest.
func (c *Compiler) Reindex() {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.store.Read()
	c.names = make(map[string]string)
	index := func(name, owner string) {
		if prev, exists := c.names[name]; exists && prev != owner {
			tracer().Errorf("name %s generated for both %q and %q", name, prev, owner)
			return
		}
		c.names[name] = owner
	}
	for k, e := range m.All(manifest.KindVar) {
		index(strings.TrimPrefix(e.(manifest.Var).Ident, "--"), owner("var", k.String()))
	}
	for k, e := range m.All(manifest.KindAtom) {
		index(k.Name, owner("atom", e.(manifest.Atom).Decl()))
	}
	for k, e := range m.All(manifest.KindDynamicRule) {
		r := e.(manifest.DynamicRule)
		if r.Class != "" {
			index(r.Class, owner("dyn", k.String()))
		}
		for _, p := range r.Params {
			index(strings.TrimPrefix(p.Var, "--"), owner("param", k.String()+"."+p.Name))
		}
	}
	tracer().Debugf("indexed %d generated names at generation %d", len(c.names), m.Generation())
}

// --- Transactions ----------------------------------------------------------

// txn collects the names and atoms generated for a single definition.
// Nothing becomes visible before commit. Must be used with c.mu held.
type txn struct {
	c     *Compiler
	names map[string]string
	atoms []Atom
}

func (c *Compiler) begin() *txn {
	return &txn{c: c, names: make(map[string]string)}
}

func owner(kind, seed string) string {
	return kind + "\x00" + seed
}

// generate returns a name for (kind, seed), checking it against every name
// generated so far.
func (t *txn) generate(kind, seed, readable string) (string, error) {
	name := t.c.name(kind, seed, readable)
	own := owner(kind, seed)
	prev, exists := t.names[name]
	if !exists {
		prev, exists = t.c.names[name]
	}
	if exists && prev != own {
		return "", fmt.Errorf("%w: %s generated for both %q and %q", ErrClassCollision, name,
			strings.ReplaceAll(prev, "\x00", " "), strings.ReplaceAll(own, "\x00", " "))
	}
	t.names[name] = own
	return name, nil
}

// atom returns the atomic class for a declaration. Properties are expected in
// lower case.
func (t *txn) atom(property, value string) (string, error) {
	if property == "" {
		return "", fmt.Errorf("empty property name")
	}
	value = strings.TrimSpace(value)
	a := manifest.Atom{Property: property, Value: value}
	class, err := t.generate("atom", a.Decl(), property)
	if err != nil {
		return "", err
	}
	t.atoms = append(t.atoms, Atom{Class: class, Property: property, Value: value})
	return class, nil
}

// commit publishes the generated atoms together with the entries put by fn.
func (t *txn) commit(fn func(*manifest.Manifest) *manifest.Manifest) {
	t.c.store.Update(func(m *manifest.Manifest) *manifest.Manifest {
		for _, a := range t.atoms {
			m = m.Put(manifest.KindAtom, manifest.AtomKey(a.Class),
				manifest.Atom{Property: a.Property, Value: a.Value})
		}
		return fn(m)
	})
	for name, own := range t.names {
		t.c.names[name] = own
	}
	for _, a := range t.atoms {
		tracer().Debugf("atom .%s { %s: %s }", a.Class, a.Property, a.Value)
	}
}

// --- Constants and variables -----------------------------------------------

// Consts defines constants of a module.
func (c *Compiler) Consts(module string, pairs ...registry.Pair[string]) error {
	pairs, err := registry.Define(module, pairs)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		c.consts.Store(manifest.K(module, p.Name), manifest.Const(p.Value))
	}
	tracer().Debugf("module %s: %d constants", module, len(pairs))
	return nil
}

// Vars defines CSS variables of a module. The values are the variables'
// defaults, emitted on :root; an empty value defines a variable without
// default.
func (c *Compiler) Vars(module string, pairs ...registry.Pair[string]) error {
	pairs, err := registry.Define(module, pairs)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.begin()
	vars := make([]manifest.Var, len(pairs))
	for i, p := range pairs {
		key := manifest.K(module, p.Name)
		ident, err := t.generate("var", key.String(), module+"-"+p.Name)
		if err != nil {
			return fmt.Errorf("compile: variable %s: %w", key, err)
		}
		vars[i] = manifest.Var{Ident: "--" + ident, Default: strings.TrimSpace(p.Value)}
	}
	t.commit(func(m *manifest.Manifest) *manifest.Manifest {
		for i, p := range pairs {
			m = m.Put(manifest.KindVar, manifest.K(module, p.Name), vars[i])
		}
		return m
	})
	tracer().Debugf("module %s: %d variables", module, len(pairs))
	return nil
}

// --- Rules -----------------------------------------------------------------

// Rule defines a static style rule. Later declarations for a property
// override earlier ones.
func (c *Compiler) Rule(module, name string, decls ...Decl) error {
	if _, err := registry.Define(module, []registry.Pair[[]Decl]{registry.P(name, decls)}); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.begin()
	var pc manifest.PropClasses
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		if _, isParam := d.Value.(ParamRef); isParam {
			return fmt.Errorf("compile: rule %s.%s: %w %s in static rule", module, name, ErrUndeclaredParam, d.Value)
		}
		value, err := c.value(module, d.Value)
		if err != nil {
			return fmt.Errorf("compile: rule %s.%s: %w", module, name, err)
		}
		class, err := t.atom(prop, value)
		if err != nil {
			return fmt.Errorf("compile: rule %s.%s: %w", module, name, err)
		}
		pc = pc.With(prop, class)
	}
	t.commit(func(m *manifest.Manifest) *manifest.Manifest {
		return m.Put(manifest.KindRule, manifest.K(module, name), manifest.Rule{Props: pc})
	})
	return nil
}

// Rules defines several static style rules of a module. Rule names have to
// be unique.
func (c *Compiler) Rules(module string, rules ...registry.Pair[[]Decl]) error {
	rules, err := registry.Define(module, rules)
	if err != nil {
		return err
	}
	for _, r := range rules {
		err = multierr.Append(err, c.Rule(module, r.Name, r.Value...))
	}
	return err
}

// DynamicRule defines a style rule with positional parameters. Declarations
// with a Param value depend on the parameter; their atomic class reads the
// parameter's custom property, which is set at render time.
func (c *Compiler) DynamicRule(module, name string, params []string, decls ...Decl) error {
	if _, err := registry.Define(module, []registry.Pair[[]Decl]{registry.P(name, decls)}); err != nil {
		return err
	}
	pp := make([]registry.Pair[string], len(params))
	for i, p := range params {
		pp[i] = registry.P(p, p)
	}
	if _, err := registry.Define(module, pp); err != nil {
		return fmt.Errorf("compile: parameters of %s.%s: %w", module, name, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.begin()
	key := manifest.K(module, name)
	scoped, err := t.generate("dyn", key.String(), module+"-"+name)
	if err != nil {
		return fmt.Errorf("compile: dynamic rule %s: %w", key, err)
	}
	rule := manifest.DynamicRule{
		Class:  scoped,
		Params: make([]manifest.Param, len(params)),
	}
	vars := make(map[string]string, len(params))
	for i, p := range params {
		ident, err := t.generate("param", key.String()+"."+p, module+"-"+name+"-"+p)
		if err != nil {
			return fmt.Errorf("compile: dynamic rule %s: %w", key, err)
		}
		rule.Params[i] = manifest.Param{Name: p, Var: "--" + ident}
		vars[p] = "--" + ident
	}
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		if pref, isParam := d.Value.(ParamRef); isParam {
			ident, declared := vars[pref.Name]
			if !declared {
				return fmt.Errorf("compile: dynamic rule %s: %w %q", key, ErrUndeclaredParam, pref.Name)
			}
			class, err := t.atom(prop, registry.VarExpr(ident))
			if err != nil {
				return fmt.Errorf("compile: dynamic rule %s: %w", key, err)
			}
			rule.Dynamic = rule.Dynamic.With(prop, class)
			rule.Static = without(rule.Static, prop)
			continue
		}
		value, err := c.value(module, d.Value)
		if err != nil {
			return fmt.Errorf("compile: dynamic rule %s: %w", key, err)
		}
		class, err := t.atom(prop, value)
		if err != nil {
			return fmt.Errorf("compile: dynamic rule %s: %w", key, err)
		}
		rule.Static = rule.Static.With(prop, class)
		rule.Dynamic = without(rule.Dynamic, prop)
	}
	t.commit(func(m *manifest.Manifest) *manifest.Manifest {
		return m.Put(manifest.KindDynamicRule, key, rule)
	})
	return nil
}

// without removes a property from a mapping, keeping the order of the rest.
func without(pc manifest.PropClasses, property string) manifest.PropClasses {
	if _, found := pc.Get(property); !found {
		return pc
	}
	cow := make(manifest.PropClasses, 0, len(pc)-1)
	for _, p := range pc {
		if p.Property != property {
			cow = append(cow, p)
		}
	}
	return cow
}

// value resolves a declaration value to CSS text.
func (c *Compiler) value(module string, v Value) (string, error) {
	switch x := v.(type) {
	case Lit:
		if strings.TrimSpace(string(x)) == "" {
			return "", fmt.Errorf("empty value")
		}
		return string(x), nil
	case ConstRef:
		k, err := c.consts.LookupKey(x.Key.In(module)).Get()
		return string(k), err
	case VarRef:
		v, err := c.vars.LookupKey(x.Key.In(module)).Get()
		return registry.VarExpr(v.Ident), err
	case nil:
		return "", fmt.Errorf("missing value")
	}
	return "", fmt.Errorf("unsupported value %v", v)
}

// --- Names -----------------------------------------------------------------

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// name generates a name from the hash of (kind, seed). The hash is encoded
// with a fixed number of base-36 digits, starting at the low-order end.
// With debug names enabled, a slug of readable is included.
func (c *Compiler) name(kind, seed, readable string) string {
	h := xxhash.Sum64String(owner(kind, seed))
	digits := make([]byte, c.props.hashLength)
	for i := range digits {
		digits[i] = base36[h%36]
		h /= 36
	}
	if c.props.debugNames {
		return c.props.prefix + "-" + slug.Make(readable) + "-" + string(digits)
	}
	return c.props.prefix + string(digits)
}

// Atoms returns the atomic rules generated so far, in order of definition.
func (c *Compiler) Atoms() []Atom {
	m := c.store.Read()
	atoms := make([]Atom, 0, m.Len(manifest.KindAtom))
	for k, e := range m.All(manifest.KindAtom) {
		a := e.(manifest.Atom)
		atoms = append(atoms, Atom{Class: k.Name, Property: a.Property, Value: a.Value})
	}
	return atoms
}
