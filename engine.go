package xstyle

import (
	"io"

	"github.com/npillmayer/xstyle/attrs"
	"github.com/npillmayer/xstyle/compile"
	"github.com/npillmayer/xstyle/css"
	"github.com/npillmayer/xstyle/manifest"
	"github.com/npillmayer/xstyle/registry"
	"github.com/npillmayer/xstyle/resolve"
)

// Engine owns a manifest store together with the registries, the compiler
// and the resolver operating on it. An Engine is safe for concurrent use.
type Engine struct {
	config   Config
	store    *manifest.Store
	vars     *registry.Vars
	consts   registry.Consts
	rules    *registry.Rules
	dynamic  *registry.DynamicRules
	compiler *compile.Compiler
	resolver *resolve.Resolver
}

// New creates an engine with an empty manifest.
func New(opts ...Option) *Engine {
	config := DefaultConfig
	for _, option := range opts {
		config = option(config)
	}
	e := &Engine{config: config, store: manifest.NewStore()}
	e.vars = registry.NewVars(e.store)
	e.consts = registry.NewConsts(e.store)
	e.rules = registry.NewRules(e.store)
	e.dynamic = registry.NewDynamicRules(e.store)
	copts := []compile.Option{compile.DebugNames(config.DebugClassNames)}
	if config.ClassPrefix != "" {
		copts = append(copts, compile.Prefix(config.ClassPrefix))
	}
	if config.HashLength > 0 {
		copts = append(copts, compile.HashLength(config.HashLength))
	}
	e.compiler = compile.New(e.store, copts...)
	e.resolver = resolve.New(e.rules, e.dynamic, resolve.CacheTTL(config.CacheTTL))
	tracer().Debugf("new engine with prefix %q", config.ClassPrefix)
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.config }

// Store returns the manifest store.
func (e *Engine) Store() *manifest.Store { return e.store }

// Vars returns the registry of CSS variables.
func (e *Engine) Vars() *registry.Vars { return e.vars }

// Consts returns the registry of constants.
func (e *Engine) Consts() registry.Consts { return e.consts }

// Rules returns the registry of static style rules.
func (e *Engine) Rules() *registry.Rules { return e.rules }

// DynamicRules returns the registry of dynamic style rules.
func (e *Engine) DynamicRules() *registry.DynamicRules { return e.dynamic }

// Compiler returns the compiler populating the engine's manifest.
func (e *Engine) Compiler() *compile.Compiler { return e.compiler }

// Resolver returns the resolver reading the engine's manifest.
func (e *Engine) Resolver() *resolve.Resolver { return e.resolver }

// ClassString resolves static refs to a class string. See
// resolve.Resolver.ClassString.
func (e *Engine) ClassString(module string, refs ...resolve.Ref) string {
	return e.resolver.ClassString(module, refs...)
}

// Attrs resolves a mixed list of refs and assembles the element attributes:
// the class attribute from the class strings of static and dynamic refs,
// the style attribute from custom property bindings of dynamic refs and the
// override. Refs which do not resolve cause a panic.
func (e *Engine) Attrs(module string, override attrs.Style, refs ...resolve.Ref) attrs.Attrs {
	res := e.resolver.Resolve(module, refs...)
	classes := make([]string, 0, 1+len(res.Dynamics))
	classes = append(classes, res.Class)
	var vars css.Declarations
	for _, d := range res.Dynamics {
		classes = append(classes, d.Class)
		vars = append(vars, d.Vars...)
	}
	return attrs.Assemble(classes, vars, override)
}

// Save writes the engine's manifest as YAML, including the generated atoms
// and variable defaults.
func (e *Engine) Save(w io.Writer) error {
	return e.store.Read().Save(w)
}

// Load reads a manifest saved earlier and merges it into the engine's
// manifest. Entries read replace entries already present. Loaded atoms and
// variable defaults become part of the compiler's stylesheet.
func (e *Engine) Load(r io.Reader) error {
	m, err := manifest.Load(r)
	if err != nil {
		return err
	}
	e.store.Merge(m)
	e.compiler.Reindex()
	return nil
}
