package resolve

import (
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/npillmayer/xstyle/registry"
)

// Resolver resolves refs against the rules of a manifest store.
// A Resolver is safe for concurrent use.
type Resolver struct {
	rules   *registry.Rules
	dynamic *registry.DynamicRules
	cache   *gocache.Cache // nil ⇒ no caching
}

// Option is a type to help initializing resolvers at creation time.
type Option func(Resolver) Resolver

// CacheTTL is an option to cache resolved class strings. Cache entries are
// bound to the manifest incarnation they were computed from, so a
// recompilation never lets a stale entry through. A TTL of 0 disables
// caching.
//
// Use it like this:
//
//	r := resolve.New(rules, dynamic, resolve.CacheTTL(10*time.Minute))
func CacheTTL(ttl time.Duration) Option {
	return func(r Resolver) Resolver {
		if ttl <= 0 {
			r.cache = nil
			return r
		}
		r.cache = gocache.New(ttl, 2*ttl)
		return r
	}
}

// New creates a resolver for the rules and dynamic rules of a store.
func New(rules *registry.Rules, dynamic *registry.DynamicRules, opts ...Option) *Resolver {
	if rules == nil || dynamic == nil {
		panic("resolve: registries must not be nil")
	}
	r := Resolver{rules: rules, dynamic: dynamic}
	for _, option := range opts {
		r = option(r)
	}
	return &r
}

// Merge folds the property→class mappings of static refs, left to right.
// Bare ref names are resolved against module. Merge panics for dynamic refs
// and for refs which do not resolve.
func (r *Resolver) Merge(module string, refs ...Ref) *PropMap {
	return r.merge(r.rules.Snapshot(), module, refs)
}

func (r *Resolver) merge(rules *registry.Rules, module string, refs []Ref) *PropMap {
	pm := &PropMap{}
	for _, ref := range refs {
		assertThat(!ref.IsDynamic(), "dynamic ref %s in list of static refs", ref)
		pm.Fold(rules.Ref(ref.in(module)))
	}
	return pm
}

// ClassString resolves static refs to a space-separated class string,
// applying per-property override: for every CSS property, the class of the
// last ref defining it wins. Classes appear in order of their property's
// first appearance.
func (r *Resolver) ClassString(module string, refs ...Ref) string {
	return r.classString(r.rules.Snapshot(), module, refs)
}

func (r *Resolver) classString(rules *registry.Rules, module string, refs []Ref) string {
	var cacheKey string
	if r.cache != nil {
		cacheKey = fmt.Sprintf("%d|%s|%s", rules.Manifest().Generation(), module, refsString(module, refs))
		if s, found := r.cache.Get(cacheKey); found {
			tracer().Debugf("class string cache hit for %s", cacheKey)
			return s.(string)
		}
	}
	s := r.merge(rules, module, refs).String()
	if r.cache != nil {
		r.cache.Set(cacheKey, s, gocache.DefaultExpiration)
	}
	return s
}

// Dynamic resolves a dynamic ref. See ResolveDynamic.
func (r *Resolver) Dynamic(module string, ref Ref) Dynamic {
	return r.resolveDynamic(r.dynamic, module, ref)
}

func (r *Resolver) resolveDynamic(dynamic *registry.DynamicRules, module string, ref Ref) Dynamic {
	assertThat(ref.IsDynamic(), "static ref %s resolved as dynamic rule", ref)
	key := ref.in(module)
	entry := dynamic.MustLookup(key)
	return ResolveDynamic(entry, key, ref.Values, ref.HasComputed())
}

// Resolution is the result of resolving a mixed list of refs.
type Resolution struct {
	Class    string    // class string of the static refs
	Dynamics []Dynamic // results for dynamic refs, in ref order
}

// Classes returns the class string of the static refs followed by the class
// strings of the dynamic refs. Classes are not de-duplicated.
func (res Resolution) Classes() string {
	parts := make([]string, 0, 1+len(res.Dynamics))
	if res.Class != "" {
		parts = append(parts, res.Class)
	}
	for _, d := range res.Dynamics {
		if d.Class != "" {
			parts = append(parts, d.Class)
		}
	}
	return strings.Join(parts, " ")
}

// Resolve resolves a mixed list of static and dynamic refs. Static refs are
// merged with ClassString semantics, dynamic refs are resolved one by one.
// All lookups are performed on the same manifest incarnation.
func (r *Resolver) Resolve(module string, refs ...Ref) Resolution {
	m := r.rules.Manifest()
	rules, dynamic := r.rules.At(m), r.dynamic.At(m)
	static := make([]Ref, 0, len(refs))
	var res Resolution
	for _, ref := range refs {
		if ref.IsDynamic() {
			res.Dynamics = append(res.Dynamics, r.resolveDynamic(dynamic, module, ref))
		} else {
			static = append(static, ref)
		}
	}
	res.Class = r.classString(rules, module, static)
	return res
}
