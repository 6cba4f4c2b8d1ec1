package compile

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/xstyle/manifest"
	"github.com/npillmayer/xstyle/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSharesAtoms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store)
	require.NoError(t, c.Rule("A", "base", L("color", "red"), L("padding", "4px")))
	require.NoError(t, c.Rule("B", "warn", L("color", "red")))
	a := registry.NewRules(store).Ref(manifest.K("A", "base"))
	b := registry.NewRules(store).Ref(manifest.K("B", "warn"))
	require.Len(t, a, 2)
	require.Len(t, b, 1)
	ca, _ := a.Get("color")
	cb, _ := b.Get("color")
	assert.Equal(t, ca, cb, "equal declarations should share one atomic class")
	assert.True(t, strings.HasPrefix(ca, "x"))
	assert.Len(t, c.Atoms(), 2)
}

func TestRuleLaterDeclarationWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store)
	require.NoError(t, c.Rule("A", "r", L("color", "red"), L("margin", "0"), L("color", "blue")))
	pc := registry.NewRules(store).Ref(manifest.K("A", "r"))
	require.Len(t, pc, 2)
	assert.Equal(t, "color", pc[0].Property)
	cls, _ := pc.Get("color")
	assert.Equal(t, c.name("atom", "color:blue", "color"), cls)
}

func TestConstAndVarReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store)
	require.NoError(t, c.Consts("Theme", registry.P("gap", "4px")))
	require.NoError(t, c.Vars("Theme", registry.P("accent", "#0af")))
	require.NoError(t, c.Rule("Button", "base",
		D("padding", Const("Theme.gap")),
		D("color", Var("Theme.accent"))))
	ident := registry.NewVars(store).Ref(manifest.K("Theme", "accent"))
	assert.True(t, strings.HasPrefix(ident, "--x"))
	atoms := c.Atoms()
	require.Len(t, atoms, 2)
	assert.Equal(t, "4px", atoms[0].Value)
	assert.Equal(t, "var("+ident+")", atoms[1].Value)
}

func TestBareReferenceResolvesInModule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	c := New(manifest.NewStore())
	require.NoError(t, c.Consts("Card", registry.P("radius", "2px")))
	require.NoError(t, c.Rule("Card", "box", D("border-radius", Const("radius"))))
	assert.Equal(t, "2px", c.Atoms()[0].Value)
}

func TestMissingReference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store)
	err := c.Rule("Button", "base", D("padding", Const("Theme.gap")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrNotFound))
	assert.Contains(t, err.Error(), "Theme")
	assert.Equal(t, 0, store.Read().Len(manifest.KindRule))
}

func TestRulesAggregateErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	c := New(manifest.NewStore())
	err := c.Rules("M",
		registry.P("a", []Decl{L("color", "red")}),
		registry.P("a", []Decl{L("color", "blue")}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, registry.ErrDuplicate))
	assert.Contains(t, err.Error(), `"a"`)
	//
	err = c.Rules("M",
		registry.P("b", []Decl{D("color", Var("nope"))}),
		registry.P("c", []Decl{L("color", "")}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "M.b")
	assert.Contains(t, err.Error(), "M.c")
}

func TestDynamicRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store)
	require.NoError(t, c.DynamicRule("Fx", "fade", []string{"opacity"},
		L("transition", "opacity 1s"),
		D("opacity", Param("opacity"))))
	r := registry.NewDynamicRules(store).Ref(manifest.K("Fx", "fade"))
	assert.NotEmpty(t, r.Class)
	require.Len(t, r.Params, 1)
	assert.Equal(t, "opacity", r.Params[0].Name)
	require.Len(t, r.Static, 1)
	require.Len(t, r.Dynamic, 1)
	cls, _ := r.Dynamic.Get("opacity")
	var found bool
	for _, a := range c.Atoms() {
		if a.Class == cls {
			found = true
			assert.Equal(t, "var("+r.Params[0].Var+")", a.Value)
		}
	}
	assert.True(t, found)
}

func TestDynamicRuleUndeclaredParam(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	c := New(manifest.NewStore())
	err := c.DynamicRule("Fx", "fade", []string{"opacity"}, D("color", Param("hue")))
	assert.True(t, errors.Is(err, ErrUndeclaredParam))
	err = c.Rule("Fx", "plain", D("color", Param("hue")))
	assert.True(t, errors.Is(err, ErrUndeclaredParam))
	err = c.DynamicRule("Fx", "twice", []string{"a", "a"}, D("color", Param("a")))
	assert.True(t, errors.Is(err, registry.ErrDuplicate))
}

func TestDebugNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	c := New(manifest.NewStore(), Prefix("ui"), DebugNames(true), HashLength(4))
	require.NoError(t, c.Rule("A", "r", L("background-color", "red")))
	cls := c.Atoms()[0].Class
	assert.True(t, strings.HasPrefix(cls, "ui-background-color-"), cls)
	assert.LessOrEqual(t, len(cls), len("ui-background-color-")+4)
}

func TestInvalidPrefixIgnored(t *testing.T) {
	c := New(manifest.NewStore(), Prefix("9 bad"))
	assert.Equal(t, "x", c.props.prefix)
}

func TestStylesheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	c := New(manifest.NewStore())
	require.NoError(t, c.Vars("Theme", registry.P("accent", "#0af"), registry.P("bare", "")))
	require.NoError(t, c.Rule("A", "r", L("color", "red")))
	var sb strings.Builder
	require.NoError(t, c.CSS(&sb))
	out := sb.String()
	assert.True(t, strings.HasPrefix(out, ":root {\n"), out)
	assert.Contains(t, out, ": #0af;")
	assert.Equal(t, 1, strings.Count(out, "  --"), "variables without default stay off :root")
	assert.Contains(t, out, "{ color: red }")
}

func TestParseDecls(t *testing.T) {
	for _, text := range []string{"Color: red; padding: 4px 2px", "Color: red; padding: 4px 2px;"} {
		decls, err := ParseDecls(text)
		require.NoError(t, err, text)
		assert.Equal(t, []Decl{L("color", "red"), L("padding", "4px 2px")}, decls)
	}
}

// colliding searches for two names of the form prefix+i which hash to the
// same generated name.
func colliding(t *testing.T, c *Compiler, kind, module, prefix string) (string, string) {
	t.Helper()
	seen := make(map[string]string)
	for i := 0; i < 1000000; i++ {
		n := fmt.Sprintf("%s%d", prefix, i)
		generated := c.name(kind, module+"."+n, n)
		if prev, found := seen[generated]; found {
			return prev, n
		}
		seen[generated] = n
	}
	t.Fatalf("no collision found for %s names", kind)
	return "", ""
}

func TestVarNameCollision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store, HashLength(4))
	a, b := colliding(t, c, "var", "App", "v")
	require.NoError(t, c.Vars("App", registry.P(a, "1px")))
	err := c.Vars("App", registry.P(b, "2px"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrClassCollision))
	assert.Equal(t, 1, store.Read().Len(manifest.KindVar))
	// redefinition of the same variable is fine
	assert.NoError(t, c.Vars("App", registry.P(a, "3px")))
}

func TestDynamicRuleClassCollision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store, HashLength(4))
	a, b := colliding(t, c, "dyn", "App", "r")
	require.NoError(t, c.DynamicRule("App", a, nil))
	err := c.DynamicRule("App", b, nil)
	assert.True(t, errors.Is(err, ErrClassCollision))
	assert.Equal(t, 1, store.Read().Len(manifest.KindDynamicRule))
}

func TestGeneratedNamesHaveFixedWidth(t *testing.T) {
	c := New(manifest.NewStore(), HashLength(5))
	for i := 0; i < 100; i++ {
		n := c.name("atom", fmt.Sprintf("width:%dpx", i), "width")
		assert.Len(t, n, len("x")+5, n)
	}
}

func TestFailedRuleLeavesNoAtoms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store)
	err := c.Rule("A", "broken", L("color", "red"), L("padding", " "))
	require.Error(t, err)
	assert.Empty(t, c.Atoms())
	var sb strings.Builder
	require.NoError(t, c.CSS(&sb))
	assert.Empty(t, sb.String())
	// the class of color:red is still free for other declarations
	require.NoError(t, c.Rule("A", "ok", L("color", "red")))
	assert.Len(t, c.Atoms(), 1)
}

func TestReindexAfterLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.compile")
	defer teardown()
	//
	store := manifest.NewStore()
	c := New(store, HashLength(4))
	a, b := colliding(t, c, "var", "App", "v")
	require.NoError(t, c.Vars("App", registry.P(a, "1px")))
	// a compiler on a populated store knows the names already generated
	other := New(store, HashLength(4))
	err := other.Vars("App", registry.P(b, "2px"))
	assert.True(t, errors.Is(err, ErrClassCollision))
}
