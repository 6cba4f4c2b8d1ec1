package manifest

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	c := []struct {
		ref    string
		within string
		key    Key
	}{
		{"foo", "ModuleX", K("ModuleX", "foo")},
		{"Theme.gap", "ModuleX", K("Theme", "gap")},
		{"App.Button.primary", "ModuleX", K("App.Button", "primary")},
		{".foo", "ModuleX", K("ModuleX", ".foo")},
	}
	for i, x := range c {
		if k := ParseKey(x.ref, x.within); k != x.key {
			t.Errorf("%d: expected ParseKey(%q) to be %v, is %v", i, x.ref, x.key, k)
		}
	}
	if s := K("App.Button", "primary").String(); s != "App.Button.primary" {
		t.Errorf("expected key to print as App.Button.primary, is %q", s)
	}
}

func TestManifestEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.manifest")
	defer teardown()
	//
	var m *Manifest
	if _, found := m.Get(KindRule, K("A", "b")); found {
		t.Error("expected nil manifest to be empty")
	}
	m = m.Put(KindConst, K("Theme", "gap"), Const("4px"))
	e, found := m.Get(KindConst, K("Theme", "gap"))
	if !found || e != Const("4px") {
		t.Errorf("expected to find const Theme.gap = 4px, found %v", e)
	}
	if _, found := m.Get(KindVar, K("Theme", "gap")); found {
		t.Error("expected kinds to partition the namespace, var Theme.gap found")
	}
}

func TestManifestPutIdentical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.manifest")
	defer teardown()
	//
	rule := Rule{Props: PropClasses{{"color", "c1"}, {"padding", "p1"}}}
	m1 := (&Manifest{}).Put(KindRule, K("Mod", "a"), rule)
	same := Rule{Props: PropClasses{{"color", "c1"}, {"padding", "p1"}}}
	m2 := m1.Put(KindRule, K("Mod", "a"), same)
	assert.Same(t, m1, m2, "re-storing an equal entry must not create a new manifest")
	assert.Equal(t, m1.Generation(), m2.Generation())
}

func TestManifestReplaceKeepsOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.manifest")
	defer teardown()
	//
	m := &Manifest{}
	m = m.Put(KindConst, K("M", "a"), Const("1"))
	m = m.Put(KindConst, K("M", "b"), Const("2"))
	old := m
	m = m.Put(KindConst, K("M", "a"), Const("3"))
	assert.Equal(t, []Key{K("M", "a"), K("M", "b")}, m.Keys(KindConst))
	e, _ := m.Get(KindConst, K("M", "a"))
	assert.Equal(t, Const("3"), e)
	e, _ = old.Get(KindConst, K("M", "a"))
	assert.Equal(t, Const("1"), e, "older incarnation must stay unchanged")
	assert.Equal(t, uint64(3), m.Generation())
}

func TestManifestSnapshotsDoNotShareOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.manifest")
	defer teardown()
	//
	base := (&Manifest{}).Put(KindVar, K("M", "a"), Var{Ident: "--a"})
	left := base.Put(KindVar, K("M", "b"), Var{Ident: "--b"})
	right := base.Put(KindVar, K("M", "c"), Var{Ident: "--c"})
	assert.Equal(t, []Key{K("M", "a"), K("M", "b")}, left.Keys(KindVar))
	assert.Equal(t, []Key{K("M", "a"), K("M", "c")}, right.Keys(KindVar))
	assert.Equal(t, 1, base.Len(KindVar))
}

func TestManifestKindMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		(&Manifest{}).Put(KindVar, K("M", "a"), Const("1"))
	})
}

func TestStoreUpdateSkipsIdentical(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.manifest")
	defer teardown()
	//
	s := NewStore()
	assert.True(t, s.Put(KindVar, K("Theme", "accent"), Var{Ident: "--x1"}))
	snapshot := s.Read()
	assert.False(t, s.Put(KindVar, K("Theme", "accent"), Var{Ident: "--x1"}))
	assert.Same(t, snapshot, s.Read())
	assert.True(t, s.Put(KindVar, K("Theme", "accent"), Var{Ident: "--x2"}))
	e, _ := snapshot.Get(KindVar, K("Theme", "accent"))
	assert.Equal(t, Var{Ident: "--x1"}, e, "snapshot must not see later updates")
	e, _ = s.Get(KindVar, K("Theme", "accent"))
	assert.Equal(t, Var{Ident: "--x2"}, e)
}

func TestStoreConcurrentPuts(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Put(KindConst, K(fmt.Sprintf("M%d", w), fmt.Sprintf("c%d", i)), Const("x"))
				_ = s.Read().Len(KindConst)
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, 8*50, s.Read().Len(KindConst), "no update may be lost")
	assert.Equal(t, uint64(8*50), s.Read().Generation())
}

func TestManifestSaveLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.manifest")
	defer teardown()
	//
	m := &Manifest{}
	m = m.Put(KindVar, K("Theme", "accent"), Var{Ident: "--x9a", Default: "#0af"})
	m = m.Put(KindVar, K("Theme", "bare"), Var{Ident: "--x9b"})
	m = m.Put(KindConst, K("Theme", "half"), Const("50"))
	m = m.Put(KindAtom, AtomKey("c1"), Atom{Property: "color", Value: "red"})
	m = m.Put(KindAtom, AtomKey("p1"), Atom{Property: "padding", Value: "4px 2px"})
	m = m.Put(KindRule, K("Button", "base"), Rule{Props: PropClasses{{"color", "c1"}, {"padding", "p1"}}})
	m = m.Put(KindDynamicRule, K("Button", "fade"), DynamicRule{
		Class:   "dyn-base",
		Dynamic: PropClasses{{"opacity", "xo"}},
		Params:  []Param{{"opacity", "--x-opacity"}},
	})
	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	t.Logf("saved manifest:\n%s", buf.String())
	loaded, err := Load(&buf)
	require.NoError(t, err)
	for _, kind := range Kinds {
		assert.Equal(t, m.Keys(kind), loaded.Keys(kind))
		for k, e := range m.All(kind) {
			le, found := loaded.Get(kind, k)
			if assert.True(t, found, "%s %s missing after load", kind, k) {
				assert.True(t, e.Equal(le), "%s %s differs after load", kind, k)
			}
		}
	}
	// merging the loaded manifest into an equal one is a no-op
	s := NewStore()
	s.Merge(m)
	assert.False(t, s.Merge(loaded))
}

func TestManifestLoadRejectsGarbage(t *testing.T) {
	_, err := Load(strings.NewReader("version: 7\n"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Load(strings.NewReader("colour: red\n"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestManifestString(t *testing.T) {
	m := (&Manifest{}).Put(KindRule, K("Button", "base"), Rule{Props: PropClasses{{"color", "c1"}}})
	s := m.String()
	t.Logf("manifest = %s", s)
	assert.Contains(t, s, "Button")
	assert.Contains(t, s, "color: c1")
}

func TestStorePublishesIncreasingGenerations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "xstyle.manifest")
	defer teardown()
	//
	s := NewStore()
	s.Put(KindRule, K("M", "A"), Rule{Props: PropClasses{{"color", "c1"}}})
	before := s.Read()
	require.Equal(t, uint64(1), before.Generation())
	// a manifest built from scratch has the same generation as the current one
	fresh := (&Manifest{}).Put(KindRule, K("M", "A"), Rule{Props: PropClasses{{"color", "c9"}}})
	require.Equal(t, before.Generation(), fresh.Generation())
	assert.True(t, s.Update(func(*Manifest) *Manifest { return fresh }))
	after := s.Read()
	assert.Greater(t, after.Generation(), before.Generation())
	e, _ := after.Get(KindRule, K("M", "A"))
	assert.Equal(t, Rule{Props: PropClasses{{"color", "c9"}}}, e)
	assert.Equal(t, uint64(1), fresh.Generation(), "published manifest is a stamped copy")
}

func TestManifestStringAtoms(t *testing.T) {
	m := (&Manifest{}).Put(KindAtom, AtomKey("xa1"), Atom{Property: "color", Value: "red"})
	s := m.String()
	assert.Contains(t, s, "atom")
	assert.Contains(t, s, "color:red")
}
