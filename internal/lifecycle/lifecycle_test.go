package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls   []string
	initErr error
	showErr error
	hideErr error
}

func (r *recorder) Init() error { r.calls = append(r.calls, "init"); return r.initErr }
func (r *recorder) Show() error { r.calls = append(r.calls, "show"); return r.showErr }
func (r *recorder) Hide() error { r.calls = append(r.calls, "hide"); return r.hideErr }

func TestNamespace_Resolve(t *testing.T) {
	ns := NewNamespace()
	store := &recorder{}
	lib := &recorder{}
	require.NoError(t, ns.Register("Store", store))
	require.NoError(t, ns.Register("Store.Library", lib))
	require.NoError(t, ns.Register("Orphan.Child", &recorder{}))

	c, ok := ns.Resolve("Store")
	assert.True(t, ok)
	assert.Same(t, store, c)

	c, ok = ns.Resolve("Store.Library")
	assert.True(t, ok)
	assert.Same(t, lib, c)

	_, ok = ns.Resolve("Store.Missing")
	assert.False(t, ok)
	_, ok = ns.Resolve("Orphan.Child")
	assert.False(t, ok, "nested path needs its root registered")
	_, ok = ns.Resolve("a.b.c")
	assert.False(t, ok)
}

func TestNamespace_RegisterRejectsBadInput(t *testing.T) {
	ns := NewNamespace()
	assert.Error(t, ns.Register("", &recorder{}))
	assert.Error(t, ns.Register("a..b", &recorder{}))
	assert.Error(t, ns.Register("a.b.c", &recorder{}))
	assert.Error(t, ns.Register("a", nil))
}

func TestManager_InitOnceThenShow(t *testing.T) {
	ns := NewNamespace()
	r := &recorder{}
	require.NoError(t, ns.Register("Settings", r))
	m := NewManager(ns)
	require.NoError(t, m.Bind("settings", "Settings"))

	require.NoError(t, m.Show("settings"))
	require.NoError(t, m.Hide("settings"))
	require.NoError(t, m.Show("settings"))

	assert.Equal(t, []string{"init", "show", "hide", "show"}, r.calls)
	assert.True(t, m.Loaded("settings"))
}

func TestManager_UnresolvedIsNoOp(t *testing.T) {
	m := NewManager(NewNamespace())
	err := m.Bind("library", "Store.Library")
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.False(t, m.Bound("library"))

	assert.NoError(t, m.Show("library"))
	assert.NoError(t, m.Hide("library"))
	assert.NoError(t, m.Bind("home", ""))
	assert.False(t, m.Bound("home"))
}

func TestManager_InitFailureSkipsShow(t *testing.T) {
	ns := NewNamespace()
	r := &recorder{initErr: errors.New("boom")}
	require.NoError(t, ns.Register("Flaky", r))
	m := NewManager(ns)
	require.NoError(t, m.Bind("flaky", "Flaky"))

	err := m.Show("flaky")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init flaky")
	assert.False(t, m.Loaded("flaky"))
	assert.Equal(t, []string{"init"}, r.calls)

	r.initErr = nil
	require.NoError(t, m.Show("flaky"))
	assert.Equal(t, []string{"init", "init", "show"}, r.calls)
}

func TestManager_ErrorsAndPanicsAreReturned(t *testing.T) {
	ns := NewNamespace()
	sentinel := errors.New("hide failed")
	require.NoError(t, ns.Register("A", &recorder{hideErr: sentinel}))
	require.NoError(t, ns.Register("B", Funcs{ShowFn: func() error { panic("kaboom") }}))
	m := NewManager(ns)
	require.NoError(t, m.Bind("a", "A"))
	require.NoError(t, m.Bind("b", "B"))

	assert.ErrorIs(t, m.Hide("a"), sentinel)

	err := m.Show("b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
	assert.True(t, m.Loaded("b"), "init succeeded before show panicked")
}
