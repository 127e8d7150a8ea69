package transition

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"panelnav/internal/document"
	"panelnav/internal/lifecycle"
	"panelnav/internal/location"
	"panelnav/internal/panel"
	"panelnav/internal/progress"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recorder struct {
	name  string
	calls *[]string
	err   error
}

func (r recorder) Init() error { *r.calls = append(*r.calls, r.name+".init"); return nil }
func (r recorder) Show() error { *r.calls = append(*r.calls, r.name+".show"); return r.err }
func (r recorder) Hide() error { *r.calls = append(*r.calls, r.name+".hide"); return r.err }

type failingHistory struct {
	location.History
}

func (failingHistory) PushState(location.Location) error { return errors.New("disk full") }

type fixture struct {
	reg     *panel.Registry
	history *location.MemoryHistory
	ctrl    *Controller
	calls   []string
	logs    bytes.Buffer
}

func newFixture(t *testing.T, ns func(*lifecycle.Namespace, *[]string)) *fixture {
	t.Helper()
	f := &fixture{}
	doc := document.Build(
		[]document.PanelDef{
			{ID: "home", Title: "Home", Visible: true, PageObject: "Home"},
			{ID: "library", Title: "Library", PageObject: "Store.Library"},
			{ID: "settings", Title: "Settings", PageObject: "Settings"},
			{ID: "about", Title: "About", PreviousPage: "home"},
		},
		nil,
	)
	f.reg = panel.Discover(doc)
	f.history = location.NewMemoryHistory(location.MustParse("panelnav://app/?lang=en"))

	names := lifecycle.NewNamespace()
	if ns != nil {
		ns(names, &f.calls)
	}
	f.ctrl = New(Options{
		Registry:  f.reg,
		History:   f.history,
		Lifecycle: lifecycle.NewManager(names),
		Tracker:   progress.NewTracker(nil),
		Logger:    zerolog.New(&f.logs).Level(zerolog.DebugLevel),
	})
	return f
}

func registerAll(ns *lifecycle.Namespace, calls *[]string) {
	_ = ns.Register("Home", recorder{name: "home", calls: calls})
	_ = ns.Register("Settings", recorder{name: "settings", calls: calls})
}

func (f *fixture) classes(id string) []string {
	return f.reg.Get(id).Element.Classes()
}

func TestTransition_HomeToSettings(t *testing.T) {
	f := newFixture(t, registerAll)

	res, err := f.ctrl.Transition(context.Background(), "home", "settings")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, DirectionForward, res.Direction)

	assert.Equal(t, []string{"previous"}, f.classes("home"))
	assert.Equal(t, []string{"next", "visible"}, f.classes("settings"))
	assert.Equal(t, 1, f.reg.VisibleCount())

	loc := f.history.Location()
	assert.Equal(t, "settings", loc.Panel())
	assert.Contains(t, loc.String(), "lang=en")

	assert.Equal(t, "settings", f.ctrl.Current())
	assert.Equal(t, "home", f.ctrl.Previous())
	assert.Equal(t, []string{"home.hide", "settings.init", "settings.show"}, f.calls)
}

func TestTransition_Backward(t *testing.T) {
	f := newFixture(t, registerAll)
	ctx := context.Background()
	_, err := f.ctrl.Transition(ctx, "home", "settings")
	require.NoError(t, err)

	res, err := f.ctrl.Transition(ctx, "settings", "library")
	require.NoError(t, err)
	assert.Equal(t, DirectionBackward, res.Direction)
	assert.Equal(t, []string{"next"}, f.classes("settings"))
	assert.Equal(t, []string{"previous", "visible"}, f.classes("library"))
}

func TestTransition_SamePanelIsNoOp(t *testing.T) {
	f := newFixture(t, registerAll)
	before := f.classes("home")

	res, err := f.ctrl.Transition(context.Background(), "home", "home")
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, before, f.classes("home"))
	assert.Equal(t, 1, f.history.Len())
	assert.Equal(t, 0, f.ctrl.Depth())
	assert.Equal(t, "home", f.ctrl.Current())
	assert.Empty(t, f.calls)
}

func TestTransition_UnknownPanelMutatesNothing(t *testing.T) {
	for _, tc := range []struct{ from, to string }{
		{"ghost", "settings"},
		{"home", "ghost"},
	} {
		f := newFixture(t, registerAll)
		_, err := f.ctrl.Transition(context.Background(), tc.from, tc.to)
		require.ErrorIs(t, err, ErrUnknownPanel)

		assert.Equal(t, 1, f.history.Len())
		assert.Equal(t, "home", f.ctrl.Current())
		assert.Equal(t, 0, f.ctrl.Depth())
		assert.Equal(t, []string{"next", "visible"}, f.classes("home"))
		assert.Empty(t, f.calls)
	}
}

func TestTransition_HistoryFailureMutatesNothing(t *testing.T) {
	f := newFixture(t, registerAll)
	f.ctrl.history = failingHistory{History: f.history}

	_, err := f.ctrl.Transition(context.Background(), "home", "settings")
	require.Error(t, err)
	assert.Equal(t, "home", f.ctrl.Current())
	assert.True(t, f.reg.Get("home").Visible())
	assert.False(t, f.reg.Get("settings").Visible())
}

func TestTransition_UnresolvedControllerPathSkipsLifecycle(t *testing.T) {
	// Store.Library is declared but nothing is registered under it.
	f := newFixture(t, nil)
	assert.Contains(t, f.logs.String(), "panel controller not bound")

	_, err := f.ctrl.Transition(context.Background(), "home", "library")
	require.NoError(t, err)
	assert.True(t, f.reg.Get("library").Visible())
	assert.Empty(t, f.calls)
}

func TestTransition_LifecycleErrorsAreLoggedNotReturned(t *testing.T) {
	f := newFixture(t, func(ns *lifecycle.Namespace, calls *[]string) {
		_ = ns.Register("Home", recorder{name: "home", calls: calls, err: errors.New("stuck")})
	})

	_, err := f.ctrl.Transition(context.Background(), "home", "settings")
	require.NoError(t, err)
	assert.True(t, f.reg.Get("settings").Visible())
	assert.Contains(t, f.logs.String(), "panel controller hide failed")
	assert.Contains(t, f.logs.String(), "stuck")
}

func TestTransition_PreviousOverride(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.ctrl.Transition(ctx, "home", "library")
	require.NoError(t, err)
	_, err = f.ctrl.Transition(ctx, "library", "about")
	require.NoError(t, err)

	assert.Equal(t, "home", f.ctrl.Previous(), "about declares home as its back target")
}

func TestBack_WalksTheStack(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, _ = f.ctrl.Transition(ctx, "home", "library")
	_, _ = f.ctrl.Transition(ctx, "library", "settings")
	require.Equal(t, 2, f.ctrl.Depth())

	res, err := f.ctrl.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, "library", res.To)
	assert.True(t, f.reg.Get("library").Visible())

	res, err = f.ctrl.Back(ctx)
	require.NoError(t, err)
	assert.Equal(t, "home", res.To)
	assert.Equal(t, 0, f.ctrl.Depth())
	assert.Equal(t, "home", f.history.Location().Panel())

	_, err = f.ctrl.Back(ctx)
	assert.ErrorIs(t, err, ErrUnknownPanel, "no root panel to return to")
	assert.True(t, f.reg.Get("home").Visible())
}

func TestTransition_ResetsTargetProgress(t *testing.T) {
	f := newFixture(t, nil)
	settings := f.reg.Get("settings").Element
	settings.SetFloat(document.PropProgress, 0.7)
	settings.SetFloat(document.PropOverscroll, 0.2)

	_, err := f.ctrl.Transition(context.Background(), "home", "settings")
	require.NoError(t, err)
	assert.Equal(t, progress.State{}, progress.Read(settings))
	assert.NotEmpty(t, settings.Property(document.PropBackButtonWidth))
}

func TestTransition_ExactlyOneVisibleAfterEveryTransition(t *testing.T) {
	f := newFixture(t, nil)
	// Break the invariant on purpose; the next transition repairs it.
	f.reg.Get("about").Element.AddClass(document.ClassVisible)

	ctx := context.Background()
	steps := [][2]string{{"home", "library"}, {"library", "library"}, {"library", "about"}, {"about", "home"}}
	for _, s := range steps {
		_, err := f.ctrl.Transition(ctx, s[0], s[1])
		require.NoError(t, err)
		assert.Equal(t, 1, f.reg.VisibleCount(), "after %s -> %s", s[0], s[1])
	}
}

func TestTransition_EmitsSpan(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	f := newFixture(t, nil)
	f.ctrl.tracer = tp.Tracer("test")

	_, err := f.ctrl.Transition(context.Background(), "home", "about")
	require.NoError(t, err)

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "panelnav.transition", spans[0].Name)
	var direction string
	for _, kv := range spans[0].Attributes {
		if kv.Key == "panelnav.direction" {
			direction = kv.Value.AsString()
		}
	}
	assert.Equal(t, "forward", direction)
}

func TestPointer(t *testing.T) {
	var p Pointer
	assert.Equal(t, RootID, p.Previous())

	p.Push("", "home")
	assert.Equal(t, RootID, p.Previous())
	p.Push("home", "settings")
	assert.Equal(t, "home", p.Previous())
	assert.Equal(t, "settings", p.Current())

	p.Override("about")
	assert.Equal(t, "about", p.Pop())
	assert.Equal(t, "about", p.Current())
	assert.Equal(t, RootID, p.Pop())
	assert.Equal(t, RootID, p.Pop())
	assert.Zero(t, p.Len())

	p.Override("home")
	assert.Equal(t, "home", p.Previous())
}
