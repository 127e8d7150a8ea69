package ui

import (
	"os"
	"strings"
	"testing"

	"panelnav/internal/config"
	"panelnav/internal/document"
	"panelnav/internal/input"
	"panelnav/internal/panel"
	"panelnav/internal/progress"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

// newLibraryView returns a view over the 40-row default library panel, 10 rows of content tall.
func newLibraryView(t *testing.T) *PanelView {
	t.Helper()
	reg := panel.Discover(document.Build(config.DefaultPanels(), config.DefaultButtons()))
	p := reg.Get("library")
	require.NotNil(t, p)
	v := NewPanelView(p, progress.NewTracker(nil), input.DefaultKeyMap())
	v.SetSize(80, 12)
	return v
}

// runFrames delivers smooth-scroll frames until the animation stops.
func runFrames(t *testing.T, v *PanelView, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 100, "smooth scroll never finished")
		_, cmd = v.Update(smoothFrameMsg{PanelID: v.Panel.ID})
	}
}

func wheel(b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Button: b, Action: tea.MouseActionPress}
}

func TestPanelView_NativeScrollDrivesProgress(t *testing.T) {
	v := newLibraryView(t)
	el := v.Panel.Element

	v.Update(keyMsg("j"))
	v.Update(keyMsg("j"))
	st := progress.Read(el)
	assert.InDelta(t, 32.0/80, st.Progress, 1e-9)
	assert.InDelta(t, progress.Expo.At(32.0/80), st.Eased, 1e-9)
	assert.Equal(t, "8", el.Property(document.PropBackButtonWidth), "scroll remeasures the back button")

	for i := 0; i < 5; i++ {
		v.Update(keyMsg("j"))
	}
	assert.Equal(t, 1.0, progress.Read(el).Progress)

	for i := 0; i < 7; i++ {
		v.Update(keyMsg("k"))
	}
	assert.Zero(t, v.Offset())
	assert.Zero(t, progress.Read(el).Progress)
}

func TestPanelView_WheelScrollsSmoothly(t *testing.T) {
	v := newLibraryView(t)
	el := v.Panel.Element

	_, cmd := v.Update(wheel(tea.MouseButtonWheelDown))
	require.NotNil(t, cmd, "wheel starts an animation")
	assert.Zero(t, progress.Read(el).Progress, "nothing moves before the first frame")

	runFrames(t, v, cmd)
	assert.Equal(t, 48.0, v.Offset())
	assert.Equal(t, 3, v.viewport.YOffset)
	assert.Equal(t, 1.0, progress.Read(el).Progress, "48 units passes the smooth threshold")
}

func TestPanelView_WheelRetargetsMidFlight(t *testing.T) {
	v := newLibraryView(t)

	_, cmd := v.Update(wheel(tea.MouseButtonWheelDown))
	require.NotNil(t, cmd)
	_, cmd = v.Update(smoothFrameMsg{PanelID: "library"})
	require.NotNil(t, cmd)

	_, again := v.Update(wheel(tea.MouseButtonWheelDown))
	assert.Nil(t, again, "the running animation keeps ticking")

	runFrames(t, v, cmd)
	assert.Equal(t, 96.0, v.Offset())
}

func TestPanelView_WheelClampsAtBottom(t *testing.T) {
	v := newLibraryView(t)
	bottom := v.maxOffset()
	for i := 0; i < 20; i++ {
		_, cmd := v.Update(wheel(tea.MouseButtonWheelDown))
		runFrames(t, v, cmd)
	}
	assert.Equal(t, bottom, v.Offset())
}

func TestPanelView_OverscrollAtTop(t *testing.T) {
	v := newLibraryView(t)
	el := v.Panel.Element

	_, cmd := v.Update(wheel(tea.MouseButtonWheelUp))
	assert.Nil(t, cmd)
	assert.InDelta(t, 48.0/progress.OverscrollRange, progress.Read(el).Overscroll, 1e-9)

	v.Update(wheel(tea.MouseButtonWheelUp))
	assert.InDelta(t, 96.0/progress.OverscrollRange, progress.Read(el).Overscroll, 1e-9)
	assert.Zero(t, progress.Read(el).Progress)

	view := v.View()
	assert.Contains(t, view, "\n\n", "pulled content leaves blank rows")

	v.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Zero(t, progress.Read(el).Overscroll, "release snaps back")
}

func TestPanelView_FramesForOtherPanelsIgnored(t *testing.T) {
	v := newLibraryView(t)
	_, cmd := v.Update(smoothFrameMsg{PanelID: "settings"})
	assert.Nil(t, cmd)
	assert.Zero(t, v.Offset())
}

func TestPanelView_ResetScroll(t *testing.T) {
	v := newLibraryView(t)
	_, cmd := v.Update(wheel(tea.MouseButtonWheelDown))
	v.Update(smoothFrameMsg{PanelID: "library"})
	require.NotNil(t, cmd)

	v.ResetScroll()
	assert.Zero(t, v.Offset())
	assert.Zero(t, v.viewport.YOffset)
	_, cmd = v.Update(smoothFrameMsg{PanelID: "library"})
	assert.Nil(t, cmd, "reset stops the animation")
}

func TestPanelView_RendersHeader(t *testing.T) {
	v := newLibraryView(t)
	v.Tracker.MeasureBackButton(v.Panel.Element)

	out := zone.Scan(v.View())
	first := strings.SplitN(out, "\n", 2)[0]
	assert.Contains(t, first, "‹ Back")
	assert.Contains(t, first, "Library")
	assert.Contains(t, out, "Shelf 1")
}
