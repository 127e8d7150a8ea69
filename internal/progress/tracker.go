package progress

import (
	"strconv"

	"panelnav/internal/document"

	"github.com/charmbracelet/lipgloss"
)

// Source identifies what produced a scroll offset.
type Source int

const (
	// SourceNative is direct content scrolling (keyboard, viewport).
	SourceNative Source = iota
	// SourceSmooth is the wheel-driven smooth scroller.
	SourceSmooth
)

// Threshold returns the offset at which progress reaches 1.
func (s Source) Threshold() float64 {
	if s == SourceSmooth {
		return 40
	}
	return 80
}

func (s Source) String() string {
	if s == SourceSmooth {
		return "smooth"
	}
	return "native"
}

// OverscrollRange is the pull distance at which overscroll progress reaches 1.
const OverscrollRange = 300

// State is a snapshot of a panel's progress properties.
type State struct {
	Progress   float64
	Eased      float64
	Overscroll float64
}

// Read returns the progress properties currently written on panel.
func Read(panel *document.Element) State {
	return State{
		Progress:   panel.Float(document.PropProgress),
		Eased:      panel.Float(document.PropProgressExpo),
		Overscroll: panel.Float(document.PropOverscroll),
	}
}

// MeasureFunc returns the rendered width of a back button.
type MeasureFunc func(back *document.Element) int

// LabelWidth measures the back button's label as rendered, plus horizontal padding.
func LabelWidth(back *document.Element) int {
	return lipgloss.Width(back.Label) + 2
}

// Tracker recomputes progress properties from scroll input.
// Every method is a pure function of its arguments and the panel's elements.
type Tracker struct {
	measure MeasureFunc
}

// NewTracker creates a tracker. A nil measure uses LabelWidth.
func NewTracker(measure MeasureFunc) *Tracker {
	if measure == nil {
		measure = LabelWidth
	}
	return &Tracker{measure: measure}
}

// Scroll handles a scroll event. Non-negative offsets set progress and clear
// overscroll; negative offsets (content pulled past its top) set overscroll.
func (t *Tracker) Scroll(panel *document.Element, offset float64, src Source) State {
	if offset < 0 {
		return t.Overscroll(panel, offset)
	}
	raw := Clamp01(offset / src.Threshold())
	panel.SetFloat(document.PropProgress, raw)
	panel.SetFloat(document.PropProgressExpo, Expo.At(raw))
	panel.SetFloat(document.PropOverscroll, 0)
	t.MeasureBackButton(panel)
	return Read(panel)
}

// Overscroll handles a pull past the content top. Non-negative offsets are ignored.
func (t *Tracker) Overscroll(panel *document.Element, offset float64) State {
	if offset < 0 {
		panel.SetFloat(document.PropOverscroll, Clamp01(-offset/OverscrollRange))
	}
	t.MeasureBackButton(panel)
	return Read(panel)
}

// Pointer handles pointer down/move/up, which only remeasure.
func (t *Tracker) Pointer(panel *document.Element) {
	t.MeasureBackButton(panel)
}

// Reset zeroes every progress property on panel.
func (t *Tracker) Reset(panel *document.Element) {
	panel.SetFloat(document.PropProgress, 0)
	panel.SetFloat(document.PropProgressExpo, 0)
	panel.SetFloat(document.PropOverscroll, 0)
}

// MeasureBackButton writes the back button width onto panel and returns it.
// Panels without a header back button are left untouched.
func (t *Tracker) MeasureBackButton(panel *document.Element) int {
	back := panel.Query(document.RoleBackButton)
	if back == nil {
		return 0
	}
	w := t.measure(back)
	panel.SetProperty(document.PropBackButtonWidth, strconv.Itoa(w))
	return w
}
