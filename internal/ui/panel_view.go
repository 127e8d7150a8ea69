package ui

import (
	"math"
	"strconv"
	"strings"
	"time"

	"panelnav/internal/document"
	"panelnav/internal/input"
	"panelnav/internal/pages"
	"panelnav/internal/panel"
	"panelnav/internal/progress"

	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

const (
	defaultPanelWidth  = 80
	defaultPanelHeight = 20
	headerHeight       = 2 // header row + progress bar

	frameInterval = 16 * time.Millisecond
)

// BackZoneID is the zone ID a panel's back button is rendered under.
func BackZoneID(panelID string) string {
	return "back:" + panelID
}

// PanelView renders one panel: header with back button and progress bar,
// then the scrollable content. Scrolling feeds the progress tracker.
type PanelView struct {
	Panel   *panel.Panel
	Tracker *progress.Tracker
	// Status, when set, contributes a line under the header.
	Status pages.Statuser

	// RowUnits converts viewport rows into scroll offset units.
	RowUnits  float64
	WheelRows int

	viewport viewport.Model
	bar      bprogress.Model
	smooth   *progress.Smooth
	keys     input.KeyMap

	// position is the scroll offset in units, fractional while animating.
	position float64
	// pull accumulates wheel-up distance past the top (always <= 0).
	pull float64

	height int
}

var _ View = (*PanelView)(nil)

// NewPanelView creates a view over p.
func NewPanelView(p *panel.Panel, tracker *progress.Tracker, keys input.KeyMap) *PanelView {
	vp := viewport.New(defaultPanelWidth, defaultPanelHeight-headerHeight)
	vp.MouseWheelEnabled = false
	v := &PanelView{
		Panel:     p,
		Tracker:   tracker,
		RowUnits:  16,
		WheelRows: 3,
		viewport:  vp,
		bar: bprogress.New(
			bprogress.WithDefaultGradient(),
			bprogress.WithoutPercentage(),
			bprogress.WithWidth(defaultPanelWidth),
		),
		smooth: progress.NewSmooth(progress.DefaultSmoothFrames),
		keys:   keys,
		height: defaultPanelHeight,
	}
	v.Refresh()
	return v
}

// SetSmoothFrames sets how many frames a wheel scroll animates over.
func (v *PanelView) SetSmoothFrames(n int) {
	v.smooth = progress.NewSmooth(n)
}

// Refresh reloads the content section into the viewport.
func (v *PanelView) Refresh() {
	body := ""
	if c := v.Panel.Element.Query(document.RoleContent); c != nil {
		body = c.Body
	}
	v.viewport.SetContent(strings.TrimRight(body, "\n"))
}

// SetSize resizes the view. height includes the header rows.
func (v *PanelView) SetSize(width, height int) {
	v.height = height
	v.viewport.Width = width
	v.bar.Width = width
	v.layout()
}

// layout fits the viewport under the header and status line, which grows
// once the page controller has loaded.
func (v *PanelView) layout() {
	v.viewport.Height = max(1, v.height-headerHeight-v.statusHeight())
}

// Offset returns the scroll offset in units.
func (v *PanelView) Offset() float64 {
	return v.position
}

// ResetScroll returns the view to the top and cancels any animation or pull.
func (v *PanelView) ResetScroll() {
	v.smooth.Stop()
	v.viewport.GotoTop()
	v.position = 0
	v.pull = 0
}

// Init implements View.
func (v *PanelView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *PanelView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.handleKey(msg)
		return v, nil
	case tea.MouseMsg:
		return v, v.handleMouse(msg)
	case smoothFrameMsg:
		if msg.PanelID != v.Panel.ID {
			return v, nil
		}
		return v, v.frame()
	}
	return v, nil
}

func (v *PanelView) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, v.keys.ScrollUp):
		v.viewport.LineUp(1)
	case key.Matches(msg, v.keys.ScrollDn):
		v.viewport.LineDown(1)
	case key.Matches(msg, v.keys.PageUp):
		v.viewport.ViewUp()
	case key.Matches(msg, v.keys.PageDown):
		v.viewport.ViewDown()
	default:
		return
	}
	v.smooth.Stop()
	v.pull = 0
	v.position = float64(v.viewport.YOffset) * v.RowUnits
	v.Tracker.Scroll(v.Panel.Element, v.position, progress.SourceNative)
}

func (v *PanelView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return v.wheel(-1)
	case tea.MouseButtonWheelDown:
		return v.wheel(1)
	case tea.MouseButtonLeft, tea.MouseButtonNone:
		v.Tracker.Pointer(v.Panel.Element)
		if msg.Action == tea.MouseActionRelease && v.pull < 0 {
			v.pull = 0
			v.Tracker.Scroll(v.Panel.Element, v.position, progress.SourceSmooth)
		}
	}
	return nil
}

// wheel scrolls by one notch in dir (-1 up, 1 down). Wheeling up at the top
// pulls the content down instead.
func (v *PanelView) wheel(dir int) tea.Cmd {
	units := float64(v.WheelRows) * v.RowUnits
	if dir < 0 && v.position <= 0 && !v.smooth.Active() {
		v.pull -= units
		v.Tracker.Overscroll(v.Panel.Element, v.pull)
		return nil
	}
	v.pull = 0

	ticking := v.smooth.Active()
	v.smooth.Retarget(v.position, float64(dir)*units)
	if t := clampOffset(v.smooth.Target(), v.maxOffset()); t != v.smooth.Target() {
		v.smooth.Start(v.position, t)
	}
	if !v.smooth.Active() {
		v.Tracker.Scroll(v.Panel.Element, v.position, progress.SourceSmooth)
		return nil
	}
	if ticking {
		return nil
	}
	return v.tick()
}

func (v *PanelView) frame() tea.Cmd {
	if !v.smooth.Active() {
		return nil
	}
	offset, done := v.smooth.Step()
	v.position = offset
	v.viewport.SetYOffset(int(math.Round(offset / v.RowUnits)))
	v.Tracker.Scroll(v.Panel.Element, offset, progress.SourceSmooth)
	if done {
		return nil
	}
	return v.tick()
}

func (v *PanelView) tick() tea.Cmd {
	id := v.Panel.ID
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return smoothFrameMsg{PanelID: id}
	})
}

func (v *PanelView) maxOffset() float64 {
	rows := max(0, v.viewport.TotalLineCount()-v.viewport.Height)
	return float64(rows) * v.RowUnits
}

func clampOffset(o, hi float64) float64 {
	return math.Max(0, math.Min(o, hi))
}

func (v *PanelView) statusHeight() int {
	if v.Status == nil {
		return 0
	}
	return lipgloss.Height(v.Status.Status()) + 1
}

// View implements View.
func (v *PanelView) View() string {
	v.layout()
	st := progress.Read(v.Panel.Element)

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.bar.ViewAs(st.Eased))

	if v.Status != nil {
		b.WriteString("\n")
		b.WriteString(Styles.Status.Render(v.Status.Status()))
		b.WriteString("\n")
	}

	pull := int(math.Round(st.Overscroll * MaxPullRows))
	lines := strings.Split(v.viewport.View(), "\n")
	if pull > 0 {
		keep := max(0, len(lines)-pull)
		lines = append(make([]string, pull), lines[:keep]...)
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (v *PanelView) renderHeader() string {
	el := v.Panel.Element
	title := el.Label
	if h := el.Query(document.RoleHeader); h != nil && h.Label != "" {
		title = h.Label
	}
	back := el.Query(document.RoleBackButton)
	if back == nil {
		return Styles.Title.Render(title)
	}
	style := Styles.BackButton
	if w, err := strconv.Atoi(el.Property(document.PropBackButtonWidth)); err == nil && w > 0 {
		style = style.Width(w)
	}
	btn := zone.Mark(BackZoneID(v.Panel.ID), style.Render(back.Label))
	return lipgloss.JoinHorizontal(lipgloss.Top, btn, " ", Styles.Title.Render(title))
}
