package ui

import (
	"context"
	"fmt"

	"panelnav/internal/document"
	"panelnav/internal/input"
	"panelnav/internal/lifecycle"
	"panelnav/internal/localize"
	"panelnav/internal/location"
	"panelnav/internal/pages"
	"panelnav/internal/panel"
	"panelnav/internal/progress"
	"panelnav/internal/transition"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"
)

// chromeHeight is the rows taken by the navigation bar, its spacer and the help bar.
const chromeHeight = 3

// Options wires an AppModel.
type Options struct {
	Registry   *panel.Registry
	Controller *transition.Controller
	Router     *input.Router
	Tracker    *progress.Tracker
	// Lifecycle supplies status lines from page controllers. Optional.
	Lifecycle *lifecycle.Manager
	// Start is the location the program was opened at.
	Start  location.Location
	Logger zerolog.Logger

	RowUnits     float64
	SmoothFrames int
	WheelRows    int
}

// AppModel is the root model. It renders the navigation bar and the visible
// panel, and turns keys, clicks and wheel events into transitions and scrolling.
type AppModel struct {
	Registry   *panel.Registry
	Controller *transition.Controller
	Router     *input.Router
	Tracker    *progress.Tracker
	KeyHandler *KeyHandler
	Focus      *FocusManager
	Views      map[string]*PanelView
	Help       help.Model

	ctx   context.Context
	log   zerolog.Logger
	start location.Location
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model. ctx is passed to every
// transition the model starts.
func NewAppModel(ctx context.Context, opts Options) *AppModel {
	tracker := opts.Tracker
	if tracker == nil {
		tracker = progress.NewTracker(nil)
	}
	a := &AppModel{
		Registry:   opts.Registry,
		Controller: opts.Controller,
		Router:     opts.Router,
		Tracker:    tracker,
		Views:      make(map[string]*PanelView, opts.Registry.Len()),
		Help:       help.New(),
		ctx:        ctx,
		log:        opts.Logger,
		start:      opts.Start,
	}
	a.Help.Styles.ShortKey = Styles.Title
	a.Help.Styles.ShortDesc = Styles.Hint

	ids := make([]string, 0, len(opts.Registry.Buttons()))
	for _, b := range opts.Registry.Buttons() {
		ids = append(ids, b.ID)
	}
	a.Focus = NewFocusManager(ids)

	for _, p := range opts.Registry.Panels() {
		v := NewPanelView(p, tracker, opts.Router.Keys())
		if opts.RowUnits > 0 {
			v.RowUnits = opts.RowUnits
		}
		if opts.WheelRows > 0 {
			v.WheelRows = opts.WheelRows
		}
		if opts.SmoothFrames > 0 {
			v.SetSmoothFrames(opts.SmoothFrames)
		}
		if opts.Lifecycle != nil {
			if c, ok := opts.Lifecycle.Controller(p.ID); ok {
				if s, ok := c.(pages.Statuser); ok {
					v.Status = s
				}
			}
		}
		a.Views[p.ID] = v
	}
	a.KeyHandler = NewKeyHandler(a.bindings())
	return a
}

// AsTeaModel returns a tea.Model that delegates to this AppModel.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// bindings binds quit keys, SPC b and SPC 1..9 (one per panel, hidden on that panel).
func (a *AppModel) bindings() *KeybindRegistry {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC b", func() tea.Msg { return BackMsg{} }, "Back")

	panels := a.Registry.Panels()
	for i, p := range panels {
		if i >= 9 {
			break
		}
		id := p.ID
		others := make([]string, 0, len(panels)-1)
		for _, o := range panels {
			if o.ID != id {
				others = append(others, o.ID)
			}
		}
		desc := p.Element.Label
		if desc == "" {
			desc = id
		}
		reg.BindOnPanels(fmt.Sprintf("SPC %d", i+1), func() tea.Msg { return GotoPanelMsg{ID: id} }, desc, others)
	}
	return reg
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return func() tea.Msg { return LoadedMsg{} }
}

func settle() tea.Msg { return LayoutSettledMsg{} }

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if target, ok := a.Registry.InitialSelection(a.start); ok {
			a.navigate(func() error {
				_, err := a.Controller.Transition(a.ctx, a.visibleID(), target)
				return err
			})
		}
		return a, settle
	case tea.WindowSizeMsg:
		for _, v := range a.Views {
			v.SetSize(msg.Width, max(1, msg.Height-chromeHeight))
		}
		a.Help.Width = msg.Width
		return a, settle
	case LocalizedMsg:
		n := localize.Apply(a.Registry.Document(), msg.Labels)
		a.log.Debug().Int("changed", n).Msg("labels applied")
		for _, v := range a.Views {
			v.Refresh()
		}
		return a, settle
	case LayoutSettledMsg:
		for _, p := range a.Registry.Panels() {
			a.Tracker.MeasureBackButton(p.Element)
		}
		return a, nil
	case GotoPanelMsg:
		a.Registry.SelectButtons(msg.ID)
		a.navigate(func() error {
			_, err := a.Controller.Transition(a.ctx, a.visibleID(), msg.ID)
			return err
		})
		return a, nil
	case BackMsg:
		a.back()
		return a, nil
	case input.ReleaseMsg:
		a.Router.HandleRelease(msg)
		return a, nil
	case smoothFrameMsg:
		if v := a.Views[msg.PanelID]; v != nil {
			_, cmd := v.Update(msg)
			return a, cmd
		}
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case tea.MouseMsg:
		return a, a.handleMouse(msg)
	}
	return a, nil
}

func (a *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if consumed, cmd := a.KeyHandler.Handle(msg, a.visibleID()); consumed {
		return cmd
	}
	keys := a.Router.Keys()
	switch {
	case key.Matches(msg, keys.FocusNext):
		a.Router.Release()
		a.Focus.Next()
		return nil
	case key.Matches(msg, keys.FocusPrev):
		a.Router.Release()
		a.Focus.Prev()
		return nil
	}

	before := a.visibleID()
	cmd, handled := a.Router.HandleKey(a.ctx, msg, a.focusedButton())
	if handled {
		a.afterNavigation(before)
		return cmd
	}
	if v := a.visibleView(); v != nil {
		_, vcmd := v.Update(msg)
		return tea.Batch(cmd, vcmd)
	}
	return cmd
}

func (a *AppModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		if id := a.visibleID(); id != "" && a.Router.Hit(BackZoneID(id), msg) {
			a.back()
			return nil
		}
	}
	before := a.visibleID()
	if btn := a.Router.HandleMouse(a.ctx, msg); btn != nil {
		a.Focus.SetFocus(btn.ID)
		a.afterNavigation(before)
		return nil
	}
	if v := a.visibleView(); v != nil {
		_, cmd := v.Update(msg)
		return cmd
	}
	return nil
}

func (a *AppModel) back() {
	a.Registry.ClearSelection()
	a.navigate(func() error {
		_, err := a.Controller.Back(a.ctx)
		return err
	})
}

// navigate runs fn and resets the scroll state of a newly visible panel.
func (a *AppModel) navigate(fn func() error) {
	before := a.visibleID()
	if err := fn(); err != nil {
		a.log.Debug().Err(err).Msg("navigation ignored")
	}
	a.afterNavigation(before)
}

func (a *AppModel) afterNavigation(before string) {
	now := a.visibleID()
	if now == before {
		return
	}
	if v := a.Views[now]; v != nil {
		v.ResetScroll()
	}
}

func (a *AppModel) visibleID() string {
	if p := a.Registry.Visible(); p != nil {
		return p.ID
	}
	return ""
}

func (a *AppModel) visibleView() *PanelView {
	return a.Views[a.visibleID()]
}

func (a *AppModel) focusedButton() *document.Element {
	if a.Focus.Current == "" {
		return nil
	}
	return a.Registry.Document().ByID(a.Focus.Current)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	body := ""
	if v := a.visibleView(); v != nil {
		body = v.View()
	}
	footer := a.Help.View(a.Router.Keys())
	if a.KeyHandler.LeaderWaiting {
		footer = RenderKeybindHelp(a.KeyHandler, a.visibleID())
	}
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, a.renderNav(), "", body, footer))
}

func (a *AppModel) renderNav() string {
	parts := make([]string, 0, len(a.Registry.Buttons()))
	for _, btn := range a.Registry.Buttons() {
		style := Styles.Button
		if btn.HasClass(document.ClassSelected) {
			style = Styles.ButtonSelected
		}
		if btn.ID == a.Focus.Current {
			style = style.Inherit(Styles.ButtonFocused)
		}
		parts = append(parts, zone.Mark(input.ButtonZoneID(btn), style.Render(btn.Label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
