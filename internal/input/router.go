// Package input turns key presses and clicks into panel transitions.
package input

import (
	"context"
	"time"

	"panelnav/internal/document"
	"panelnav/internal/panel"
	"panelnav/internal/transition"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rs/zerolog"
)

// DefaultReleaseWindow is how long Escape must stay quiet before it counts as released.
// Terminal auto-repeat sends presses roughly every 30-50ms once it kicks in.
const DefaultReleaseWindow = 600 * time.Millisecond

// Navigator is the part of the transition controller the router drives.
type Navigator interface {
	Transition(ctx context.Context, from, to string) (transition.Result, error)
	Back(ctx context.Context) (transition.Result, error)
	Current() string
	Previous() string
}

// HitFunc reports whether a mouse event landed on the zone with id.
type HitFunc func(id string, msg tea.MouseMsg) bool

// ZoneHit hit-tests against bubblezone's global manager.
func ZoneHit(id string, msg tea.MouseMsg) bool {
	return zone.Get(id).InBounds(msg)
}

// ButtonZoneID is the zone ID a button is rendered under.
func ButtonZoneID(btn *document.Element) string {
	return "btn:" + btn.ID
}

// ReleaseMsg is delivered when an Escape press has gone quiet for the release window.
type ReleaseMsg struct {
	Seq int
}

// Router binds activation buttons and Escape handling to a Navigator.
type Router struct {
	reg  *panel.Registry
	nav  Navigator
	log  zerolog.Logger
	keys KeyMap

	// ReleaseWindow is the quiet period after which Escape counts as released.
	ReleaseWindow time.Duration
	// Hit tests mouse events against button zones.
	Hit HitFunc

	keyDown bool
	escSeq  int
}

// NewRouter creates a router with the default key map.
func NewRouter(reg *panel.Registry, nav Navigator, log zerolog.Logger) *Router {
	return &Router{
		reg:           reg,
		nav:           nav,
		log:           log,
		keys:          DefaultKeyMap(),
		ReleaseWindow: DefaultReleaseWindow,
		Hit:           ZoneHit,
	}
}

// Keys returns the router's key map.
func (r *Router) Keys() KeyMap {
	return r.keys
}

// KeyDown reports whether the Escape guard is set.
func (r *Router) KeyDown() bool {
	return r.keyDown
}

// Activate selects the buttons targeting btn's page and transitions the
// visible panel to it.
func (r *Router) Activate(ctx context.Context, btn *document.Element) (transition.Result, error) {
	page := btn.Attr(document.AttrPage)
	r.reg.SelectButtons(page)

	from := ""
	if v := r.reg.Visible(); v != nil {
		from = v.ID
	}
	res, err := r.nav.Transition(ctx, from, page)
	if err != nil {
		r.log.Debug().Err(err).Str("button", btn.ID).Msg("activation ignored")
	}
	return res, err
}

// Escape navigates back once per physical press. It returns false while the
// guard is set, i.e. for auto-repeats before Release.
func (r *Router) Escape(ctx context.Context) (handled bool, err error) {
	if r.keyDown {
		return false, nil
	}
	r.reg.ClearSelection()
	if r.nav.Previous() != "" && r.nav.Current() != "" {
		if _, err = r.nav.Back(ctx); err != nil {
			r.log.Debug().Err(err).Msg("back ignored")
		}
	}
	r.keyDown = true
	return true, err
}

// Release clears the Escape guard.
func (r *Router) Release() {
	r.keyDown = false
}

// HandleKey routes a key press. focused is the button holding keyboard focus
// (nil when none). The returned command schedules the Escape release check.
func (r *Router) HandleKey(ctx context.Context, msg tea.KeyMsg, focused *document.Element) (tea.Cmd, bool) {
	if key.Matches(msg, r.keys.Back) {
		r.escSeq++
		seq := r.escSeq
		handled, _ := r.Escape(ctx)
		return tea.Tick(r.ReleaseWindow, func(time.Time) tea.Msg {
			return ReleaseMsg{Seq: seq}
		}), handled
	}

	// Any other key means Escape is no longer held.
	r.Release()

	if key.Matches(msg, r.keys.Activate) && focused != nil {
		_, _ = r.Activate(ctx, focused)
		return nil, true
	}
	return nil, false
}

// HandleRelease clears the guard if no Escape arrived since the one that scheduled msg.
func (r *Router) HandleRelease(msg ReleaseMsg) {
	if msg.Seq == r.escSeq {
		r.Release()
	}
}

// HandleMouse activates the button under a left click. Returns the button hit, if any.
func (r *Router) HandleMouse(ctx context.Context, msg tea.MouseMsg) *document.Element {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return nil
	}
	for _, btn := range r.reg.Buttons() {
		if r.Hit(ButtonZoneID(btn), msg) {
			_, _ = r.Activate(ctx, btn)
			return btn
		}
	}
	return nil
}
