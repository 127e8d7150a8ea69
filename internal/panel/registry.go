// Package panel discovers the navigable panels and activation buttons of a document.
package panel

import (
	"panelnav/internal/document"
	"panelnav/internal/location"
)

// Panel is a navigable section with a stable order index.
type Panel struct {
	ID    string
	Index int
	// PreviousOverride, when set, replaces the back target after entering this panel.
	PreviousOverride string
	// ObjectPath is the dotted controller path ("" when none is declared).
	ObjectPath string
	Element    *document.Element
}

// Visible reports whether the panel currently carries the visible class.
func (p *Panel) Visible() bool {
	return p.Element.HasClass(document.ClassVisible)
}

// Registry indexes the panels and buttons of a document.
type Registry struct {
	doc     *document.Document
	panels  []*Panel
	byID    map[string]*Panel
	buttons []*document.Element
}

// Discover collects panels in document order, assigns 0-based indices and
// marks each panel next.
func Discover(doc *document.Document) *Registry {
	r := &Registry{
		doc:     doc,
		byID:    make(map[string]*Panel),
		buttons: doc.Buttons(),
	}
	for i, el := range doc.Panels() {
		p := &Panel{
			ID:               el.ID,
			Index:            i,
			PreviousOverride: el.Attr(document.AttrPreviousPage),
			ObjectPath:       el.Attr(document.AttrPageObject),
			Element:          el,
		}
		el.AddClass(document.ClassNext)
		r.panels = append(r.panels, p)
		r.byID[p.ID] = p
	}
	return r
}

// Document returns the underlying document.
func (r *Registry) Document() *document.Document {
	return r.doc
}

// Get returns the panel with id, or nil.
func (r *Registry) Get(id string) *Panel {
	return r.byID[id]
}

// Panels returns all panels in order.
func (r *Registry) Panels() []*Panel {
	return r.panels
}

// Len returns the number of panels.
func (r *Registry) Len() int {
	return len(r.panels)
}

// Visible returns the first visible panel, or nil when none is.
func (r *Registry) Visible() *Panel {
	for _, p := range r.panels {
		if p.Visible() {
			return p
		}
	}
	return nil
}

// VisibleCount returns how many panels carry the visible class.
func (r *Registry) VisibleCount() int {
	n := 0
	for _, p := range r.panels {
		if p.Visible() {
			n++
		}
	}
	return n
}

// Buttons returns activation buttons in document order.
func (r *Registry) Buttons() []*document.Element {
	return r.buttons
}

// SelectButtons clears selected from every button and sets it on those targeting page.
func (r *Registry) SelectButtons(page string) {
	for _, b := range r.buttons {
		b.ToggleClass(document.ClassSelected, b.Attr(document.AttrPage) == page)
	}
}

// ClearSelection removes selected from every button.
func (r *Registry) ClearSelection() {
	for _, b := range r.buttons {
		b.RemoveClass(document.ClassSelected)
	}
}

// InitialSelection inspects the start location. When its panel parameter names
// a known panel other than the visible one, buttons are synced to it and the
// panel ID is returned to be transitioned to once the document has loaded.
// With no visible panel, nothing happens.
func (r *Registry) InitialSelection(loc location.Location) (target string, ok bool) {
	visible := r.Visible()
	if visible == nil {
		return "", false
	}
	want := loc.Panel()
	if want == "" || want == visible.ID || r.Get(want) == nil {
		return "", false
	}
	r.SelectButtons(want)
	return want, true
}
