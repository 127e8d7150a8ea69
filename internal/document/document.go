// Package document holds the element tree the navigation core operates on.
//
// A Document is built once at startup and never grows or shrinks. The core
// mutates class lists and style properties; the ui package renders from them.
package document

// Document is an ordered set of top-level elements (panels and buttons).
type Document struct {
	elements []*Element
	byID     map[string]*Element
}

// New creates a document from elements in document order.
// Descendants are indexed by ID as well; later duplicates lose.
func New(elements ...*Element) *Document {
	d := &Document{byID: make(map[string]*Element)}
	for _, e := range elements {
		d.elements = append(d.elements, e)
		d.index(e)
	}
	return d
}

func (d *Document) index(e *Element) {
	if e.ID != "" {
		if _, exists := d.byID[e.ID]; !exists {
			d.byID[e.ID] = e
		}
	}
	for _, c := range e.Children {
		d.index(c)
	}
}

// ByID returns the element with the given ID, or nil.
func (d *Document) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.byID[id]
}

// Elements returns the top-level elements in document order.
func (d *Document) Elements() []*Element {
	return d.elements
}

// Panels returns panel elements in document order.
func (d *Document) Panels() []*Element {
	return d.byRole(RolePanel)
}

// Buttons returns activation buttons (elements with a page attribute) in document order.
func (d *Document) Buttons() []*Element {
	var out []*Element
	for _, e := range d.byRole(RoleButton) {
		if e.HasAttr(AttrPage) {
			out = append(out, e)
		}
	}
	return out
}

// WithClass returns top-level elements carrying class.
func (d *Document) WithClass(class string) []*Element {
	var out []*Element
	for _, e := range d.elements {
		if e.HasClass(class) {
			out = append(out, e)
		}
	}
	return out
}

func (d *Document) byRole(role Role) []*Element {
	var out []*Element
	for _, e := range d.elements {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out
}
