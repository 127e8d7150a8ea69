package document

import (
	"sort"
	"strconv"
)

// Role identifies what part an element plays in the document.
type Role int

const (
	RolePanel Role = iota
	RoleButton
	RoleHeader
	RoleBackButton
	RoleContent
)

func (r Role) String() string {
	switch r {
	case RolePanel:
		return "panel"
	case RoleButton:
		return "button"
	case RoleHeader:
		return "header"
	case RoleBackButton:
		return "back-button"
	case RoleContent:
		return "content"
	default:
		return "unknown"
	}
}

// Class names toggled by navigation.
const (
	ClassVisible  = "visible"
	ClassPrevious = "previous"
	ClassNext     = "next"
	ClassSelected = "selected"
)

// Dataset attribute names.
const (
	AttrPage         = "page"          // activation target on buttons
	AttrPageObject   = "page-object"   // dotted controller path on panels
	AttrPreviousPage = "previous-page" // explicit back target on panels
)

// Style properties written by the progress tracker.
const (
	PropProgress        = "--panel-progress"
	PropProgressExpo    = "--panel-progress-expo"
	PropOverscroll      = "--panel-progress-overscroll"
	PropBackButtonWidth = "--back-button-width"
)

// Element is a node of the document tree.
// Class list, dataset and style properties mirror their DOM namesakes.
type Element struct {
	ID       string
	Role     Role
	Label    string
	Body     string
	Children []*Element

	attrs   map[string]string
	classes map[string]struct{}
	style   map[string]string
}

// NewElement creates an element with empty class list, dataset and style.
func NewElement(id string, role Role) *Element {
	return &Element{
		ID:      id,
		Role:    role,
		attrs:   make(map[string]string),
		classes: make(map[string]struct{}),
		style:   make(map[string]string),
	}
}

// Append adds children and returns the element for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Attr returns a dataset attribute ("" when absent).
func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// HasAttr reports whether the dataset attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets a dataset attribute. An empty value removes it.
func (e *Element) SetAttr(name, value string) {
	if value == "" {
		delete(e.attrs, name)
		return
	}
	e.attrs[name] = value
}

// AddClass adds classes to the class list.
func (e *Element) AddClass(classes ...string) {
	for _, c := range classes {
		e.classes[c] = struct{}{}
	}
}

// RemoveClass removes classes from the class list.
func (e *Element) RemoveClass(classes ...string) {
	for _, c := range classes {
		delete(e.classes, c)
	}
}

// HasClass reports whether the class is present.
func (e *Element) HasClass(class string) bool {
	_, ok := e.classes[class]
	return ok
}

// ToggleClass forces the class on or off.
func (e *Element) ToggleClass(class string, on bool) {
	if on {
		e.AddClass(class)
	} else {
		e.RemoveClass(class)
	}
}

// Classes returns the class list sorted by name.
func (e *Element) Classes() []string {
	out := make([]string, 0, len(e.classes))
	for c := range e.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// SetProperty sets a style property.
func (e *Element) SetProperty(name, value string) {
	e.style[name] = value
}

// Property returns a style property ("" when unset).
func (e *Element) Property(name string) string {
	return e.style[name]
}

// SetFloat stores a numeric style property.
func (e *Element) SetFloat(name string, v float64) {
	e.style[name] = strconv.FormatFloat(v, 'f', -1, 64)
}

// Float reads a numeric style property; unset or malformed values read as 0.
func (e *Element) Float(name string) float64 {
	v, err := strconv.ParseFloat(e.style[name], 64)
	if err != nil {
		return 0
	}
	return v
}

// Query returns the first descendant with the given role, depth first.
func (e *Element) Query(role Role) *Element {
	for _, c := range e.Children {
		if c.Role == role {
			return c
		}
		if found := c.Query(role); found != nil {
			return found
		}
	}
	return nil
}
