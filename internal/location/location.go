// Package location models the address of the running session and its history.
//
// The active panel is carried in the "panel" query parameter, so a location
// string such as "panelnav://app/?panel=settings" both restores and records
// navigation state.
package location

import (
	"fmt"
	"net/url"
)

// PanelParam is the query parameter naming the active panel.
const PanelParam = "panel"

// DefaultURL is used when no start location is configured.
const DefaultURL = "panelnav://app/"

// Location is an immutable parsed URL.
type Location struct {
	u url.URL
}

// Parse parses raw into a Location.
func Parse(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: %w", raw, err)
	}
	return Location{u: *u}, nil
}

// MustParse is Parse for constants; it panics on error.
func MustParse(raw string) Location {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}

// Panel returns the panel query parameter, or "" when absent.
func (l Location) Panel() string {
	return l.u.Query().Get(PanelParam)
}

// WithPanel returns a copy with the panel parameter set to id,
// replacing any existing value and keeping other parameters.
func (l Location) WithPanel(id string) Location {
	u := l.u
	q := u.Query()
	q.Set(PanelParam, id)
	u.RawQuery = q.Encode()
	return Location{u: u}
}

// String returns the URL form.
func (l Location) String() string {
	return l.u.String()
}

// IsZero reports whether l is the zero Location.
func (l Location) IsZero() bool {
	return l.u == url.URL{}
}
