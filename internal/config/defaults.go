package config

import (
	"fmt"
	"strings"

	"panelnav/internal/document"
)

// DefaultPanels is the built-in document used when no panels are configured.
func DefaultPanels() []document.PanelDef {
	return []document.PanelDef{
		{
			ID:      "home",
			Title:   "Home",
			Visible: true,
			Body:    homeBody,
		},
		{
			ID:         "library",
			Title:      "Library",
			PageObject: "Store.Library",
			Body:       filler("Shelf", 40),
		},
		{
			ID:         "settings",
			Title:      "Settings",
			PageObject: "Settings",
			Body:       filler("Option", 30),
		},
		{
			ID:           "about",
			Title:        "About",
			PreviousPage: "home",
			Body:         "panelnav: one panel at a time.\n\nBack from here always returns Home.",
		},
	}
}

// DefaultButtons targets each default panel once.
func DefaultButtons() []document.ButtonDef {
	return []document.ButtonDef{
		{ID: "nav-home", Label: "Home", Target: "home"},
		{ID: "nav-library", Label: "Library", Target: "library"},
		{ID: "nav-settings", Label: "Settings", Target: "settings"},
		{ID: "nav-about", Label: "About", Target: "about"},
	}
}

const homeBody = `Welcome.

tab / shift+tab   move between buttons
enter / click     open a panel
esc               go back
j / k / wheel     scroll; the header bar follows
wheel up at top   pull down (overscroll)`

func filler(prefix string, n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%s %d\n", prefix, i)
	}
	return b.String()
}
