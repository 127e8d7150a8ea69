package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a region with its own Elm-style update and render.
// PanelView is the only implementation; AppModel routes messages to the visible one.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
