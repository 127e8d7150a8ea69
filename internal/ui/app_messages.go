package ui

import "panelnav/internal/localize"

// LoadedMsg is sent once after the program starts (the document-loaded event).
// A pending initial selection from the start location is transitioned to here.
type LoadedMsg struct{}

// LocalizedMsg is sent when the label file changes. Labels are applied to the
// document, then the layout is considered settled.
type LocalizedMsg struct {
	Labels localize.Labels
}

// LayoutSettledMsg is sent after text or geometry changed (window resize,
// relabeling). Every back button is remeasured on it.
type LayoutSettledMsg struct{}

// GotoPanelMsg transitions from the visible panel to ID (SPC 1..9).
type GotoPanelMsg struct {
	ID string
}

// BackMsg navigates back one level (SPC b or a back button click).
type BackMsg struct{}

// smoothFrameMsg advances the smooth scroller of one panel by a frame.
type smoothFrameMsg struct {
	PanelID string
}
