// Package ui is the Bubble Tea front end of panelnav.
//
// Core pieces:
//   - AppModel: root model; owns the panel registry, transition controller,
//     input router and one PanelView per panel
//   - PanelView: header (back button, title, progress bar) over a scrolling viewport
//   - FocusManager: rotates keyboard focus across activation buttons
//   - KeybindRegistry / KeyHandler: SPC leader bindings with per-panel filters
//
// The core packages write classes and style properties onto document
// elements; this package only reads them back when rendering.
package ui
