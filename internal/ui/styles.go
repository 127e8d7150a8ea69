package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "243" // Darker gray - for very dim text
)

// MaxPullRows is how many blank rows a full overscroll inserts above the content.
const MaxPullRows = 4

// Styles contains shared style definitions used across views.
var Styles = struct {
	Title  lipgloss.Style // Bold accent color - panel titles
	Header lipgloss.Style // Header row under which the progress bar sits

	// Navigation bar
	Button         lipgloss.Style // Idle activation button
	ButtonSelected lipgloss.Style // Button targeting the visible panel
	ButtonFocused  lipgloss.Style // Button holding keyboard focus

	// BackButton has horizontal padding 1, matching progress.LabelWidth.
	BackButton lipgloss.Style

	Muted  lipgloss.Style // Dimmed text (muted color)
	Normal lipgloss.Style // Normal text (text color)
	Hint   lipgloss.Style // Help/hint text (muted color)
	Status lipgloss.Style // Page controller status line
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Header: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Button: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	ButtonSelected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Padding(0, 1),
	ButtonFocused: lipgloss.NewStyle().
		Underline(true),
	BackButton: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)).
		Padding(0, 1),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim)).
		Italic(true),
}
