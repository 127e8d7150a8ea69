package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeybindRegistry maps key sequences to commands.
// Key sequences use spacemacs-style notation: "SPC" for space, "SPC 1" for SPC then 1.
// Single keys: "j", "k", "esc", "ctrl+c", "enter".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	panelFilter  map[string][]string // nil/empty = applies on every panel
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		panelFilter:  make(map[string][]string),
	}
}

// Bind registers a key sequence to a command.
// Overwrites any existing binding for the sequence.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers a key sequence with a description for the help view.
// The binding applies on every panel.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindOnPanels(seq, cmd, desc, nil)
}

// BindOnPanels registers a key sequence that only applies while one of panels is visible.
// If panels is nil or empty, the binding applies everywhere.
func (r *KeybindRegistry) BindOnPanels(seq string, cmd tea.Cmd, desc string, panels []string) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
	if len(panels) > 0 {
		r.panelFilter[n] = panels
	} else {
		delete(r.panelFilter, n)
	}
}

// Lookup returns the command for a key sequence on panel, or nil if not bound there.
func (r *KeybindRegistry) Lookup(seq, panel string) tea.Cmd {
	n := normalizeSeq(seq)
	if !r.appliesTo(n, panel) {
		return nil
	}
	return r.bindings[n]
}

// HasPrefix returns true if any binding starts with seq and a space (i.e. more keys follow).
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// LeaderHints returns the next-level hints after currentSeq ("" means right after SPC),
// filtered to bindings that apply on panel.
func (r *KeybindRegistry) LeaderHints(currentSeq, panel string) map[string]string {
	out := make(map[string]string)
	prefix := "SPC "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) || !r.appliesTo(seq, panel) {
			continue
		}
		rest := strings.TrimPrefix(seq, prefix)
		next := rest
		if parts := strings.Fields(rest); len(parts) > 0 {
			next = parts[0]
		}
		if r.HasPrefix(prefix + next) {
			out[next] = next + "…"
			continue
		}
		if d := r.descriptions[seq]; d != "" {
			out[next] = d
		} else {
			out[next] = seq
		}
	}
	return out
}

func (r *KeybindRegistry) appliesTo(seq, panel string) bool {
	panels, ok := r.panelFilter[seq]
	if !ok || len(panels) == 0 {
		return true
	}
	for _, p := range panels {
		if p == panel {
			return true
		}
	}
	return false
}

// normalizeSeq converts tea key strings to our canonical format.
// "space" -> "SPC", "ctrl+c" -> "ctrl+c", "j" -> "j".
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		if p == "space" {
			parts[i] = "SPC"
		}
	}
	return strings.Join(parts, " ")
}

// KeyHandler manages leader key state and dispatches to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string   // " " (tea.KeyMsg.String() for space)
	LeaderSeq     string   // "SPC"
	LeaderWaiting bool     // true when waiting for key after leader
	Buffer        []string // accumulated sequence in leader mode
}

// NewKeyHandler creates a handler with SPC as leader.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{
		Registry:  reg,
		LeaderKey: " ",
		LeaderSeq: "SPC",
	}
}

// Handle processes a KeyMsg for the visible panel. Returns (consumed, cmd).
// Unbound single keys fall through to the input router.
func (h *KeyHandler) Handle(msg tea.KeyMsg, panel string) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if !h.LeaderWaiting {
		if s == h.LeaderKey {
			h.LeaderWaiting = true
			h.Buffer = []string{h.LeaderSeq}
			return true, nil
		}
		if c := h.Registry.Lookup(s, panel); c != nil {
			return true, c
		}
		return false, nil
	}

	// Esc cancels leader mode without going back.
	if s == "esc" {
		h.reset()
		return true, nil
	}

	h.Buffer = append(h.Buffer, keyToSeqPart(s))
	seq := strings.Join(h.Buffer, " ")
	if c := h.Registry.Lookup(seq, panel); c != nil {
		h.reset()
		return true, c
	}
	// Stay in leader mode while a longer binding exists.
	if h.Registry.HasPrefix(seq) {
		return true, nil
	}
	h.reset()
	return true, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// keyToSeqPart converts a tea key string to our sequence part.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}
