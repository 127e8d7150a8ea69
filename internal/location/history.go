package location

import "sync"

// History records non-navigating location updates.
type History interface {
	// Location returns the current location.
	Location() Location
	// PushState appends loc and makes it current.
	PushState(loc Location) error
}

// MemoryHistory keeps entries in memory.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Location
}

// Ensure MemoryHistory implements History.
var _ History = (*MemoryHistory)(nil)

// NewMemoryHistory creates a history whose first entry is start.
func NewMemoryHistory(start Location) *MemoryHistory {
	return &MemoryHistory{entries: []Location{start}}
}

// Location implements History.
func (h *MemoryHistory) Location() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return Location{}
	}
	return h.entries[len(h.entries)-1]
}

// PushState implements History.
func (h *MemoryHistory) PushState(loc Location) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, loc)
	return nil
}

// Len returns the number of entries, including the start entry.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *MemoryHistory) Entries() []Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Location, len(h.entries))
	copy(out, h.entries)
	return out
}
