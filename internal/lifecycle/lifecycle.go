// Package lifecycle drives the init/show/hide lifecycle of per-panel controllers.
//
// Controllers are registered in a Namespace under dotted paths ("Store" or
// "Store.Library"). Panels declare a path; the Manager resolves it once when
// the panel is bound, so later lifecycle calls never do a lookup.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnresolved is returned by Bind when a path names no registered controller.
var ErrUnresolved = errors.New("controller path not registered")

// Controller is the capability set a panel controller provides.
type Controller interface {
	Init() error
	Show() error
	Hide() error
}

// Funcs adapts plain functions to Controller. Nil functions are no-ops.
type Funcs struct {
	InitFn func() error
	ShowFn func() error
	HideFn func() error
}

func (f Funcs) Init() error { return call(f.InitFn) }
func (f Funcs) Show() error { return call(f.ShowFn) }
func (f Funcs) Hide() error { return call(f.HideFn) }

func call(fn func() error) error {
	if fn == nil {
		return nil
	}
	return fn()
}

// Namespace maps dotted paths to controllers.
type Namespace struct {
	mu    sync.RWMutex
	paths map[string]Controller
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{paths: make(map[string]Controller)}
}

// Register stores c under path. Paths have at most two segments.
func (n *Namespace) Register(path string, c Controller) error {
	if err := validatePath(path); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("register %q: nil controller", path)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths[path] = c
	return nil
}

// Resolve returns the controller for path. A two-segment path resolves only
// when its root segment is registered as well.
func (n *Namespace) Resolve(path string) (Controller, bool) {
	if validatePath(path) != nil {
		return nil, false
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	if root, _, nested := strings.Cut(path, "."); nested {
		if _, ok := n.paths[root]; !ok {
			return nil, false
		}
	}
	c, ok := n.paths[path]
	return c, ok
}

func validatePath(path string) error {
	parts := strings.Split(path, ".")
	if len(parts) > 2 {
		return fmt.Errorf("controller path %q: want Bootstrap or Bootstrap.Object", path)
	}
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("controller path %q: empty segment", path)
		}
	}
	return nil
}

type binding struct {
	path   string
	ctrl   Controller
	loaded bool
}

// Manager holds the resolved controller of each bound panel.
type Manager struct {
	ns       *Namespace
	bindings map[string]*binding
}

// NewManager creates a manager resolving against ns.
func NewManager(ns *Namespace) *Manager {
	return &Manager{ns: ns, bindings: make(map[string]*binding)}
}

// Bind resolves path for panelID. An empty path binds nothing and is not an
// error; an unknown path returns ErrUnresolved and leaves the panel unbound.
func (m *Manager) Bind(panelID, path string) error {
	delete(m.bindings, panelID)
	if path == "" {
		return nil
	}
	c, ok := m.ns.Resolve(path)
	if !ok {
		return fmt.Errorf("bind %s to %q: %w", panelID, path, ErrUnresolved)
	}
	m.bindings[panelID] = &binding{path: path, ctrl: c}
	return nil
}

// Bound reports whether panelID has a controller.
func (m *Manager) Bound(panelID string) bool {
	_, ok := m.bindings[panelID]
	return ok
}

// Controller returns panelID's bound controller.
func (m *Manager) Controller(panelID string) (Controller, bool) {
	b, ok := m.bindings[panelID]
	if !ok {
		return nil, false
	}
	return b.ctrl, true
}

// Loaded reports whether panelID's controller has been initialized.
func (m *Manager) Loaded(panelID string) bool {
	b, ok := m.bindings[panelID]
	return ok && b.loaded
}

// Hide calls Hide on panelID's controller. Unbound panels are a no-op.
func (m *Manager) Hide(panelID string) error {
	b, ok := m.bindings[panelID]
	if !ok {
		return nil
	}
	if err := guard(b.ctrl.Hide); err != nil {
		return fmt.Errorf("hide %s (%s): %w", panelID, b.path, err)
	}
	return nil
}

// Show initializes panelID's controller on first use, then calls Show.
// A failed Init leaves the controller unloaded and skips Show.
func (m *Manager) Show(panelID string) error {
	b, ok := m.bindings[panelID]
	if !ok {
		return nil
	}
	if !b.loaded {
		if err := guard(b.ctrl.Init); err != nil {
			return fmt.Errorf("init %s (%s): %w", panelID, b.path, err)
		}
		b.loaded = true
	}
	if err := guard(b.ctrl.Show); err != nil {
		return fmt.Errorf("show %s (%s): %w", panelID, b.path, err)
	}
	return nil
}

// guard turns a controller panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
