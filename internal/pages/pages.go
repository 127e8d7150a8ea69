// Package pages provides the controllers behind the built-in panels.
package pages

import (
	"fmt"
	"strings"

	"panelnav/internal/lifecycle"
)

// Statuser is implemented by controllers that contribute a status line to their panel.
type Statuser interface {
	Status() string
}

// Library lists shelved items. Items are loaded on Init, not construction.
type Library struct {
	Items []string
	shows int
}

func (l *Library) Init() error {
	l.Items = []string{"The Go Programming Language", "Concurrency in Go", "100 Go Mistakes"}
	return nil
}

func (l *Library) Show() error {
	l.shows++
	return nil
}

func (l *Library) Hide() error { return nil }

// Status implements Statuser.
func (l *Library) Status() string {
	if l.Items == nil {
		return "library not loaded"
	}
	return fmt.Sprintf("%d items · opened %d×\n\n  • %s", len(l.Items), l.shows, strings.Join(l.Items, "\n  • "))
}

// Settings counts how often it was opened and left.
type Settings struct {
	Opened int
	Closed int
}

func (s *Settings) Init() error { return nil }

func (s *Settings) Show() error {
	s.Opened++
	return nil
}

func (s *Settings) Hide() error {
	s.Closed++
	return nil
}

// Status implements Statuser.
func (s *Settings) Status() string {
	return fmt.Sprintf("opened %d× · closed %d×", s.Opened, s.Closed)
}

// Register installs the built-in controllers: Store, Store.Library and Settings.
func Register(ns *lifecycle.Namespace) (*Library, *Settings, error) {
	lib := &Library{}
	settings := &Settings{}
	for path, c := range map[string]lifecycle.Controller{
		"Store":         lifecycle.Funcs{},
		"Store.Library": lib,
		"Settings":      settings,
	} {
		if err := ns.Register(path, c); err != nil {
			return nil, nil, err
		}
	}
	return lib, settings, nil
}
