// Package settings keeps small user preferences, such as the remembered
// engine path, in an ini file between runs.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/ini.v1"
)

const (
	SectionPaths = "PATHS"
	KeyExePath   = "exe_path"
)

// Listener is called after a value changes.
type Listener func(section, key, value string)

// Store is an in-memory section -> key -> value map backed by an ini file.
type Store struct {
	mu        sync.RWMutex
	path      string
	values    map[string]map[string]string
	listeners []Listener
}

func NewStore(path string) *Store {
	return &Store{path: path, values: make(map[string]map[string]string)}
}

// Open loads path into a new store. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := NewStore(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory values with the file contents.
func (s *Store) Load() error {
	f, err := ini.LooseLoad(s.path)
	if err != nil {
		return fmt.Errorf("reading settings %s: %w", s.path, err)
	}

	values := make(map[string]map[string]string)
	for _, sec := range f.Sections() {
		if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}
		m := make(map[string]string, len(sec.Keys()))
		for _, k := range sec.Keys() {
			m[k.Name()] = k.Value()
		}
		values[sec.Name()] = m
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

// Save writes every section to the backing file.
func (s *Store) Save() error {
	f := ini.Empty()
	s.mu.RLock()
	for section, keys := range s.values {
		sec, err := f.NewSection(section)
		if err != nil {
			s.mu.RUnlock()
			return fmt.Errorf("building section %s: %w", section, err)
		}
		for k, v := range keys {
			if _, err := sec.NewKey(k, v); err != nil {
				s.mu.RUnlock()
				return fmt.Errorf("building key %s.%s: %w", section, k, err)
			}
		}
	}
	s.mu.RUnlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating settings directory: %w", err)
		}
	}
	if err := f.SaveTo(s.path); err != nil {
		return fmt.Errorf("writing settings %s: %w", s.path, err)
	}
	return nil
}

// Get returns the value and whether it was set.
func (s *Store) Get(section, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[section][key]
	return v, ok
}

// Set stores value, creating the section if needed, and notifies listeners
// when the value actually changed.
func (s *Store) Set(section, key, value string) {
	s.mu.Lock()
	keys, ok := s.values[section]
	if !ok {
		keys = make(map[string]string)
		s.values[section] = keys
	}
	old, existed := keys[key]
	keys[key] = value
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if existed && old == value {
		return
	}
	for _, l := range listeners {
		l(section, key, value)
	}
}

// OnChange registers a listener.
func (s *Store) OnChange(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// WriteThrough registers a listener that saves the file on every change.
// Save errors go to onErr, which may be nil.
func (s *Store) WriteThrough(onErr func(error)) {
	s.OnChange(func(string, string, string) {
		if err := s.Save(); err != nil && onErr != nil {
			onErr(err)
		}
	})
}
