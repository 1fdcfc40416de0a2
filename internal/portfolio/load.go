package portfolio

import (
	"fmt"
	"sync"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads and validates a content TOML file.
func Load(path string) (*Content, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	c := &Content{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Store holds the current content and swaps it on reload. Readers never see
// a half-loaded file: a failed reload keeps the previous content.
type Store struct {
	mu      sync.RWMutex
	path    string
	content *Content
}

// NewStore loads path once.
func NewStore(path string) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, content: c}, nil
}

// StaticStore wraps already loaded content; Reload is a no-op.
func StaticStore(c *Content) *Store {
	return &Store{content: c}
}

// Get returns the current content. Callers must not modify it.
func (s *Store) Get() *Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content
}

// Path returns the file the store reloads from.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the file.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.content = c
	s.mu.Unlock()
	return nil
}
