// internal/state/mock.go
package state

import (
	"context"
	"database/sql"
	"sync"
)

// Mock is a test double for Manager.
type Mock struct {
	mu     sync.Mutex
	prefs  *Preferences
	saves  int
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) GetPreferences() (*Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefs == nil {
		p := DefaultPreferences()
		return &p, nil
	}
	p := *m.prefs
	p.Saved = true
	return &p, nil
}

func (m *Mock) SavePreferences(p Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = &p
	m.saves++
}

func (m *Mock) SavePreferencesNow(_ context.Context, p Preferences) error {
	m.SavePreferences(p)
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPreferences(p Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = &p
}

func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
