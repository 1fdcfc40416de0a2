// internal/state/interface.go
package state

import (
	"context"
	"database/sql"
)

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	GetPreferences() (*Preferences, error)
	SavePreferences(p Preferences)
	SavePreferencesNow(ctx context.Context, p Preferences) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
