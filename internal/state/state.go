// Package state persists host preferences (theme, volume, mute) in SQLite.
package state

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "folio"
	dbFileName   = "folio.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db  *sql.DB
	log *logrus.Entry

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Preferences
}

// Open opens the preferences database under $XDG_DATA_HOME.
func Open(log *logrus.Entry) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, log)
}

// OpenPath opens the database at path; ":memory:" is accepted.
func OpenPath(path string, log *logrus.Entry) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if err := initSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	if log == nil {
		log = logrus.WithField("component", "state")
	}
	return &Manager{db: db, log: log}, nil
}

// Close flushes a pending save and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending != nil {
		if err := savePreferences(context.Background(), m.db, *pending); err != nil {
			m.log.WithError(err).Warn("flush preferences")
		}
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// GetPreferences returns the saved preferences, or defaults.
func (m *Manager) GetPreferences() (*Preferences, error) {
	return getPreferences(context.Background(), m.db)
}

// SavePreferences stores p after a short quiet period; bursts of volume
// key presses collapse into one write.
func (m *Manager) SavePreferences(p Preferences) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &p

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			if err := savePreferences(context.Background(), m.db, *pending); err != nil {
				m.log.WithError(err).Warn("save preferences")
			}
		}
	})
}

// SavePreferencesNow stores p immediately.
func (m *Manager) SavePreferencesNow(ctx context.Context, p Preferences) error {
	return savePreferences(ctx, m.db, p)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
