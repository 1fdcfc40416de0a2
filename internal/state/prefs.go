package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/folio/internal/db"
)

// Preferences are the user choices restored on the next run. An empty
// Theme means "use the configured default".
type Preferences struct {
	Theme  string
	Volume float64
	Muted  bool

	// Saved is false until at least one preference has been stored.
	Saved bool
}

// DefaultPreferences is what a fresh database reports.
func DefaultPreferences() Preferences {
	return Preferences{Volume: 1.0}
}

func getPreferences(ctx context.Context, conn *sql.DB) (*Preferences, error) {
	var (
		theme  sql.NullString
		volume sql.NullFloat64
		muted  sql.NullBool
	)
	err := conn.QueryRowContext(ctx, `SELECT theme, volume, muted FROM preferences WHERE id = 1`).
		Scan(&theme, &volume, &muted)
	if errors.Is(err, sql.ErrNoRows) {
		p := DefaultPreferences()
		return &p, nil
	}
	if err != nil {
		return nil, err
	}

	def := DefaultPreferences()
	return &Preferences{
		Theme:  db.NullStringValue(theme, def.Theme),
		Volume: db.NullFloat64Value(volume, def.Volume),
		Muted:  db.NullBoolValue(muted, def.Muted),
		Saved:  theme.Valid || volume.Valid || muted.Valid,
	}, nil
}

func savePreferences(ctx context.Context, conn *sql.DB, p Preferences) error {
	p.Volume = max(0, min(p.Volume, 1))
	_, err := conn.ExecContext(ctx, `
		INSERT INTO preferences (id, theme, volume, muted, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			theme = excluded.theme,
			volume = excluded.volume,
			muted = excluded.muted,
			updated_at = excluded.updated_at
	`, p.Theme, p.Volume, p.Muted, time.Now().Unix())
	return err
}
