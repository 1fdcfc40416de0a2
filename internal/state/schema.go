package state

import (
	"context"
	"database/sql"

	"github.com/llehouerou/folio/internal/db"
)

const currentSchemaVersion = 1

func initSchema(ctx context.Context, conn *sql.DB) error {
	return db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS preferences (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				theme TEXT,
				volume REAL,
				muted INTEGER,
				updated_at INTEGER NOT NULL
			);
		`)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		return err
	})
}
