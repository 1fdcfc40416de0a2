// Package db holds small database/sql helpers shared by the stores.
package db

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx runs fn in a transaction, committing on success and rolling back
// when fn fails.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullStringValue returns the string or def when NULL.
func NullStringValue(n sql.NullString, def string) string {
	if !n.Valid {
		return def
	}
	return n.String
}

// NullFloat64Value returns the float or def when NULL.
func NullFloat64Value(n sql.NullFloat64, def float64) float64 {
	if !n.Valid {
		return def
	}
	return n.Float64
}

// NullBoolValue returns the bool or def when NULL.
func NullBoolValue(n sql.NullBool, def bool) bool {
	if !n.Valid {
		return def
	}
	return n.Bool
}
