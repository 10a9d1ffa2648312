package layoutstore

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLiteBlobs implements Blobs on a table in the shared homegrid database.
// The caller owns the *sql.DB and closes it.
type SQLiteBlobs struct {
	db *sql.DB
}

// NewSQLiteBlobs prepares the layouts table on db.
func NewSQLiteBlobs(db *sql.DB) (*SQLiteBlobs, error) {
	b := &SQLiteBlobs{db: db}
	if err := b.migrate(); err != nil {
		return nil, err
	}
	return b, nil
}

// migrate creates the layouts table if it doesn't exist.
func (b *SQLiteBlobs) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS layouts (
			home       TEXT PRIMARY KEY,
			blob       BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		);
	`
	if _, err := b.db.Exec(ddl); err != nil {
		return fmt.Errorf("layoutstore: migration failed: %w", err)
	}
	return nil
}

// Get returns the stored blob for home.
func (b *SQLiteBlobs) Get(home string) ([]byte, bool, error) {
	var blob []byte
	err := b.db.QueryRow(`SELECT blob FROM layouts WHERE home = ?`, home).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("layoutstore: query failed: %w", err)
	}
	return blob, true, nil
}

// Put upserts the blob for home.
func (b *SQLiteBlobs) Put(home string, blob []byte) error {
	_, err := b.db.Exec(`
		INSERT INTO layouts (home, blob, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(home) DO UPDATE SET
			blob = excluded.blob,
			updated_at = excluded.updated_at`,
		home, blob, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("layoutstore: upsert failed: %w", err)
	}
	return nil
}

// Delete removes the blob for home.
func (b *SQLiteBlobs) Delete(home string) error {
	if _, err := b.db.Exec(`DELETE FROM layouts WHERE home = ?`, home); err != nil {
		return fmt.Errorf("layoutstore: delete failed: %w", err)
	}
	return nil
}

// Homes lists stored homes sorted by name.
func (b *SQLiteBlobs) Homes() ([]string, error) {
	rows, err := b.db.Query(`SELECT home FROM layouts ORDER BY home`)
	if err != nil {
		return nil, fmt.Errorf("layoutstore: query failed: %w", err)
	}
	defer rows.Close()

	var homes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("layoutstore: scan failed: %w", err)
		}
		homes = append(homes, h)
	}
	return homes, rows.Err()
}
