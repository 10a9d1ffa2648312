package servicedir

import (
	"database/sql"
	"fmt"
	"time"

	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// Repository is the persistence interface of the service directory.
type Repository interface {
	// Add stores a new service at the end of its home's ordering.
	Add(r *Record) error

	// Get retrieves one service by id. Returns ErrNotFound when missing.
	Get(id string) (*Record, error)

	// ListByHome returns a home's services in insertion order.
	ListByHome(home string) ([]Record, error)

	// List returns every service ordered by home then position.
	List() ([]Record, error)

	// Delete removes a service. Returns ErrNotFound when missing.
	Delete(id string) error
}

// SQLiteRepository implements Repository on the shared homegrid database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository prepares the services table on db. The caller owns db.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		return nil, err
	}
	return r, nil
}

// migrate creates the services table if it doesn't exist.
func (r *SQLiteRepository) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS services (
			id         TEXT    PRIMARY KEY,
			name       TEXT    NOT NULL,
			kind       TEXT    NOT NULL,
			home       TEXT    NOT NULL,
			url        TEXT    NOT NULL DEFAULT '',
			position   INTEGER NOT NULL DEFAULT 0,
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);
		CREATE INDEX IF NOT EXISTS idx_services_home ON services(home, position);
	`
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("servicedir: migration failed: %w", err)
	}
	return nil
}

// Add validates r and inserts it after the last service of its home.
func (r *SQLiteRepository) Add(rec *Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	var next int
	err := r.db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM services WHERE home = ?`, rec.Home).Scan(&next)
	if err != nil {
		return fmt.Errorf("servicedir: query failed: %w", err)
	}

	rec.Position = next
	rec.CreatedAt = time.Now().UTC()
	_, err = r.db.Exec(`
		INSERT INTO services (id, name, kind, home, url, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, string(rec.Kind), rec.Home, rec.URL, rec.Position,
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("servicedir: insert %q failed: %w", rec.ID, err)
	}
	return nil
}

// Get retrieves one service by id.
func (r *SQLiteRepository) Get(id string) (*Record, error) {
	row := r.db.QueryRow(`
		SELECT id, name, kind, home, url, position, created_at
		FROM services WHERE id = ?`, id)

	rec, err := scanRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("servicedir: query failed: %w", err)
	}
	return rec, nil
}

// ListByHome returns the services of home in insertion order.
func (r *SQLiteRepository) ListByHome(home string) ([]Record, error) {
	rows, err := r.db.Query(`
		SELECT id, name, kind, home, url, position, created_at
		FROM services WHERE home = ? ORDER BY position, id`, home)
	if err != nil {
		return nil, fmt.Errorf("servicedir: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// List returns every service.
func (r *SQLiteRepository) List() ([]Record, error) {
	rows, err := r.db.Query(`
		SELECT id, name, kind, home, url, position, created_at
		FROM services ORDER BY home, position, id`)
	if err != nil {
		return nil, fmt.Errorf("servicedir: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Delete removes one service by id.
func (r *SQLiteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("servicedir: delete failed: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*Record, error) {
	var (
		rec     Record
		kind    string
		created string
	)
	if err := s.Scan(&rec.ID, &rec.Name, &kind, &rec.Home, &rec.URL, &rec.Position, &created); err != nil {
		return nil, err
	}
	rec.Kind = domain.ServiceKind(kind)
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &rec, nil
}

func scanRows(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		rec, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("servicedir: scan failed: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("servicedir: rows iteration failed: %w", err)
	}
	return out, nil
}
