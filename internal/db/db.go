package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DefaultPath is <config dir>/unifiedai/unifiedai.db.
func DefaultPath(configDir string) string {
	return filepath.Join(configDir, "unifiedai.db")
}

func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			access_token TEXT NOT NULL,
			identity TEXT NOT NULL DEFAULT '',
			updated_at INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

type SessionRow struct {
	AccessToken   string
	Identity      string
	UpdatedAtUnix int64
}

func SaveSession(db *sql.DB, token, identity string, nowUnix int64) error {
	_, err := db.Exec(
		`INSERT INTO session(id, access_token, identity, updated_at) VALUES(1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET access_token = excluded.access_token, identity = excluded.identity, updated_at = excluded.updated_at`,
		token,
		identity,
		nowUnix,
	)
	return err
}

// LoadSession returns ok=false when nobody is logged in.
func LoadSession(db *sql.DB) (SessionRow, bool, error) {
	var row SessionRow
	err := db.QueryRow("SELECT access_token, identity, updated_at FROM session WHERE id = 1").
		Scan(&row.AccessToken, &row.Identity, &row.UpdatedAtUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionRow{}, false, nil
	}
	if err != nil {
		return SessionRow{}, false, err
	}
	return row, true, nil
}

func ClearSession(db *sql.DB) error {
	_, err := db.Exec("DELETE FROM session")
	return err
}
