// ABOUTME: SQLite connection setup for the crmview record store
// ABOUTME: Opens the database in WAL mode and applies the CRM schema
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// dsnOptions keeps a single writer happy under WAL with a short busy wait.
const dsnOptions = "?_journal_mode=WAL&_busy_timeout=5000"

// OpenDatabase opens (creating if needed) the CRM database at path.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// One connection avoids "database is locked" between readers and the writer.
	conn.SetMaxOpenConns(1)

	if err := InitSchema(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return conn, nil
}
