package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteDialect = dialect{
	dropTable: `DROP TABLE IF EXISTS inception`,
	createTable: `CREATE TABLE inception (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		collection TEXT NOT NULL,
		document TEXT
	)`,
	selectByID:         `SELECT id, collection, document FROM inception WHERE id = ?`,
	selectAll:          `SELECT id, collection, document FROM inception`,
	selectByCollection: `SELECT id, collection, document FROM inception WHERE collection = ?`,
	insert:             `INSERT INTO inception (collection, document) VALUES (?, ?)`,
	upsert:             `INSERT OR REPLACE INTO inception (id, collection, document) VALUES (?, ?, ?)`,
	deleteByID:         `DELETE FROM inception WHERE id = ?`,
}

// SQLiteAdapter backs the store with a single SQLite database file.
type SQLiteAdapter struct {
	table
}

// NewSQLiteAdapter opens (or creates) the SQLite database at the given
// path. The backing table itself is only created by Init.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	return &SQLiteAdapter{table: table{db: db, dialect: sqliteDialect}}, nil
}
