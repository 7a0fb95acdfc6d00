package storage

import (
	"fmt"

	"github.com/andypymont/inception/pkg/domain"
)

// Open creates a table adapter for the named backend.
//
// Supported backends:
//
//	"sqlite" - SQLite database file at the DSN path (default)
//	"mysql"  - MySQL server described by a go-sql-driver DSN
func Open(backend, dsn string) (domain.TableAdapter, error) {
	switch backend {
	case "sqlite", "":
		return NewSQLiteAdapter(dsn)
	case "mysql":
		return NewMySQLAdapter(dsn)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q (supported: sqlite, mysql)", backend)
	}
}
