package storage

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

var mysqlDialect = dialect{
	dropTable: `DROP TABLE IF EXISTS inception`,
	createTable: `CREATE TABLE inception (
		id BIGINT NOT NULL AUTO_INCREMENT,
		collection VARCHAR(255) NOT NULL,
		document LONGTEXT,
		PRIMARY KEY (id)
	)`,
	selectByID:         `SELECT id, collection, document FROM inception WHERE id = ?`,
	selectAll:          `SELECT id, collection, document FROM inception`,
	selectByCollection: `SELECT id, collection, document FROM inception WHERE collection = ?`,
	insert:             `INSERT INTO inception (collection, document) VALUES (?, ?)`,
	upsert:             `REPLACE INTO inception (id, collection, document) VALUES (?, ?, ?)`,
	deleteByID:         `DELETE FROM inception WHERE id = ?`,
}

// MySQLAdapter backs the store with a MySQL database reached over the
// network. The DSN follows the go-sql-driver format, e.g.
// "user:password@tcp(host:3306)/dbname".
type MySQLAdapter struct {
	table
}

// NewMySQLAdapter connects to the MySQL server described by the DSN and
// verifies the connection. The backing table itself is only created by Init.
func NewMySQLAdapter(dsn string) (*MySQLAdapter, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &MySQLAdapter{table: table{db: db, dialect: mysqlDialect}}, nil
}
