// Package storage implements the engine-specific table adapters backing
// the document store: one table, five statement shapes, per-engine SQL.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/andypymont/inception/pkg/domain"
)

// dialect carries the SQL an engine needs for the five statement shapes.
// Both supported drivers use ? placeholders under database/sql; the
// dialects differ in DDL and in the insert-or-replace verb.
type dialect struct {
	dropTable          string
	createTable        string
	selectByID         string
	selectAll          string
	selectByCollection string
	insert             string
	upsert             string
	deleteByID         string
}

// table executes the statement shapes against one *sql.DB. Adapter types
// embed it and contribute only their dialect and connection setup.
type table struct {
	db      *sql.DB
	dialect dialect
}

// Init drops the table if it exists, then creates it empty. Destructive.
func (t *table) Init() error {
	if _, err := t.db.Exec(t.dialect.dropTable); err != nil {
		return fmt.Errorf("failed to drop table: %w", err)
	}
	if _, err := t.db.Exec(t.dialect.createTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// FetchRow returns the row with the given id, or nil if no such row exists.
func (t *table) FetchRow(id int64) (*domain.Row, error) {
	row := domain.Row{}
	err := t.db.QueryRow(t.dialect.selectByID, id).Scan(&row.ID, &row.Collection, &row.Blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FetchRows returns every row, restricted to one collection unless the
// collection name is empty. Order follows storage order.
func (t *table) FetchRows(collection string) ([]domain.Row, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if collection != "" {
		rows, err = t.db.Query(t.dialect.selectByCollection, collection)
	} else {
		rows, err = t.db.Query(t.dialect.selectAll)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Row
	for rows.Next() {
		row := domain.Row{}
		if err := rows.Scan(&row.ID, &row.Collection, &row.Blob); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// UpsertRow writes one row. A zero id inserts and lets the engine assign
// the identifier; a non-zero id replaces the row with that primary key,
// creating it if absent. Returns the row's id.
func (t *table) UpsertRow(id int64, collection string, blob []byte) (int64, error) {
	if id != 0 {
		if _, err := t.db.Exec(t.dialect.upsert, id, collection, string(blob)); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := t.db.Exec(t.dialect.insert, collection, string(blob))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertRows writes all rows in one transaction with a single commit, so a
// failure part-way through persists nothing. Returns ids in input order.
func (t *table) UpsertRows(pending []domain.PendingRow) ([]int64, error) {
	tx, err := t.db.Begin()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(pending))
	for _, row := range pending {
		if row.ID != 0 {
			if _, err := tx.Exec(t.dialect.upsert, row.ID, row.Collection, string(row.Blob)); err != nil {
				tx.Rollback()
				return nil, err
			}
			ids = append(ids, row.ID)
			continue
		}

		res, err := tx.Exec(t.dialect.insert, row.Collection, string(row.Blob))
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// DeleteRow removes the row with the given id. Deleting a missing id is a
// silent no-op.
func (t *table) DeleteRow(id int64) error {
	_, err := t.db.Exec(t.dialect.deleteByID, id)
	return err
}

func (t *table) Close() error {
	return t.db.Close()
}
