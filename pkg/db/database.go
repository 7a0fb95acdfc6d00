// Package db implements the document repository: the public-facing layer
// that saves, queries and deletes documents over a table adapter.
package db

import (
	"fmt"

	"github.com/andypymont/inception/pkg/codec"
	"github.com/andypymont/inception/pkg/domain"
)

// Database stores documents in named collections via a table adapter.
// The adapter is an explicit collaborator passed in by the caller; the
// repository holds no ambient connection state of its own.
type Database struct {
	adapter domain.TableAdapter
}

// New creates a document repository on top of the given adapter.
func New(adapter domain.TableAdapter) *Database {
	return &Database{adapter: adapter}
}

// Init creates the backing table, destroying any existing contents.
// Intended for first-time setup or a full reset.
func (d *Database) Init() error {
	return d.adapter.Init()
}

// Get returns the documents in a collection, or in the whole store when
// collection is empty, retaining only those matching the query if one is
// given. Result order follows the adapter's fetch order.
func (d *Database) Get(collection string, query domain.Query) ([]domain.Document, error) {
	rows, err := d.adapter.FetchRows(collection)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	for _, row := range rows {
		doc, err := codec.Decode(row)
		if err != nil {
			return nil, err
		}
		if query != nil && !query.Matches(doc) {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetByID returns the document with the given id, or nil if absent.
func (d *Database) GetByID(id int64) (domain.Document, error) {
	row, err := d.adapter.FetchRow(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return codec.Decode(*row)
}

// Save writes one document and commits. The effective collection is the
// document's own _collection if non-empty, else the collection argument.
// A document carrying an _id replaces the row with that id; one without
// gets a fresh row. Returns the row's id so first-time callers learn the
// assigned identifier without a re-fetch.
func (d *Database) Save(doc domain.Document, collection string) (int64, error) {
	if own, ok := doc.Collection(); ok && own != "" {
		collection = own
	}

	id, _ := doc.ID()
	blob, err := codec.Encode(doc)
	if err != nil {
		return 0, err
	}
	return d.adapter.UpsertRow(id, collection, blob)
}

// SaveAll writes every document in one transaction with a single commit at
// the end, so a serialization failure part-way through persists nothing.
// Collection resolution mirrors Save per document, with one quirk kept
// from the store's original behavior: a document's resolved collection
// becomes the fallback for subsequent documents in the same call that lack
// their own.
func (d *Database) SaveAll(docs []domain.Document, collection string) ([]int64, error) {
	pending := make([]domain.PendingRow, 0, len(docs))
	for i, doc := range docs {
		if own, ok := doc.Collection(); ok && own != "" {
			collection = own
		}

		id, _ := doc.ID()
		blob, err := codec.Encode(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		pending = append(pending, domain.PendingRow{ID: id, Collection: collection, Blob: blob})
	}
	return d.adapter.UpsertRows(pending)
}

// DeleteByID removes the document with the given id. Deleting a missing id
// is a silent no-op.
func (d *Database) DeleteByID(id int64) error {
	return d.adapter.DeleteRow(id)
}

// Delete removes the document by its _id. A document without one was never
// persisted, so the call does nothing.
func (d *Database) Delete(doc domain.Document) error {
	id, ok := doc.ID()
	if !ok {
		return nil
	}
	return d.adapter.DeleteRow(id)
}
