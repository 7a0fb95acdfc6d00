package domain

import "io"

// Row is the physical unit of storage: one document as it sits in the
// backing table.
type Row struct {
	ID         int64
	Collection string
	Blob       []byte
}

// PendingRow is a row queued for a batched upsert. A zero ID asks the
// engine to assign the next identifier.
type PendingRow struct {
	ID         int64
	Collection string
	Blob       []byte
}

// TableAdapter defines the interface for engine-specific access to the
// single backing table. Implementations must conform to these semantics:
// fetches report a missing row as a nil result, deletes of missing rows
// are silent no-ops, and upserts replace any existing row with the same id.
type TableAdapter interface {
	// Init drops the backing table if it exists and recreates it empty.
	// Destructive; intended for first-time setup or a full reset.
	Init() error
	// FetchRow returns the row with the given id, or nil if absent.
	FetchRow(id int64) (*Row, error)
	// FetchRows returns every row, restricted to one collection unless
	// collection is empty.
	FetchRows(collection string) ([]Row, error)
	// UpsertRow writes one row and commits. With id == 0 the engine
	// assigns the next identifier; the row's id is returned either way.
	UpsertRow(id int64, collection string, blob []byte) (int64, error)
	// UpsertRows writes all rows inside a single transaction with one
	// commit at the end, returning the ids in input order.
	UpsertRows(rows []PendingRow) ([]int64, error)
	// DeleteRow removes the row with the given id, if any.
	DeleteRow(id int64) error
	Close() error
}

// Repository defines the document-level interface callers use directly.
type Repository interface {
	Init() error
	Get(collection string, query Query) ([]Document, error)
	GetByID(id int64) (Document, error)
	Save(doc Document, collection string) (int64, error)
	SaveAll(docs []Document, collection string) ([]int64, error)
	Delete(doc Document) error
	DeleteByID(id int64) error
}

// Snapshotter moves the whole store through a portable snapshot stream.
type Snapshotter interface {
	Export(w io.Writer) error
	Import(r io.Reader) error
}
