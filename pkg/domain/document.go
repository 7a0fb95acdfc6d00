package domain

import "encoding/json"

// Reserved document keys maintained by the store. They are never written
// into the serialized blob; the read path derives them from the row's own
// columns.
const (
	IDKey         = "_id"
	CollectionKey = "_collection"
)

// Document represents a document in the database
type Document map[string]interface{}

// ID returns the document's surrogate identifier, if it carries one.
// Identifiers survive a JSON round-trip as float64, so every integer-like
// representation is accepted.
func (d Document) ID() (int64, bool) {
	v, ok := d[IDKey]
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case int64:
		return id, true
	case int:
		return int64(id), true
	case float64:
		return int64(id), true
	case json.Number:
		n, err := id.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Collection returns the document's in-document collection name, if any.
func (d Document) Collection() (string, bool) {
	v, ok := d[CollectionKey]
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}
