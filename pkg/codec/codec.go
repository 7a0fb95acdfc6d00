// Package codec translates documents to and from the opaque blob held in
// the backing table's document column.
//
// The blob is plain JSON. The reserved _id and _collection keys are never
// serialized: the row's own columns are the source of truth, and the read
// path injects them into every decoded document, overwriting any stale
// copies found inside the blob.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andypymont/inception/pkg/domain"
)

// Encode serializes a document to its blob form, excluding the reserved
// bookkeeping keys. Timestamps are encoded as ISO-8601 strings; the
// conversion is one-directional, a decoded document holds plain strings.
// A value with no JSON encoding fails the call with a serialization error.
func Encode(doc domain.Document) ([]byte, error) {
	stripped := make(map[string]interface{}, len(doc))
	for key, value := range doc {
		if key == domain.IDKey || key == domain.CollectionKey {
			continue
		}
		stripped[key] = normalize(value)
	}

	blob, err := json.Marshal(stripped)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return blob, nil
}

// Decode parses a raw row into a document, injecting _id and _collection
// from the row's columns.
func Decode(row domain.Row) (domain.Document, error) {
	doc := domain.Document{}
	if err := json.Unmarshal(row.Blob, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document blob for id %d: %w", row.ID, err)
	}
	doc[domain.IDKey] = row.ID
	doc[domain.CollectionKey] = row.Collection
	return doc, nil
}

// normalize rewrites timestamp values as ISO-8601 strings, descending into
// nested sequences and mappings.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = normalize(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, elem := range v {
			out[key] = normalize(elem)
		}
		return out
	default:
		return value
	}
}
