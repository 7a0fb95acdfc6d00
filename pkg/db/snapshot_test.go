package db

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andypymont/inception/pkg/domain"
)

func TestSnapshot_RoundTripBetweenStores(t *testing.T) {
	source := newTestDatabase(t)

	_, err := source.SaveAll([]domain.Document{
		{"name": "One", "list": []interface{}{1, 2, 3}},
		{"name": "Two", "list": []interface{}{2, 3, 4}},
	}, "test")
	require.NoError(t, err)
	_, err = source.Save(domain.Document{"name": "Loose"}, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, source.Export(&buf))

	target := newTestDatabase(t)
	require.NoError(t, target.Import(&buf))

	restored, err := target.Get("test", nil)
	require.NoError(t, err)
	assert.Len(t, restored, 2)

	all, err := target.Get("", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Row ids survive the round trip.
	sourceDocs, err := source.Get("test", domain.Query{"name": domain.Equals("One")})
	require.NoError(t, err)
	targetDocs, err := target.Get("test", domain.Query{"name": domain.Equals("One")})
	require.NoError(t, err)
	require.Len(t, sourceDocs, 1)
	require.Len(t, targetDocs, 1)
	assert.Equal(t, sourceDocs[0]["_id"], targetDocs[0]["_id"])
	assert.Equal(t, sourceDocs[0]["list"], targetDocs[0]["list"])
}

func TestSnapshot_ImportReplacesMatchingIDs(t *testing.T) {
	source := newTestDatabase(t)
	id, err := source.Save(domain.Document{"name": "newer"}, "test")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, source.Export(&buf))

	target := newTestDatabase(t)
	_, err = target.Save(domain.Document{"_id": id, "name": "older"}, "test")
	require.NoError(t, err)

	require.NoError(t, target.Import(&buf))

	doc, err := target.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "newer", doc["name"])
}

func TestSnapshot_RejectsForeignStream(t *testing.T) {
	target := newTestDatabase(t)

	err := target.Import(bytes.NewReader([]byte("not a snapshot at all")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot")
}

func TestSnapshot_EmptyStore(t *testing.T) {
	source := newTestDatabase(t)

	var buf bytes.Buffer
	require.NoError(t, source.Export(&buf))

	target := newTestDatabase(t)
	require.NoError(t, target.Import(&buf))

	docs, err := target.Get("", nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
