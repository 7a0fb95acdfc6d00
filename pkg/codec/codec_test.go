package codec

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andypymont/inception/pkg/domain"
)

func TestEncode_StripsReservedKeys(t *testing.T) {
	doc := domain.Document{
		"_id":         int64(7),
		"_collection": "test",
		"name":        "One",
	}

	blob, err := Encode(doc)
	require.NoError(t, err)

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(blob, &stored))
	assert.NotContains(t, stored, "_id")
	assert.NotContains(t, stored, "_collection")
	assert.Equal(t, "One", stored["name"])
}

func TestEncode_TimestampsBecomeStrings(t *testing.T) {
	when := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	doc := domain.Document{
		"created": when,
		"nested":  map[string]interface{}{"updated": when},
		"history": []interface{}{when},
	}

	blob, err := Encode(doc)
	require.NoError(t, err)

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(blob, &stored))
	assert.Equal(t, "2024-05-17T09:30:00Z", stored["created"])
	assert.Equal(t, "2024-05-17T09:30:00Z", stored["nested"].(map[string]interface{})["updated"])
	assert.Equal(t, "2024-05-17T09:30:00Z", stored["history"].([]interface{})[0])
}

func TestEncode_UnsupportedValueFails(t *testing.T) {
	doc := domain.Document{"oops": make(chan int)}

	_, err := Encode(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to serialize document")
}

func TestDecode_InjectsRowColumns(t *testing.T) {
	// Stale copies inside the blob lose to the row's own columns.
	row := domain.Row{
		ID:         42,
		Collection: "test",
		Blob:       []byte(`{"name":"One","_id":999,"_collection":"stale"}`),
	}

	doc, err := Decode(row)
	require.NoError(t, err)
	assert.Equal(t, int64(42), doc["_id"])
	assert.Equal(t, "test", doc["_collection"])
	assert.Equal(t, "One", doc["name"])
}

func TestDecode_MalformedBlob(t *testing.T) {
	row := domain.Row{ID: 1, Collection: "test", Blob: []byte(`{not json`)}

	_, err := Decode(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document blob")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	doc := domain.Document{
		"name": "One",
		"list": []interface{}{float64(1), float64(2), float64(3)},
		"meta": map[string]interface{}{"depth": float64(2)},
	}

	blob, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(domain.Row{ID: 1, Collection: "test", Blob: blob})
	require.NoError(t, err)

	assert.Equal(t, int64(1), decoded["_id"])
	assert.Equal(t, "test", decoded["_collection"])
	assert.Equal(t, doc["name"], decoded["name"])
	assert.Equal(t, doc["list"], decoded["list"])
	assert.Equal(t, doc["meta"], decoded["meta"])
}
