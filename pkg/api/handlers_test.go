package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andypymont/inception/pkg/domain"
)

func newTestRouter(repo domain.Repository, snapshots domain.Snapshotter) *mux.Router {
	router := mux.NewRouter()
	NewHandler(repo, snapshots).RegisterRoutes(router)
	return router
}

func TestHandler_HandleSave(t *testing.T) {
	tests := []struct {
		name           string
		collection     string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid document",
			collection:     "users",
			body:           `{"name":"Alice","age":30}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "document with existing id",
			collection:     "users",
			body:           `{"_id":123,"name":"Bob"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "malformed body",
			collection:     "users",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockRepository()
			router := newTestRouter(mock, nil)

			req := httptest.NewRequest("POST", "/collections/"+tt.collection, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp SaveResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Positive(t, resp.ID)
				assert.Equal(t, tt.collection, resp.Collection)
				assert.Equal(t, 1, mock.GetSaveCalls())
			}
		})
	}
}

func TestHandler_HandleBatchSave(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "three documents",
			body:           `{"documents":[{"name":"One"},{"name":"Two"},{"name":"Three"}]}`,
			expectedStatus: http.StatusCreated,
			expectedCount:  3,
		},
		{
			name:           "empty batch",
			body:           `{"documents":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{{{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockRepository()
			router := newTestRouter(mock, nil)

			req := httptest.NewRequest("POST", "/collections/test/batch", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				var resp BatchSaveResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Len(t, resp.IDs, tt.expectedCount)
				assert.Equal(t, tt.expectedCount, resp.SavedCount)
				assert.Equal(t, tt.expectedCount, mock.GetDocumentCount())
			}
		})
	}
}

func TestHandler_HandleFind(t *testing.T) {
	mock := NewMockRepository()
	_, err := mock.SaveAll([]domain.Document{
		{"name": "Alice", "age": float64(30)},
		{"name": "Bob", "age": float64(25)},
	}, "users")
	require.NoError(t, err)
	router := newTestRouter(mock, nil)

	tests := []struct {
		name          string
		url           string
		expectedNames []string
	}{
		{
			name:          "no filter returns everything",
			url:           "/collections/users/find",
			expectedNames: []string{"Alice", "Bob"},
		},
		{
			name:          "string equality filter",
			url:           "/collections/users/find?name=Alice",
			expectedNames: []string{"Alice"},
		},
		{
			name:          "numeric filter matches stored numbers",
			url:           "/collections/users/find?age=25",
			expectedNames: []string{"Bob"},
		},
		{
			name:          "no matches yields empty list",
			url:           "/collections/users/find?name=Carol",
			expectedNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			var docs []domain.Document
			require.NoError(t, json.NewDecoder(w.Body).Decode(&docs))
			require.Len(t, docs, len(tt.expectedNames))

			names := map[string]bool{}
			for _, doc := range docs {
				names[doc["name"].(string)] = true
			}
			for _, name := range tt.expectedNames {
				assert.True(t, names[name], "missing %s", name)
			}
		})
	}
}

func TestHandler_HandleGetByID(t *testing.T) {
	mock := NewMockRepository()
	id, err := mock.Save(domain.Document{"name": "Alice"}, "users")
	require.NoError(t, err)
	router := newTestRouter(mock, nil)

	t.Run("existing document", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/documents/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var doc domain.Document
		require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
		assert.Equal(t, "Alice", doc["name"])
		assert.Equal(t, float64(id), doc["_id"])
	})

	t.Run("missing document", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/documents/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/documents/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_HandleDeleteByID(t *testing.T) {
	mock := NewMockRepository()
	id, err := mock.Save(domain.Document{"name": "Alice"}, "users")
	require.NoError(t, err)
	router := newTestRouter(mock, nil)

	req := httptest.NewRequest("DELETE", "/documents/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	doc, err := mock.GetByID(id)
	require.NoError(t, err)
	assert.Nil(t, doc)

	// Deleting again still succeeds.
	req = httptest.NewRequest("DELETE", "/documents/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_HandleInit(t *testing.T) {
	mock := NewMockRepository()
	_, err := mock.Save(domain.Document{"name": "Alice"}, "users")
	require.NoError(t, err)
	router := newTestRouter(mock, nil)

	req := httptest.NewRequest("POST", "/admin/init", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, mock.GetDocumentCount())
}

func TestHandler_SnapshotEndpointsWithoutSnapshotter(t *testing.T) {
	router := newTestRouter(NewMockRepository(), nil)

	req := httptest.NewRequest("GET", "/admin/snapshot", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	req = httptest.NewRequest("POST", "/admin/restore", bytes.NewBufferString("x"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestHandler_RepositoryErrorsBecome500s(t *testing.T) {
	mock := NewMockRepository()
	mock.FailWith(errors.New("engine exploded"))
	router := newTestRouter(mock, nil)

	req := httptest.NewRequest("POST", "/collections/users", bytes.NewBufferString(`{"name":"x"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "engine exploded", resp.Message)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
