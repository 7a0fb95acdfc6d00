package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/andypymont/inception/pkg/domain"
	"github.com/gorilla/mux"
)

// HandleFind handles GET requests to retrieve the documents in a
// collection, optionally filtered by equality query parameters.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleFind called for collection '%s'", collName)

	// Each query parameter becomes an equality condition. Numeric-looking
	// values are compared as numbers so ?age=30 matches stored numbers.
	query := domain.Query{}
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		value := values[0]
		if num, err := strconv.ParseFloat(value, 64); err == nil {
			query[key] = domain.Equals(num)
		} else {
			query[key] = domain.Equals(value)
		}
	}
	if len(query) == 0 {
		query = nil
	}

	docs, err := h.repo.Get(collName, query)
	if err != nil {
		log.Printf("ERROR: Find failed for collection '%s': %v", collName, err)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	log.Printf("INFO: Found %d documents in collection '%s'", len(docs), collName)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}
