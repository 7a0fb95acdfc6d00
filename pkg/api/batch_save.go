package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/andypymont/inception/pkg/domain"
	"github.com/gorilla/mux"
)

// BatchSaveRequest represents the request body for batch save operations
type BatchSaveRequest struct {
	Documents []domain.Document `json:"documents"`
}

// BatchSaveResponse represents the response for batch save operations
type BatchSaveResponse struct {
	IDs        []int64 `json:"ids"`
	SavedCount int     `json:"saved_count"`
	Collection string  `json:"collection"`
}

// HandleBatchSave handles POST requests to save multiple documents into a
// collection in a single transaction.
func (h *Handler) HandleBatchSave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleBatchSave called for collection '%s'", collName)

	var req BatchSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Documents) == 0 {
		log.Printf("ERROR: No documents provided for batch save")
		WriteJSONError(w, http.StatusBadRequest, "No documents provided")
		return
	}

	ids, err := h.repo.SaveAll(req.Documents, collName)
	if err != nil {
		log.Printf("ERROR: Batch save failed for collection '%s': %v", collName, err)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("INFO: Batch save successful for collection '%s', saved %d documents", collName, len(ids))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(BatchSaveResponse{
		IDs:        ids,
		SavedCount: len(ids),
		Collection: collName,
	})
}
