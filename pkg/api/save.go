package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/andypymont/inception/pkg/domain"
	"github.com/gorilla/mux"
)

// SaveResponse reports the row id assigned (or kept) by a save.
type SaveResponse struct {
	ID         int64  `json:"id"`
	Collection string `json:"collection"`
}

// HandleSave handles POST requests to save a document into a collection.
// A document carrying an _id replaces the stored document with that id.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]

	log.Printf("INFO: handleSave called for collection '%s'", collName)

	var doc domain.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.repo.Save(doc, collName)
	if err != nil {
		log.Printf("ERROR: Save failed for collection '%s': %v", collName, err)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("INFO: Save successful for collection '%s', id %d", collName, id)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SaveResponse{ID: id, Collection: collName})
}
