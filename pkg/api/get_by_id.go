package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// HandleGetByID handles GET requests to retrieve a specific document by ID
func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	log.Printf("INFO: handleGetByID called for document %d", id)

	doc, err := h.repo.GetByID(id)
	if err != nil {
		log.Printf("ERROR: Fetch failed for document %d: %v", id, err)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if doc == nil {
		log.Printf("INFO: Document %d not found", id)
		WriteJSONError(w, http.StatusNotFound, "Document not found")
		return
	}

	log.Printf("INFO: Retrieved document %d", id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}
