package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// HandleDeleteByID handles DELETE requests to remove a specific document
// by ID. Deleting a missing document still returns 204.
func (h *Handler) HandleDeleteByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	log.Printf("INFO: handleDeleteByID called for document %d", id)

	if err := h.repo.DeleteByID(id); err != nil {
		log.Printf("ERROR: Delete failed for document %d: %v", id, err)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("INFO: Deleted document %d", id)
	w.WriteHeader(http.StatusNoContent)
}
