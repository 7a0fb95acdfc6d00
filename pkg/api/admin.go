package api

import (
	"log"
	"net/http"
)

// HandleInit handles POST requests to (re)create the backing table.
// Destructive: any existing documents are dropped.
func (h *Handler) HandleInit(w http.ResponseWriter, r *http.Request) {
	log.Printf("INFO: handleInit called")

	if err := h.repo.Init(); err != nil {
		log.Printf("ERROR: Init failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("INFO: Store initialized")
	w.WriteHeader(http.StatusNoContent)
}

// HandleSnapshot handles GET requests to export the whole store as a
// portable snapshot stream.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		WriteJSONError(w, http.StatusNotImplemented, "Snapshots not supported")
		return
	}

	log.Printf("INFO: handleSnapshot called")

	w.Header().Set("Content-Type", "application/octet-stream")
	if err := h.snapshots.Export(w); err != nil {
		// Headers are already gone; all we can do is log.
		log.Printf("ERROR: Snapshot export failed: %v", err)
		return
	}

	log.Printf("INFO: Snapshot exported")
}

// HandleRestore handles POST requests to import a snapshot stream,
// replacing rows whose ids it carries.
func (h *Handler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		WriteJSONError(w, http.StatusNotImplemented, "Snapshots not supported")
		return
	}

	log.Printf("INFO: handleRestore called")

	if err := h.snapshots.Import(r.Body); err != nil {
		log.Printf("ERROR: Snapshot import failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("INFO: Snapshot imported")
	w.WriteHeader(http.StatusNoContent)
}
