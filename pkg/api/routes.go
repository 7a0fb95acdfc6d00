package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	// Collection operations
	router.HandleFunc("/collections/{coll}", h.HandleSave).Methods("POST")
	router.HandleFunc("/collections/{coll}/batch", h.HandleBatchSave).Methods("POST")
	router.HandleFunc("/collections/{coll}/find", h.HandleFind).Methods("GET")

	// Document operations (by ID)
	router.HandleFunc("/documents/{id}", h.HandleGetByID).Methods("GET")
	router.HandleFunc("/documents/{id}", h.HandleDeleteByID).Methods("DELETE")

	// Administration
	router.HandleFunc("/admin/init", h.HandleInit).Methods("POST")
	router.HandleFunc("/admin/snapshot", h.HandleSnapshot).Methods("GET")
	router.HandleFunc("/admin/restore", h.HandleRestore).Methods("POST")
}
