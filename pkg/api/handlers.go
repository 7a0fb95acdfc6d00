package api

import (
	"github.com/andypymont/inception/pkg/domain"
)

// Handler provides HTTP handlers for the document store API
type Handler struct {
	repo      domain.Repository
	snapshots domain.Snapshotter
}

// NewHandler creates a new API handler with dependency injection. The
// snapshotter may be nil, in which case the snapshot endpoints respond
// with 501 Not Implemented.
func NewHandler(repo domain.Repository, snapshots domain.Snapshotter) *Handler {
	return &Handler{
		repo:      repo,
		snapshots: snapshots,
	}
}
