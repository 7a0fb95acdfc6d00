// Package server wires the document store API onto an HTTP router. This
// is the hosting surface; the store itself lives in pkg/db and can be used
// directly without any of this.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/andypymont/inception/pkg/api"
	"github.com/andypymont/inception/pkg/domain"
)

// Server holds the router and the repository it serves.
type Server struct {
	router *mux.Router
}

// NewServer creates a new instance of Server around the given repository.
// The snapshotter may be nil to disable the snapshot endpoints.
func NewServer(repo domain.Repository, snapshots domain.Snapshotter) *Server {
	s := &Server{
		router: mux.NewRouter(),
	}

	handler := api.NewHandler(repo, snapshots)
	handler.RegisterRoutes(s.router)

	// Use the logging middleware for all routes
	s.router.Use(requestLoggerMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s took %s", r.Method, r.URL.Path, elapsed)
	})
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}
