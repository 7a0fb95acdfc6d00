package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andypymont/inception/pkg/db"
	"github.com/andypymont/inception/pkg/server"
	"github.com/andypymont/inception/pkg/storage"
)

func main() {
	// Command line flags
	var (
		port     = flag.String("port", "8080", "Server port")
		backend  = flag.String("backend", "sqlite", "Storage backend: sqlite or mysql")
		dsn      = flag.String("dsn", "inception.db", "SQLite file path, or MySQL DSN (user:password@tcp(host:3306)/dbname)")
		initDB   = flag.Bool("init", false, "Drop and recreate the backing table before serving (destroys existing data)")
		showHelp = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ninception is a document store over a relational engine.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -init                                      # Fresh SQLite store, defaults\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -dsn /var/lib/inception/data.db            # Custom SQLite path\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -backend mysql -dsn 'app:pw@tcp(db)/docs'  # MySQL backend\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nSafety Note:\n")
		fmt.Fprintf(os.Stderr, "  -init drops the backing table. Run it once for a new store, never on\n")
		fmt.Fprintf(os.Stderr, "  a store holding data you care about.\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	adapter, err := storage.Open(*backend, *dsn)
	if err != nil {
		log.Fatalf("Could not open %s backend: %v", *backend, err)
	}
	defer adapter.Close()
	log.Printf("INFO: Using %s backend (%s)", *backend, *dsn)

	database := db.New(adapter)

	if *initDB {
		if err := database.Init(); err != nil {
			log.Fatalf("Could not initialize store: %v", err)
		}
		log.Printf("INFO: Backing table created")
	}

	srv := server.NewServer(database, database)

	// Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + *port,
		Handler: srv.Router(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting inception server on :%s", *port)
		log.Printf("API endpoints available at http://localhost:%s", *port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
