// Package api serves the CTD database over HTTP as a JSON API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bio2bel/ctd/internal/database"
)

// Server represents the HTTP API server
type Server struct {
	router *mux.Router
	server *http.Server
	db     *database.DB
	fts    *database.FTS5Manager
	ownsDB bool
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	DatabasePath string
	EnableCORS   bool
}

// NewServer creates a new API server instance, opening the database at the
// configured path.
func NewServer(cfg *Config) (*Server, error) {
	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := NewServerWithDB(cfg, db)
	s.ownsDB = true
	return s, nil
}

// NewServerWithDB creates an API server over an already-open database. The
// caller keeps ownership of db.
func NewServerWithDB(cfg *Config, db *database.DB) *Server {
	s := &Server{
		router: mux.NewRouter(),
		db:     db,
		fts:    database.NewFTS5Manager(db),
	}

	s.setupRoutes()

	if cfg.EnableCORS {
		s.router.Use(corsMiddleware)
	}
	s.router.Use(loggingMiddleware)
	s.router.Use(jsonMiddleware)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Vocabulary endpoints
	api.HandleFunc("/chemicals", s.handleListChemicals).Methods("GET")
	api.HandleFunc("/chemicals/{id}", s.handleGetChemical).Methods("GET")
	api.HandleFunc("/chemicals/{id}/interactions", s.handleChemicalInteractions).Methods("GET")
	api.HandleFunc("/chemicals/{id}/diseases", s.handleChemicalDiseases).Methods("GET")
	api.HandleFunc("/diseases", s.handleListDiseases).Methods("GET")
	api.HandleFunc("/diseases/{id}", s.handleGetDisease).Methods("GET")
	api.HandleFunc("/genes", s.handleListGenes).Methods("GET")
	api.HandleFunc("/genes/{id}", s.handleGetGene).Methods("GET")
	api.HandleFunc("/genes/{id}/interactions", s.handleGeneInteractions).Methods("GET")
	api.HandleFunc("/pathways/{id}", s.handleGetPathway).Methods("GET")
	api.HandleFunc("/actions/{code}", s.handleGetAction).Methods("GET")
	api.HandleFunc("/interactions/{id}", s.handleGetInteraction).Methods("GET")

	// Search and statistics
	api.HandleFunc("/search", s.handleSearch).Methods("GET")
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	s.router.HandleFunc("/", s.handleRoot).Methods("GET")
}

// Router exposes the configured routes for testing
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if s.ownsDB && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Middleware functions

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Helper functions

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"status":  status,
	})
}

// handleRoot returns API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "bio2bel_ctd API",
		"version":     "1.0.0",
		"description": "Comparative Toxicogenomics Database API",
		"endpoints": map[string]string{
			"chemicals": "/api/v1/chemicals",
			"diseases":  "/api/v1/diseases",
			"genes":     "/api/v1/genes",
			"search":    "/api/v1/search",
			"stats":     "/api/v1/stats",
			"health":    "/api/v1/health",
		},
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleHealth returns health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if err := s.db.Ping(); err != nil {
		health["status"] = "unhealthy"
		health["database"] = err.Error()
	} else {
		health["database"] = "healthy"
	}

	status := http.StatusOK
	if health["status"] != "healthy" {
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, health)
}
