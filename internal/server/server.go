// Package server exposes the question-answering and ingestion pipelines
// over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ragdoc/ragdoc/internal/db"
	"github.com/ragdoc/ragdoc/internal/ingest"
	"github.com/ragdoc/ragdoc/internal/retrieval"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server serves queries against the document index and accepts new
// documents for ingestion. Any dependency may be nil; the affected
// endpoints then answer 503.
type Server struct {
	cfg        Config
	pipeline   *retrieval.Pipeline
	ingestor   *ingest.Pipeline
	catalog    *db.DB
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies wired.
func New(cfg Config, pipeline *retrieval.Pipeline, ingestor *ingest.Pipeline, catalog *db.DB) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		ingestor: ingestor,
		catalog:  catalog,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/health", s.handleHealth)
	r.Post("/query", s.handleQuery)
	r.Post("/ingest", s.handleIngest)
	r.Get("/documents", s.handleDocuments)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("ragdoc server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
