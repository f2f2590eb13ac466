// Package server provides the HTTP API for the career coaching app.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gapdebug/gapdebug/internal/extract"
	"github.com/gapdebug/gapdebug/internal/llm"
	"github.com/gapdebug/gapdebug/internal/store"
	"github.com/gapdebug/gapdebug/internal/types"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler

	client    llm.Client
	models    *llm.Config
	extractor extract.Extractor
	liveCtx   *store.ContextStore
	profiles  *store.ProfileCache
}

// Config holds server dependencies and settings
type Config struct {
	Port      int
	Client    llm.Client
	Models    *llm.Config
	Extractor extract.Extractor
	Context   *store.ContextStore
	Profiles  *store.ProfileCache
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		client:    cfg.Client,
		models:    cfg.Models,
		extractor: cfg.Extractor,
		liveCtx:   cfg.Context,
		profiles:  cfg.Profiles,
	}
	if s.models == nil {
		s.models = llm.DefaultConfig()
	}

	mux := http.NewServeMux()

	// AI endpoints
	mux.HandleFunc("POST /api/parse-resume", s.handleParseResume)
	mux.HandleFunc("POST /api/analyze-profile", s.handleAnalyzeProfile)
	mux.HandleFunc("POST /api/generate-roadmap", s.handleGenerateRoadmap)
	mux.HandleFunc("POST /api/generate-pathway", s.handleGeneratePathway)

	// Live context endpoints
	mux.HandleFunc("GET /api/context/skills", s.handleListSkills)
	mux.HandleFunc("POST /api/context/skills", s.handleAddSkill)
	mux.HandleFunc("POST /api/context/skills/hydrate", s.handleHydrateSkills)
	mux.HandleFunc("PATCH /api/context/skills/{id}", s.handleUpdateSkill)
	mux.HandleFunc("DELETE /api/context/skills/{id}", s.handleRemoveSkill)
	mux.HandleFunc("GET /api/context/achievements", s.handleListAchievements)
	mux.HandleFunc("POST /api/context/achievements", s.handleAddAchievement)
	mux.HandleFunc("DELETE /api/context/achievements/{id}", s.handleRemoveAchievement)

	// Cached profile endpoints
	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handleSaveProfile)

	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = s.withLogging(s.withCORS(mux))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for model calls
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the configured root handler. Used in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// success writes the uniform success envelope.
func (s *Server) success(w http.ResponseWriter, data any) {
	s.writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: data})
}

// failure writes the uniform failure envelope.
func (s *Server) failure(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, types.APIResponse{Success: false, Error: message})
}

// fail logs a handler error and writes the failure envelope with a status
// derived from the error kind.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	logFailure(r, err)
	s.failure(w, HTTPStatus(err), err.Error())
}
