package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/NgigiN/momo/internal/config"
	"github.com/NgigiN/momo/internal/records"
)

type Server struct {
	engine    *records.Engine
	auth      config.AuthConfig
	startTime time.Time
	http      *http.Server
}

func NewServer(engine *records.Engine, cfg *config.Config) *Server {
	s := &Server{
		engine:    engine,
		auth:      cfg.Auth,
		startTime: time.Now(),
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in logging, CORS and auth.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/transactions", s.handleCollection)
	mux.HandleFunc("/transactions/{id}", s.handleItem)
	mux.HandleFunc("/search/id/{id}", s.handleSearchByID)
	mux.HandleFunc("/search/type", s.handleSearchByType)
	mux.HandleFunc("/search/range", s.handleSearchByRange)
	mux.HandleFunc("/search/amount", s.handleSearchByAmount)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeRouteNotFound, "Endpoint not found")
	})

	return withRequestLog(withCORS(s.withBasicAuth(mux)))
}

func (s *Server) Start() error {
	log.Printf("MoMo SMS API server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
