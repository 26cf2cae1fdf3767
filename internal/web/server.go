package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/research"
)

type Server struct {
	router *http.ServeMux
	port   int
	svc    *research.Service
	logger domain.Logger
}

func NewServer(svc *research.Service, port int, logger domain.Logger) *Server {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	s := &Server{
		router: http.NewServeMux(),
		port:   port,
		svc:    svc,
		logger: logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.HandleFunc("POST /entries", s.handleAddEntry)
	s.router.HandleFunc("GET /entries", s.handleViewEntries)
	s.router.HandleFunc("GET /analysis", s.handleAnalysis)
	s.router.HandleFunc("POST /save", s.handleSave)

	// JSON API
	s.router.HandleFunc("GET /api/entries", s.handleAPIEntries)
	s.router.HandleFunc("GET /api/analysis", s.handleAPIAnalysis)
	s.router.HandleFunc("GET /api/export", s.handleAPIExport)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Starting server at http://localhost:%d\n", s.port)
	s.logger.Info(fmt.Sprintf("Web form listening on :%d", s.port))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(fmt.Sprintf("Server shutdown error: %v", err))
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
