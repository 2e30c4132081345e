package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// HealthCheck reports whether a dependency is usable
type HealthCheck func(ctx context.Context) error

// HTTPServer serves /metrics and /healthz
type HTTPServer struct {
	server *http.Server
}

// NewRouter builds the operational routes. checks run on every /healthz request.
func NewRouter(metrics http.Handler, checks map[string]HealthCheck) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		for name, check := range checks {
			if err := check(req.Context()); err != nil {
				log.WithError(err).WithField("check", name).Warn("Health check failed")
				http.Error(w, fmt.Sprintf("%s: unavailable", name), http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// NewHTTPServer creates a server listening on addr
func NewHTTPServer(addr string, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves in the background until Shutdown
func (s *HTTPServer) Start() {
	go func() {
		log.WithField("addr", s.server.Addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server stopped")
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests until ctx expires
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
