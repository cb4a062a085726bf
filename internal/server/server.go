// Package server exposes the structural operations over HTTP. Every
// endpoint is a thin adapter: decode a small request envelope, run the pure
// engine call, encode the response shape. The engine itself holds no state,
// so the handlers are safe under any concurrency the router provides.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jaathavan18/jot/internal/config"
)

// Server wires the engine operations into an HTTP router.
type Server struct {
	cfg *config.Config
}

// New returns a Server using the given configuration.
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Server{cfg: cfg}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/get", s.handleGet)
		r.Post("/merge", s.handleMerge)
		r.Post("/diff", s.handleDiff)
		r.Post("/format", s.handleFormat)
		r.Post("/validate", s.handleValidate)
	})
	return r
}

// ListenAndServe starts the HTTP server on the configured address and
// blocks until it stops.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.Server.ListenAddr,
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("listening on %s", srv.Addr)
	return srv.ListenAndServe()
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
