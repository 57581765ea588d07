// Package server implements the development server. Pages compile on every
// request, so edits show up on refresh without a rebuild.
package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/InfiniteCoder01/neohtml/internal/config"
	"github.com/InfiniteCoder01/neohtml/internal/page"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router chi.Router
	dir    string
	cfg    config.Config
	log    *slog.Logger
	static http.Handler
}

func New(dir string, cfg config.Config, log *slog.Logger) *Server {
	s := &Server{
		dir:    dir,
		cfg:    cfg,
		log:    log,
		static: http.FileServer(http.Dir(dir)),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/*", s.handlePage)

	s.router = r
}

// handlePage compiles the matching page source when one exists; anything
// else falls through to static files from the source directory.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" || strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	source, ok := s.sourceFor(name)
	if !ok {
		s.static.ServeHTTP(w, r)
		return
	}

	pg, err := page.Load(source, s.cfg.Page())
	if err != nil {
		s.log.Error("parse failed", "page", source, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out, err := pg.Render("/")
	if err != nil {
		s.log.Error("render failed", "page", source, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(out))
}

// sourceFor maps a request path like "docs/intro.html" (or "docs/intro") to
// an existing page source under the server root.
func (s *Server) sourceFor(name string) (string, bool) {
	name = strings.TrimSuffix(name, ".html")
	full := filepath.Join(s.dir, filepath.FromSlash(name)+s.cfg.Extension)

	// filepath.Join cleans the path; reject anything that climbed out.
	if rel, err := filepath.Rel(s.dir, full); err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if info, err := os.Stat(full); err != nil || info.IsDir() {
		return "", false
	}
	return full, true
}
