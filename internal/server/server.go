// Package server exposes the detection pipeline over HTTP.
package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/heliowatch/coronal-edge/internal/config"
	"github.com/heliowatch/coronal-edge/internal/fetch"
)

// Server wires the fetch client and configuration into HTTP handlers.
type Server struct {
	cfg    *config.Config
	client *fetch.Client
}

// New creates a server instance from the loaded configuration.
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:    cfg,
		client: fetch.NewClient(cfg.FetchTimeout, cfg.UserAgent),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/detect", s.handleDetect)
	mux.HandleFunc("/health", s.handleHealth)
	return corsMiddleware(gzipMiddleware(mux))
}

// Run blocks serving HTTP on the configured port.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Port
	log.Printf("coronal-edge listening on %s (source template %s)", addr, s.cfg.SourceTemplate)

	if err := http.ListenAndServe(addr, s.Handler()); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// corsMiddleware allows browser dashboards on other origins to call the
// JSON surface directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// gzipMiddleware compresses responses for clients that accept it. The
// JSON document embeds a base64 preview, so compression roughly halves
// the payload.
func gzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, gz: gz}, r)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gz *gzip.Writer
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.gz.Write(b)
}
