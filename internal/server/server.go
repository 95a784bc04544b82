package server

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	httpServer *http.Server
}

const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	// Recovery handlers dial SMTP synchronously, so writes get more
	// headroom than the usual request.
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// normalizeAddr accepts "3000" or ":3000" and returns a listen address.
func normalizeAddr(port string) string {
	if port == "" || strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// Run starts the HTTP server on the given port using the provided handler.
func (s *Server) Run(port string, handler http.Handler) error {
	s.httpServer = newHTTPServer(normalizeAddr(port), handler)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
