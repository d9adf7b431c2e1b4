// # internal/shared/observability/server.go
package observability

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthStatus is the payload served on /health.
type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// Healthy reports whether every component is up.
func (h HealthStatus) Healthy() bool {
	return h.Status == "up"
}

// Server exposes Prometheus metrics and a JSON health endpoint on a
// dedicated listener, separate from any user-facing output.
type Server struct {
	server *http.Server
	health func(context.Context) HealthStatus
}

// NewServer builds the observability endpoint on addr. The health func
// is called per request; a nil func reports a bare "up".
func NewServer(addr string, health func(context.Context) HealthStatus) *Server {
	if health == nil {
		health = func(context.Context) HealthStatus {
			return HealthStatus{Status: "up", Timestamp: time.Now().UTC()}
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := health(r.Context())
		w.Header().Set("Content-Type", "application/json")
		if !status.Healthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			slog.Error("failed to encode health status", "error", err)
		}
	})

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		health: health,
	}
}

// Start serves in the background until Stop is called.
func (s *Server) Start() {
	go func() {
		slog.Info("observability server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("observability server failed", "error", err)
		}
	}()
}

// Stop shuts the listener down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
