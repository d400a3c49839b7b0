// Package health serves the optional per-daemon health endpoint.
package health

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Router returns the health endpoint router for one service.
func Router(service string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"service": service,
		})
	})
	return r
}

// Serve runs the health endpoint until the process exits. Intended to be
// called in a goroutine; failures are logged, never fatal.
func Serve(addr, service string, log *zap.Logger) {
	if addr == "" {
		return
	}
	log.Info("health endpoint listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, Router(service)); err != nil {
		log.Warn("health endpoint stopped", zap.Error(err))
	}
}
