// Package health serves liveness and readiness probes for the bot process
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const readinessTimeout = 2 * time.Second

// Pinger is anything that can report whether its backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is a named readiness dependency
type Check struct {
	Name   string
	Pinger Pinger
}

// NewRouter registers /livez and /readyz
func NewRouter(checks ...Check) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, checks...)
	return router
}

// RegisterRoutes adds the probe routes to an existing router
func RegisterRoutes(router *mux.Router, checks ...Check) {
	router.HandleFunc("/livez", LivezHandler()).Methods(http.MethodGet)
	router.HandleFunc("/readyz", ReadyzHandler(checks...)).Methods(http.MethodGet)
}

// NewServer wraps the router in an http.Server with conservative timeouts
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// LivezHandler always answers ok while the process is serving
func LivezHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
		})
	}
}

// ReadyzHandler pings every check and answers 503 if any is down
func ReadyzHandler(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := "ready"
		statusCode := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, check := range checks {
			if err := check.Pinger.Ping(ctx); err != nil {
				results[check.Name] = "down"
				status = "not_ready"
				statusCode = http.StatusServiceUnavailable
				continue
			}
			results[check.Name] = "ok"
		}

		writeJSON(w, statusCode, map[string]any{
			"status": status,
			"checks": results,
		})
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
