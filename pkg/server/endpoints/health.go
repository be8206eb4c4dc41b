package endpoints

import (
	"net/http"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// HealthResponse is returned by /api/health
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RegisterHealthEndpoints registers the health check endpoint
func RegisterHealthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/health", handleHealth(s.HealthStore)).Methods("GET")
}

func handleHealth(healthStore store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := healthStore.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status: "error",
				Error:  "database connectivity check failed",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, HealthResponse{
			Status: "ok",
			Time:   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
