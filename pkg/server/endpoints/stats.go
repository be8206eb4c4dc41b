package endpoints

import (
	"net/http"

	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

// RegisterStatsEndpoints registers the dashboard statistics endpoint
func RegisterStatsEndpoints(s *server.Server) {
	s.Router.Handle("/api/stats/{userId:[0-9]+}", s.Protected(handleUserStats(s.StatsStore))).Methods("GET")
}

func handleUserStats(stats store.StatsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathInt64(r, "userId")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if !allowUser(w, r, userID) {
			return
		}

		st, err := stats.UserStats(userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if st.PlansByMonth == nil {
			st.PlansByMonth = []store.MonthCount{}
		}
		if st.SubjectsCount == nil {
			st.SubjectsCount = []store.SubjectCount{}
		}
		respondWithJSON(w, http.StatusOK, st)
	}
}
