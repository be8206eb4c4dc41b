package endpoints

import (
	"errors"
	"net/http"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

const (
	msgAlreadyShared     = "Este plano já foi partilhado."
	msgShareFailed       = "Erro ao partilhar plano."
	msgInvalidStatus     = "Estado inválido"
	msgCommunityNotFound = "Plano não encontrado"
)

// ShareRequest is the body of POST /api/community/share
type ShareRequest struct {
	UserID  int64  `json:"userId"`
	PlanID  *int64 `json:"planId"`
	Title   string `json:"title" validate:"required"`
	Subject string `json:"subject"`
	Classe  string `json:"classe"`
	Content string `json:"content" validate:"required"`
}

// ModerateRequest is the body of POST /api/admin/community/moderate
type ModerateRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// RegisterCommunityEndpoints registers the shared plan repository
func RegisterCommunityEndpoints(s *server.Server) {
	log := s.Log.With("component", "community")

	s.Router.Handle("/api/community/plans", s.Protected(handleCommunityPlans(s.CommunityStore))).Methods("GET")
	s.Router.Handle("/api/community/share", s.Protected(handleSharePlan(s.CommunityStore, log))).Methods("POST")
	s.Router.Handle("/api/community/like", s.Protected(handleLikePlan(s.CommunityStore))).Methods("POST")
	s.Router.Handle("/api/admin/community/pending", s.AdminOnly(handlePendingPlans(s.CommunityStore))).Methods("GET")
	s.Router.Handle("/api/admin/community/moderate", s.AdminOnly(handleModeratePlan(s.CommunityStore))).Methods("POST")
}

func respondPlanViews(w http.ResponseWriter, list []model.CommunityPlanView, err error) {
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if list == nil {
		list = []model.CommunityPlanView{}
	}
	respondWithJSON(w, http.StatusOK, list)
}

func handleCommunityPlans(community store.CommunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := community.ListApproved()
		respondPlanViews(w, list, err)
	}
}

func handlePendingPlans(community store.CommunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := community.ListPending()
		respondPlanViews(w, list, err)
	}
}

func handleSharePlan(community store.CommunityStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShareRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !allowUser(w, r, req.UserID) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		plan := &model.CommunityPlan{
			UserID:  req.UserID,
			PlanID:  req.PlanID,
			Title:   req.Title,
			Subject: req.Subject,
			Classe:  req.Classe,
			Content: req.Content,
			Status:  status.CommunityPendente,
		}
		if err := community.Share(plan); err != nil {
			if errors.Is(err, store.ErrAlreadyShared) {
				respondWithError(w, http.StatusBadRequest, msgAlreadyShared)
				return
			}
			log.Error("failed to share plan", "user_id", req.UserID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgShareFailed)
			return
		}
		respondSuccess(w)
	}
}

func handleLikePlan(community store.CommunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int64 `json:"id"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := community.Like(req.ID); err != nil {
			if errors.Is(err, store.ErrCommunityPlanNotFound) {
				respondWithError(w, http.StatusNotFound, msgCommunityNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		respondSuccess(w)
	}
}

func handleModeratePlan(community store.CommunityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ModerateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		st, err := status.CommunityStatusString(req.Status)
		if err != nil || !st.IsModeration() {
			respondWithError(w, http.StatusBadRequest, msgInvalidStatus)
			return
		}

		err = community.Moderate(req.ID, st)
		event := audit.ModerationEvent{
			UserID:     caller(r).UserID,
			ClientIP:   clientIP(r),
			Kind:       "community",
			ResourceID: req.ID,
			Outcome:    st.String(),
			Success:    err == nil,
		}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		audit.Log(event)
		if err != nil {
			if errors.Is(err, store.ErrCommunityPlanNotFound) {
				respondWithError(w, http.StatusNotFound, msgCommunityNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		respondSuccess(w)
	}
}
