package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

const (
	msgFeedbackFailed   = "Erro ao enviar feedback"
	msgFeedbackNotFound = "Feedback não encontrado"
)

// FeedbackRequest is the body of POST /api/feedback
type FeedbackRequest struct {
	UserID  int64  `json:"userId"`
	Content string `json:"content" validate:"required"`
	Type    string `json:"type" validate:"required"`
}

// RegisterFeedbackEndpoints registers teacher feedback and its moderation
func RegisterFeedbackEndpoints(s *server.Server) {
	log := s.Log.With("component", "feedback")

	s.Router.Handle("/api/feedback", s.Protected(handleSendFeedback(s.FeedbackStore, s.UsersStore, s.Notifier, log))).Methods("POST")
	s.Router.Handle("/api/admin/feedback", s.AdminOnly(handleListFeedback(s.FeedbackStore))).Methods("GET")
	s.Router.Handle("/api/admin/feedback/resolve", s.AdminOnly(handleResolveFeedback(s.FeedbackStore))).Methods("POST")
}

func handleSendFeedback(feedback store.FeedbackStore, users store.UsersStore, notifier server.AdminNotifier, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FeedbackRequest
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

		kind := model.NormalizeFeedbackType(req.Type)
		if kind == "" {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		user, err := users.FindByID(req.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgFeedbackFailed)
			return
		}
		if err := feedback.Create(&model.Feedback{UserID: req.UserID, Content: req.Content, Type: kind}); err != nil {
			log.Error("failed to store feedback", "user_id", req.UserID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgFeedbackFailed)
			return
		}

		subject := "Novo Feedback Recebido: " + strings.ToUpper(kind)
		body := fmt.Sprintf("Usuário: %s\nTipo: %s\n\nConteúdo:\n%s", user.DisplayName(), kind, req.Content)
		if _, err := notifier.NotifyAdmin(r.Context(), subject, body); err != nil {
			log.Warn("failed to notify admin of feedback", "user_id", req.UserID, "error", err)
		}
		respondSuccess(w)
	}
}

func handleListFeedback(feedback store.FeedbackStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := feedback.ListWithUsers()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if list == nil {
			list = []model.FeedbackView{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleResolveFeedback(feedback store.FeedbackStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID int64 `json:"id"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		err := feedback.Resolve(req.ID)
		event := audit.ModerationEvent{
			UserID:     caller(r).UserID,
			ClientIP:   clientIP(r),
			Kind:       "feedback",
			ResourceID: req.ID,
			Outcome:    status.FeedbackResolvido.String(),
			Success:    err == nil,
		}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		audit.Log(event)
		if err != nil {
			if errors.Is(err, store.ErrFeedbackNotFound) {
				respondWithError(w, http.StatusNotFound, msgFeedbackNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		respondSuccess(w)
	}
}
