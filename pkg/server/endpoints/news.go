package endpoints

import (
	"errors"
	"net/http"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

const (
	msgNewsPublishFailed = "Erro ao publicar notícia"
	msgNewsSyncFailed    = "Erro ao sincronizar notícias com IA"
	msgNewsNotFound      = "Notícia não encontrada"
)

// NewsRequest is the body of POST /api/admin/news
type NewsRequest struct {
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	Source        string `json:"source"`
	ExpiresInDays int    `json:"expires_in_days" validate:"min=0"`
}

// RegisterNewsEndpoints registers the news feed routes
func RegisterNewsEndpoints(s *server.Server) {
	log := s.Log.With("component", "news")

	s.Router.Handle("/api/news", s.Protected(handleListNews(s.NewsStore))).Methods("GET")
	s.Router.Handle("/api/admin/news", s.AdminOnly(handlePublishNews(s.NewsStore, log))).Methods("POST")
	s.Router.Handle("/api/admin/news/{id:[0-9]+}", s.AdminOnly(handleDeleteNews(s.NewsStore))).Methods("DELETE")
	s.Router.Handle("/api/ai/sync-news", s.AdminOnly(handleSyncNews(s.News, log))).Methods("POST")
}

func handleListNews(news store.NewsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := news.ListActive(time.Now().UTC())
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if items == nil {
			items = []model.News{}
		}
		respondWithJSON(w, http.StatusOK, items)
	}
}

func handlePublishNews(news store.NewsStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NewsRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		now := time.Now().UTC()
		item := &model.News{
			Title:    req.Title,
			Content:  req.Content,
			Category: req.Category,
			Source:   req.Source,
			Date:     now,
		}
		if item.Source == "" {
			item.Source = model.DefaultNewsSource
		}
		if req.ExpiresInDays > 0 {
			exp := now.AddDate(0, 0, req.ExpiresInDays)
			item.ExpiresAt = &exp
		}

		err := news.Create(item)
		event := audit.NewsEvent{UserID: caller(r).UserID, ClientIP: clientIP(r), Operation: "publish", NewsID: item.ID, Title: item.Title, Success: err == nil}
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			log.Error("failed to publish news", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgNewsPublishFailed)
			return
		}
		audit.Log(event)
		respondSuccess(w)
	}
}

func handleDeleteNews(news store.NewsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		err = news.Delete(id)
		event := audit.NewsEvent{UserID: caller(r).UserID, ClientIP: clientIP(r), Operation: "delete", NewsID: id, Success: err == nil}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		audit.Log(event)
		if err != nil {
			if errors.Is(err, store.ErrNewsNotFound) {
				respondWithError(w, http.StatusNotFound, msgNewsNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		respondSuccess(w)
	}
}

func handleSyncNews(syncer server.NewsSyncer, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := syncer.Sync(r.Context())
		event := audit.NewsEvent{UserID: caller(r).UserID, ClientIP: clientIP(r), Operation: "sync", Count: count, Success: err == nil}
		if err != nil {
			event.ErrorMessage = err.Error()
		}
		audit.Log(event)
		if err != nil {
			log.Error("news sync failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgNewsSyncFailed)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "count": count})
	}
}
