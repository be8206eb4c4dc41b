package endpoints

import (
	"errors"
	"net/http"

	"github.com/ppa-angola/portal-pedagogico/pkg/gdrive"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
)

const (
	msgDriveFailed        = "Erro ao enviar para o Google Drive"
	msgDriveNotConfigured = "Integração com o Google Drive não configurada"
)

// DriveUploadRequest is the body of POST /api/google/upload
type DriveUploadRequest struct {
	Code    string `json:"code" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// RegisterGoogleEndpoints registers the Google Drive export flow
func RegisterGoogleEndpoints(s *server.Server) {
	log := s.Log.With("component", "gdrive")

	s.Router.HandleFunc("/api/auth/google/url", handleGoogleURL(s.Drive)).Methods("GET")
	s.Router.HandleFunc("/auth/google/callback", handleGoogleCallback(log)).Methods("GET")
	s.Router.Handle("/api/google/upload", s.Protected(handleDriveUpload(s.Drive, log))).Methods("POST")
}

func handleGoogleURL(drive gdrive.Uploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := drive.AuthURL()
		if err != nil {
			respondWithError(w, http.StatusServiceUnavailable, msgDriveNotConfigured)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

func handleGoogleCallback(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := gdrive.WriteCallbackPage(w, r.URL.Query().Get("code")); err != nil {
			log.Error("failed to render callback page", "error", err)
		}
	}
}

func handleDriveUpload(drive gdrive.Uploader, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DriveUploadRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		fileID, err := drive.Upload(r.Context(), req.Code, req.Title, req.Content)
		if err != nil {
			if errors.Is(err, gdrive.ErrNotConfigured) {
				respondWithError(w, http.StatusServiceUnavailable, msgDriveNotConfigured)
				return
			}
			log.Error("drive upload failed", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgDriveFailed)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "fileId": fileID})
	}
}
