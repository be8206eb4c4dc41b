package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator/password"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

const (
	msgUserUpdateFailed    = "Erro ao atualizar usuário"
	msgUserDeleteFailed    = "Erro ao eliminar usuário"
	msgProfileUpdateFailed = "Erro ao atualizar perfil"
	activationTemplate     = "Acesso permitido. Bem-vindo(a) ao Portal Pedagógico Angola (PPA). A sua Senha é %s"
)

// UpdateUserRequest is the body of POST /api/admin/update-user
type UpdateUserRequest struct {
	ID            int64  `json:"id" validate:"required"`
	DataExpiracao string `json:"data_expiracao"`
	PlanoTipo     string `json:"plano_tipo"`
	LimitePlanos  *int   `json:"limite_planos" validate:"omitempty,min=0"`
	Status        string `json:"status"`
}

// UpdateUserResponse carries the one-time activation message, if any
type UpdateUserResponse struct {
	Success           bool    `json:"success"`
	ActivationMessage *string `json:"activationMessage"`
}

// ProfileRequest is the body of POST /api/profile/update
type ProfileRequest struct {
	ID              int64  `json:"id" validate:"required"`
	ProfessorNome   string `json:"professor_nome"`
	NumeroAgente    string `json:"numero_agente"`
	Biografia       string `json:"biografia"`
	Especializacoes string `json:"especializacoes"`
	FotoURL         string `json:"foto_url"`
	Escola          string `json:"escola"`
	Provincia       string `json:"provincia"`
	Municipio       string `json:"municipio"`
}

// RegisterUserEndpoints registers user administration and profile editing
func RegisterUserEndpoints(s *server.Server) {
	log := s.Log.With("component", "users")

	s.Router.Handle("/api/admin/users", s.AdminOnly(handleListUsers(s.UsersStore))).Methods("GET")
	s.Router.Handle("/api/admin/update-user", s.AdminOnly(handleUpdateUser(s.UsersStore, log, time.Now))).Methods("POST")
	s.Router.Handle("/api/admin/users/{id:[0-9]+}", s.AdminOnly(handleDeleteUser(s.UsersStore, log))).Methods("DELETE")
	s.Router.Handle("/api/profile/update", s.Protected(handleUpdateProfile(s.UsersStore, log))).Methods("POST")
}

func handleListUsers(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if list == nil {
			list = []model.User{}
		}
		respondWithJSON(w, http.StatusOK, list)
	}
}

func handleUpdateUser(users store.UsersStore, log *logger.Logger, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		current, err := users.FindByID(req.ID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, msgUserNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		next := current.Status
		if req.Status != "" {
			if next, err = status.UserStatusString(req.Status); err != nil {
				respondWithError(w, http.StatusBadRequest, msgInvalidStatus)
				return
			}
		}

		adminID := caller(r).UserID
		event := audit.UserEvent{UserID: adminID, TargetID: req.ID, ClientIP: clientIP(r), Operation: "update", Status: next.String()}

		err = users.UpdateAdmin(req.ID, store.UserAdminUpdate{
			DataAtivacao:  now().UTC().Format(time.RFC3339),
			DataExpiracao: req.DataExpiracao,
			PlanoTipo:     req.PlanoTipo,
			LimitePlanos:  req.LimitePlanos,
			Status:        next,
		})
		if err != nil {
			log.Error("failed to update user", "user_id", req.ID, "error", err)
			event.ErrorMessage = err.Error()
			audit.Log(event)
			respondWithError(w, http.StatusInternalServerError, msgUserUpdateFailed)
			return
		}
		event.Success = true
		audit.Log(event)

		resp := UpdateUserResponse{Success: true}
		if current.Status == status.UserPendente && next == status.UserAtivo {
			reset := audit.PasswordResetEvent{UserID: adminID, TargetID: req.ID, ClientIP: clientIP(r), Reason: "activation"}
			plain, err := password.Reset(users, req.ID)
			if err != nil {
				log.Error("failed to issue activation password", "user_id", req.ID, "error", err)
				reset.ErrorMessage = err.Error()
				audit.Log(reset)
				respondWithError(w, http.StatusInternalServerError, msgUserUpdateFailed)
				return
			}
			reset.Success = true
			audit.Log(reset)

			msg := fmt.Sprintf(activationTemplate, plain)
			resp.ActivationMessage = &msg
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleDeleteUser(users store.UsersStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		event := audit.UserEvent{UserID: caller(r).UserID, TargetID: id, ClientIP: clientIP(r), Operation: "delete"}
		if err := users.Delete(id); err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, msgUserNotFound)
				return
			}
			log.Error("failed to delete user", "user_id", id, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgUserDeleteFailed)
			return
		}
		event.Success = true
		audit.Log(event)
		respondSuccess(w)
	}
}

func handleUpdateProfile(users store.UsersStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProfileRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}
		if !allowUser(w, r, req.ID) {
			return
		}

		user, err := users.UpdateProfile(req.ID, store.ProfileUpdate{
			ProfessorNome:   req.ProfessorNome,
			NumeroAgente:    req.NumeroAgente,
			Biografia:       req.Biografia,
			Especializacoes: req.Especializacoes,
			FotoURL:         req.FotoURL,
			Escola:          req.Escola,
			Provincia:       req.Provincia,
			Municipio:       req.Municipio,
		})
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, msgUserNotFound)
				return
			}
			log.Error("failed to update profile", "user_id", req.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgProfileUpdateFailed)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]*model.User{"user": user})
	}
}
