package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator"
	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator/password"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
	"github.com/ppa-angola/portal-pedagogico/pkg/session"
	"github.com/ppa-angola/portal-pedagogico/pkg/status"
)

const (
	msgInvalidCredentials = "Credenciais inválidas"
	msgExpired            = "Sua assinatura expirou. Por favor, renove seu plano."
	msgPending            = "A sua conta aguarda aprovação do administrador."
	msgInactive           = "Conta inactiva. Contacte o administrador."
	msgDuplicateUser      = "E-mail ou Telefone já cadastrado"
	msgUserNotFound       = "Usuário não encontrado"
	msgMailFailed         = "Erro ao enviar e-mail. Verifique as configurações SMTP ou tente WhatsApp/SMS."
	msgMailSimulated      = "Pedido registrado (Modo Simulação - SMTP não configurado)"
	msgTempPassword       = "Uma nova senha foi gerada. Entre em contato com o suporte para recebê-la."
)

// respondAccountError answers with 403 when err reports an account that may
// not use the portal.
func respondAccountError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, authenticator.ErrExpired):
		respondWithError(w, http.StatusForbidden, msgExpired)
	case errors.Is(err, authenticator.ErrPending):
		respondWithError(w, http.StatusForbidden, msgPending)
	case errors.Is(err, authenticator.ErrInactive):
		respondWithError(w, http.StatusForbidden, msgInactive)
	default:
		return false
	}
	return true
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse carries the user and its session token
type LoginResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Email         string `json:"email" validate:"omitempty,email"`
	Telefone      string `json:"telefone" validate:"required_without=Email"`
	Password      string `json:"password" validate:"required"`
	Escola        string `json:"escola"`
	ProfessorNome string `json:"professor_nome"`
	Provincia     string `json:"provincia"`
	Municipio     string `json:"municipio"`
}

// AccessRequest is the body of POST /api/auth/request-email
type AccessRequest struct {
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	ProfessorNome string `json:"professor_nome"`
	Escola        string `json:"escola"`
	Provincia     string `json:"provincia"`
	Municipio     string `json:"municipio"`
}

// RegisterAuthEndpoints registers login, registration and account recovery
func RegisterAuthEndpoints(s *server.Server) {
	log := s.Log.With("component", "auth")

	s.Router.HandleFunc("/api/auth/login", handleLogin(s.Login, s.Sessions, log)).Methods("POST")
	s.Router.HandleFunc("/api/auth/register", handleRegister(s.UsersStore, log)).Methods("POST")
	s.Router.HandleFunc("/api/auth/request-email", handleRequestEmail(s.Notifier, log)).Methods("POST")
	s.Router.HandleFunc("/api/auth/forgot-password", handleForgotPassword(s.UsersStore, s.Notifier, log)).Methods("POST")
	s.Router.Handle("/api/auth/me", s.Protected(handleMe(s.UsersStore))).Methods("GET")
}

func handleLogin(auth authenticator.Authenticator, sessions *session.Manager, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		req.Identifier = strings.TrimSpace(req.Identifier)

		user, err := auth.Authenticate(r.Context(), authenticator.Input{
			Identifier:  req.Identifier,
			Credentials: []byte(req.Password),
			ClientIP:    clientIP(r),
		})
		if err != nil {
			audit.Log(audit.LoginEvent{Identifier: req.Identifier, ClientIP: clientIP(r), ErrorMessage: err.Error()})

			switch {
			case errors.Is(err, authenticator.ErrInvalidCredentials):
				respondWithError(w, http.StatusUnauthorized, msgInvalidCredentials)
			case respondAccountError(w, err):
			default:
				log.Error("login failed", "error", err)
				respondWithError(w, http.StatusInternalServerError, msgInternal)
			}
			return
		}

		token, _, err := sessions.Issue(user.ID, user.IsAdmin)
		if err != nil {
			log.Error("failed to issue session", "user_id", user.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		audit.Log(audit.LoginEvent{Identifier: req.Identifier, UserID: user.ID, ClientIP: clientIP(r), Success: true})
		respondWithJSON(w, http.StatusOK, LoginResponse{User: user, Token: token})
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func handleRegister(users store.UsersStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		hash, err := password.Hash(req.Password)
		if err != nil {
			log.Error("failed to hash password", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		user := &model.User{
			Email:         optional(req.Email),
			Telefone:      optional(req.Telefone),
			Password:      hash,
			Status:        status.UserPendente,
			Escola:        req.Escola,
			ProfessorNome: req.ProfessorNome,
			Provincia:     req.Provincia,
			Municipio:     req.Municipio,
		}
		identifier := req.Email
		if identifier == "" {
			identifier = req.Telefone
		}

		if err := users.Create(user); err != nil {
			audit.Log(audit.RegisterEvent{Identifier: identifier, ClientIP: clientIP(r), ErrorMessage: err.Error()})
			if !errors.Is(err, store.ErrDuplicateUser) {
				log.Error("failed to register user", "error", err)
			}
			respondWithError(w, http.StatusBadRequest, msgDuplicateUser)
			return
		}

		audit.Log(audit.RegisterEvent{Identifier: identifier, UserID: user.ID, ClientIP: clientIP(r), Success: true})
		respondWithJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func accessRequestBody(req AccessRequest) string {
	return fmt.Sprintf(`Novo pedido de acesso ao Portal Pedagógico Angola:

Nome: %s
Escola: %s
Província: %s
Município: %s
E-mail: %s
Telefone: %s

Por favor, revise o pedido no painel administrativo.
`, req.ProfessorNome, req.Escola, req.Provincia, req.Municipio, orNA(req.Email), orNA(req.Telefone))
}

func handleRequestEmail(notifier server.AdminNotifier, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AccessRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		simulated, err := notifier.NotifyAdmin(r.Context(), "Novo Pedido de Acesso: "+req.ProfessorNome, accessRequestBody(req))
		if err != nil {
			log.Error("failed to send access request", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgMailFailed)
			return
		}
		if simulated {
			respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": msgMailSimulated})
			return
		}
		respondSuccess(w)
	}
}

func handleForgotPassword(users store.UsersStore, notifier server.AdminNotifier, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Identifier string `json:"identifier"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := users.FindByIdentifier(strings.TrimSpace(req.Identifier))
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) || req.Identifier == "" {
				respondWithError(w, http.StatusNotFound, msgUserNotFound)
				return
			}
			log.Error("failed to look up user", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}

		plain, err := password.Reset(users, user.ID)
		if err != nil {
			audit.Log(audit.PasswordResetEvent{TargetID: user.ID, ClientIP: clientIP(r), Reason: "forgot-password", ErrorMessage: err.Error()})
			log.Error("failed to reset password", "user_id", user.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		audit.Log(audit.PasswordResetEvent{TargetID: user.ID, ClientIP: clientIP(r), Reason: "forgot-password", Success: true})

		body := fmt.Sprintf("Usuário: %s\nIdentificador: %s\nNova senha temporária: %s\n", user.DisplayName(), req.Identifier, plain)
		if _, err := notifier.NotifyAdmin(r.Context(), "Recuperação de Senha: "+user.DisplayName(), body); err != nil {
			log.Warn("failed to notify admin of password reset", "user_id", user.ID, "error", err)
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"message":  msgTempPassword,
			"tempPass": plain,
		})
	}
}

func handleMe(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := users.FindByID(caller(r).UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, msgUserNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]*model.User{"user": user})
	}
}
