package endpoints

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/authenticator"
	"github.com/ppa-angola/portal-pedagogico/pkg/library"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

const (
	msgPlanSaveFailed    = "Não foi possível salvar o histórico do plano."
	msgPlanUpdateFailed  = "Erro ao atualizar plano"
	msgPlanNotFound      = "Plano não encontrado"
	msgPlanLimit         = "Limite de planos atingido. Melhore seu plano."
	msgAIFailed          = "Falha na chamada à IA"
	msgCreditsFailed     = "Não foi possível atualizar os créditos."
	defaultProvinciaText = "Não definida"
	defaultMunicipioText = "Não definido"
)

// SavePlanRequest is the body of POST /api/plans/save. Metadata is accepted
// either as a JSON encoded string or as an object.
type SavePlanRequest struct {
	UserID   int64           `json:"userId"`
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata"`
}

// GenerateResponse is returned by POST /api/plans/generate
type GenerateResponse struct {
	Content          string `json:"content"`
	ID               int64  `json:"id"`
	PlanosConsumidos int    `json:"planos_consumidos"`
}

// RegisterPlansEndpoints registers lesson plan history and generation
func RegisterPlansEndpoints(s *server.Server) {
	log := s.Log.With("component", "plans")
	gen := &planGenerator{
		users:    s.UsersStore,
		plans:    s.PlansStore,
		settings: s.SettingsStore,
		library:  s.Library,
		ai:       s.AI,
		log:      log,
	}

	s.Router.Handle("/api/plans/history/{userId}", s.Protected(handlePlanHistory(s.PlansStore))).Methods("GET")
	s.Router.Handle("/api/plans/save", s.Protected(handleSavePlan(s.PlansStore, log))).Methods("POST")
	s.Router.Handle("/api/plans/update", s.Protected(handleUpdatePlan(s.PlansStore, log))).Methods("POST")
	s.Router.Handle("/api/plans/generate", s.Protected(gen.handle)).Methods("POST")
	s.Router.Handle("/api/plans/{id:[0-9]+}/html", s.Protected(handlePlanHTML(s.PlansStore))).Methods("GET")
	s.Router.Handle("/api/users/update-credits", s.Protected(handleUpdateCredits(s.UsersStore, log))).Methods("POST")
}

func handlePlanHistory(plans store.PlansStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathInt64(r, "userId")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		if !allowUser(w, r, userID) {
			return
		}

		history, err := plans.ListByUser(userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if history == nil {
			history = []model.Plan{}
		}
		respondWithJSON(w, http.StatusOK, history)
	}
}

// metadataText normalizes the metadata field to the JSON text stored in
// plans_history.
func metadataText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "{}"
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

func handleSavePlan(plans store.PlansStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SavePlanRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !allowUser(w, r, req.UserID) {
			return
		}

		plan := &model.Plan{UserID: req.UserID, Content: req.Content, Metadata: metadataText(req.Metadata)}
		if err := plans.Save(plan); err != nil {
			log.Error("failed to save plan", "user_id", req.UserID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgPlanSaveFailed)
			return
		}
		respondSuccess(w)
	}
}

func handleUpdatePlan(plans store.PlansStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID      int64  `json:"id"`
			Content string `json:"content"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}

		plan, err := plans.Get(req.ID)
		if err != nil {
			if errors.Is(err, store.ErrPlanNotFound) {
				respondWithError(w, http.StatusNotFound, msgPlanNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgPlanUpdateFailed)
			return
		}
		if !allowUser(w, r, plan.UserID) {
			return
		}

		if err := plans.UpdateContent(req.ID, req.Content); err != nil {
			log.Error("failed to update plan", "plan_id", req.ID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgPlanUpdateFailed)
			return
		}
		respondSuccess(w)
	}
}

var planMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// renderPlanHTML converts a plan to an HTML fragment. Raw HTML in the plan
// is dropped by goldmark's default renderer.
func renderPlanHTML(content string) ([]byte, error) {
	var buf bytes.Buffer
	if err := planMarkdown.Convert([]byte(content), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func handlePlanHTML(plans store.PlansStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(r, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		plan, err := plans.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrPlanNotFound) {
				respondWithError(w, http.StatusNotFound, msgPlanNotFound)
				return
			}
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if !allowUser(w, r, plan.UserID) {
			return
		}

		body, err := renderPlanHTML(plan.Content)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(body)
	}
}

func handleUpdateCredits(users store.UsersStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int64 `json:"userId"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if !allowUser(w, r, req.UserID) {
			return
		}

		if _, err := users.IncrementCredits(req.UserID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, msgUserNotFound)
				return
			}
			log.Error("failed to update credits", "user_id", req.UserID, "error", err)
			respondWithError(w, http.StatusInternalServerError, msgCreditsFailed)
			return
		}
		respondSuccess(w)
	}
}

type planGenerator struct {
	users    store.UsersStore
	plans    store.PlansStore
	settings store.SettingsStore
	library  library.Storage
	ai       ai.Generator
	log      *logger.Logger
}

// location returns the province and municipality printed in the plan
// header. Administrators use the portal defaults.
func (g *planGenerator) location(user *model.User) (string, string) {
	provincia, municipio := user.Provincia, user.Municipio
	if user.IsAdmin {
		provincia, municipio = "", ""
		if v, ok, err := g.settings.Get(model.SettingDefaultProvincia); err == nil && ok {
			provincia = v
		}
		if v, ok, err := g.settings.Get(model.SettingDefaultMunicipio); err == nil && ok {
			municipio = v
		}
	}
	if strings.TrimSpace(provincia) == "" {
		provincia = defaultProvinciaText
	}
	if strings.TrimSpace(municipio) == "" {
		municipio = defaultMunicipioText
	}
	return provincia, municipio
}

func (g *planGenerator) handle(w http.ResponseWriter, r *http.Request) {
	var req ai.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg := validationMessage(req); msg != "" {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := g.users.FindByID(caller(r).UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		respondWithError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if respondAccountError(w, authenticator.CheckAccount(user, time.Now())) {
		return
	}
	if user.ReachedPlanLimit() {
		respondWithError(w, http.StatusForbidden, msgPlanLimit)
		return
	}

	var libraryContext string
	if g.library != nil {
		libraryContext, err = library.PlanContext(r.Context(), g.library, req.Disciplina, req.Classe)
		if err != nil {
			g.log.Warn("library context unavailable", "error", err)
			libraryContext = ""
		}
	}

	provincia, municipio := g.location(user)
	prompt := ai.BuildPlanPrompt(req, provincia, municipio, libraryContext)

	content, err := g.ai.GenerateText(r.Context(), prompt)
	if err != nil {
		g.log.Error("plan generation failed", "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusBadGateway, msgAIFailed)
		return
	}

	meta, err := planMetadata(req, time.Now().UTC())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	plan := &model.Plan{UserID: user.ID, Content: content, Metadata: meta}
	if err := g.plans.Save(plan); err != nil {
		g.log.Error("failed to save generated plan", "user_id", user.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, msgPlanSaveFailed)
		return
	}

	updated, err := g.users.IncrementCredits(user.ID)
	if err != nil {
		g.log.Error("failed to update credits", "user_id", user.ID, "error", err)
		updated = user
	}

	respondWithJSON(w, http.StatusOK, GenerateResponse{
		Content:          content,
		ID:               plan.ID,
		PlanosConsumidos: updated.PlanosConsumidos,
	})
}

// planMetadata is the form plus the creation time, as the web client
// stores it.
func planMetadata(req ai.PlanRequest, createdAt time.Time) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	var meta map[string]interface{}
	if err := json.Unmarshal(b, &meta); err != nil {
		return "", err
	}
	meta["created_at"] = createdAt.Format(time.RFC3339)
	out, err := json.Marshal(meta)
	return string(out), err
}
