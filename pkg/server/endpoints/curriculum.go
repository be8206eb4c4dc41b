package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ppa-angola/portal-pedagogico/pkg/audit"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/model"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
	"github.com/ppa-angola/portal-pedagogico/pkg/server/store"
)

const (
	msgCurriculumFailed = "Erro ao atualizar currículo"
	msgInvalidLevel     = "Tipo inválido"
)

// CurriculumNode names a node of the curriculum tree
type CurriculumNode struct {
	Classe     string `json:"classe" validate:"required"`
	Disciplina string `json:"disciplina" validate:"required"`
	Tema       string `json:"tema"`
	Subtema    string `json:"subtema"`
	Sumario    string `json:"sumario"`
}

func (n CurriculumNode) ref() store.CurriculumRef {
	return store.CurriculumRef{
		Classe:     strings.TrimSpace(n.Classe),
		Disciplina: strings.TrimSpace(n.Disciplina),
		Tema:       strings.TrimSpace(n.Tema),
		Subtema:    strings.TrimSpace(n.Subtema),
		Sumario:    strings.TrimSpace(n.Sumario),
	}
}

func (n CurriculumNode) path() []string {
	r := n.ref()
	return []string{r.Classe, r.Disciplina, r.Tema, r.Subtema, r.Sumario}
}

// CurriculumEditRequest is the body of POST /api/admin/curriculum/edit
type CurriculumEditRequest struct {
	Type    string         `json:"type" validate:"required"`
	OldData CurriculumNode `json:"oldData"`
	NewData struct {
		Name string `json:"name" validate:"required"`
	} `json:"newData"`
}

// RegisterCurriculumEndpoints registers the curriculum tree endpoints
func RegisterCurriculumEndpoints(s *server.Server) {
	log := s.Log.With("component", "curriculum")

	s.Router.Handle("/api/curriculum", s.Protected(handleListCurriculum(s.CurriculumStore))).Methods("GET")
	s.Router.Handle("/api/admin/curriculum/add", s.AdminOnly(handleAddCurriculum(s.CurriculumStore, log))).Methods("POST")
	s.Router.Handle("/api/admin/curriculum/edit", s.AdminOnly(handleEditCurriculum(s.CurriculumStore, log))).Methods("POST")
	s.Router.Handle("/api/admin/curriculum/remove", s.AdminOnly(handleRemoveCurriculum(s.CurriculumStore, log))).Methods("POST")
}

func handleListCurriculum(curriculum store.CurriculumStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := curriculum.List()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, msgInternal)
			return
		}
		if entries == nil {
			entries = []model.CurriculumEntry{}
		}
		respondWithJSON(w, http.StatusOK, entries)
	}
}

// curriculumChange runs op and writes the audit record and response.
func curriculumChange(w http.ResponseWriter, r *http.Request, log *logger.Logger, operation string, path []string, op func() error) {
	event := audit.CurriculumEvent{UserID: caller(r).UserID, ClientIP: clientIP(r), Operation: operation, Path: path}
	if err := op(); err != nil {
		event.ErrorMessage = err.Error()
		audit.Log(event)
		if errors.Is(err, store.ErrInvalidLevel) {
			respondWithError(w, http.StatusBadRequest, msgInvalidLevel)
			return
		}
		log.Error("curriculum change failed", "operation", operation, "error", err)
		respondWithError(w, http.StatusInternalServerError, msgCurriculumFailed)
		return
	}
	event.Success = true
	audit.Log(event)
	respondSuccess(w)
}

func handleAddCurriculum(curriculum store.CurriculumStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CurriculumNode
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}
		// A node without a sumário creates its row with an empty list.
		ref := req.ref()
		if ref.Classe == "" || ref.Disciplina == "" {
			respondWithError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}
		curriculumChange(w, r, log, "add", req.path(), func() error {
			return curriculum.AddSumario(ref)
		})
	}
}

func handleEditCurriculum(curriculum store.CurriculumStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CurriculumEditRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}
		name := strings.TrimSpace(req.NewData.Name)
		curriculumChange(w, r, log, "edit", req.OldData.path(), func() error {
			return curriculum.Rename(req.Type, req.OldData.ref(), name)
		})
	}
}

func handleRemoveCurriculum(curriculum store.CurriculumStore, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CurriculumNode
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}
		curriculumChange(w, r, log, "remove", req.path(), func() error {
			return curriculum.Remove(req.ref())
		})
	}
}
