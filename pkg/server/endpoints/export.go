package endpoints

import (
	"net/http"
	"strconv"

	"github.com/ppa-angola/portal-pedagogico/pkg/ai"
	"github.com/ppa-angola/portal-pedagogico/pkg/docx"
	"github.com/ppa-angola/portal-pedagogico/pkg/logger"
	"github.com/ppa-angola/portal-pedagogico/pkg/server"
)

const (
	msgExportFailed = "Erro ao gerar documento Word"
	docxFilename    = "plano_de_aula.docx"
)

// ExportRequest is the body of POST /api/ai/export-docx
type ExportRequest struct {
	Plano      string    `json:"plano" validate:"required"`
	Escola     string    `json:"escola"`
	Professor  string    `json:"professor"`
	Disciplina string    `json:"disciplina"`
	Classe     string    `json:"classe"`
	Trimestre  string    `json:"trimestre"`
	AulaNumero ai.Number `json:"aula_numero"`
	Tempo      ai.Number `json:"tempo"`
	Template   string    `json:"template"`
	Provincia  string    `json:"provincia"`
	Municipio  string    `json:"municipio"`
}

// RegisterExportEndpoints registers the Word export endpoint
func RegisterExportEndpoints(s *server.Server) {
	log := s.Log.With("component", "export")

	s.Router.Handle("/api/ai/export-docx", s.Protected(handleExportDocx(log))).Methods("POST")
}

func handleExportDocx(log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExportRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if msg := validationMessage(req); msg != "" {
			respondWithError(w, http.StatusBadRequest, msg)
			return
		}

		doc := docx.RenderPlan(docx.PlanHeader{
			Escola:     req.Escola,
			Professor:  req.Professor,
			Provincia:  req.Provincia,
			Municipio:  req.Municipio,
			Disciplina: req.Disciplina,
			Classe:     req.Classe,
			Trimestre:  req.Trimestre,
			AulaNumero: string(req.AulaNumero),
			Tempo:      string(req.Tempo),
			Template:   req.Template,
		}, req.Plano)

		body, err := doc.Bytes()
		if err != nil {
			log.Error("failed to render docx", "error", err)
			respondWithError(w, http.StatusInternalServerError, msgExportFailed)
			return
		}

		w.Header().Set("Content-Type", docx.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename="+docxFilename)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}
