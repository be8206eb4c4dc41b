package endpoints

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppa-angola/portal-pedagogico/pkg/docx"
	"github.com/ppa-angola/portal-pedagogico/pkg/library"
)

func TestExportDocx(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"plano":       "# Objetivo Geral\nIdentificar os **números** até 10.\n- Contar objectos",
		"escola":      "Escola Primária nº 12",
		"professor":   "Ana",
		"disciplina":  "Matemática",
		"classe":      "1ª Classe",
		"trimestre":   "I",
		"aula_numero": 3,
		"tempo":       "45",
		"template":    "Luanda",
	}
	rec := env.do(t, "POST", "/api/ai/export-docx", body, env.teacher)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, docx.ContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=plano_de_aula.docx", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))

	data := rec.Body.Bytes()
	require.True(t, len(data) > 2)
	assert.Equal(t, "PK", string(data[:2]))

	text, err := library.ExtractText("plano.docx", data)
	require.NoError(t, err)
	assert.Contains(t, text, "GOVERNO PROVINCIAL DE LUANDA")
	assert.Contains(t, text, "ESCOLA: ESCOLA PRIMÁRIA Nº 12")
	assert.Contains(t, text, "Aula nº: 3")
	assert.Contains(t, text, "Tempo: 45 min")
	assert.Contains(t, text, "Município: Não definido")
	assert.Contains(t, text, "Objetivo Geral")
	assert.Contains(t, text, docx.Footer)

	t.Run("plan required", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/ai/export-docx", map[string]string{"escola": "x"}, env.teacher)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires a session", func(t *testing.T) {
		rec := env.do(t, "POST", "/api/ai/export-docx", body, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
